package clinic

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperr "github.com/clinicore/clinic-api/pkg/errors"
	"github.com/clinicore/clinic-api/pkg/httputil"

	"github.com/clinicore/clinic-api/internal/model"
	"github.com/clinicore/clinic-api/internal/service/clinic"
)

type Handler struct {
	svc *clinic.Service
}

func NewHandler(svc *clinic.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes: clinics are a public, append-only surface.
func (h *Handler) RegisterRoutes(public *gin.RouterGroup) {
	clinics := public.Group("/clinics")
	{
		clinics.GET("", h.ListClinics)
		clinics.GET("/:id", h.GetClinic)
		clinics.POST("", h.CreateClinic)
	}
}

func (h *Handler) ListClinics(c *gin.Context) {
	clinics, err := h.svc.ListClinics(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, clinics)
}

func (h *Handler) GetClinic(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperr.NewValidation("invalid clinic ID"))
		return
	}

	cl, err := h.svc.GetClinic(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, cl)
}

func (h *Handler) CreateClinic(c *gin.Context) {
	var req model.CreateClinicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperr.NewValidation(err.Error()))
		return
	}

	created, err := h.svc.CreateClinic(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, created)
}
