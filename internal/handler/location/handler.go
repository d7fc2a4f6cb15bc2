package location

import (
	"github.com/gin-gonic/gin"

	apperr "github.com/clinicore/clinic-api/pkg/errors"
	"github.com/clinicore/clinic-api/pkg/httputil"

	"github.com/clinicore/clinic-api/internal/model"
	"github.com/clinicore/clinic-api/internal/service/location"
)

type Handler struct {
	svc *location.Service
}

func NewHandler(svc *location.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes: locations are a public, append-only surface.
func (h *Handler) RegisterRoutes(public *gin.RouterGroup) {
	locations := public.Group("/locations")
	{
		locations.GET("", h.ListLocations)
		locations.POST("", h.CreateLocation)
	}
}

func (h *Handler) ListLocations(c *gin.Context) {
	locations, err := h.svc.ListLocations(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, locations)
}

func (h *Handler) CreateLocation(c *gin.Context) {
	var req model.CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperr.NewValidation(err.Error()))
		return
	}

	created, err := h.svc.CreateLocation(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, created)
}
