package appointment

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperr "github.com/clinicore/clinic-api/pkg/errors"
	"github.com/clinicore/clinic-api/pkg/httputil"

	"github.com/clinicore/clinic-api/internal/middleware"
	"github.com/clinicore/clinic-api/internal/model"
	"github.com/clinicore/clinic-api/internal/service/appointment"
)

type Handler struct {
	svc *appointment.Service
}

func NewHandler(svc *appointment.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes: every appointment operation requires a token; ownership
// scoping happens in the service.
func (h *Handler) RegisterRoutes(authed *gin.RouterGroup) {
	appointments := authed.Group("/appointments")
	{
		appointments.GET("", h.ListAppointments)
		appointments.POST("", h.CreateAppointment)
		appointments.PATCH("/:id", h.UpdateAppointment)
		appointments.DELETE("/:id", h.DeleteAppointment)
	}
}

func (h *Handler) ListAppointments(c *gin.Context) {
	identity, ok := middleware.Identity(c)
	if !ok {
		httputil.RespondWithError(c, apperr.NewMissingToken())
		return
	}

	appointments, err := h.svc.ListAppointments(c.Request.Context(), identity)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, appointments)
}

func (h *Handler) CreateAppointment(c *gin.Context) {
	identity, ok := middleware.Identity(c)
	if !ok {
		httputil.RespondWithError(c, apperr.NewMissingToken())
		return
	}

	var req model.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperr.NewValidation(err.Error()))
		return
	}

	created, err := h.svc.CreateAppointment(c.Request.Context(), identity, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, created)
}

func (h *Handler) UpdateAppointment(c *gin.Context) {
	identity, ok := middleware.Identity(c)
	if !ok {
		httputil.RespondWithError(c, apperr.NewMissingToken())
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperr.NewValidation("invalid appointment ID"))
		return
	}

	var req model.UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperr.NewValidation(err.Error()))
		return
	}

	updated, err := h.svc.UpdateAppointment(c.Request.Context(), identity, id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, updated)
}

func (h *Handler) DeleteAppointment(c *gin.Context) {
	identity, ok := middleware.Identity(c)
	if !ok {
		httputil.RespondWithError(c, apperr.NewMissingToken())
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperr.NewValidation("invalid appointment ID"))
		return
	}

	if err := h.svc.DeleteAppointment(c.Request.Context(), identity, id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, nil)
}
