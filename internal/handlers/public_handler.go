package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	ucAppointment "github.com/BruksfildServices01/salon-scheduler/internal/usecase/appointment"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

// PublicHandler is the customer-facing booking surface, addressed by salon
// slug.
type PublicHandler struct {
	repo         domain.Repository
	availability *ucAppointment.GetAvailability
	commit       *ucAppointment.CommitAppointment
	log          *slog.Logger
}

func NewPublicHandler(
	repo domain.Repository,
	availability *ucAppointment.GetAvailability,
	commit *ucAppointment.CommitAppointment,
	log *slog.Logger,
) *PublicHandler {
	return &PublicHandler{
		repo:         repo,
		availability: availability,
		commit:       commit,
		log:          log,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicCreateAppointmentRequest struct {
	StaffID    uint   `json:"staff_id" binding:"required"`
	CustomerID uint   `json:"customer_id" binding:"required"`
	ServiceIDs []uint `json:"service_ids" binding:"required"`
	Date       string `json:"date" binding:"required"`       // YYYY-MM-DD
	StartTime  string `json:"start_time" binding:"required"` // HH:MM
	Notes      string `json:"notes"`
}

func (h *PublicHandler) salon(c *gin.Context) (*models.Salon, bool) {
	salon, err := h.repo.GetSalonBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			httperr.NotFound(c, "salon_not_found", "salon not found")
			return nil, false
		}
		respond(c, h.log, err, "salon_lookup_failed")
		return nil, false
	}
	return salon, true
}

////////////////////////////////////////////////////////
// SERVICES
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServices(c *gin.Context) {
	salon, ok := h.salon(c)
	if !ok {
		return
	}

	services, err := h.repo.ListActiveServices(c.Request.Context(), salon.ID)
	if err != nil {
		respond(c, h.log, err, "list_services_failed")
		return
	}
	if services == nil {
		services = []models.Service{}
	}

	c.JSON(http.StatusOK, services)
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	salon, ok := h.salon(c)
	if !ok {
		return
	}

	in, err := availabilityInput(c, salon.ID)
	if err != nil {
		respond(c, h.log, err, "availability_failed")
		return
	}

	res, err := h.availability.Execute(c.Request.Context(), in)
	if err != nil {
		respond(c, h.log, err, "availability_failed")
		return
	}

	c.JSON(http.StatusOK, res)
}

////////////////////////////////////////////////////////
// CREATE
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	salon, ok := h.salon(c)
	if !ok {
		return
	}

	var req PublicCreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "invalid request body")
		return
	}

	ap, err := h.commit.Execute(c.Request.Context(), ucAppointment.CommitInput{
		SalonID:    salon.ID,
		StaffID:    req.StaffID,
		CustomerID: req.CustomerID,
		ServiceIDs: req.ServiceIDs,
		Date:       req.Date,
		StartTime:  req.StartTime,
		Notes:      req.Notes,
	})
	if err != nil {
		respond(c, h.log, err, "create_appointment_failed")
		return
	}

	c.JSON(http.StatusCreated, ap)
}
