package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/salon-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

// AppointmentHandler serves the salon back office. The salon always comes
// from the token, never from the request.
type AppointmentHandler struct {
	availability *ucAppointment.GetAvailability
	commit       *ucAppointment.CommitAppointment
	status       *ucAppointment.ChangeStatus
	list         *ucAppointment.ListAppointments
	log          *slog.Logger
}

func NewAppointmentHandler(
	availability *ucAppointment.GetAvailability,
	commit *ucAppointment.CommitAppointment,
	status *ucAppointment.ChangeStatus,
	list *ucAppointment.ListAppointments,
	log *slog.Logger,
) *AppointmentHandler {
	return &AppointmentHandler{
		availability: availability,
		commit:       commit,
		status:       status,
		list:         list,
		log:          log,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	StaffID    uint   `json:"staff_id" binding:"required"`
	CustomerID uint   `json:"customer_id" binding:"required"`
	ServiceIDs []uint `json:"service_ids" binding:"required"`
	Date       string `json:"date" binding:"required"`       // YYYY-MM-DD
	StartTime  string `json:"start_time" binding:"required"` // HH:MM
	Notes      string `json:"notes"`
}

// RescheduleAppointmentRequest moves an appointment. Omitted staff and
// services keep their current values.
type RescheduleAppointmentRequest struct {
	StaffID    uint   `json:"staff_id"`
	ServiceIDs []uint `json:"service_ids"`
	Date       string `json:"date" binding:"required"`
	StartTime  string `json:"start_time" binding:"required"`
	Notes      string `json:"notes"`
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *AppointmentHandler) Availability(c *gin.Context) {
	in, err := availabilityInput(c, middleware.SalonID(c))
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

// ======================================================
// CREATE / RESCHEDULE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "invalid request body")
		return
	}

	ap, err := h.commit.Execute(c.Request.Context(), ucAppointment.CommitInput{
		SalonID:    middleware.SalonID(c),
		StaffID:    req.StaffID,
		CustomerID: req.CustomerID,
		ServiceIDs: req.ServiceIDs,
		Date:       req.Date,
		StartTime:  req.StartTime,
		Notes:      req.Notes,
		ActorID:    middleware.UserID(c),
	})
	if err != nil {
		respond(c, h.log, err, "create_appointment_failed")
		return
	}

	c.JSON(http.StatusCreated, ap)
}

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req RescheduleAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "invalid request body")
		return
	}

	ap, err := h.commit.Execute(c.Request.Context(), ucAppointment.CommitInput{
		SalonID:       middleware.SalonID(c),
		StaffID:       req.StaffID,
		ServiceIDs:    req.ServiceIDs,
		Date:          req.Date,
		StartTime:     req.StartTime,
		Notes:         req.Notes,
		AppointmentID: id,
		ActorID:       middleware.UserID(c),
	})
	if err != nil {
		respond(c, h.log, err, "reschedule_appointment_failed")
		return
	}

	c.JSON(http.StatusOK, ap)
}

// ======================================================
// STATUS
// ======================================================

func (h *AppointmentHandler) changeStatus(c *gin.Context, action ucAppointment.StatusAction) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ap, err := h.status.Execute(
		c.Request.Context(),
		middleware.SalonID(c),
		middleware.UserID(c),
		id,
		action,
	)
	if err != nil {
		respond(c, h.log, err, "update_appointment_failed")
		return
	}

	c.JSON(http.StatusOK, ap)
}

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	h.changeStatus(c, ucAppointment.ActionConfirm)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	h.changeStatus(c, ucAppointment.ActionCancel)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	h.changeStatus(c, ucAppointment.ActionComplete)
}

func (h *AppointmentHandler) NoShow(c *gin.Context) {
	h.changeStatus(c, ucAppointment.ActionNoShow)
}

// ======================================================
// LISTS
// ======================================================

func staffFilter(c *gin.Context) (uint, bool) {
	raw := c.Query("staff_id")
	if raw == "" {
		return 0, true
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_staff_id", "staff_id must be a positive integer")
		return 0, false
	}
	return uint(id), true
}

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	staffID, ok := staffFilter(c)
	if !ok {
		return
	}

	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "date is required")
		return
	}

	items, err := h.list.ByDate(c.Request.Context(), middleware.SalonID(c), staffID, date)
	if err != nil {
		respond(c, h.log, err, "list_appointments_failed")
		return
	}

	c.JSON(http.StatusOK, items)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	staffID, ok := staffFilter(c)
	if !ok {
		return
	}

	year, errY := strconv.Atoi(c.Query("year"))
	month, errM := strconv.Atoi(c.Query("month"))
	if errY != nil || errM != nil {
		httperr.BadRequest(c, "invalid_period", "year and month are required")
		return
	}

	items, err := h.list.ByMonth(c.Request.Context(), middleware.SalonID(c), staffID, year, month)
	if err != nil {
		respond(c, h.log, err, "list_appointments_failed")
		return
	}

	c.JSON(http.StatusOK, items)
}
