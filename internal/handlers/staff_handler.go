package handlers

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/validators"
)

// StaffHandler manages staff members and the services each can perform.
type StaffHandler struct {
	catalog domain.CatalogStore
	audit   *audit.Dispatcher
	log     *slog.Logger
}

func NewStaffHandler(catalog domain.CatalogStore, d *audit.Dispatcher, log *slog.Logger) *StaffHandler {
	return &StaffHandler{catalog: catalog, audit: d, log: log}
}

type CreateStaffRequest struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email"`
	ServiceIDs []uint `json:"service_ids"`
}

type StaffServicesRequest struct {
	ServiceIDs []uint `json:"service_ids" binding:"required"`
}

func (h *StaffHandler) List(c *gin.Context) {
	staff, err := h.catalog.ListStaff(c.Request.Context(), middleware.SalonID(c))
	if err != nil {
		respond(c, h.log, err, "failed_to_list_staff")
		return
	}
	httpresp.List(c, staff)
}

func (h *StaffHandler) Create(c *gin.Context) {
	var req CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		httperr.BadRequest(c, "invalid_name", "name must not be empty")
		return
	}

	var email string
	if strings.TrimSpace(req.Email) != "" {
		normalized, ok := validators.NormalizeEmail(req.Email)
		if !ok {
			httperr.BadRequest(c, "invalid_email", "email is not a valid address")
			return
		}
		email = normalized
	}

	ctx := c.Request.Context()
	salonID := middleware.SalonID(c)

	st := models.Staff{
		SalonID: salonID,
		Name:    name,
		Email:   email,
		Active:  true,
	}
	if err := h.catalog.SaveStaff(ctx, &st); err != nil {
		respond(c, h.log, err, "failed_to_create_staff")
		return
	}

	if len(req.ServiceIDs) > 0 {
		if !h.setServices(c, salonID, st.ID, req.ServiceIDs) {
			return
		}
	}

	writeAudit(h.audit, c, "staff_created", "staff", st.ID, gin.H{"service_ids": req.ServiceIDs})
	httpresp.Created(c, st)
}

// SetServices replaces the services a staff member is qualified for.
func (h *StaffHandler) SetServices(c *gin.Context) {
	staffID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req StaffServicesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if !h.setServices(c, middleware.SalonID(c), staffID, req.ServiceIDs) {
		return
	}

	writeAudit(h.audit, c, "staff_services_updated", "staff", staffID, req)
	httpresp.OK(c, gin.H{"staff_id": staffID, "service_ids": req.ServiceIDs})
}

func (h *StaffHandler) setServices(c *gin.Context, salonID, staffID uint, ids []uint) bool {
	seen := make(map[uint]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			httperr.BadRequest(c, "duplicate_service", "service_ids must not repeat")
			return false
		}
		seen[id] = true
	}

	err := h.catalog.SetStaffServices(c.Request.Context(), salonID, staffID, ids)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			httperr.NotFound(c, "staff_or_service_not_found", "staff member or service not found")
			return false
		}
		respond(c, h.log, err, "failed_to_update_staff_services")
		return false
	}
	return true
}
