package handlers

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type ServiceHandler struct {
	catalog domain.CatalogStore
	audit   *audit.Dispatcher
	log     *slog.Logger
}

func NewServiceHandler(catalog domain.CatalogStore, d *audit.Dispatcher, log *slog.Logger) *ServiceHandler {
	return &ServiceHandler{catalog: catalog, audit: d, log: log}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Name            string          `json:"name" binding:"required"`
	Description     string          `json:"description"`
	DurationMinutes int             `json:"duration_minutes" binding:"required,min=1"`
	Price           decimal.Decimal `json:"price"`
}

type UpdateServiceRequest struct {
	Name            *string          `json:"name,omitempty"`
	Description     *string          `json:"description,omitempty"`
	DurationMinutes *int             `json:"duration_minutes,omitempty"`
	Price           *decimal.Decimal `json:"price,omitempty"`
	Active          *bool            `json:"active,omitempty"`
}

// --------- Handlers ---------

func (h *ServiceHandler) List(c *gin.Context) {
	f := domain.ServiceFilter{Query: c.Query("query")}

	switch strings.TrimSpace(c.Query("active")) {
	case "true":
		v := true
		f.Active = &v
	case "false":
		v := false
		f.Active = &v
	}

	services, err := h.catalog.ListServiceCatalog(c.Request.Context(), middleware.SalonID(c), f)
	if err != nil {
		respond(c, h.log, err, "failed_to_list_services")
		return
	}
	httpresp.List(c, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		httperr.BadRequest(c, "invalid_name", "name must not be empty")
		return
	}
	if req.Price.IsNegative() {
		httperr.BadRequest(c, "invalid_price", "price must not be negative")
		return
	}

	svc := models.Service{
		SalonID:         middleware.SalonID(c),
		Name:            name,
		Description:     strings.TrimSpace(req.Description),
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price.Round(2),
		Active:          true,
	}

	if err := h.catalog.SaveService(c.Request.Context(), &svc); err != nil {
		respond(c, h.log, err, "failed_to_create_service")
		return
	}

	writeAudit(h.audit, c, "service_created", "service", svc.ID, nil)
	httpresp.Created(c, svc)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	svc, err := h.catalog.GetService(c.Request.Context(), middleware.SalonID(c), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			httperr.NotFound(c, "service_not_found", "service not found")
			return
		}
		respond(c, h.log, err, "failed_to_get_service")
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			httperr.BadRequest(c, "invalid_name", "name must not be empty")
			return
		}
		svc.Name = name
	}
	if req.Description != nil {
		svc.Description = strings.TrimSpace(*req.Description)
	}
	if req.DurationMinutes != nil {
		if *req.DurationMinutes < 1 {
			httperr.BadRequest(c, "invalid_duration", "duration_minutes must be at least 1")
			return
		}
		svc.DurationMinutes = *req.DurationMinutes
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			httperr.BadRequest(c, "invalid_price", "price must not be negative")
			return
		}
		svc.Price = req.Price.Round(2)
	}
	if req.Active != nil {
		svc.Active = *req.Active
	}

	if err := h.catalog.SaveService(c.Request.Context(), svc); err != nil {
		respond(c, h.log, err, "failed_to_update_service")
		return
	}

	writeAudit(h.audit, c, "service_updated", "service", svc.ID, req)
	httpresp.OK(c, svc)
}
