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
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// SalonHandler exposes the caller's identity and salon settings.
type SalonHandler struct {
	repo    domain.Repository
	catalog domain.CatalogStore
	audit   *audit.Dispatcher
	log     *slog.Logger
}

func NewSalonHandler(repo domain.Repository, catalog domain.CatalogStore, d *audit.Dispatcher, log *slog.Logger) *SalonHandler {
	return &SalonHandler{repo: repo, catalog: catalog, audit: d, log: log}
}

type UpdateSalonRequest struct {
	Name                *string `json:"name"`
	Phone               *string `json:"phone"`
	Address             *string `json:"address"`
	Timezone            *string `json:"timezone"`
	SlotIntervalMinutes *int    `json:"slot_interval_minutes"`
	MinLeadMinutes      *int    `json:"min_lead_minutes"`
}

func (h *SalonHandler) loadSalon(c *gin.Context) (*models.Salon, bool) {
	salon, err := h.repo.GetSalon(c.Request.Context(), middleware.SalonID(c))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			httperr.NotFound(c, "salon_not_found", "salon not found")
			return nil, false
		}
		respond(c, h.log, err, "failed_to_get_salon")
		return nil, false
	}
	return salon, true
}

func (h *SalonHandler) GetMe(c *gin.Context) {
	salon, ok := h.loadSalon(c)
	if !ok {
		return
	}

	httpresp.OK(c, gin.H{
		"user": gin.H{
			"id":   middleware.UserID(c),
			"role": c.GetString(middleware.ContextUserRole),
		},
		"salon": gin.H{
			"id":       salon.ID,
			"name":     salon.Name,
			"slug":     salon.Slug,
			"timezone": salon.Timezone,
		},
	})
}

func (h *SalonHandler) GetSalon(c *gin.Context) {
	salon, ok := h.loadSalon(c)
	if !ok {
		return
	}
	httpresp.OK(c, salon)
}

func (h *SalonHandler) UpdateSalon(c *gin.Context) {
	salon, ok := h.loadSalon(c)
	if !ok {
		return
	}

	var req UpdateSalonRequest
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
		salon.Name = name
	}
	if req.Phone != nil {
		salon.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Address != nil {
		salon.Address = strings.TrimSpace(*req.Address)
	}
	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, "invalid_timezone", "timezone must be an IANA zone name")
			return
		}
		salon.Timezone = *req.Timezone
	}
	if req.SlotIntervalMinutes != nil {
		if *req.SlotIntervalMinutes <= 0 {
			httperr.BadRequest(c, "invalid_slot_interval", "slot_interval_minutes must be positive")
			return
		}
		salon.SlotIntervalMinutes = *req.SlotIntervalMinutes
	}
	if req.MinLeadMinutes != nil {
		if *req.MinLeadMinutes < 0 {
			httperr.BadRequest(c, "invalid_min_lead", "min_lead_minutes must be zero or positive")
			return
		}
		salon.MinLeadMinutes = *req.MinLeadMinutes
	}

	if err := h.catalog.UpdateSalonSettings(c.Request.Context(), salon); err != nil {
		respond(c, h.log, err, "failed_to_update_salon")
		return
	}

	writeAudit(h.audit, c, "salon_updated", "salon", salon.ID, req)
	httpresp.OK(c, salon)
}
