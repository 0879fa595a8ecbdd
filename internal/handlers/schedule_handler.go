package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/scheduling"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// ScheduleHandler edits the salon calendar and staff shifts.
type ScheduleHandler struct {
	repo  domain.Repository
	store domain.ScheduleStore
	log   *slog.Logger
}

func NewScheduleHandler(repo domain.Repository, store domain.ScheduleStore, log *slog.Logger) *ScheduleHandler {
	return &ScheduleHandler{repo: repo, store: store, log: log}
}

type BusinessDayConfig struct {
	DayOfWeek int    `json:"day_of_week" binding:"min=0,max=6"`
	OpenTime  string `json:"open_time"`
	CloseTime string `json:"close_time"`
	IsClosed  bool   `json:"is_closed"`
}

type BusinessHoursUpdateRequest struct {
	Days []BusinessDayConfig `json:"days" binding:"required,dive"`
}

type ShiftDayConfig struct {
	DayOfWeek int    `json:"day_of_week" binding:"min=0,max=6"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	IsActive  bool   `json:"is_active"`
}

type ShiftPatternsUpdateRequest struct {
	Days []ShiftDayConfig `json:"days" binding:"required,dive"`
}

type ShiftOverrideRequest struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Status    string `json:"status"`
}

// validRange accepts an ordered HH:MM pair.
func validRange(from, to string) bool {
	start, err := scheduling.ParseClock(from)
	if err != nil {
		return false
	}
	end, err := scheduling.ParseClock(to)
	if err != nil {
		return false
	}
	return start < end
}

func (h *ScheduleHandler) GetBusinessHours(c *gin.Context) {
	days, err := h.store.ListBusinessHours(c.Request.Context(), middleware.SalonID(c))
	if err != nil {
		respond(c, h.log, err, "failed_to_get_business_hours")
		return
	}
	if days == nil {
		days = []models.BusinessHours{}
	}

	c.JSON(http.StatusOK, days)
}

func (h *ScheduleHandler) UpdateBusinessHours(c *gin.Context) {
	var req BusinessHoursUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	seen := make(map[int]bool, len(req.Days))
	days := make([]models.BusinessHours, 0, len(req.Days))
	for _, d := range req.Days {
		if seen[d.DayOfWeek] {
			httperr.BadRequest(c, "duplicate_day", "each day_of_week may appear once")
			return
		}
		seen[d.DayOfWeek] = true

		if !d.IsClosed && !validRange(d.OpenTime, d.CloseTime) {
			httperr.BadRequest(c, "invalid_hours", "open_time must be before close_time (HH:MM)")
			return
		}
		days = append(days, models.BusinessHours{
			DayOfWeek: d.DayOfWeek,
			OpenTime:  d.OpenTime,
			CloseTime: d.CloseTime,
			IsClosed:  d.IsClosed,
		})
	}

	if err := h.store.ReplaceBusinessHours(c.Request.Context(), middleware.SalonID(c), days); err != nil {
		respond(c, h.log, err, "failed_to_save_business_hours")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// staff loads the path's staff member, scoped to the caller's salon.
func (h *ScheduleHandler) staff(c *gin.Context) (*models.Staff, bool) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return nil, false
	}

	st, err := h.repo.GetStaff(c.Request.Context(), middleware.SalonID(c), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			httperr.NotFound(c, "staff_not_found", "staff member not found")
			return nil, false
		}
		respond(c, h.log, err, "staff_lookup_failed")
		return nil, false
	}
	return st, true
}

func (h *ScheduleHandler) GetShiftPatterns(c *gin.Context) {
	st, ok := h.staff(c)
	if !ok {
		return
	}

	days, err := h.store.ListShiftPatterns(c.Request.Context(), st.SalonID, st.ID)
	if err != nil {
		respond(c, h.log, err, "failed_to_get_shift_patterns")
		return
	}
	if days == nil {
		days = []models.ShiftPattern{}
	}

	c.JSON(http.StatusOK, days)
}

func (h *ScheduleHandler) UpdateShiftPatterns(c *gin.Context) {
	st, ok := h.staff(c)
	if !ok {
		return
	}

	var req ShiftPatternsUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	seen := make(map[int]bool, len(req.Days))
	days := make([]models.ShiftPattern, 0, len(req.Days))
	for _, d := range req.Days {
		if seen[d.DayOfWeek] {
			httperr.BadRequest(c, "duplicate_day", "each day_of_week may appear once")
			return
		}
		seen[d.DayOfWeek] = true

		if d.IsActive && !validRange(d.StartTime, d.EndTime) {
			httperr.BadRequest(c, "invalid_shift", "start_time must be before end_time (HH:MM)")
			return
		}
		days = append(days, models.ShiftPattern{
			DayOfWeek: d.DayOfWeek,
			StartTime: d.StartTime,
			EndTime:   d.EndTime,
			IsActive:  d.IsActive,
		})
	}

	if err := h.store.ReplaceShiftPatterns(c.Request.Context(), st.SalonID, st.ID, days); err != nil {
		respond(c, h.log, err, "failed_to_save_shift_patterns")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *ScheduleHandler) PutShiftOverride(c *gin.Context) {
	st, ok := h.staff(c)
	if !ok {
		return
	}

	date := c.Param("date")
	if _, err := scheduling.ParseDate(date, time.UTC); err != nil {
		httperr.BadRequest(c, "invalid_date", "date must be YYYY-MM-DD")
		return
	}

	var req ShiftOverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	status := req.Status
	if status == "" {
		status = models.ShiftStatusActive
	}
	if status != models.ShiftStatusActive && status != models.ShiftStatusInactive {
		httperr.BadRequest(c, "invalid_status", "status must be active or inactive")
		return
	}
	if status == models.ShiftStatusActive && !validRange(req.StartTime, req.EndTime) {
		httperr.BadRequest(c, "invalid_shift", "start_time must be before end_time (HH:MM)")
		return
	}

	override := models.ShiftOverride{
		StaffID:   st.ID,
		SalonID:   st.SalonID,
		Date:      date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Status:    status,
	}
	if err := h.store.UpsertShiftOverride(c.Request.Context(), &override); err != nil {
		respond(c, h.log, err, "failed_to_save_shift_override")
		return
	}

	c.JSON(http.StatusOK, override)
}
