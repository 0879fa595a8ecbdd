package handlers

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/scheduling"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	reader audit.Reader
	log    *slog.Logger
}

func NewAuditLogsHandler(reader audit.Reader, log *slog.Logger) *AuditLogsHandler {
	return &AuditLogsHandler{reader: reader, log: log}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	// always scoped to the caller's salon
	q := audit.Query{
		SalonID: middleware.SalonID(c),
		Action:  c.Query("action"),
		Entity:  c.Query("entity"),
		Limit:   limit,
		Offset:  (page - 1) * limit,
	}

	if from, err := time.Parse(scheduling.DateLayout, c.Query("from")); err == nil {
		q.From = &from
	}
	if to, err := time.Parse(scheduling.DateLayout, c.Query("to")); err == nil {
		end := to.Add(24 * time.Hour)
		q.To = &end
	}

	logs, total, err := h.reader.List(c.Request.Context(), q)
	if err != nil {
		respond(c, h.log, err, "audit_list_failed")
		return
	}

	httpresp.Page(c, logs, page, limit, total)
}
