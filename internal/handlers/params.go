package handlers

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
)

// respond writes err and logs it when it is not a business outcome.
func respond(c *gin.Context, log *slog.Logger, err error, fallbackCode string) {
	if !httperr.Respond(c, err, fallbackCode) {
		log.Error("request failed",
			"request_id", c.GetString(middleware.ContextRequestID),
			"path", c.FullPath(),
			"code", fallbackCode,
			"err", err,
		)
	}
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_"+name, name+" must be a positive integer")
		return 0, false
	}
	return uint(id), true
}

// parseServiceIDs reads "1,2,3". Duplicates are kept so the core can
// reject them.
func parseServiceIDs(raw string) ([]uint, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]uint, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseUint(strings.TrimSpace(p), 10, 64)
		if err != nil || id == 0 {
			return nil, httperr.ErrValidation("invalid_service_id", "service_ids must be a comma separated list of ids")
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}

// parseStaffQuery reads staff_id, where "" and "any" mean no preference.
func parseStaffQuery(raw string) (uint, error) {
	raw = strings.TrimSpace(strings.ToLower(raw))
	if raw == "" || raw == "any" {
		return domain.AnyStaff, nil
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, httperr.ErrValidation("invalid_staff_id", `staff_id must be an id or "any"`)
	}
	return uint(id), nil
}

func availabilityInput(c *gin.Context, salonID uint) (domain.AvailabilityInput, error) {
	serviceIDs, err := parseServiceIDs(c.Query("service_ids"))
	if err != nil {
		return domain.AvailabilityInput{}, err
	}
	staffID, err := parseStaffQuery(c.Query("staff_id"))
	if err != nil {
		return domain.AvailabilityInput{}, err
	}
	return domain.AvailabilityInput{
		SalonID:    salonID,
		Date:       c.Query("date"),
		ServiceIDs: serviceIDs,
		StaffID:    staffID,
	}, nil
}
