package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
)

// writeAudit records a back-office change on behalf of the caller. A nil
// dispatcher disables auditing.
func writeAudit(
	d *audit.Dispatcher,
	c *gin.Context,
	action string,
	entity string,
	entityID uint,
	meta any,
) {
	if d == nil {
		return
	}

	id := entityID
	d.Dispatch(audit.Event{
		SalonID:  middleware.SalonID(c),
		UserID:   middleware.UserID(c),
		Action:   action,
		Entity:   entity,
		EntityID: &id,
		Metadata: meta,
	})
}
