package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/scheduling"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// Settings are process-wide defaults for tenants that leave their own
// scheduling settings unset.
type Settings struct {
	DefaultTimezone            string
	DefaultSlotIntervalMinutes int
	DefaultMinLeadMinutes      int
}

func (s Settings) Location(salon *models.Salon) *time.Location {
	return timezone.Location(salon.Timezone, s.DefaultTimezone)
}

func (s Settings) SlotInterval(salon *models.Salon) int {
	if salon.SlotIntervalMinutes > 0 {
		return salon.SlotIntervalMinutes
	}
	if s.DefaultSlotIntervalMinutes > 0 {
		return s.DefaultSlotIntervalMinutes
	}
	return 30
}

func (s Settings) MinLead(salon *models.Salon) time.Duration {
	lead := salon.MinLeadMinutes
	if lead <= 0 {
		lead = s.DefaultMinLeadMinutes
	}
	if lead < 0 {
		lead = 0
	}
	return time.Duration(lead) * time.Minute
}

// --------------------------------------------------
// Shared loaders
// --------------------------------------------------

func loadSalon(ctx context.Context, repo domain.Repository, salonID uint) (*models.Salon, error) {
	if salonID == 0 {
		return nil, httperr.ErrValidation("salon_required", "salon_id is required")
	}
	salon, err := repo.GetSalon(ctx, salonID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrNotFound("salon_not_found", "salon not found")
		}
		return nil, fmt.Errorf("load salon: %w", err)
	}
	return salon, nil
}

func loadActiveStaff(ctx context.Context, repo domain.Repository, salonID, staffID uint) (*models.Staff, error) {
	staff, err := repo.GetStaff(ctx, salonID, staffID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrNotFound("staff_not_found", "staff member not found")
		}
		return nil, fmt.Errorf("load staff: %w", err)
	}
	if !staff.Active {
		return nil, httperr.ErrNotFound("staff_not_found", "staff member not found")
	}
	return staff, nil
}

// serviceSet is the aggregate of the requested services.
type serviceSet struct {
	services        []models.Service
	ids             []uint
	durationMinutes int
	totalPrice      decimal.Decimal
}

func validateServiceIDs(ids []uint) error {
	if len(ids) == 0 {
		return httperr.ErrValidation("services_required", "at least one service is required")
	}
	seen := make(map[uint]bool, len(ids))
	for _, id := range ids {
		if id == 0 {
			return httperr.ErrValidation("invalid_service_id", "service ids must be positive")
		}
		if seen[id] {
			return httperr.ErrValidation("duplicate_service", "a service can only be requested once")
		}
		seen[id] = true
	}
	return nil
}

// loadServices resolves ids in request order and sums duration and price.
// Any id unknown to the salon, or inactive, is a not-found error.
func loadServices(ctx context.Context, repo domain.Repository, salonID uint, ids []uint) (*serviceSet, error) {
	if err := validateServiceIDs(ids); err != nil {
		return nil, err
	}

	found, err := repo.ListServices(ctx, salonID, ids)
	if err != nil {
		return nil, fmt.Errorf("load services: %w", err)
	}

	byID := make(map[uint]models.Service, len(found))
	for _, s := range found {
		byID[s.ID] = s
	}

	set := &serviceSet{ids: ids, totalPrice: decimal.Zero}
	for _, id := range ids {
		s, ok := byID[id]
		if !ok || !s.Active {
			return nil, httperr.ErrNotFound("service_not_found", fmt.Sprintf("service %d is not offered by this salon", id))
		}
		if s.DurationMinutes <= 0 {
			return nil, httperr.ErrValidation("invalid_duration", fmt.Sprintf("service %d has no duration", id))
		}
		set.services = append(set.services, s)
		set.durationMinutes += s.DurationMinutes
		set.totalPrice = set.totalPrice.Add(s.Price)
	}
	return set, nil
}

// bookedIntervals converts occupying appointments to time-of-day intervals
// on their date, in loc.
func bookedIntervals(aps []models.Appointment, loc *time.Location) []scheduling.Interval {
	out := make([]scheduling.Interval, 0, len(aps))
	for _, ap := range aps {
		start := ap.StartTime.In(loc)
		end := ap.EndTime.In(loc)

		iv := scheduling.Interval{Start: scheduling.MinuteOf(start), End: scheduling.MinuteOf(end)}
		if !scheduling.SameDay(start, end) {
			iv.End = scheduling.MinutesPerDay
		}
		out = append(out, iv)
	}
	return out
}
