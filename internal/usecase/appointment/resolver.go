package appointment

import (
	"context"
	"fmt"
	"time"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/scheduling"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// ScheduleResolver answers "is the salon open" and "when does this staff
// member work" for a date. Every call site goes through it.
type ScheduleResolver struct {
	repo domain.Repository
}

func NewScheduleResolver(repo domain.Repository) *ScheduleResolver {
	return &ScheduleResolver{repo: repo}
}

// BusinessWindow resolves the salon's opening on date (a civil day in the
// salon's location). ok is false when the salon is closed.
func (r *ScheduleResolver) BusinessWindow(
	ctx context.Context,
	salonID uint,
	date time.Time,
) (scheduling.Interval, bool, error) {

	bh, err := r.repo.GetBusinessHours(ctx, salonID, int(date.Weekday()))
	if err != nil {
		return scheduling.Interval{}, false, fmt.Errorf("load business hours: %w", err)
	}

	var day *scheduling.BusinessDay
	if bh != nil {
		day = &scheduling.BusinessDay{
			OpenTime:  bh.OpenTime,
			CloseTime: bh.CloseTime,
			IsClosed:  bh.IsClosed,
		}
	}

	w, ok := scheduling.ResolveBusinessWindow(day)
	return w, ok, nil
}

// StaffWindow resolves the staff member's clipped working window on date.
func (r *ScheduleResolver) StaffWindow(
	ctx context.Context,
	salonID uint,
	staffID uint,
	date time.Time,
) (scheduling.StaffWindow, bool, error) {

	business, open, err := r.BusinessWindow(ctx, salonID, date)
	if err != nil {
		return scheduling.StaffWindow{}, false, err
	}
	if !open {
		return scheduling.StaffWindow{Source: scheduling.SourceNone}, false, nil
	}
	return r.staffWindowWithin(ctx, salonID, staffID, date, business)
}

// staffWindowWithin is StaffWindow with the business window already known,
// so aggregating many staff members reads business hours once.
func (r *ScheduleResolver) staffWindowWithin(
	ctx context.Context,
	salonID uint,
	staffID uint,
	date time.Time,
	business scheduling.Interval,
) (scheduling.StaffWindow, bool, error) {

	ov, err := r.repo.GetShiftOverride(ctx, salonID, staffID, date.Format(scheduling.DateLayout))
	if err != nil {
		return scheduling.StaffWindow{}, false, fmt.Errorf("load shift override: %w", err)
	}

	var override, pattern *scheduling.Shift
	if ov != nil {
		override = &scheduling.Shift{
			StartTime: ov.StartTime,
			EndTime:   ov.EndTime,
			Active:    ov.Status == models.ShiftStatusActive,
		}
	}

	// the pattern is only needed when no active override applies
	if override == nil || !override.Active {
		p, err := r.repo.GetShiftPattern(ctx, salonID, staffID, int(date.Weekday()))
		if err != nil {
			return scheduling.StaffWindow{}, false, fmt.Errorf("load shift pattern: %w", err)
		}
		if p != nil {
			pattern = &scheduling.Shift{
				StartTime: p.StartTime,
				EndTime:   p.EndTime,
				Active:    p.IsActive,
			}
		}
	}

	sw, ok := scheduling.ResolveStaffWindow(override, pattern, business, true)
	return sw, ok, nil
}
