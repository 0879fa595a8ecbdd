package appointment

import (
	"context"
	"fmt"
	"time"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/scheduling"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

type CheckSlotInput struct {
	SalonID uint
	StaffID uint

	// Date is the civil day, at midnight in the salon's location.
	Date time.Time
	Slot scheduling.Interval

	// ExcludeAppointmentID skips the appointment being rescheduled.
	ExcludeAppointmentID uint
}

// CheckSlot re-validates a candidate slot against the staff member's
// current window and current bookings, right before commit.
type CheckSlot struct {
	repo     domain.Repository
	resolver *ScheduleResolver
}

func NewCheckSlot(repo domain.Repository) *CheckSlot {
	return &CheckSlot{
		repo:     repo,
		resolver: NewScheduleResolver(repo),
	}
}

// Execute returns nil, a shift violation or a conflict error.
func (uc *CheckSlot) Execute(ctx context.Context, in CheckSlotInput) error {
	if in.Slot.Empty() {
		return httperr.ErrValidation("invalid_interval", "end time must be after start time")
	}

	sw, ok, err := uc.resolver.StaffWindow(ctx, in.SalonID, in.StaffID, in.Date)
	if err != nil {
		return err
	}
	if !ok {
		return httperr.ErrShiftViolation("staff_not_working", "staff member is not working on this date")
	}
	if !sw.Window.Contains(in.Slot) {
		return httperr.ErrShiftViolation(
			"outside_shift",
			fmt.Sprintf("requested %s is outside working hours %s", in.Slot, sw.Window),
		)
	}

	aps, err := uc.repo.ListBookedAppointments(
		ctx,
		in.StaffID,
		in.Date.Format(scheduling.DateLayout),
		in.ExcludeAppointmentID,
	)
	if err != nil {
		return fmt.Errorf("list booked appointments: %w", err)
	}

	if scheduling.OverlapsAny(in.Slot, bookedIntervals(aps, in.Date.Location())) {
		return httperr.ErrConflict("time_conflict", "requested time overlaps an existing appointment")
	}
	return nil
}
