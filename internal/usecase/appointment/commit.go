package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/scheduling"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CommitInput struct {
	SalonID    uint
	StaffID    uint
	CustomerID uint
	ServiceIDs []uint

	Date      string // YYYY-MM-DD
	StartTime string // HH:MM
	Notes     string

	// AppointmentID turns the commit into a reschedule of that appointment.
	AppointmentID uint

	// ActorID is the staff user acting on the customer's behalf; nil for
	// self-service bookings.
	ActorID *uint
}

// ======================================================
// USE CASE
// ======================================================

// CommitAppointment creates or reschedules an appointment. The pre-check
// gives precise errors; the store's atomic write is what guarantees that
// two customers never hold the same staff member's time.
type CommitAppointment struct {
	repo     domain.Repository
	checker  *CheckSlot
	audit    *audit.Dispatcher
	settings Settings
	clock    timezone.Clock
}

func NewCommitAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	settings Settings,
	clock timezone.Clock,
) *CommitAppointment {
	return &CommitAppointment{
		repo:     repo,
		checker:  NewCheckSlot(repo),
		audit:    audit,
		settings: settings,
		clock:    clock,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CommitAppointment) Execute(
	ctx context.Context,
	in CommitInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// Input (before any lookup)
	// --------------------------------------------------
	if _, err := scheduling.ParseDate(in.Date, time.UTC); err != nil {
		return nil, httperr.ErrValidation("invalid_date_or_time", "date must be YYYY-MM-DD")
	}
	startMin, err := scheduling.ParseClock(in.StartTime)
	if err != nil || startMin >= scheduling.MinutesPerDay {
		return nil, httperr.ErrValidation("invalid_date_or_time", "start_time must be HH:MM")
	}
	if in.AppointmentID == 0 {
		if err := validateNewBooking(in); err != nil {
			return nil, err
		}
	}

	salon, err := loadSalon(ctx, uc.repo, in.SalonID)
	if err != nil {
		return nil, err
	}

	loc := uc.settings.Location(salon)

	date, err := scheduling.ParseDate(in.Date, loc)
	if err != nil {
		return nil, httperr.ErrValidation("invalid_date_or_time", "date must be YYYY-MM-DD")
	}

	// --------------------------------------------------
	// Existing appointment (reschedule)
	// --------------------------------------------------
	var existing *models.Appointment
	if in.AppointmentID != 0 {
		existing, err = uc.repo.GetAppointment(ctx, salon.ID, in.AppointmentID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, httperr.ErrNotFound("appointment_not_found", "appointment not found")
			}
			return nil, fmt.Errorf("load appointment: %w", err)
		}
		if err := domain.CanReschedule(domain.Status(existing.Status)); err != nil {
			return nil, err
		}
	}

	// A reschedule keeps whatever the request leaves out.
	customerID := in.CustomerID
	if existing != nil {
		if customerID == 0 {
			customerID = existing.CustomerID
		}
		if in.StaffID == 0 {
			in.StaffID = existing.StaffID
		}
		if len(in.ServiceIDs) == 0 {
			for _, line := range existing.Services {
				in.ServiceIDs = append(in.ServiceIDs, line.ServiceID)
			}
		}
	}

	if in.StaffID == 0 {
		return nil, httperr.ErrValidation("staff_required", "a concrete staff_id is required to book")
	}
	if err := validateServiceIDs(in.ServiceIDs); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Master data
	// --------------------------------------------------
	staff, err := loadActiveStaff(ctx, uc.repo, salon.ID, in.StaffID)
	if err != nil {
		return nil, err
	}

	if customerID == 0 {
		return nil, httperr.ErrValidation("customer_required", "customer_id is required")
	}
	if _, err := uc.repo.GetCustomer(ctx, salon.ID, customerID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrNotFound("customer_not_found", "customer not found")
		}
		return nil, fmt.Errorf("load customer: %w", err)
	}

	services, err := loadServices(ctx, uc.repo, salon.ID, in.ServiceIDs)
	if err != nil {
		return nil, err
	}

	qualified, err := uc.repo.IsQualified(ctx, staff.ID, services.ids)
	if err != nil {
		return nil, fmt.Errorf("check qualification: %w", err)
	}
	if !qualified {
		return nil, httperr.ErrNotFound("staff_not_qualified", "staff member cannot perform this combination of services")
	}

	// --------------------------------------------------
	// Time window
	// --------------------------------------------------
	slot := scheduling.Interval{
		Start: startMin,
		End:   startMin + scheduling.Minute(services.durationMinutes),
	}
	start := slot.Start.At(date)
	end := slot.End.At(date)

	now := timezone.NowIn(uc.clock, loc)
	if start.Before(now.Add(uc.settings.MinLead(salon))) {
		return nil, httperr.ErrValidation("too_soon", "requested time is in the past or too close to now")
	}

	// --------------------------------------------------
	// Re-validation against current data
	// --------------------------------------------------
	var excludeID uint
	if existing != nil {
		excludeID = existing.ID
	}

	if err := uc.checker.Execute(ctx, CheckSlotInput{
		SalonID:              salon.ID,
		StaffID:              staff.ID,
		Date:                 date,
		Slot:                 slot,
		ExcludeAppointmentID: excludeID,
	}); err != nil {
		if httperr.IsKind(err, httperr.KindConflict) {
			uc.auditConflict(salon.ID, in, start, end)
		}
		return nil, err
	}

	// --------------------------------------------------
	// Atomic write
	// --------------------------------------------------
	ap := uc.build(existing, in, salon.ID, customerID, services, date, start, end)

	if err := uc.repo.CommitAppointment(ctx, ap); err != nil {
		switch {
		case httperr.IsKind(err, httperr.KindConflict):
			uc.auditConflict(salon.ID, in, start, end)
			return nil, err
		case errors.Is(err, domain.ErrStaleStatus):
			return nil, errStatusChanged
		case errors.Is(err, domain.ErrNotFound):
			return nil, httperr.ErrNotFound("appointment_not_found", "appointment not found")
		}
		return nil, fmt.Errorf("commit appointment: %w", err)
	}

	// --------------------------------------------------
	// Audit
	// --------------------------------------------------
	action := "appointment_created"
	if existing != nil {
		action = "appointment_rescheduled"
	}
	uc.dispatch(audit.Event{
		SalonID:  salon.ID,
		UserID:   in.ActorID,
		Action:   action,
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"staff_id": ap.StaffID,
			"date":     ap.Date,
			"start":    slot.Start.String(),
			"end":      slot.End.String(),
		},
	})

	return ap, nil
}

// validateNewBooking checks what a create request must carry on its own. A
// reschedule fills the gaps from the stored appointment first.
func validateNewBooking(in CommitInput) error {
	if in.StaffID == 0 {
		return httperr.ErrValidation("staff_required", "a concrete staff_id is required to book")
	}
	if err := validateServiceIDs(in.ServiceIDs); err != nil {
		return err
	}
	if in.CustomerID == 0 {
		return httperr.ErrValidation("customer_required", "customer_id is required")
	}
	return nil
}

func (uc *CommitAppointment) build(
	existing *models.Appointment,
	in CommitInput,
	salonID uint,
	customerID uint,
	services *serviceSet,
	date time.Time,
	start time.Time,
	end time.Time,
) *models.Appointment {

	lines := make([]models.AppointmentService, 0, len(services.services))
	for _, s := range services.services {
		lines = append(lines, models.AppointmentService{
			ServiceID:       s.ID,
			Name:            s.Name,
			DurationMinutes: s.DurationMinutes,
			Price:           s.Price,
		})
	}

	var ap models.Appointment
	if existing != nil {
		ap = *existing
		if in.Notes != "" {
			ap.Notes = in.Notes
		}
	} else {
		ap = models.Appointment{
			Reference: uuid.NewString(),
			SalonID:   salonID,
			Status:    string(domain.InitialStatus(in.ActorID != nil)),
			Notes:     in.Notes,
		}
	}

	ap.StaffID = in.StaffID
	ap.CustomerID = customerID
	ap.Date = date.Format(scheduling.DateLayout)
	ap.StartTime = start
	ap.EndTime = end
	ap.DurationMinutes = services.durationMinutes
	ap.TotalPrice = services.totalPrice
	ap.Services = lines

	return &ap
}

func (uc *CommitAppointment) auditConflict(salonID uint, in CommitInput, start, end time.Time) {
	uc.dispatch(audit.Event{
		SalonID: salonID,
		UserID:  in.ActorID,
		Action:  "appointment_conflict",
		Entity:  "appointment",
		Metadata: map[string]any{
			"staff_id": in.StaffID,
			"start":    start,
			"end":      end,
		},
	})
}

func (uc *CommitAppointment) dispatch(ev audit.Event) {
	if uc.audit != nil {
		uc.audit.Dispatch(ev)
	}
}
