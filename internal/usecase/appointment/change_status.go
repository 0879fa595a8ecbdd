package appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// errStatusChanged reports a write that lost a race with another status
// change on the same appointment.
var errStatusChanged = httperr.ErrValidation("invalid_state", "appointment was changed by another request; reload it")

type StatusAction string

const (
	ActionConfirm  StatusAction = "confirm"
	ActionCancel   StatusAction = "cancel"
	ActionComplete StatusAction = "complete"
	ActionNoShow   StatusAction = "no_show"
)

// ChangeStatus applies one status transition. Transitions only ever release
// a slot, never claim one, so no overlap check is needed here.
type ChangeStatus struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	settings Settings
	clock    timezone.Clock
}

func NewChangeStatus(
	repo domain.Repository,
	audit *audit.Dispatcher,
	settings Settings,
	clock timezone.Clock,
) *ChangeStatus {
	return &ChangeStatus{
		repo:     repo,
		audit:    audit,
		settings: settings,
		clock:    clock,
	}
}

func (uc *ChangeStatus) Execute(
	ctx context.Context,
	salonID uint,
	actorID *uint,
	appointmentID uint,
	action StatusAction,
) (*models.Appointment, error) {

	salon, err := loadSalon(ctx, uc.repo, salonID)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointment(ctx, salon.ID, appointmentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrNotFound("appointment_not_found", "appointment not found")
		}
		return nil, fmt.Errorf("load appointment: %w", err)
	}

	now := timezone.NowIn(uc.clock, uc.settings.Location(salon))
	from := domain.Status(ap.Status)

	switch action {
	case ActionConfirm:
		err = domain.Confirm(ap)
	case ActionCancel:
		err = domain.Cancel(ap, now)
	case ActionComplete:
		err = domain.Complete(ap, now)
	case ActionNoShow:
		err = domain.MarkNoShow(ap)
	default:
		err = httperr.ErrValidation("invalid_action", fmt.Sprintf("unknown status action %q", action))
	}
	if err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointmentStatus(ctx, ap, from); err != nil {
		switch {
		case errors.Is(err, domain.ErrStaleStatus):
			return nil, errStatusChanged
		case errors.Is(err, domain.ErrNotFound):
			return nil, httperr.ErrNotFound("appointment_not_found", "appointment not found")
		case httperr.IsBusiness(err, "time_conflict"):
			return nil, err
		}
		return nil, fmt.Errorf("update appointment status: %w", err)
	}

	if uc.audit != nil {
		uc.audit.Dispatch(audit.Event{
			SalonID:  salon.ID,
			UserID:   actorID,
			Action:   "appointment_" + ap.Status,
			Entity:   "appointment",
			EntityID: &ap.ID,
		})
	}

	return ap, nil
}
