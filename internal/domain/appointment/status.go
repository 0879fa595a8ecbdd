package appointment

import "github.com/BruksfildServices01/salon-scheduler/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no_show"
	StatusCompleted Status = "completed"
)

// InactiveStatuses release their time interval.
var InactiveStatuses = []string{string(StatusCancelled), string(StatusNoShow)}

// ===============================
// Validations
// ===============================

// Occupies reports whether an appointment in this status blocks its slot.
func Occupies(s Status) bool {
	return s != StatusCancelled && s != StatusNoShow
}

// IsOpen reports whether the appointment can still change: be confirmed,
// rescheduled, cancelled, completed or marked as no-show.
func IsOpen(s Status) bool {
	return s == StatusPending || s == StatusConfirmed
}

func CanConfirm(current Status) error {
	if current != StatusPending {
		return httperr.ErrValidation("invalid_state", "only pending appointments can be confirmed")
	}
	return nil
}

func CanCancel(current Status) error {
	if !IsOpen(current) {
		return httperr.ErrValidation("invalid_state", "appointment can no longer be cancelled")
	}
	return nil
}

func CanComplete(current Status) error {
	if !IsOpen(current) {
		return httperr.ErrValidation("invalid_state", "appointment can no longer be completed")
	}
	return nil
}

func CanMarkNoShow(current Status) error {
	if !IsOpen(current) {
		return httperr.ErrValidation("invalid_state", "appointment can no longer be marked as no-show")
	}
	return nil
}

func CanReschedule(current Status) error {
	if !IsOpen(current) {
		return httperr.ErrValidation("invalid_state", "appointment can no longer be rescheduled")
	}
	return nil
}

// InitialStatus is pending for self-service bookings and confirmed when
// staff books on the customer's behalf.
func InitialStatus(byStaff bool) Status {
	if byStaff {
		return StatusConfirmed
	}
	return StatusPending
}
