package appointment

import (
	"context"
	"testing"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/memory"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// interleavedRepo runs another request's writes between this request's
// read and its write.
type interleavedRepo struct {
	*memory.Store
	between func()
}

func (r interleavedRepo) UpdateAppointmentStatus(ctx context.Context, ap *models.Appointment, from domain.Status) error {
	r.between()
	return r.Store.UpdateAppointmentStatus(ctx, ap, from)
}

func (r interleavedRepo) CommitAppointment(ctx context.Context, ap *models.Appointment) error {
	r.between()
	return r.Store.CommitAppointment(ctx, ap)
}

func (f *fixture) cancelAndRebook(t *testing.T, appointmentID uint) func() {
	return func() {
		t.Helper()
		ctx := context.Background()
		if _, err := f.statuses().Execute(ctx, salonID, nil, appointmentID, ActionCancel); err != nil {
			t.Fatalf("cancel: %v", err)
		}
		if _, err := f.committer().Execute(ctx, commitInput(anaID, "10:00", cutID)); err != nil {
			t.Fatalf("rebook: %v", err)
		}
	}
}

func TestCompleteLosesToConcurrentCancel(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ap := f.book(anaID, testDate, "10:00", "11:00", string(domain.StatusConfirmed))

	repo := interleavedRepo{Store: f.store, between: f.cancelAndRebook(t, ap.ID)}
	uc := NewChangeStatus(repo, f.audit, testSettings, f.clock)

	_, err := uc.Execute(ctx, salonID, nil, ap.ID, ActionComplete)
	expectCode(t, err, httperr.KindValidation, "invalid_state")

	stored, _ := f.store.GetAppointment(ctx, salonID, ap.ID)
	if stored.Status != string(domain.StatusCancelled) {
		t.Fatalf("cancelled appointment was revived as %s", stored.Status)
	}

	booked, _ := f.store.ListBookedAppointments(ctx, anaID, testDate, 0)
	if len(booked) != 1 {
		t.Fatalf("expected one occupying row at 10:00, got %d", len(booked))
	}
}

func TestRescheduleLosesToConcurrentCancel(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ap, err := f.committer().Execute(ctx, commitInput(anaID, "10:00", cutID))
	if err != nil {
		t.Fatal(err)
	}

	repo := interleavedRepo{Store: f.store, between: func() {
		if _, err := f.statuses().Execute(ctx, salonID, nil, ap.ID, ActionCancel); err != nil {
			t.Fatalf("cancel: %v", err)
		}
	}}
	uc := NewCommitAppointment(repo, f.audit, testSettings, f.clock)

	_, err = uc.Execute(ctx, CommitInput{
		SalonID:       salonID,
		AppointmentID: ap.ID,
		Date:          testDate,
		StartTime:     "15:00",
	})
	expectCode(t, err, httperr.KindValidation, "invalid_state")

	stored, _ := f.store.GetAppointment(ctx, salonID, ap.ID)
	if stored.Status != string(domain.StatusCancelled) || stored.StartTime.Format("15:04") != "10:00" {
		t.Fatalf("cancelled appointment was rewritten: status %s start %s", stored.Status, stored.StartTime)
	}
}
