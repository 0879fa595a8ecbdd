package appointment

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/memory"
	"github.com/BruksfildServices01/salon-scheduler/internal/logger"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

const (
	salonID    uint = 1
	cutID      uint = 10 // 60 min
	colorID    uint = 11 // 30 min
	retiredID  uint = 12 // inactive
	anaID      uint = 21
	beaID      uint = 22
	customerID uint = 31

	testDate = "2026-10-05" // a Monday
)

var testSettings = Settings{
	DefaultTimezone:            "UTC",
	DefaultSlotIntervalMinutes: 30,
	DefaultMinLeadMinutes:      60,
}

type fixture struct {
	store *memory.Store
	sink  *audit.MemorySink
	audit *audit.Dispatcher
	now   time.Time

	closeOnce sync.Once
}

func (f *fixture) clock() time.Time { return f.now }

// newFixture seeds a salon open 10:00-19:00 every day with two staff
// members working the same hours. Ana does every service, Bea only cuts.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.NewStore()
	ctx := context.Background()

	store.AddSalon(models.Salon{ID: salonID, Name: "Studio", Slug: "studio", Timezone: "UTC"})
	store.AddService(models.Service{ID: cutID, SalonID: salonID, Name: "Cut", DurationMinutes: 60, Price: decimal.RequireFromString("50.00"), Active: true})
	store.AddService(models.Service{ID: colorID, SalonID: salonID, Name: "Color", DurationMinutes: 30, Price: decimal.RequireFromString("35.50"), Active: true})
	store.AddService(models.Service{ID: retiredID, SalonID: salonID, Name: "Perm", DurationMinutes: 90, Price: decimal.RequireFromString("80"), Active: false})
	store.AddStaff(models.Staff{ID: anaID, SalonID: salonID, Name: "Ana", Active: true}, cutID, colorID)
	store.AddStaff(models.Staff{ID: beaID, SalonID: salonID, Name: "Bea", Active: true}, cutID)
	store.AddCustomer(models.Customer{ID: customerID, SalonID: salonID, Name: "Carla"})

	var days []models.BusinessHours
	var shifts []models.ShiftPattern
	for d := 0; d < 7; d++ {
		days = append(days, models.BusinessHours{DayOfWeek: d, OpenTime: "10:00", CloseTime: "19:00"})
		shifts = append(shifts, models.ShiftPattern{DayOfWeek: d, StartTime: "10:00", EndTime: "19:00", IsActive: true})
	}
	if err := store.ReplaceBusinessHours(ctx, salonID, days); err != nil {
		t.Fatal(err)
	}
	for _, staffID := range []uint{anaID, beaID} {
		if err := store.ReplaceShiftPatterns(ctx, salonID, staffID, shifts); err != nil {
			t.Fatal(err)
		}
	}

	sink := audit.NewMemorySink()
	dispatcher := audit.NewDispatcher(sink, logger.Discard())
	f := &fixture{
		store: store,
		sink:  sink,
		audit: dispatcher,
		now:   time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC),
	}
	t.Cleanup(func() { f.closeOnce.Do(dispatcher.Close) })
	return f
}

// auditRows drains the dispatcher and returns what reached the sink.
func (f *fixture) auditRows() []models.AuditLog {
	f.closeOnce.Do(f.audit.Close)
	return f.sink.Rows()
}

func (f *fixture) availability() *GetAvailability {
	return NewGetAvailability(f.store, testSettings, f.clock)
}

func (f *fixture) committer() *CommitAppointment {
	return NewCommitAppointment(f.store, f.audit, testSettings, f.clock)
}

func (f *fixture) statuses() *ChangeStatus {
	return NewChangeStatus(f.store, f.audit, testSettings, f.clock)
}

// book stores an appointment directly, bypassing every check.
func (f *fixture) book(staffID uint, date, from, to string, status string) models.Appointment {
	start, _ := time.ParseInLocation("2006-01-02 15:04", date+" "+from, time.UTC)
	end, _ := time.ParseInLocation("2006-01-02 15:04", date+" "+to, time.UTC)
	return f.store.AddAppointment(models.Appointment{
		SalonID:    salonID,
		StaffID:    staffID,
		CustomerID: customerID,
		Date:       date,
		StartTime:  start,
		EndTime:    end,
		Status:     status,
	})
}

func expectCode(t *testing.T, err error, kind httperr.Kind, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s/%s, got nil", kind, code)
	}
	if httperr.KindOf(err) != kind || !httperr.IsBusiness(err, code) {
		t.Fatalf("expected %s/%s, got %v (kind %q)", kind, code, err, httperr.KindOf(err))
	}
}
