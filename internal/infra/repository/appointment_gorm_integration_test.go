//go:build integration

package repository

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/salon-scheduler/internal/db"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/logger"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// Run with: DATABASE_URL=postgres://... go test -tags integration ./internal/infra/repository/

type pgFixture struct {
	db       *gorm.DB
	repo     *AppointmentGormRepository
	salon    models.Salon
	staff    models.Staff
	customer models.Customer
}

func newPGFixture(t *testing.T) *pgFixture {
	t.Helper()

	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set")
	}

	db, err := dbpkg.NewDB(&config.Config{DBUrl: url, DefaultTimezone: "UTC"}, logger.Discard())
	if err != nil {
		t.Fatal(err)
	}

	f := &pgFixture{db: db, repo: NewAppointmentGormRepository(db)}
	f.salon = models.Salon{Name: "Studio", Slug: "it-" + uuid.NewString(), Timezone: "UTC"}
	if err := db.Create(&f.salon).Error; err != nil {
		t.Fatal(err)
	}
	svc := models.Service{SalonID: f.salon.ID, Name: "Cut", DurationMinutes: 60, Price: decimal.NewFromInt(50), Active: true}
	if err := db.Create(&svc).Error; err != nil {
		t.Fatal(err)
	}
	f.staff = models.Staff{SalonID: f.salon.ID, Name: "Ana", Active: true, Services: []models.Service{svc}}
	if err := db.Create(&f.staff).Error; err != nil {
		t.Fatal(err)
	}
	f.customer = models.Customer{SalonID: f.salon.ID, Name: "Carla", Phone: "+5511900000000"}
	if err := db.Create(&f.customer).Error; err != nil {
		t.Fatal(err)
	}

	t.Cleanup(func() {
		db.Where("salon_id = ?", f.salon.ID).Delete(&models.Appointment{})
		db.Exec("DELETE FROM staff_services WHERE staff_id = ?", f.staff.ID)
		db.Delete(&models.Customer{}, f.customer.ID)
		db.Delete(&models.Staff{}, f.staff.ID)
		db.Delete(&models.Service{}, svc.ID)
		db.Delete(&models.Salon{}, f.salon.ID)
	})
	return f
}

func (f *pgFixture) appointment(from, to string) *models.Appointment {
	at := func(hhmm string) time.Time {
		t, _ := time.Parse("2006-01-02 15:04", "2030-01-07 "+hhmm)
		return t
	}
	return &models.Appointment{
		Reference:  uuid.NewString(),
		SalonID:    f.salon.ID,
		StaffID:    f.staff.ID,
		CustomerID: f.customer.ID,
		Date:       "2030-01-07",
		StartTime:  at(from),
		EndTime:    at(to),
		Status:     string(domain.StatusConfirmed),
	}
}

func TestPGCommitSerializesWriters(t *testing.T) {
	f := newPGFixture(t)

	var wg sync.WaitGroup
	var mu sync.Mutex
	wins, conflicts := 0, 0
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := f.repo.CommitAppointment(context.Background(), f.appointment("10:00", "11:00"))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				wins++
			case httperr.IsBusiness(err, "time_conflict"):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if wins != 1 || conflicts != 9 {
		t.Fatalf("expected 1 winner and 9 conflicts, got %d/%d", wins, conflicts)
	}

	touching := f.appointment("11:00", "12:00")
	if err := f.repo.CommitAppointment(context.Background(), touching); err != nil {
		t.Fatalf("back-to-back booking must succeed: %v", err)
	}
}

func TestPGExclusionConstraintBacksTheCheck(t *testing.T) {
	f := newPGFixture(t)

	if err := f.db.Omit("Staff", "Customer").Create(f.appointment("14:00", "15:00")).Error; err != nil {
		t.Fatal(err)
	}
	err := f.db.Omit("Staff", "Customer").Create(f.appointment("14:30", "15:30")).Error
	if !httperr.IsExclusionConflict(err) {
		t.Fatalf("expected 23P01 exclusion violation, got %v", err)
	}

	cancelled := f.appointment("14:30", "15:30")
	cancelled.Status = string(domain.StatusCancelled)
	if err := f.db.Omit("Staff", "Customer").Create(cancelled).Error; err != nil {
		t.Fatalf("cancelled rows must not be constrained: %v", err)
	}
}

func TestPGStatusWritesAreConditional(t *testing.T) {
	f := newPGFixture(t)
	ctx := context.Background()

	ap := f.appointment("16:00", "17:00")
	if err := f.repo.CommitAppointment(ctx, ap); err != nil {
		t.Fatal(err)
	}
	stale := *ap

	cancelled := *ap
	cancelled.Status = string(domain.StatusCancelled)
	if err := f.repo.UpdateAppointmentStatus(ctx, &cancelled, domain.StatusConfirmed); err != nil {
		t.Fatal(err)
	}
	if err := f.repo.CommitAppointment(ctx, f.appointment("16:00", "17:00")); err != nil {
		t.Fatalf("released slot must be bookable: %v", err)
	}

	stale.Status = string(domain.StatusCompleted)
	if err := f.repo.UpdateAppointmentStatus(ctx, &stale, domain.StatusConfirmed); !errors.Is(err, domain.ErrStaleStatus) {
		t.Fatalf("expected ErrStaleStatus, got %v", err)
	}

	moved := *ap
	moved.Status = string(domain.StatusConfirmed)
	moved.Services = nil
	moved.StartTime, moved.EndTime = moved.StartTime.Add(2*time.Hour), moved.EndTime.Add(2*time.Hour)
	if err := f.repo.CommitAppointment(ctx, &moved); !errors.Is(err, domain.ErrStaleStatus) {
		t.Fatalf("rescheduling a cancelled row must fail, got %v", err)
	}

	missing := *ap
	missing.ID = 0xFFFFFF
	if err := f.repo.UpdateAppointmentStatus(ctx, &missing, domain.StatusConfirmed); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
