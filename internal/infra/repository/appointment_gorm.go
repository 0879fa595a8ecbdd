package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/scheduling"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}

// --------------------------------------------------
// Salon / master data
// --------------------------------------------------

func (r *AppointmentGormRepository) GetSalon(
	ctx context.Context,
	salonID uint,
) (*models.Salon, error) {

	var salon models.Salon
	if err := r.db.WithContext(ctx).First(&salon, salonID).Error; err != nil {
		return nil, notFound(err)
	}
	return &salon, nil
}

func (r *AppointmentGormRepository) GetSalonBySlug(
	ctx context.Context,
	slug string,
) (*models.Salon, error) {

	var salon models.Salon
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&salon).Error; err != nil {
		return nil, notFound(err)
	}
	return &salon, nil
}

func (r *AppointmentGormRepository) GetStaff(
	ctx context.Context,
	salonID uint,
	staffID uint,
) (*models.Staff, error) {

	var st models.Staff
	if err := r.db.WithContext(ctx).
		Where("id = ? AND salon_id = ?", staffID, salonID).
		First(&st).Error; err != nil {
		return nil, notFound(err)
	}
	return &st, nil
}

func (r *AppointmentGormRepository) GetCustomer(
	ctx context.Context,
	salonID uint,
	customerID uint,
) (*models.Customer, error) {

	var c models.Customer
	if err := r.db.WithContext(ctx).
		Where("id = ? AND salon_id = ?", customerID, salonID).
		First(&c).Error; err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

func (r *AppointmentGormRepository) ListServices(
	ctx context.Context,
	salonID uint,
	ids []uint,
) ([]models.Service, error) {

	var services []models.Service
	if len(ids) == 0 {
		return services, nil
	}

	err := r.db.WithContext(ctx).
		Where("salon_id = ? AND active = ? AND id IN ?", salonID, true, ids).
		Find(&services).Error
	return services, err
}

func (r *AppointmentGormRepository) ListActiveServices(
	ctx context.Context,
	salonID uint,
) ([]models.Service, error) {

	var services []models.Service
	err := r.db.WithContext(ctx).
		Where("salon_id = ? AND active = ?", salonID, true).
		Order("id ASC").
		Find(&services).Error
	return services, err
}

// qualifiedStaffIDs selects staff linked to every service in serviceIDs.
func (r *AppointmentGormRepository) qualifiedStaffIDs(
	ctx context.Context,
	serviceIDs []uint,
) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("staff_services").
		Select("staff_id").
		Where("service_id IN ?", serviceIDs).
		Group("staff_id").
		Having("COUNT(DISTINCT service_id) = ?", len(serviceIDs))
}

func (r *AppointmentGormRepository) ListQualifiedStaff(
	ctx context.Context,
	salonID uint,
	serviceIDs []uint,
) ([]models.Staff, error) {

	var staff []models.Staff
	q := r.db.WithContext(ctx).
		Where("salon_id = ? AND active = ?", salonID, true)
	if len(serviceIDs) > 0 {
		q = q.Where("id IN (?)", r.qualifiedStaffIDs(ctx, serviceIDs))
	}

	err := q.Order("id ASC").Find(&staff).Error
	return staff, err
}

func (r *AppointmentGormRepository) IsQualified(
	ctx context.Context,
	staffID uint,
	serviceIDs []uint,
) (bool, error) {

	if len(serviceIDs) == 0 {
		return true, nil
	}

	var count int64
	if err := r.db.WithContext(ctx).
		Table("staff_services").
		Where("staff_id = ? AND service_id IN ?", staffID, serviceIDs).
		Distinct("service_id").
		Count(&count).Error; err != nil {
		return false, err
	}
	return int(count) == len(serviceIDs), nil
}

// --------------------------------------------------
// Calendar / shifts
// --------------------------------------------------

func (r *AppointmentGormRepository) GetBusinessHours(
	ctx context.Context,
	salonID uint,
	weekday int,
) (*models.BusinessHours, error) {

	var bh models.BusinessHours
	err := r.db.WithContext(ctx).
		Where("salon_id = ? AND day_of_week = ?", salonID, weekday).
		First(&bh).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &bh, nil
}

func (r *AppointmentGormRepository) GetShiftOverride(
	ctx context.Context,
	salonID uint,
	staffID uint,
	date string,
) (*models.ShiftOverride, error) {

	var ov models.ShiftOverride
	err := r.db.WithContext(ctx).
		Where("salon_id = ? AND staff_id = ? AND date = ?", salonID, staffID, date).
		First(&ov).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ov, nil
}

func (r *AppointmentGormRepository) GetShiftPattern(
	ctx context.Context,
	salonID uint,
	staffID uint,
	weekday int,
) (*models.ShiftPattern, error) {

	var p models.ShiftPattern
	err := r.db.WithContext(ctx).
		Where("salon_id = ? AND staff_id = ? AND day_of_week = ?", salonID, staffID, weekday).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// --------------------------------------------------
// Appointments
// --------------------------------------------------

func (r *AppointmentGormRepository) ListBookedAppointments(
	ctx context.Context,
	staffID uint,
	date string,
	excludeID uint,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	q := r.db.WithContext(ctx).
		Select("id", "staff_id", "date", "start_time", "end_time", "status").
		Where("staff_id = ? AND date = ? AND status NOT IN ?", staffID, date, domain.InactiveStatuses)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	err := q.Order("start_time ASC").Find(&apps).Error
	return apps, err
}

// dayKey numbers calendar days so the advisory lock is scoped to one
// staff member and one day.
func dayKey(date string) int32 {
	d, err := time.Parse(scheduling.DateLayout, date)
	if err != nil {
		return 0
	}
	return int32(d.Unix() / 86400)
}

// CommitAppointment serializes writers per staff/day with a transaction
// scoped advisory lock, re-checks overlaps under FOR UPDATE and relies on
// the appointments_no_overlap exclusion constraint as the last line.
func (r *AppointmentGormRepository) CommitAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		if err := tx.Exec(
			"SELECT pg_advisory_xact_lock(?, ?)",
			int32(ap.StaffID), dayKey(ap.Date),
		).Error; err != nil {
			return err
		}

		if ap.ID != 0 {
			var current models.Appointment
			if err := tx.
				Clauses(clause.Locking{Strength: "UPDATE"}).
				Select("id", "status").
				Where("id = ?", ap.ID).
				First(&current).Error; err != nil {
				return notFound(err)
			}
			if current.Status != ap.Status {
				return domain.ErrStaleStatus
			}
		}

		var clashing []models.Appointment
		q := tx.Model(&models.Appointment{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			Where(
				"staff_id = ? AND status NOT IN ? AND start_time < ? AND end_time > ?",
				ap.StaffID,
				domain.InactiveStatuses,
				ap.EndTime,
				ap.StartTime,
			)
		if ap.ID != 0 {
			q = q.Where("id <> ?", ap.ID)
		}
		if err := q.Limit(1).Find(&clashing).Error; err != nil {
			return err
		}
		if len(clashing) > 0 {
			return httperr.ErrConflict("time_conflict", "requested time overlaps an existing appointment")
		}

		if ap.ID == 0 {
			return tx.Omit("Staff", "Customer").Create(ap).Error
		}

		res := tx.Model(&models.Appointment{}).
			Where("id = ?", ap.ID).
			Updates(map[string]any{
				"staff_id":         ap.StaffID,
				"customer_id":      ap.CustomerID,
				"date":             ap.Date,
				"start_time":       ap.StartTime,
				"end_time":         ap.EndTime,
				"duration_minutes": ap.DurationMinutes,
				"total_price":      ap.TotalPrice,
				"notes":            ap.Notes,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}

		if err := tx.
			Where("appointment_id = ?", ap.ID).
			Delete(&models.AppointmentService{}).Error; err != nil {
			return err
		}
		for i := range ap.Services {
			ap.Services[i].ID = 0
			ap.Services[i].AppointmentID = ap.ID
		}
		if len(ap.Services) > 0 {
			return tx.Create(&ap.Services).Error
		}
		return nil
	})

	if httperr.IsExclusionConflict(err) {
		return httperr.ErrConflict("time_conflict", "requested time overlaps an existing appointment")
	}
	return err
}

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	salonID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Services").
		Where("id = ? AND salon_id = ?", appointmentID, salonID).
		First(&ap).Error; err != nil {
		return nil, notFound(err)
	}
	return &ap, nil
}

// UpdateAppointmentStatus is a compare-and-set on status: the row only
// changes while it still holds from.
func (r *AppointmentGormRepository) UpdateAppointmentStatus(
	ctx context.Context,
	ap *models.Appointment,
	from domain.Status,
) error {

	db := r.db.WithContext(ctx)

	res := db.
		Model(&models.Appointment{}).
		Where("id = ? AND status = ?", ap.ID, string(from)).
		Updates(map[string]any{
			"status":       ap.Status,
			"cancelled_at": ap.CancelledAt,
			"completed_at": ap.CompletedAt,
		})
	if res.Error != nil {
		if httperr.IsExclusionConflict(res.Error) {
			return httperr.ErrConflict("time_conflict", "appointment overlaps an existing appointment")
		}
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}

	var n int64
	if err := db.Model(&models.Appointment{}).Where("id = ?", ap.ID).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return domain.ErrStaleStatus
}

func (r *AppointmentGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	salonID uint,
	staffID uint,
	fromDate string,
	toDate string,
) ([]models.Appointment, error) {

	var apps []models.Appointment

	q := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Services").
		Where("salon_id = ? AND date >= ? AND date <= ?", salonID, fromDate, toDate)
	if staffID != 0 {
		q = q.Where("staff_id = ?", staffID)
	}

	if err := q.Order("start_time ASC").Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
