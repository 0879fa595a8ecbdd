package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type ScheduleGormRepository struct {
	db *gorm.DB
}

func NewScheduleGormRepository(db *gorm.DB) *ScheduleGormRepository {
	return &ScheduleGormRepository{db: db}
}

func (r *ScheduleGormRepository) ListBusinessHours(
	ctx context.Context,
	salonID uint,
) ([]models.BusinessHours, error) {

	var days []models.BusinessHours
	err := r.db.WithContext(ctx).
		Where("salon_id = ?", salonID).
		Order("day_of_week ASC").
		Find(&days).Error
	return days, err
}

// ReplaceBusinessHours swaps the salon's weekly calendar in one transaction.
func (r *ScheduleGormRepository) ReplaceBusinessHours(
	ctx context.Context,
	salonID uint,
	days []models.BusinessHours,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("salon_id = ?", salonID).
			Delete(&models.BusinessHours{}).Error; err != nil {
			return err
		}
		if len(days) == 0 {
			return nil
		}
		for i := range days {
			days[i].ID = 0
			days[i].SalonID = salonID
		}
		return tx.Create(&days).Error
	})
}

func (r *ScheduleGormRepository) ListShiftPatterns(
	ctx context.Context,
	salonID uint,
	staffID uint,
) ([]models.ShiftPattern, error) {

	var days []models.ShiftPattern
	err := r.db.WithContext(ctx).
		Where("salon_id = ? AND staff_id = ?", salonID, staffID).
		Order("day_of_week ASC").
		Find(&days).Error
	return days, err
}

func (r *ScheduleGormRepository) ReplaceShiftPatterns(
	ctx context.Context,
	salonID uint,
	staffID uint,
	days []models.ShiftPattern,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("salon_id = ? AND staff_id = ?", salonID, staffID).
			Delete(&models.ShiftPattern{}).Error; err != nil {
			return err
		}
		if len(days) == 0 {
			return nil
		}
		for i := range days {
			days[i].ID = 0
			days[i].SalonID = salonID
			days[i].StaffID = staffID
		}
		return tx.Create(&days).Error
	})
}

func (r *ScheduleGormRepository) UpsertShiftOverride(
	ctx context.Context,
	override *models.ShiftOverride,
) error {

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "staff_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{"start_time", "end_time", "status", "updated_at"}),
		}).
		Create(override).Error
}

var _ domain.ScheduleStore = (*ScheduleGormRepository)(nil)
