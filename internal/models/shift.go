package models

import "time"

const (
	ShiftStatusActive   = "active"
	ShiftStatusInactive = "inactive"
)

// ShiftOverride is a date-specific working window that supersedes the
// weekly pattern.
type ShiftOverride struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	StaffID uint `gorm:"uniqueIndex:idx_shift_override_day;not null" json:"staff_id"`
	SalonID uint `gorm:"index;not null" json:"salon_id"`

	Date      string `gorm:"size:10;uniqueIndex:idx_shift_override_day" json:"date"`
	StartTime string `gorm:"size:5" json:"start_time"`
	EndTime   string `gorm:"size:5" json:"end_time"`
	Status    string `gorm:"size:10;default:'active'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ShiftPattern is the recurring weekly fallback.
type ShiftPattern struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	StaffID uint `gorm:"uniqueIndex:idx_shift_pattern_day;not null" json:"staff_id"`
	SalonID uint `gorm:"index;not null" json:"salon_id"`

	DayOfWeek int    `gorm:"uniqueIndex:idx_shift_pattern_day" json:"day_of_week"`
	StartTime string `gorm:"size:5" json:"start_time"`
	EndTime   string `gorm:"size:5" json:"end_time"`
	IsActive  bool   `json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
