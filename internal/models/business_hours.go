package models

import "time"

type BusinessHours struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	SalonID uint `gorm:"uniqueIndex:idx_business_hours_day;not null" json:"salon_id"`

	DayOfWeek int    `gorm:"uniqueIndex:idx_business_hours_day" json:"day_of_week"` // 0=Sunday
	OpenTime  string `gorm:"size:5" json:"open_time"`
	CloseTime string `gorm:"size:5" json:"close_time"`
	IsClosed  bool   `json:"is_closed"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
