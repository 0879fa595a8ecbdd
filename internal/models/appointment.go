package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Appointment struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Reference string `gorm:"size:36;uniqueIndex" json:"reference"`

	SalonID uint  `gorm:"index;not null" json:"salon_id"`
	StaffID uint  `gorm:"index:idx_appointments_staff_day;not null" json:"staff_id"`
	Staff   Staff `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	CustomerID uint     `json:"customer_id"`
	Customer   Customer `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	Date      string    `gorm:"size:10;index:idx_appointments_staff_day" json:"date"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	DurationMinutes int             `json:"duration_minutes"`
	TotalPrice      decimal.Decimal `gorm:"type:numeric(10,2)" json:"total_price"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	Services []AppointmentService `gorm:"constraint:OnDelete:CASCADE;" json:"services"`

	Notes       string     `gorm:"size:255" json:"notes"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AppointmentService snapshots each booked service at commit time.
type AppointmentService struct {
	ID            uint `gorm:"primaryKey" json:"-"`
	AppointmentID uint `gorm:"index;not null" json:"-"`
	ServiceID     uint `json:"service_id"`

	Name            string          `gorm:"size:100" json:"name"`
	DurationMinutes int             `json:"duration_minutes"`
	Price           decimal.Decimal `gorm:"type:numeric(10,2)" json:"price"`
}
