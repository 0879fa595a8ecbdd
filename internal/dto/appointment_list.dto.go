package dto

import (
	"strings"

	"github.com/shopspring/decimal"
)

type AppointmentListDTO struct {
	ID           uint            `json:"id"`
	Reference    string          `json:"reference"`
	StaffID      uint            `json:"staff_id"`
	Date         string          `json:"date"`
	StartTime    string          `json:"start_time"`
	EndTime      string          `json:"end_time"`
	Status       string          `json:"status"`
	CustomerName string          `json:"customer_name"`
	ServiceNames string          `json:"service_names"`
	TotalPrice   decimal.Decimal `json:"total_price"`
}

func JoinNames(names []string) string {
	return strings.Join(names, ", ")
}
