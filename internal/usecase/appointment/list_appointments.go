package appointment

import (
	"context"
	"fmt"
	"time"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/scheduling"
	"github.com/BruksfildServices01/salon-scheduler/internal/dto"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type ListAppointments struct {
	repo     domain.Repository
	settings Settings
}

func NewListAppointments(
	repo domain.Repository,
	settings Settings,
) *ListAppointments {
	return &ListAppointments{
		repo:     repo,
		settings: settings,
	}
}

// ByDate lists one day. staffID 0 lists every staff member.
func (uc *ListAppointments) ByDate(
	ctx context.Context,
	salonID uint,
	staffID uint,
	date string,
) ([]dto.AppointmentListDTO, error) {

	salon, err := loadSalon(ctx, uc.repo, salonID)
	if err != nil {
		return nil, err
	}

	day, err := scheduling.ParseDate(date, uc.settings.Location(salon))
	if err != nil {
		return nil, httperr.ErrValidation("invalid_date", "date must be YYYY-MM-DD")
	}

	d := day.Format(scheduling.DateLayout)
	return uc.list(ctx, salon, staffID, d, d)
}

func (uc *ListAppointments) ByMonth(
	ctx context.Context,
	salonID uint,
	staffID uint,
	year int,
	month int,
) ([]dto.AppointmentListDTO, error) {

	if year < 2000 || year > 2100 {
		return nil, httperr.ErrValidation("invalid_year", "year must be between 2000 and 2100")
	}
	if month < 1 || month > 12 {
		return nil, httperr.ErrValidation("invalid_month", "month must be between 1 and 12")
	}

	salon, err := loadSalon(ctx, uc.repo, salonID)
	if err != nil {
		return nil, err
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)

	return uc.list(
		ctx,
		salon,
		staffID,
		start.Format(scheduling.DateLayout),
		end.Format(scheduling.DateLayout),
	)
}

func (uc *ListAppointments) list(
	ctx context.Context,
	salon *models.Salon,
	staffID uint,
	from string,
	to string,
) ([]dto.AppointmentListDTO, error) {

	appointments, err := uc.repo.ListAppointmentsForPeriod(ctx, salon.ID, staffID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}

	loc := uc.settings.Location(salon)

	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		names := make([]string, 0, len(ap.Services))
		for _, s := range ap.Services {
			names = append(names, s.Name)
		}

		out = append(out, dto.AppointmentListDTO{
			ID:           ap.ID,
			Reference:    ap.Reference,
			StaffID:      ap.StaffID,
			Date:         ap.Date,
			StartTime:    ap.StartTime.In(loc).Format(scheduling.ClockLayout),
			EndTime:      ap.EndTime.In(loc).Format(scheduling.ClockLayout),
			Status:       ap.Status,
			CustomerName: ap.Customer.Name,
			ServiceNames: dto.JoinNames(names),
			TotalPrice:   ap.TotalPrice,
		})
	}

	return out, nil
}
