package appointment

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/scheduling"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// GetAvailability computes bookable slots for one staff member or, with
// domain.AnyStaff, for whichever qualified staff member is free. Nothing is
// cached: every call reads current shifts and bookings.
type GetAvailability struct {
	repo     domain.Repository
	resolver *ScheduleResolver
	settings Settings
	clock    timezone.Clock
}

func NewGetAvailability(
	repo domain.Repository,
	settings Settings,
	clock timezone.Clock,
) *GetAvailability {
	return &GetAvailability{
		repo:     repo,
		resolver: NewScheduleResolver(repo),
		settings: settings,
		clock:    clock,
	}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) (*domain.AvailabilityResult, error) {

	// input errors win over lookups
	if _, err := scheduling.ParseDate(in.Date, time.UTC); err != nil {
		return nil, httperr.ErrValidation("invalid_date", "date must be YYYY-MM-DD")
	}
	if err := validateServiceIDs(in.ServiceIDs); err != nil {
		return nil, err
	}

	salon, err := loadSalon(ctx, uc.repo, in.SalonID)
	if err != nil {
		return nil, err
	}

	loc := uc.settings.Location(salon)

	date, err := scheduling.ParseDate(in.Date, loc)
	if err != nil {
		return nil, httperr.ErrValidation("invalid_date", "date must be YYYY-MM-DD")
	}

	services, err := loadServices(ctx, uc.repo, salon.ID, in.ServiceIDs)
	if err != nil {
		return nil, err
	}

	candidates, err := uc.candidates(ctx, salon.ID, in.StaffID, services.ids)
	if err != nil {
		return nil, err
	}

	result := &domain.AvailabilityResult{
		Date:            date.Format(scheduling.DateLayout),
		DurationMinutes: services.durationMinutes,
		TotalPrice:      services.totalPrice,
		Slots:           []domain.TimeSlot{},
	}

	now := timezone.NowIn(uc.clock, loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	if date.Before(today) {
		return result, nil
	}

	business, open, err := uc.resolver.BusinessWindow(ctx, salon.ID, date)
	if err != nil {
		return nil, err
	}
	if !open {
		return result, nil
	}

	notBefore := leadCutoff(now, uc.settings.MinLead(salon), date)

	step := uc.settings.SlotInterval(salon)
	taken := make(map[scheduling.Minute]bool)

	// candidates are ordered by ID, so in "any" mode each start goes to
	// the lowest free staff ID
	for _, st := range candidates {
		sw, ok, err := uc.resolver.staffWindowWithin(ctx, salon.ID, st.ID, date, business)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		aps, err := uc.repo.ListBookedAppointments(ctx, st.ID, result.Date, 0)
		if err != nil {
			return nil, fmt.Errorf("list booked appointments: %w", err)
		}

		starts := scheduling.GenerateSlots(scheduling.SlotRequest{
			Window:    sw.Window,
			Duration:  services.durationMinutes,
			Step:      step,
			Booked:    bookedIntervals(aps, loc),
			NotBefore: notBefore,
		})

		for _, t := range starts {
			if in.StaffID == domain.AnyStaff {
				if taken[t] {
					continue
				}
				taken[t] = true
			}
			result.Slots = append(result.Slots, domain.TimeSlot{
				Start:   t.String(),
				End:     (t + scheduling.Minute(services.durationMinutes)).String(),
				StaffID: st.ID,
			})
		}
	}

	domain.SortSlots(result.Slots)
	return result, nil
}

func (uc *GetAvailability) candidates(
	ctx context.Context,
	salonID uint,
	staffID uint,
	serviceIDs []uint,
) ([]models.Staff, error) {

	if staffID != domain.AnyStaff {
		staff, err := loadActiveStaff(ctx, uc.repo, salonID, staffID)
		if err != nil {
			return nil, err
		}
		ok, err := uc.repo.IsQualified(ctx, staff.ID, serviceIDs)
		if err != nil {
			return nil, fmt.Errorf("check qualification: %w", err)
		}
		if !ok {
			return nil, httperr.ErrNotFound("staff_not_qualified", "staff member cannot perform this combination of services")
		}
		return []models.Staff{*staff}, nil
	}

	staff, err := uc.repo.ListQualifiedStaff(ctx, salonID, serviceIDs)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("list qualified staff: %w", err)
	}
	if len(staff) == 0 {
		return nil, httperr.ErrNotFound("no_qualified_staff", "no staff can perform this combination of services")
	}
	sort.Slice(staff, func(i, j int) bool { return staff[i].ID < staff[j].ID })
	return staff, nil
}

// leadCutoff is the earliest bookable time of day on date, rounded up to
// the next whole minute, or nil when now+lead falls before date. A cutoff
// on a later day excludes the whole of date.
func leadCutoff(now time.Time, lead time.Duration, date time.Time) *scheduling.Minute {
	cutoff := now.Add(lead).In(date.Location())

	var m scheduling.Minute
	switch {
	case scheduling.SameDay(date, cutoff):
		m = scheduling.MinuteOf(cutoff)
		if cutoff.Second() > 0 || cutoff.Nanosecond() > 0 {
			m++
		}
	case cutoff.Before(date):
		return nil
	default:
		m = scheduling.MinutesPerDay + 1
	}
	return &m
}
