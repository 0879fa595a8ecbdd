package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/scheduling"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// Store is an in-process implementation of the scheduling repository. One
// mutex plays the role of the database transaction: CommitAppointment
// re-checks overlaps and writes while holding it.
type Store struct {
	mu sync.Mutex

	salons        map[uint]models.Salon
	staff         map[uint]models.Staff
	qualified     map[uint]map[uint]bool // staff -> service
	services      map[uint]models.Service
	customers     map[uint]models.Customer
	businessHours map[uint]map[int]models.BusinessHours // salon -> weekday
	overrides     map[uint]map[string]models.ShiftOverride
	patterns      map[uint]map[int]models.ShiftPattern // staff -> weekday
	appointments  map[uint]models.Appointment

	nextID uint
}

func NewStore() *Store {
	return &Store{
		salons:        make(map[uint]models.Salon),
		staff:         make(map[uint]models.Staff),
		qualified:     make(map[uint]map[uint]bool),
		services:      make(map[uint]models.Service),
		customers:     make(map[uint]models.Customer),
		businessHours: make(map[uint]map[int]models.BusinessHours),
		overrides:     make(map[uint]map[string]models.ShiftOverride),
		patterns:      make(map[uint]map[int]models.ShiftPattern),
		appointments:  make(map[uint]models.Appointment),
	}
}

func (s *Store) id(current uint) uint {
	if current != 0 {
		if current > s.nextID {
			s.nextID = current
		}
		return current
	}
	s.nextID++
	return s.nextID
}

// --------------------------------------------------
// Seeding
// --------------------------------------------------

func (s *Store) AddSalon(salon models.Salon) models.Salon {
	s.mu.Lock()
	defer s.mu.Unlock()

	salon.ID = s.id(salon.ID)
	s.salons[salon.ID] = salon
	return salon
}

// AddStaff stores a staff member qualified for serviceIDs.
func (s *Store) AddStaff(st models.Staff, serviceIDs ...uint) models.Staff {
	s.mu.Lock()
	defer s.mu.Unlock()

	st.ID = s.id(st.ID)
	st.Services = nil
	s.staff[st.ID] = st

	q := make(map[uint]bool, len(serviceIDs))
	for _, id := range serviceIDs {
		q[id] = true
	}
	s.qualified[st.ID] = q
	return st
}

func (s *Store) AddService(svc models.Service) models.Service {
	s.mu.Lock()
	defer s.mu.Unlock()

	svc.ID = s.id(svc.ID)
	s.services[svc.ID] = svc
	return svc
}

func (s *Store) AddCustomer(c models.Customer) models.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()

	c.ID = s.id(c.ID)
	s.customers[c.ID] = c
	return c
}

// AddAppointment stores ap without any overlap check.
func (s *Store) AddAppointment(ap models.Appointment) models.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()

	ap.ID = s.id(ap.ID)
	s.appointments[ap.ID] = ap
	return ap
}

// Appointments returns every stored appointment ordered by ID.
func (s *Store) Appointments() []models.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Appointment, 0, len(s.appointments))
	for _, ap := range s.appointments {
		out = append(out, ap)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// --------------------------------------------------
// Master data
// --------------------------------------------------

func (s *Store) GetSalon(_ context.Context, salonID uint) (*models.Salon, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	salon, ok := s.salons[salonID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &salon, nil
}

func (s *Store) GetSalonBySlug(_ context.Context, slug string) (*models.Salon, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, salon := range s.salons {
		if salon.Slug == slug {
			return &salon, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *Store) GetStaff(_ context.Context, salonID, staffID uint) (*models.Staff, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.staff[staffID]
	if !ok || st.SalonID != salonID {
		return nil, domain.ErrNotFound
	}
	return &st, nil
}

func (s *Store) GetCustomer(_ context.Context, salonID, customerID uint) (*models.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.customers[customerID]
	if !ok || c.SalonID != salonID {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (s *Store) ListServices(_ context.Context, salonID uint, ids []uint) ([]models.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Service
	for _, id := range ids {
		if svc, ok := s.services[id]; ok && svc.SalonID == salonID && svc.Active {
			out = append(out, svc)
		}
	}
	return out, nil
}

func (s *Store) ListActiveServices(_ context.Context, salonID uint) ([]models.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Service
	for _, svc := range s.services {
		if svc.SalonID == salonID && svc.Active {
			out = append(out, svc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) ListQualifiedStaff(_ context.Context, salonID uint, serviceIDs []uint) ([]models.Staff, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Staff
	for _, st := range s.staff {
		if st.SalonID == salonID && st.Active && s.qualifiedLocked(st.ID, serviceIDs) {
			out = append(out, st)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) IsQualified(_ context.Context, staffID uint, serviceIDs []uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.qualifiedLocked(staffID, serviceIDs), nil
}

func (s *Store) qualifiedLocked(staffID uint, serviceIDs []uint) bool {
	q := s.qualified[staffID]
	for _, id := range serviceIDs {
		if !q[id] {
			return false
		}
	}
	return true
}

// --------------------------------------------------
// Calendar / shifts
// --------------------------------------------------

func (s *Store) GetBusinessHours(_ context.Context, salonID uint, weekday int) (*models.BusinessHours, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bh, ok := s.businessHours[salonID][weekday]
	if !ok {
		return nil, nil
	}
	return &bh, nil
}

func (s *Store) GetShiftOverride(_ context.Context, salonID, staffID uint, date string) (*models.ShiftOverride, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ov, ok := s.overrides[staffID][date]
	if !ok || ov.SalonID != salonID {
		return nil, nil
	}
	return &ov, nil
}

func (s *Store) GetShiftPattern(_ context.Context, salonID, staffID uint, weekday int) (*models.ShiftPattern, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.patterns[staffID][weekday]
	if !ok || p.SalonID != salonID {
		return nil, nil
	}
	return &p, nil
}

// --------------------------------------------------
// Appointments
// --------------------------------------------------

func (s *Store) ListBookedAppointments(_ context.Context, staffID uint, date string, excludeID uint) ([]models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.bookedLocked(staffID, date, excludeID), nil
}

func (s *Store) bookedLocked(staffID uint, date string, excludeID uint) []models.Appointment {
	var out []models.Appointment
	for _, ap := range s.appointments {
		if ap.StaffID != staffID || ap.Date != date || ap.ID == excludeID {
			continue
		}
		if !domain.Occupies(domain.Status(ap.Status)) {
			continue
		}
		out = append(out, ap)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out
}

func (s *Store) CommitAppointment(_ context.Context, ap *models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ap.ID != 0 {
		current, ok := s.appointments[ap.ID]
		if !ok {
			return domain.ErrNotFound
		}
		if current.Status != ap.Status {
			return domain.ErrStaleStatus
		}
	}

	loc := ap.StartTime.Location()
	candidate := dayInterval(ap.StartTime, ap.EndTime, loc)

	for _, other := range s.bookedLocked(ap.StaffID, ap.Date, ap.ID) {
		if scheduling.Overlaps(candidate, dayInterval(other.StartTime, other.EndTime, loc)) {
			return httperr.ErrConflict("time_conflict", "requested time overlaps an existing appointment")
		}
	}

	ap.ID = s.id(ap.ID)
	s.appointments[ap.ID] = *ap
	return nil
}

func (s *Store) GetAppointment(_ context.Context, salonID, appointmentID uint) (*models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ap, ok := s.appointments[appointmentID]
	if !ok || ap.SalonID != salonID {
		return nil, domain.ErrNotFound
	}
	return &ap, nil
}

// dayInterval is the wall-clock interval of [start, end) on start's day in
// loc. An end past midnight saturates at the end of the day.
func dayInterval(start, end time.Time, loc *time.Location) scheduling.Interval {
	start, end = start.In(loc), end.In(loc)
	iv := scheduling.Interval{Start: scheduling.MinuteOf(start), End: scheduling.MinuteOf(end)}
	if !scheduling.SameDay(start, end) {
		iv.End = scheduling.MinutesPerDay
	}
	return iv
}

func (s *Store) UpdateAppointmentStatus(_ context.Context, ap *models.Appointment, from domain.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.appointments[ap.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if domain.Status(current.Status) != from {
		return domain.ErrStaleStatus
	}
	current.Status = ap.Status
	current.CancelledAt = ap.CancelledAt
	current.CompletedAt = ap.CompletedAt
	s.appointments[ap.ID] = current
	return nil
}

func (s *Store) ListAppointmentsForPeriod(_ context.Context, salonID, staffID uint, fromDate, toDate string) ([]models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Appointment
	for _, ap := range s.appointments {
		if ap.SalonID != salonID || (staffID != 0 && ap.StaffID != staffID) {
			continue
		}
		if ap.Date < fromDate || ap.Date > toDate {
			continue
		}
		ap.Customer = s.customers[ap.CustomerID]
		out = append(out, ap)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

// --------------------------------------------------
// Schedule configuration
// --------------------------------------------------

func (s *Store) ListBusinessHours(_ context.Context, salonID uint) ([]models.BusinessHours, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.BusinessHours
	for _, bh := range s.businessHours[salonID] {
		out = append(out, bh)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DayOfWeek < out[j].DayOfWeek })
	return out, nil
}

func (s *Store) ReplaceBusinessHours(_ context.Context, salonID uint, days []models.BusinessHours) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	byDay := make(map[int]models.BusinessHours, len(days))
	for _, d := range days {
		d.SalonID = salonID
		d.ID = s.id(0)
		byDay[d.DayOfWeek] = d
	}
	s.businessHours[salonID] = byDay
	return nil
}

func (s *Store) ListShiftPatterns(_ context.Context, salonID, staffID uint) ([]models.ShiftPattern, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.ShiftPattern
	for _, p := range s.patterns[staffID] {
		if p.SalonID == salonID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DayOfWeek < out[j].DayOfWeek })
	return out, nil
}

func (s *Store) ReplaceShiftPatterns(_ context.Context, salonID, staffID uint, days []models.ShiftPattern) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	byDay := make(map[int]models.ShiftPattern, len(days))
	for _, d := range days {
		d.SalonID = salonID
		d.StaffID = staffID
		d.ID = s.id(0)
		byDay[d.DayOfWeek] = d
	}
	s.patterns[staffID] = byDay
	return nil
}

func (s *Store) UpsertShiftOverride(_ context.Context, override *models.ShiftOverride) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	byDate, ok := s.overrides[override.StaffID]
	if !ok {
		byDate = make(map[string]models.ShiftOverride)
		s.overrides[override.StaffID] = byDate
	}
	if prev, ok := byDate[override.Date]; ok {
		override.ID = prev.ID
	}
	override.ID = s.id(override.ID)
	byDate[override.Date] = *override
	return nil
}

var (
	_ domain.Repository    = (*Store)(nil)
	_ domain.ScheduleStore = (*Store)(nil)
)
