package appointment

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// ErrNotFound is returned by stores when a requested record does not exist
// or belongs to another salon.
var ErrNotFound = errors.New("record not found")

// ErrStaleStatus is returned by stores when an appointment's status no
// longer matches the one the caller read before deciding to write.
var ErrStaleStatus = errors.New("appointment status changed")

// Repository is everything the scheduling core reads and the single atomic
// write it performs. Implementations decide the transport (SQL, RPC, memory).
type Repository interface {
	// -------- Salon / master data --------
	GetSalon(ctx context.Context, salonID uint) (*models.Salon, error)
	GetSalonBySlug(ctx context.Context, slug string) (*models.Salon, error)
	GetStaff(ctx context.Context, salonID, staffID uint) (*models.Staff, error)
	GetCustomer(ctx context.Context, salonID, customerID uint) (*models.Customer, error)

	// ListServices returns the active salon services among ids. Missing ids
	// are simply absent from the result.
	ListServices(ctx context.Context, salonID uint, ids []uint) ([]models.Service, error)
	ListActiveServices(ctx context.Context, salonID uint) ([]models.Service, error)

	// ListQualifiedStaff returns active staff able to perform every service
	// in serviceIDs, ordered by ascending ID.
	ListQualifiedStaff(ctx context.Context, salonID uint, serviceIDs []uint) ([]models.Staff, error)
	IsQualified(ctx context.Context, staffID uint, serviceIDs []uint) (bool, error)

	// -------- Calendar / shifts (nil, nil when absent) --------
	GetBusinessHours(ctx context.Context, salonID uint, weekday int) (*models.BusinessHours, error)
	GetShiftOverride(ctx context.Context, salonID, staffID uint, date string) (*models.ShiftOverride, error)
	GetShiftPattern(ctx context.Context, salonID, staffID uint, weekday int) (*models.ShiftPattern, error)

	// -------- Appointments --------

	// ListBookedAppointments returns the staff member's appointments on date
	// that still occupy their slot, ordered by start. excludeID (when non
	// zero) is left out.
	ListBookedAppointments(ctx context.Context, staffID uint, date string, excludeID uint) ([]models.Appointment, error)

	// CommitAppointment inserts ap (ID == 0) or rewrites its time, staff and
	// services (ID != 0) as one atomic check-and-write. It must return a
	// conflict business error, and write nothing, when an occupying
	// appointment for the same staff member overlaps [StartTime, EndTime),
	// including one committed concurrently by another process. An update
	// only applies while the stored status still equals ap.Status, else
	// ErrStaleStatus.
	CommitAppointment(ctx context.Context, ap *models.Appointment) error

	GetAppointment(ctx context.Context, salonID, appointmentID uint) (*models.Appointment, error)

	// UpdateAppointmentStatus writes ap's status and timestamps only while
	// the stored status is still from, else ErrStaleStatus.
	UpdateAppointmentStatus(ctx context.Context, ap *models.Appointment, from Status) error
	ListAppointmentsForPeriod(ctx context.Context, salonID, staffID uint, fromDate, toDate string) ([]models.Appointment, error)
}

// ScheduleStore writes the configuration the core only reads.
type ScheduleStore interface {
	ListBusinessHours(ctx context.Context, salonID uint) ([]models.BusinessHours, error)
	ReplaceBusinessHours(ctx context.Context, salonID uint, days []models.BusinessHours) error
	ListShiftPatterns(ctx context.Context, salonID, staffID uint) ([]models.ShiftPattern, error)
	ReplaceShiftPatterns(ctx context.Context, salonID, staffID uint, days []models.ShiftPattern) error
	UpsertShiftOverride(ctx context.Context, override *models.ShiftOverride) error
}

// ServiceFilter narrows back-office service listings. Nil Active lists
// both active and retired services.
type ServiceFilter struct {
	Active *bool
	Query  string
}

// CatalogStore maintains the master data the scheduling core reads: salon
// settings, services, staff qualifications and customers.
type CatalogStore interface {
	UpdateSalonSettings(ctx context.Context, salon *models.Salon) error

	ListServiceCatalog(ctx context.Context, salonID uint, f ServiceFilter) ([]models.Service, error)
	GetService(ctx context.Context, salonID, serviceID uint) (*models.Service, error)
	// SaveService inserts (ID == 0) or updates a service.
	SaveService(ctx context.Context, svc *models.Service) error

	// ListStaff returns every staff member with their services, by ID.
	ListStaff(ctx context.Context, salonID uint) ([]models.Staff, error)
	SaveStaff(ctx context.Context, st *models.Staff) error
	// SetStaffServices replaces the staff member's qualifications. Every id
	// must be a service of the same salon, else ErrNotFound.
	SetStaffServices(ctx context.Context, salonID, staffID uint, serviceIDs []uint) error

	ListCustomers(ctx context.Context, salonID uint, query string) ([]models.Customer, error)
	SaveCustomer(ctx context.Context, c *models.Customer) error
}
