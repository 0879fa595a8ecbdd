package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type CatalogGormRepository struct {
	db *gorm.DB
}

func NewCatalogGormRepository(db *gorm.DB) *CatalogGormRepository {
	return &CatalogGormRepository{db: db}
}

// --------------------------------------------------
// Salon
// --------------------------------------------------

func (r *CatalogGormRepository) UpdateSalonSettings(
	ctx context.Context,
	salon *models.Salon,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Salon{}).
		Where("id = ?", salon.ID).
		Updates(map[string]any{
			"name":                  salon.Name,
			"phone":                 salon.Phone,
			"address":               salon.Address,
			"timezone":              salon.Timezone,
			"slot_interval_minutes": salon.SlotIntervalMinutes,
			"min_lead_minutes":      salon.MinLeadMinutes,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// --------------------------------------------------
// Services
// --------------------------------------------------

func (r *CatalogGormRepository) ListServiceCatalog(
	ctx context.Context,
	salonID uint,
	f domain.ServiceFilter,
) ([]models.Service, error) {

	q := r.db.WithContext(ctx).Where("salon_id = ?", salonID)

	if f.Active != nil {
		q = q.Where("active = ?", *f.Active)
	}
	if query := strings.ToLower(strings.TrimSpace(f.Query)); query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	services := []models.Service{}
	err := q.Order("id ASC").Find(&services).Error
	return services, err
}

func (r *CatalogGormRepository) GetService(
	ctx context.Context,
	salonID uint,
	serviceID uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND salon_id = ?", serviceID, salonID).
		First(&svc).Error; err != nil {
		return nil, notFound(err)
	}
	return &svc, nil
}

func (r *CatalogGormRepository) SaveService(
	ctx context.Context,
	svc *models.Service,
) error {
	// Select("*") so that active=false is written on update
	if svc.ID == 0 {
		return r.db.WithContext(ctx).Create(svc).Error
	}
	return r.db.WithContext(ctx).Select("*").Omit("created_at").Save(svc).Error
}

// --------------------------------------------------
// Staff
// --------------------------------------------------

func (r *CatalogGormRepository) ListStaff(
	ctx context.Context,
	salonID uint,
) ([]models.Staff, error) {

	staff := []models.Staff{}
	err := r.db.WithContext(ctx).
		Preload("Services", func(db *gorm.DB) *gorm.DB { return db.Order("services.id ASC") }).
		Where("salon_id = ?", salonID).
		Order("id ASC").
		Find(&staff).Error
	return staff, err
}

func (r *CatalogGormRepository) SaveStaff(
	ctx context.Context,
	st *models.Staff,
) error {
	if st.ID == 0 {
		return r.db.WithContext(ctx).Omit("Services").Create(st).Error
	}
	return r.db.WithContext(ctx).Select("*").Omit("Services", "created_at").Save(st).Error
}

func (r *CatalogGormRepository) SetStaffServices(
	ctx context.Context,
	salonID uint,
	staffID uint,
	serviceIDs []uint,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var st models.Staff
		if err := tx.
			Where("id = ? AND salon_id = ?", staffID, salonID).
			First(&st).Error; err != nil {
			return notFound(err)
		}

		services := []models.Service{}
		if len(serviceIDs) > 0 {
			if err := tx.
				Where("salon_id = ? AND id IN ?", salonID, serviceIDs).
				Find(&services).Error; err != nil {
				return err
			}
			if len(services) != len(serviceIDs) {
				return domain.ErrNotFound
			}
		}

		return tx.Model(&st).Association("Services").Replace(services)
	})
}

// --------------------------------------------------
// Customers
// --------------------------------------------------

func (r *CatalogGormRepository) ListCustomers(
	ctx context.Context,
	salonID uint,
	query string,
) ([]models.Customer, error) {

	q := r.db.WithContext(ctx).Where("salon_id = ?", salonID)

	if query = strings.ToLower(strings.TrimSpace(query)); query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?",
			like, like, like,
		)
	}

	customers := []models.Customer{}
	err := q.Order("name ASC").Find(&customers).Error
	return customers, err
}

func (r *CatalogGormRepository) SaveCustomer(
	ctx context.Context,
	c *models.Customer,
) error {
	if c.ID == 0 {
		return r.db.WithContext(ctx).Create(c).Error
	}
	return r.db.WithContext(ctx).Save(c).Error
}

var _ domain.CatalogStore = (*CatalogGormRepository)(nil)
