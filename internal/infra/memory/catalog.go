package memory

import (
	"context"
	"sort"
	"strings"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

func (s *Store) UpdateSalonSettings(_ context.Context, salon *models.Salon) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.salons[salon.ID]; !ok {
		return domain.ErrNotFound
	}
	s.salons[salon.ID] = *salon
	return nil
}

func (s *Store) ListServiceCatalog(_ context.Context, salonID uint, f domain.ServiceFilter) ([]models.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := strings.ToLower(strings.TrimSpace(f.Query))

	out := []models.Service{}
	for _, svc := range s.services {
		if svc.SalonID != salonID {
			continue
		}
		if f.Active != nil && svc.Active != *f.Active {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(svc.Name), query) &&
			!strings.Contains(strings.ToLower(svc.Description), query) {
			continue
		}
		out = append(out, svc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) GetService(_ context.Context, salonID, serviceID uint) (*models.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	svc, ok := s.services[serviceID]
	if !ok || svc.SalonID != salonID {
		return nil, domain.ErrNotFound
	}
	return &svc, nil
}

func (s *Store) SaveService(_ context.Context, svc *models.Service) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if svc.ID != 0 {
		if _, ok := s.services[svc.ID]; !ok {
			return domain.ErrNotFound
		}
	}
	svc.ID = s.id(svc.ID)
	s.services[svc.ID] = *svc
	return nil
}

func (s *Store) ListStaff(_ context.Context, salonID uint) ([]models.Staff, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.Staff{}
	for _, st := range s.staff {
		if st.SalonID != salonID {
			continue
		}
		st.Services = nil
		for id := range s.qualified[st.ID] {
			if svc, ok := s.services[id]; ok {
				st.Services = append(st.Services, svc)
			}
		}
		sort.Slice(st.Services, func(i, j int) bool { return st.Services[i].ID < st.Services[j].ID })
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) SaveStaff(_ context.Context, st *models.Staff) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if st.ID != 0 {
		if _, ok := s.staff[st.ID]; !ok {
			return domain.ErrNotFound
		}
	}
	st.ID = s.id(st.ID)
	stored := *st
	stored.Services = nil
	s.staff[st.ID] = stored
	if _, ok := s.qualified[st.ID]; !ok {
		s.qualified[st.ID] = make(map[uint]bool)
	}
	return nil
}

func (s *Store) SetStaffServices(_ context.Context, salonID, staffID uint, serviceIDs []uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if st, ok := s.staff[staffID]; !ok || st.SalonID != salonID {
		return domain.ErrNotFound
	}

	q := make(map[uint]bool, len(serviceIDs))
	for _, id := range serviceIDs {
		svc, ok := s.services[id]
		if !ok || svc.SalonID != salonID {
			return domain.ErrNotFound
		}
		q[id] = true
	}
	s.qualified[staffID] = q
	return nil
}

func (s *Store) ListCustomers(_ context.Context, salonID uint, query string) ([]models.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query = strings.ToLower(strings.TrimSpace(query))

	out := []models.Customer{}
	for _, c := range s.customers {
		if c.SalonID != salonID {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(c.Name), query) &&
			!strings.Contains(c.Phone, query) &&
			!strings.Contains(strings.ToLower(c.Email), query) {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) SaveCustomer(_ context.Context, c *models.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.ID != 0 {
		if _, ok := s.customers[c.ID]; !ok {
			return domain.ErrNotFound
		}
	}
	c.ID = s.id(c.ID)
	s.customers[c.ID] = *c
	return nil
}

var _ domain.CatalogStore = (*Store)(nil)
