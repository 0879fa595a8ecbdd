package audit

import (
	"context"
	"sort"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// Query filters one salon's audit trail. Zero values mean "any".
type Query struct {
	SalonID uint
	Action  string
	Entity  string
	From    *time.Time
	To      *time.Time // exclusive
	Limit   int
	Offset  int
}

// Reader lists audit rows newest first with the unpaged total.
type Reader interface {
	List(ctx context.Context, q Query) ([]models.AuditLog, int64, error)
}

func (l *Logger) List(ctx context.Context, q Query) ([]models.AuditLog, int64, error) {
	tx := l.db.WithContext(ctx).
		Model(&models.AuditLog{}).
		Where("salon_id = ?", q.SalonID)

	if q.Action != "" {
		tx = tx.Where("action = ?", q.Action)
	}
	if q.Entity != "" {
		tx = tx.Where("entity = ?", q.Entity)
	}
	if q.From != nil {
		tx = tx.Where("created_at >= ?", *q.From)
	}
	if q.To != nil {
		tx = tx.Where("created_at < ?", *q.To)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.AuditLog
	if err := tx.
		Order("created_at DESC, id DESC").
		Limit(q.Limit).
		Offset(q.Offset).
		Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

func (s *MemorySink) List(_ context.Context, q Query) ([]models.AuditLog, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []models.AuditLog
	for _, row := range s.rows {
		if row.SalonID != q.SalonID {
			continue
		}
		if q.Action != "" && row.Action != q.Action {
			continue
		}
		if q.Entity != "" && row.Entity != q.Entity {
			continue
		}
		if q.From != nil && row.CreatedAt.Before(*q.From) {
			continue
		}
		if q.To != nil && !row.CreatedAt.Before(*q.To) {
			continue
		}
		matched = append(matched, row)
	}

	sort.SliceStable(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })

	total := int64(len(matched))
	if q.Offset >= len(matched) {
		return []models.AuditLog{}, total, nil
	}
	matched = matched[q.Offset:]
	if q.Limit > 0 && q.Limit < len(matched) {
		matched = matched[:q.Limit]
	}
	return matched, total, nil
}

var (
	_ Reader = (*Logger)(nil)
	_ Reader = (*MemorySink)(nil)
)
