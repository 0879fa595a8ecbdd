package audit

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// Sink persists audit rows.
type Sink interface {
	Log(ctx context.Context, ev Event) error
}

type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Log(ctx context.Context, ev Event) error {
	row := toRow(ev)
	return l.db.WithContext(ctx).Create(&row).Error
}

// MemorySink keeps audit rows in process, for the memory storage driver.
type MemorySink struct {
	mu   sync.Mutex
	rows []models.AuditLog
}

func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

func (s *MemorySink) Log(_ context.Context, ev Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	row := toRow(ev)
	row.ID = uint(len(s.rows) + 1)
	row.CreatedAt = time.Now()
	s.rows = append(s.rows, row)
	return nil
}

// Rows returns a copy of everything logged so far.
func (s *MemorySink) Rows() []models.AuditLog {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.AuditLog, len(s.rows))
	copy(out, s.rows)
	return out
}

func toRow(ev Event) models.AuditLog {
	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	return models.AuditLog{
		SalonID:  ev.SalonID,
		UserID:   ev.UserID,
		Action:   ev.Action,
		Entity:   ev.Entity,
		EntityID: ev.EntityID,
		Metadata: metaJSON,
	}
}
