package audit

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-agenda/internal/models"
)

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Record(ctx context.Context, ev Event) error {
	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	row := models.AuditLog{
		BarbershopID: ev.BarbershopID,
		UserID:       ev.UserID,
		Action:       ev.Action,
		Entity:       ev.Entity,
		EntityID:     ev.EntityID,
		Metadata:     metaJSON,
	}

	return s.db.WithContext(ctx).Create(&row).Error
}

// ======================================================
// LISTING
// ======================================================

type Filter struct {
	BarbershopID uint
	Action       string
	Entity       string
	From         *time.Time
	To           *time.Time // exclusive
	Page         int
	Limit        int
}

// List is always scoped to one barbershop, newest first.
func (s *Store) List(ctx context.Context, f Filter) ([]models.AuditLog, int64, error) {
	q := s.db.WithContext(ctx).
		Model(&models.AuditLog{}).
		Where("barbershop_id = ?", f.BarbershopID)

	if f.Action != "" {
		q = q.Where("action = ?", f.Action)
	}
	if f.Entity != "" {
		q = q.Where("entity = ?", f.Entity)
	}
	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("created_at < ?", *f.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC, id DESC").
		Limit(f.Limit).
		Offset((f.Page - 1) * f.Limit).
		Find(&logs).Error; err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}
