package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/barber-agenda/internal/domain/calendar"
	"github.com/BruksfildServices01/barber-agenda/internal/domain/partition"
	domain "github.com/BruksfildServices01/barber-agenda/internal/domain/slot"
	"github.com/BruksfildServices01/barber-agenda/internal/models"
)

type SlotGormRepository struct {
	db *gorm.DB
}

func NewSlotGormRepository(db *gorm.DB) *SlotGormRepository {
	return &SlotGormRepository{db: db}
}

var _ domain.Repository = (*SlotGormRepository)(nil)

// --------------------------------------------------
// Seeding
// --------------------------------------------------

func (r *SlotGormRepository) CountDay(
	ctx context.Context,
	p partition.Partition,
	d calendar.Date,
) (int64, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Slot{}).
		Scopes(partitionScope("", p), dayScope("", d)).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *SlotGormRepository) InsertMissing(
	ctx context.Context,
	slots []models.Slot,
) (int64, error) {

	if len(slots) == 0 {
		return 0, nil
	}

	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&slots)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// --------------------------------------------------
// Reads
// --------------------------------------------------

func (r *SlotGormRepository) ListDay(
	ctx context.Context,
	p partition.Partition,
	d calendar.Date,
) ([]models.Slot, error) {

	var slots []models.Slot
	if err := r.db.WithContext(ctx).
		Scopes(partitionScope("", p), dayScope("", d)).
		Order("start_time ASC").
		Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *SlotGormRepository) GetByID(
	ctx context.Context,
	id uint,
) (*models.Slot, error) {

	var s models.Slot
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &s, nil
}

// --------------------------------------------------
// Mutations
// --------------------------------------------------

func (r *SlotGormRepository) SetActive(
	ctx context.Context,
	id uint,
	active bool,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Slot{}).
		Where("id = ?", id).
		Update("active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SlotGormRepository) SetDayActive(
	ctx context.Context,
	p partition.Partition,
	d calendar.Date,
	active bool,
) (int64, error) {

	res := r.db.WithContext(ctx).
		Model(&models.Slot{}).
		Scopes(partitionScope("", p), dayScope("", d)).
		Update("active", active)
	return res.RowsAffected, res.Error
}

// Update rewrites time and flag together. Moving a slot onto a time that
// already exists in its day is a unique violation.
func (r *SlotGormRepository) Update(
	ctx context.Context,
	id uint,
	time string,
	active bool,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Slot{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"start_time": time,
			"active":     active,
		})
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return ErrDuplicateSlot
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
