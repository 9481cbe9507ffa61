package slot

import (
	"context"

	"github.com/BruksfildServices01/barber-agenda/internal/domain/calendar"
	"github.com/BruksfildServices01/barber-agenda/internal/domain/partition"
	"github.com/BruksfildServices01/barber-agenda/internal/models"
)

type Repository interface {
	CountDay(
		ctx context.Context,
		p partition.Partition,
		d calendar.Date,
	) (int64, error)

	// InsertMissing inserts rows, skipping any that already exist for the
	// same (partition, date, time). Returns the number actually inserted.
	InsertMissing(
		ctx context.Context,
		slots []models.Slot,
	) (int64, error)

	ListDay(
		ctx context.Context,
		p partition.Partition,
		d calendar.Date,
	) ([]models.Slot, error)

	GetByID(
		ctx context.Context,
		id uint,
	) (*models.Slot, error)

	SetActive(
		ctx context.Context,
		id uint,
		active bool,
	) error

	SetDayActive(
		ctx context.Context,
		p partition.Partition,
		d calendar.Date,
		active bool,
	) (int64, error)

	Update(
		ctx context.Context,
		id uint,
		time string,
		active bool,
	) error
}
