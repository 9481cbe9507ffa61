package booking

import (
	"context"

	"github.com/BruksfildServices01/barber-agenda/internal/domain/calendar"
	"github.com/BruksfildServices01/barber-agenda/internal/domain/partition"
	"github.com/BruksfildServices01/barber-agenda/internal/models"
)

// Row is a confirmed booking joined with its requester's username.
type Row struct {
	models.Booking
	Username string
}

type Repository interface {
	// -------- Admission --------
	IsTaken(
		ctx context.Context,
		p partition.Partition,
		d calendar.Date,
		time string,
	) (bool, error)

	// Create fails with the slot_taken business error when a confirmed booking
	// already holds the same key.
	Create(
		ctx context.Context,
		b *models.Booking,
	) error

	// -------- State change --------
	GetByID(
		ctx context.Context,
		id uint,
	) (*models.Booking, error)

	Update(
		ctx context.Context,
		b *models.Booking,
	) error

	FindConfirmed(
		ctx context.Context,
		p partition.Partition,
		d calendar.Date,
		time string,
	) (*models.Booking, error)

	// -------- Reads --------
	ConfirmedTimes(
		ctx context.Context,
		p partition.Partition,
		d calendar.Date,
	) ([]string, error)

	ListConfirmedForUser(
		ctx context.Context,
		userID uint,
	) ([]models.Booking, error)

	ListConfirmedForDay(
		ctx context.Context,
		p partition.Partition,
		d calendar.Date,
	) ([]Row, error)

	ListConfirmedForPartition(
		ctx context.Context,
		p partition.Partition,
	) ([]Row, error)
}
