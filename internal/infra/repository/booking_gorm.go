package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barber-agenda/internal/domain/booking"
	"github.com/BruksfildServices01/barber-agenda/internal/domain/calendar"
	"github.com/BruksfildServices01/barber-agenda/internal/domain/partition"
	"github.com/BruksfildServices01/barber-agenda/internal/httperr"
	"github.com/BruksfildServices01/barber-agenda/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

var _ domain.Repository = (*BookingGormRepository)(nil)

func (r *BookingGormRepository) confirmed(
	ctx context.Context,
	p partition.Partition,
) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Scopes(partitionScope("bookings.", p)).
		Where("bookings.status = ?", models.BookingConfirmed)
}

// --------------------------------------------------
// Admission
// --------------------------------------------------

func (r *BookingGormRepository) IsTaken(
	ctx context.Context,
	p partition.Partition,
	d calendar.Date,
	time string,
) (bool, error) {

	var count int64
	if err := r.confirmed(ctx, p).
		Scopes(dayScope("bookings.", d)).
		Where("bookings.start_time = ?", time).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *BookingGormRepository) Create(
	ctx context.Context,
	b *models.Booking,
) error {

	if err := r.db.WithContext(ctx).Create(b).Error; err != nil {
		if isUniqueViolation(err) {
			return httperr.ErrBusiness("slot_taken")
		}
		return err
	}
	return nil
}

// --------------------------------------------------
// State change
// --------------------------------------------------

func (r *BookingGormRepository) GetByID(
	ctx context.Context,
	id uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &b, nil
}

func (r *BookingGormRepository) Update(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *BookingGormRepository) FindConfirmed(
	ctx context.Context,
	p partition.Partition,
	d calendar.Date,
	time string,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.confirmed(ctx, p).
		Scopes(dayScope("bookings.", d)).
		Where("bookings.start_time = ?", time).
		First(&b).Error; err != nil {
		return nil, notFound(err)
	}
	return &b, nil
}

// --------------------------------------------------
// Reads
// --------------------------------------------------

func (r *BookingGormRepository) ConfirmedTimes(
	ctx context.Context,
	p partition.Partition,
	d calendar.Date,
) ([]string, error) {

	var times []string
	if err := r.confirmed(ctx, p).
		Scopes(dayScope("bookings.", d)).
		Pluck("bookings.start_time", &times).Error; err != nil {
		return nil, err
	}
	return times, nil
}

func (r *BookingGormRepository) ListConfirmedForUser(
	ctx context.Context,
	userID uint,
) ([]models.Booking, error) {

	var out []models.Booking
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, models.BookingConfirmed).
		Order("year DESC, month DESC, day DESC, start_time ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *BookingGormRepository) ListConfirmedForDay(
	ctx context.Context,
	p partition.Partition,
	d calendar.Date,
) ([]domain.Row, error) {

	var rows []domain.Row
	if err := r.confirmed(ctx, p).
		Scopes(dayScope("bookings.", d)).
		Select("bookings.*, users.username AS username").
		Joins("LEFT JOIN users ON users.id = bookings.user_id").
		Order("bookings.start_time ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *BookingGormRepository) ListConfirmedForPartition(
	ctx context.Context,
	p partition.Partition,
) ([]domain.Row, error) {

	var rows []domain.Row
	if err := r.confirmed(ctx, p).
		Select("bookings.*, users.username AS username").
		Joins("LEFT JOIN users ON users.id = bookings.user_id").
		Order("bookings.year DESC, bookings.month DESC, bookings.day DESC, bookings.start_time ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
