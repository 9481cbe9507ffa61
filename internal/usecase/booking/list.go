package booking

import (
	"context"

	domain "github.com/BruksfildServices01/barber-agenda/internal/domain/booking"
	"github.com/BruksfildServices01/barber-agenda/internal/domain/calendar"
	"github.com/BruksfildServices01/barber-agenda/internal/domain/partition"
	"github.com/BruksfildServices01/barber-agenda/internal/dto"
	"github.com/BruksfildServices01/barber-agenda/internal/models"
)

type ListBookings struct {
	repo domain.Repository
}

func NewListBookings(repo domain.Repository) *ListBookings {
	return &ListBookings{repo: repo}
}

// IsSlotTaken reports whether a confirmed booking holds (p, d, t).
func (uc *ListBookings) IsSlotTaken(
	ctx context.Context,
	p partition.Partition,
	d calendar.Date,
	t string,
) (bool, error) {
	return uc.repo.IsTaken(ctx, p, d, t)
}

// ForUser lists the requester's confirmed bookings, newest date first and
// by time within a day.
func (uc *ListBookings) ForUser(ctx context.Context, userID uint) ([]dto.BookingListDTO, error) {
	bookings, err := uc.repo.ListConfirmedForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.BookingListDTO, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, toDTO(b, ""))
	}
	return out, nil
}

// ForDay is the staff view of one day, ordered by time.
func (uc *ListBookings) ForDay(
	ctx context.Context,
	p partition.Partition,
	d calendar.Date,
) ([]dto.BookingListDTO, error) {

	rows, err := uc.repo.ListConfirmedForDay(ctx, p, d)
	if err != nil {
		return nil, err
	}
	return rowsToDTO(rows), nil
}

// ForPartition lists every confirmed booking of p, newest date first.
func (uc *ListBookings) ForPartition(
	ctx context.Context,
	p partition.Partition,
) ([]dto.BookingListDTO, error) {

	rows, err := uc.repo.ListConfirmedForPartition(ctx, p)
	if err != nil {
		return nil, err
	}
	return rowsToDTO(rows), nil
}

func rowsToDTO(rows []domain.Row) []dto.BookingListDTO {
	out := make([]dto.BookingListDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, toDTO(r.Booking, r.Username))
	}
	return out
}

func toDTO(b models.Booking, username string) dto.BookingListDTO {
	d := calendar.Date{Year: b.Year, Month: b.Month, Day: b.Day}

	return dto.BookingListDTO{
		ID:            b.ID,
		Date:          d.String(),
		Year:          b.Year,
		Month:         b.Month,
		Day:           b.Day,
		Time:          b.Time,
		Service:       domain.ServiceOrDefault(b.Service),
		Status:        string(b.Status),
		BarbershopID:  b.BarbershopID,
		BarberID:      b.BarberID,
		Customer:      domain.DisplayName(b.CustomerName, username),
		CustomerPhone: b.CustomerPhone,
		Username:      username,
	}
}
