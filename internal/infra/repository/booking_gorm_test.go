package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-agenda/internal/db/dbtest"
	"github.com/BruksfildServices01/barber-agenda/internal/domain/calendar"
	"github.com/BruksfildServices01/barber-agenda/internal/domain/partition"
	"github.com/BruksfildServices01/barber-agenda/internal/httperr"
	"github.com/BruksfildServices01/barber-agenda/internal/models"
)

func newBooking(p partition.Partition, d calendar.Date, time string, userID uint) *models.Booking {
	return &models.Booking{
		BarbershopID: p.Shop.Ptr(),
		BarberID:     p.Staff.Ptr(),
		Year:         d.Year,
		Month:        d.Month,
		Day:          d.Day,
		Time:         time,
		UserID:       userID,
		Service:      models.DefaultService,
		Status:       models.BookingConfirmed,
	}
}

func TestBookingRepository_SecondConfirmedIsSlotTaken(t *testing.T) {
	ctx := context.Background()
	repo := NewBookingGormRepository(dbtest.Open(t))

	p := partition.ForShop(1)
	d := calendar.Date{Year: 2025, Month: 3, Day: 10}

	require.NoError(t, repo.Create(ctx, newBooking(p, d, "09:00", 1)))

	err := repo.Create(ctx, newBooking(p, d, "09:00", 2))
	assert.True(t, httperr.IsBusiness(err, "slot_taken"), "got %v", err)

	// a different partition is a different key
	require.NoError(t, repo.Create(ctx, newBooking(partition.ForShop(2), d, "09:00", 2)))
	require.NoError(t, repo.Create(ctx, newBooking(partition.Global, d, "09:00", 2)))

	err = repo.Create(ctx, newBooking(partition.Global, d, "09:00", 3))
	assert.True(t, httperr.IsBusiness(err, "slot_taken"), "got %v", err)
}

func TestBookingRepository_CancelledFreesKey(t *testing.T) {
	ctx := context.Background()
	repo := NewBookingGormRepository(dbtest.Open(t))

	p := partition.ForShop(1)
	d := calendar.Date{Year: 2025, Month: 3, Day: 10}

	b := newBooking(p, d, "09:00", 1)
	require.NoError(t, repo.Create(ctx, b))

	taken, err := repo.IsTaken(ctx, p, d, "09:00")
	require.NoError(t, err)
	assert.True(t, taken)

	b.Status = models.BookingCancelled
	require.NoError(t, repo.Update(ctx, b))

	taken, err = repo.IsTaken(ctx, p, d, "09:00")
	require.NoError(t, err)
	assert.False(t, taken)

	require.NoError(t, repo.Create(ctx, newBooking(p, d, "09:00", 2)))
}

func TestBookingRepository_FindConfirmed(t *testing.T) {
	ctx := context.Background()
	repo := NewBookingGormRepository(dbtest.Open(t))

	p := partition.ForStaff(1, 5)
	d := calendar.Date{Year: 2025, Month: 3, Day: 10}
	require.NoError(t, repo.Create(ctx, newBooking(p, d, "09:00", 1)))

	got, err := repo.FindConfirmed(ctx, p, d, "09:00")
	require.NoError(t, err)
	assert.Equal(t, "09:00", got.Time)

	_, err = repo.FindConfirmed(ctx, partition.ForShop(1), d, "09:00")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBookingRepository_ListConfirmedForDayJoinsUsername(t *testing.T) {
	ctx := context.Background()
	gdb := dbtest.Open(t)
	repo := NewBookingGormRepository(gdb)

	u := models.User{Username: "joao", PasswordHash: "x", Role: models.RoleClient}
	require.NoError(t, gdb.Create(&u).Error)

	p := partition.ForShop(1)
	d := calendar.Date{Year: 2025, Month: 3, Day: 10}
	require.NoError(t, repo.Create(ctx, newBooking(p, d, "10:00", u.ID)))
	require.NoError(t, repo.Create(ctx, newBooking(p, d, "08:30", u.ID)))

	cancelled := newBooking(p, d, "09:00", u.ID)
	cancelled.Status = models.BookingCancelled
	require.NoError(t, repo.Create(ctx, cancelled))

	rows, err := repo.ListConfirmedForDay(ctx, p, d)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "08:30", rows[0].Time)
	assert.Equal(t, "10:00", rows[1].Time)
	assert.Equal(t, "joao", rows[0].Username)

	times, err := repo.ConfirmedTimes(ctx, p, d)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"08:30", "10:00"}, times)
}

func TestBookingRepository_ListConfirmedForUserOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewBookingGormRepository(dbtest.Open(t))

	p := partition.ForShop(1)
	require.NoError(t, repo.Create(ctx, newBooking(p, calendar.Date{Year: 2025, Month: 3, Day: 10}, "10:00", 1)))
	require.NoError(t, repo.Create(ctx, newBooking(p, calendar.Date{Year: 2025, Month: 4, Day: 2}, "09:00", 1)))
	require.NoError(t, repo.Create(ctx, newBooking(p, calendar.Date{Year: 2025, Month: 3, Day: 10}, "08:00", 1)))
	require.NoError(t, repo.Create(ctx, newBooking(p, calendar.Date{Year: 2025, Month: 3, Day: 11}, "08:00", 2)))

	got, err := repo.ListConfirmedForUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, 4, got[0].Month)
	assert.Equal(t, "08:00", got[1].Time)
	assert.Equal(t, "10:00", got[2].Time)
}
