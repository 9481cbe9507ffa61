package booking

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-agenda/internal/clock"
	"github.com/BruksfildServices01/barber-agenda/internal/db/dbtest"
	"github.com/BruksfildServices01/barber-agenda/internal/domain/actor"
	"github.com/BruksfildServices01/barber-agenda/internal/domain/calendar"
	"github.com/BruksfildServices01/barber-agenda/internal/domain/partition"
	"github.com/BruksfildServices01/barber-agenda/internal/httperr"
	"github.com/BruksfildServices01/barber-agenda/internal/infra/repository"
	"github.com/BruksfildServices01/barber-agenda/internal/lock"
	"github.com/BruksfildServices01/barber-agenda/internal/models"
	"github.com/BruksfildServices01/barber-agenda/internal/usecase/slot"
)

var (
	now     = clock.Fixed{T: time.Date(2025, 3, 5, 15, 0, 0, 0, time.UTC)}
	march10 = calendar.Date{Year: 2025, Month: 3, Day: 10}
	shopP   = partition.ForShop(1)
)

type fixture struct {
	db      *gorm.DB
	repo    *repository.BookingGormRepository
	create  *CreateBooking
	cancel  *CancelBooking
	details *CancelBookingByDetails
	list    *ListBookings
	user    models.User
}

func setup(t *testing.T, locker lock.Locker) fixture {
	t.Helper()

	gdb := dbtest.Open(t)
	repo := repository.NewBookingGormRepository(gdb)

	u := models.User{Username: "maria", PasswordHash: "x", Role: models.RoleClient}
	require.NoError(t, gdb.Create(&u).Error)

	return fixture{
		db:      gdb,
		repo:    repo,
		create:  NewCreateBooking(repo, locker, now, nil, nil),
		cancel:  NewCancelBooking(repo, now, nil, nil),
		details: NewCancelBookingByDetails(repo, now, nil, nil),
		list:    NewListBookings(repo),
		user:    u,
	}
}

func (f fixture) book(p partition.Partition, d calendar.Date, tm string) (*models.Booking, error) {
	return f.create.Execute(context.Background(), CreateBookingInput{
		RequesterID: f.user.ID,
		Partition:   p,
		Date:        d,
		Time:        tm,
	})
}

func TestCreateBooking_SameSlotTwice(t *testing.T) {
	f := setup(t, lock.NewLocal())

	b, err := f.book(shopP, march10, "09:00")
	require.NoError(t, err)
	assert.Equal(t, models.BookingConfirmed, b.Status)
	assert.Equal(t, models.DefaultService, b.Service)

	_, err = f.book(shopP, march10, "09:00")
	assert.True(t, httperr.IsBusiness(err, "slot_taken"), "got %v", err)
}

func TestCreateBooking_Validation(t *testing.T) {
	f := setup(t, nil)

	tests := []struct {
		name string
		date calendar.Date
		time string
		code string
	}{
		{"bad time", march10, "9h", "invalid_time"},
		{"empty time", march10, "", "invalid_time"},
		{"out of range time", march10, "25:00", "invalid_time"},
		{"impossible day", calendar.Date{Year: 2025, Month: 2, Day: 30}, "09:00", "invalid_day"},
		{"yesterday", calendar.Date{Year: 2025, Month: 3, Day: 4}, "09:00", "past_date"},
		{"last year", calendar.Date{Year: 2024, Month: 12, Day: 31}, "09:00", "past_date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.book(shopP, tt.date, tt.time)
			assert.True(t, httperr.IsBusiness(err, tt.code), "got %v", err)
		})
	}
}

func TestCreateBooking_PastDateWinsOverTakenSlot(t *testing.T) {
	f := setup(t, nil)

	past := calendar.Date{Year: 2025, Month: 3, Day: 1}
	require.NoError(t, f.repo.Create(context.Background(), &models.Booking{
		BarbershopID: shopP.Shop.Ptr(), Year: 2025, Month: 3, Day: 1, Time: "09:00",
		UserID: f.user.ID, Service: "x", Status: models.BookingConfirmed,
	}))

	_, err := f.book(shopP, past, "09:00")
	assert.True(t, httperr.IsBusiness(err, "past_date"))
}

func TestCreateBooking_TodayElapsedTimeIsAccepted(t *testing.T) {
	f := setup(t, nil)

	today := clock.Today(now)
	_, err := f.book(shopP, today, "08:00")
	assert.NoError(t, err)
}

func TestCreateBooking_ConcurrentSingleWinner(t *testing.T) {
	// no locker: the partial unique index is the only guard
	f := setup(t, nil)

	var ok, taken int32
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.book(shopP, march10, "10:00")
			switch {
			case err == nil:
				atomic.AddInt32(&ok, 1)
			case httperr.IsBusiness(err, "slot_taken"):
				atomic.AddInt32(&taken, 1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), ok)
	assert.Equal(t, int32(9), taken)

	var n int64
	f.db.Model(&models.Booking{}).Where("status = ?", models.BookingConfirmed).Count(&n)
	assert.Equal(t, int64(1), n)
}

func TestCreateBooking_PartitionIsolation(t *testing.T) {
	f := setup(t, nil)
	ctx := context.Background()

	_, err := f.book(partition.ForStaff(1, 7), march10, "09:00")
	require.NoError(t, err)

	for _, p := range []partition.Partition{
		partition.ForStaff(2, 7),
		partition.ForStaff(1, 8),
		partition.ForShop(1),
		partition.Global,
	} {
		rows, err := f.list.ForDay(ctx, p, march10)
		require.NoError(t, err)
		assert.Empty(t, rows, p.Key())

		taken, err := f.list.IsSlotTaken(ctx, p, march10, "09:00")
		require.NoError(t, err)
		assert.False(t, taken, p.Key())

		_, err = f.book(p, march10, "09:00")
		assert.NoError(t, err, p.Key())
	}
}

func TestCancel_RoundTrip(t *testing.T) {
	f := setup(t, nil)
	ctx := context.Background()

	b, err := f.book(shopP, march10, "09:00")
	require.NoError(t, err)

	mine, err := f.list.ForUser(ctx, f.user.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)

	got, err := f.cancel.Execute(ctx, CancelBookingInput{BookingID: b.ID})
	require.NoError(t, err)
	assert.Equal(t, models.BookingCancelled, got.Status)
	require.NotNil(t, got.CancelledAt)
	assert.True(t, got.CancelledAt.Equal(now.T))

	// twice is a no-op
	again, err := f.cancel.Execute(ctx, CancelBookingInput{BookingID: b.ID})
	require.NoError(t, err)
	assert.Equal(t, models.BookingCancelled, again.Status)

	mine, err = f.list.ForUser(ctx, f.user.ID)
	require.NoError(t, err)
	assert.Empty(t, mine)

	// the slot is free again
	_, err = f.book(shopP, march10, "09:00")
	assert.NoError(t, err)
}

func TestCancel_UnknownAndUnauthorized(t *testing.T) {
	f := setup(t, nil)
	ctx := context.Background()

	_, err := f.cancel.Execute(ctx, CancelBookingInput{BookingID: 404})
	assert.True(t, httperr.IsBusiness(err, "not_found"))

	b, err := f.book(shopP, march10, "09:00")
	require.NoError(t, err)

	_, err = f.cancel.Execute(ctx, CancelBookingInput{
		BookingID: b.ID,
		Authorize: func(*models.Booking) bool { return false },
	})
	assert.True(t, httperr.IsBusiness(err, "not_allowed"))

	taken, err := f.list.IsSlotTaken(ctx, shopP, march10, "09:00")
	require.NoError(t, err)
	assert.True(t, taken)
}

func TestCancelByDetails(t *testing.T) {
	f := setup(t, nil)
	ctx := context.Background()

	found, err := f.details.Execute(ctx, actor.Anonymous, shopP, march10, "09:00")
	require.NoError(t, err)
	assert.False(t, found)

	_, err = f.book(shopP, march10, "09:00")
	require.NoError(t, err)

	// another partition does not see it
	found, err = f.details.Execute(ctx, actor.Anonymous, partition.ForShop(2), march10, "09:00")
	require.NoError(t, err)
	assert.False(t, found)

	found, err = f.details.Execute(ctx, actor.Anonymous, shopP, march10, "09:00")
	require.NoError(t, err)
	assert.True(t, found)

	taken, err := f.list.IsSlotTaken(ctx, shopP, march10, "09:00")
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestListBookings_DisplayNames(t *testing.T) {
	f := setup(t, nil)
	ctx := context.Background()

	_, err := f.create.Execute(ctx, CreateBookingInput{
		RequesterID:  f.user.ID,
		Partition:    shopP,
		Date:         march10,
		Time:         "10:00",
		Service:      "barba",
		CustomerName: "Carlos",
	})
	require.NoError(t, err)
	_, err = f.book(shopP, march10, "08:30")
	require.NoError(t, err)
	_, err = f.book(shopP, calendar.Date{Year: 2025, Month: 4, Day: 1}, "08:00")
	require.NoError(t, err)

	day, err := f.list.ForDay(ctx, shopP, march10)
	require.NoError(t, err)
	require.Len(t, day, 2)
	assert.Equal(t, "maria", day[0].Customer)
	assert.Equal(t, "Carlos", day[1].Customer)
	assert.Equal(t, "barba", day[1].Service)

	all, err := f.list.ForPartition(ctx, shopP)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "2025-04-01", all[0].Date)
}

func TestReleaseSlot(t *testing.T) {
	f := setup(t, nil)
	ctx := context.Background()

	slots := slot.NewStore(repository.NewSlotGormRepository(f.db), f.repo, nil, nil, nil)
	release := NewReleaseSlot(slots, f.details)

	day, err := slots.ListDay(ctx, shopP, march10)
	require.NoError(t, err)
	target := day[2]
	require.NoError(t, slots.SetSlotActive(ctx, actor.Anonymous, target.ID, false))

	_, err = f.book(shopP, march10, target.Time)
	require.NoError(t, err)

	_, err = release.Execute(ctx, actor.Anonymous, partition.ForShop(2), target.ID)
	assert.True(t, httperr.IsBusiness(err, "not_allowed"))

	found, err := release.Execute(ctx, actor.Anonymous, shopP, target.ID)
	require.NoError(t, err)
	assert.True(t, found)

	got, err := slots.GetSlot(ctx, target.ID)
	require.NoError(t, err)
	assert.True(t, got.Active)

	taken, err := f.list.IsSlotTaken(ctx, shopP, march10, target.Time)
	require.NoError(t, err)
	assert.False(t, taken)
}
