package slot

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-agenda/internal/audit"
	"github.com/BruksfildServices01/barber-agenda/internal/domain/actor"
	"github.com/BruksfildServices01/barber-agenda/internal/domain/calendar"
	"github.com/BruksfildServices01/barber-agenda/internal/domain/partition"
	domain "github.com/BruksfildServices01/barber-agenda/internal/domain/slot"
	"github.com/BruksfildServices01/barber-agenda/internal/domain/timegrid"
	"github.com/BruksfildServices01/barber-agenda/internal/httperr"
	"github.com/BruksfildServices01/barber-agenda/internal/infra/repository"
	"github.com/BruksfildServices01/barber-agenda/internal/lock"
	"github.com/BruksfildServices01/barber-agenda/internal/logger"
	"github.com/BruksfildServices01/barber-agenda/internal/metrics"
	"github.com/BruksfildServices01/barber-agenda/internal/models"
)

// ======================================================
// STORE
// ======================================================

// Store owns slot materialization and the staff mutation surface. It does
// no authorization; callers check role and tenant first.
type Store struct {
	repo     domain.Repository
	bookings BookingChecker
	locker   lock.Locker
	audit    *audit.Dispatcher
	log      *zap.Logger
	grid     func() []string
}

// BookingChecker reports confirmed bookings. booking.Repository satisfies it.
type BookingChecker interface {
	IsTaken(ctx context.Context, p partition.Partition, d calendar.Date, t string) (bool, error)
}

// NewStore accepts nil bookings; slot times can then move freely.
func NewStore(
	repo domain.Repository,
	bookings BookingChecker,
	locker lock.Locker,
	audit *audit.Dispatcher,
	log *zap.Logger,
) *Store {
	return &Store{
		repo:     repo,
		bookings: bookings,
		locker:   lock.OrNoop(locker),
		audit:    audit,
		log:      logger.OrNop(log),
		grid:     timegrid.DefaultTimes,
	}
}

// ======================================================
// SEEDING
// ======================================================

// EnsureDaySeeded materializes the default grid for (p, d) when the day
// has no rows yet. Safe to call concurrently and repeatedly.
func (s *Store) EnsureDaySeeded(
	ctx context.Context,
	p partition.Partition,
	d calendar.Date,
) error {

	count, err := s.repo.CountDay(ctx, p, d)
	if err != nil {
		return fmt.Errorf("count slots: %w", err)
	}
	if count > 0 {
		return nil
	}

	unlock, err := s.locker.Lock(ctx, "seed:"+p.Key()+":"+d.String())
	if err != nil {
		return fmt.Errorf("seed lock: %w", err)
	}
	defer unlock()

	// Re-check under the lock; the unique index still guards other writers.
	count, err = s.repo.CountDay(ctx, p, d)
	if err != nil {
		return fmt.Errorf("count slots: %w", err)
	}
	if count > 0 {
		return nil
	}

	times := s.grid()
	rows := make([]models.Slot, 0, len(times))
	for _, t := range times {
		rows = append(rows, models.Slot{
			BarbershopID: p.Shop.Ptr(),
			BarberID:     p.Staff.Ptr(),
			Year:         d.Year,
			Month:        d.Month,
			Day:          d.Day,
			Time:         t,
			Active:       true,
		})
	}

	inserted, err := s.repo.InsertMissing(ctx, rows)
	if err != nil {
		return fmt.Errorf("seed slots: %w", err)
	}

	metrics.SlotsSeeded.Add(float64(inserted))
	s.log.Debug("day seeded",
		zap.String("partition", p.Key()),
		zap.String("date", d.String()),
		zap.Int64("inserted", inserted),
	)
	return nil
}

func (s *Store) ListDay(
	ctx context.Context,
	p partition.Partition,
	d calendar.Date,
) ([]models.Slot, error) {

	if err := s.EnsureDaySeeded(ctx, p, d); err != nil {
		return nil, err
	}
	return s.repo.ListDay(ctx, p, d)
}

// ======================================================
// SINGLE SLOT
// ======================================================

func (s *Store) GetSlot(ctx context.Context, id uint) (*models.Slot, error) {
	sl, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, httperr.ErrBusiness("not_found")
	}
	return sl, err
}

func (s *Store) SetSlotActive(ctx context.Context, by actor.Actor, id uint, active bool) error {
	err := s.repo.SetActive(ctx, id, active)
	if errors.Is(err, repository.ErrNotFound) {
		return httperr.ErrBusiness("not_found")
	}
	if err != nil {
		return err
	}

	s.audit.Dispatch(audit.Event{
		BarbershopID: by.ShopRef(),
		UserID:       by.UserRef(),
		Action:       audit.ActionSlotUpdated,
		Entity:       "slot",
		EntityID:     audit.U(id),
		Metadata:     map[string]any{"active": active},
	})
	return nil
}

// SlotPatch holds optional fields; nil means unchanged.
type SlotPatch struct {
	Time   *string
	Active *bool
}

func (s *Store) UpdateSlot(ctx context.Context, by actor.Actor, id uint, patch SlotPatch) (*models.Slot, error) {
	current, err := s.GetSlot(ctx, id)
	if err != nil {
		return nil, err
	}

	newTime := current.Time
	if patch.Time != nil {
		if !timegrid.ValidTime(*patch.Time) {
			return nil, httperr.ErrBusiness("invalid_time")
		}
		newTime = *patch.Time
	}
	newActive := current.Active
	if patch.Active != nil {
		newActive = *patch.Active
	}

	// A booked time cannot move away from its booking.
	if newTime != current.Time && s.bookings != nil {
		taken, err := s.bookings.IsTaken(ctx, slotPartition(current), slotDate(current), current.Time)
		if err != nil {
			return nil, fmt.Errorf("check booking: %w", err)
		}
		if taken {
			return nil, httperr.ErrBusiness("slot_taken")
		}
	}

	switch err := s.repo.Update(ctx, id, newTime, newActive); {
	case errors.Is(err, repository.ErrDuplicateSlot):
		return nil, httperr.ErrBusiness("slot_exists")
	case errors.Is(err, repository.ErrNotFound):
		return nil, httperr.ErrBusiness("not_found")
	case err != nil:
		return nil, err
	}

	current.Time = newTime
	current.Active = newActive

	s.audit.Dispatch(audit.Event{
		BarbershopID: by.ShopRef(),
		UserID:       by.UserRef(),
		Action:       audit.ActionSlotUpdated,
		Entity:       "slot",
		EntityID:     audit.U(id),
		Metadata:     map[string]any{"time": newTime, "active": newActive},
	})
	return current, nil
}

// ======================================================
// WHOLE DAY
// ======================================================

func (s *Store) SetDayActive(
	ctx context.Context,
	by actor.Actor,
	p partition.Partition,
	d calendar.Date,
	active bool,
) error {

	if err := s.EnsureDaySeeded(ctx, p, d); err != nil {
		return err
	}

	n, err := s.repo.SetDayActive(ctx, p, d, active)
	if err != nil {
		return fmt.Errorf("set day active: %w", err)
	}

	action := audit.ActionDayDeactivated
	if active {
		action = audit.ActionDayRestored
	}
	s.audit.Dispatch(audit.Event{
		BarbershopID: by.ShopRef(),
		UserID:       by.UserRef(),
		Action:       action,
		Entity:       "day",
		Metadata:     map[string]any{"date": d.String(), "partition": p.Key(), "slots": n},
	})
	s.log.Info("day availability changed",
		zap.String("partition", p.Key()),
		zap.String("date", d.String()),
		zap.Bool("active", active),
	)
	return nil
}

// RestoreDay activates every slot of the day. Slots that were inactive
// before the day was deactivated come back active too.
func (s *Store) RestoreDay(
	ctx context.Context,
	by actor.Actor,
	p partition.Partition,
	d calendar.Date,
) error {
	return s.SetDayActive(ctx, by, p, d, true)
}

func slotPartition(s *models.Slot) partition.Partition {
	return partition.New(partition.FromPtr(s.BarbershopID), partition.FromPtr(s.BarberID))
}

func slotDate(s *models.Slot) calendar.Date {
	return calendar.Date{Year: s.Year, Month: s.Month, Day: s.Day}
}
