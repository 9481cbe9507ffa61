package availability

import (
	"context"
	"fmt"

	"github.com/BruksfildServices01/barber-agenda/internal/clock"
	"github.com/BruksfildServices01/barber-agenda/internal/domain/booking"
	"github.com/BruksfildServices01/barber-agenda/internal/domain/calendar"
	"github.com/BruksfildServices01/barber-agenda/internal/domain/partition"
	"github.com/BruksfildServices01/barber-agenda/internal/dto"
	"github.com/BruksfildServices01/barber-agenda/internal/models"
)

// slotLister is satisfied by slot.Store.
type slotLister interface {
	ListDay(ctx context.Context, p partition.Partition, d calendar.Date) ([]models.Slot, error)
}

// ======================================================
// RESOLVER
// ======================================================

// Resolver merges slot activity with booking occupancy. Nothing it
// computes is stored.
type Resolver struct {
	slots    slotLister
	bookings booking.Repository
	clock    clock.Clock
}

func NewResolver(slots slotLister, bookings booking.Repository, clk clock.Clock) *Resolver {
	return &Resolver{slots: slots, bookings: bookings, clock: clk}
}

// ResolveDay lists every slot of the day by time, seeding the day first.
// Available is Active && !Taken; it ignores the clock.
func (r *Resolver) ResolveDay(
	ctx context.Context,
	p partition.Partition,
	d calendar.Date,
) ([]dto.SlotViewDTO, error) {

	slots, err := r.slots.ListDay(ctx, p, d)
	if err != nil {
		return nil, err
	}

	times, err := r.bookings.ConfirmedTimes(ctx, p, d)
	if err != nil {
		return nil, fmt.Errorf("confirmed times: %w", err)
	}
	taken := make(map[string]struct{}, len(times))
	for _, t := range times {
		taken[t] = struct{}{}
	}

	out := make([]dto.SlotViewDTO, 0, len(slots))
	for _, s := range slots {
		_, isTaken := taken[s.Time]
		out = append(out, dto.SlotViewDTO{
			ID:        s.ID,
			Time:      s.Time,
			Active:    s.Active,
			Taken:     isTaken,
			Available: s.Active && !isTaken,
		})
	}
	return out, nil
}

// OpenTimes is what a client may still pick: nothing for past days,
// available times after the current HH:MM for today, every available
// time otherwise. The resolved day is returned too.
func (r *Resolver) OpenTimes(
	ctx context.Context,
	p partition.Partition,
	d calendar.Date,
) ([]string, []dto.SlotViewDTO, error) {

	day, err := r.ResolveDay(ctx, p, d)
	if err != nil {
		return nil, nil, err
	}
	return openTimes(day, d, clock.Today(r.clock), clock.NowHM(r.clock)), day, nil
}

func openTimes(day []dto.SlotViewDTO, d, today calendar.Date, nowHM string) []string {
	out := []string{}
	if d.Before(today) {
		return out
	}

	isToday := d.Equal(today)
	for _, s := range day {
		if !s.Available {
			continue
		}
		// HH:MM strings order like times.
		if isToday && s.Time <= nowHM {
			continue
		}
		out = append(out, s.Time)
	}
	return out
}
