package booking

import (
	"context"

	"github.com/BruksfildServices01/barber-agenda/internal/domain/actor"
	"github.com/BruksfildServices01/barber-agenda/internal/domain/calendar"
	"github.com/BruksfildServices01/barber-agenda/internal/domain/partition"
	"github.com/BruksfildServices01/barber-agenda/internal/httperr"
	"github.com/BruksfildServices01/barber-agenda/internal/usecase/slot"
)

// ReleaseSlot frees a slot from the staff panel: the booking holding it,
// if any, is cancelled and the slot is switched back on.
type ReleaseSlot struct {
	slots  *slot.Store
	cancel *CancelBookingByDetails
}

func NewReleaseSlot(slots *slot.Store, cancel *CancelBookingByDetails) *ReleaseSlot {
	return &ReleaseSlot{slots: slots, cancel: cancel}
}

// Execute reports whether a booking was cancelled. The slot must belong
// to p, otherwise not_allowed.
func (uc *ReleaseSlot) Execute(
	ctx context.Context,
	by actor.Actor,
	p partition.Partition,
	slotID uint,
) (bool, error) {

	s, err := uc.slots.GetSlot(ctx, slotID)
	if err != nil {
		return false, err
	}

	owner := partition.New(partition.FromPtr(s.BarbershopID), partition.FromPtr(s.BarberID))
	if owner != p {
		return false, httperr.ErrBusiness("not_allowed")
	}

	d := calendar.Date{Year: s.Year, Month: s.Month, Day: s.Day}
	found, err := uc.cancel.Execute(ctx, by, p, d, s.Time)
	if err != nil {
		return false, err
	}

	if err := uc.slots.SetSlotActive(ctx, by, s.ID, true); err != nil {
		return false, err
	}
	return found, nil
}
