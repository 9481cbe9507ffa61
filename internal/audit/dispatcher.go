package audit

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-agenda/internal/logger"
)

const (
	ActionBookingCreated   = "booking_created"
	ActionBookingConflict  = "booking_conflict"
	ActionBookingCancelled = "booking_cancelled"
	ActionSlotUpdated      = "slot_updated"
	ActionDayDeactivated   = "day_deactivated"
	ActionDayRestored      = "day_restored"
	ActionShopRegistered   = "barbershop_registered"
	ActionShopUpdated      = "barbershop_updated"
	ActionShopDeleted      = "barbershop_deleted"
	ActionLogoUploaded     = "barbershop_logo_uploaded"
	ActionProfileUpdated   = "profile_updated"
)

type Event struct {
	BarbershopID *uint
	UserID       *uint
	Action       string
	Entity       string
	EntityID     *uint
	Metadata     any
}

type recorder interface {
	Record(ctx context.Context, ev Event) error
}

// Dispatcher writes events off the request path. A full queue drops the
// event; auditing never fails a request.
type Dispatcher struct {
	store recorder
	log   *zap.Logger
	queue chan Event

	// mu guards closed; senders hold it shared so Close cannot close
	// the queue under them.
	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

func NewDispatcher(store recorder, log *zap.Logger, size int) *Dispatcher {
	if size <= 0 {
		size = 100
	}

	d := &Dispatcher{
		store: store,
		log:   logger.OrNop(log),
		queue: make(chan Event, size),
	}

	d.wg.Add(1)
	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()

	for ev := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := d.store.Record(ctx, ev); err != nil {
			d.log.Error("audit write failed",
				zap.String("action", ev.Action),
				zap.Error(err),
			)
		}
		cancel()
	}
}

// Dispatch is safe on a nil Dispatcher. Events sent after Close are
// dropped.
func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.log.Warn("audit dispatcher closed, dropping event", zap.String("action", ev.Action))
		return
	}

	select {
	case d.queue <- ev:
	default:
		d.log.Warn("audit queue full, dropping event", zap.String("action", ev.Action))
	}
}

// Close stops accepting events and waits for queued ones to be written.
func (d *Dispatcher) Close() {
	if d == nil {
		return
	}
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	d.wg.Wait()
}

// U returns a pointer to a copy of v, for the optional ids of Event.
func U(v uint) *uint {
	return &v
}
