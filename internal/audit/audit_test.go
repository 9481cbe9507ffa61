package audit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-agenda/internal/db/dbtest"
)

func TestDispatcher_WritesQueuedEventsOnClose(t *testing.T) {
	gdb := dbtest.Open(t)
	store := NewStore(gdb)
	d := NewDispatcher(store, nil, 10)

	d.Dispatch(Event{BarbershopID: U(1), Action: ActionBookingCreated, Entity: "booking", EntityID: U(9), Metadata: map[string]string{"time": "09:00"}})
	d.Dispatch(Event{BarbershopID: U(1), Action: ActionBookingCancelled, Entity: "booking", EntityID: U(9)})
	d.Dispatch(Event{BarbershopID: U(2), Action: ActionBookingCreated, Entity: "booking"})
	d.Close()

	logs, total, err := store.List(context.Background(), Filter{BarbershopID: 1, Page: 1, Limit: 50})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, logs, 2)
	assert.Equal(t, ActionBookingCancelled, logs[0].Action)
	assert.JSONEq(t, `{"time":"09:00"}`, logs[1].Metadata)
}

func TestStore_ListFilters(t *testing.T) {
	ctx := context.Background()
	store := NewStore(dbtest.Open(t))

	require.NoError(t, store.Record(ctx, Event{BarbershopID: U(1), Action: ActionDayDeactivated, Entity: "day"}))
	require.NoError(t, store.Record(ctx, Event{BarbershopID: U(1), Action: ActionSlotUpdated, Entity: "slot"}))
	require.NoError(t, store.Record(ctx, Event{BarbershopID: U(1), Action: ActionSlotUpdated, Entity: "slot"}))

	logs, total, err := store.List(ctx, Filter{BarbershopID: 1, Action: ActionSlotUpdated, Page: 1, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, logs, 1)

	future := time.Now().Add(time.Hour)
	_, total, err = store.List(ctx, Filter{BarbershopID: 1, From: &future, Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestDispatcher_NilIsSafe(t *testing.T) {
	var d *Dispatcher
	d.Dispatch(Event{Action: ActionBookingCreated})
	d.Close()
}

// recordCounter counts writes without a database.
type recordCounter struct {
	mu sync.Mutex
	n  int
}

func (r *recordCounter) Record(context.Context, Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.n++
	return nil
}

func TestDispatcher_DispatchAfterCloseIsDropped(t *testing.T) {
	rec := &recordCounter{}
	d := NewDispatcher(rec, nil, 10)

	d.Dispatch(Event{Action: ActionBookingCreated})
	d.Close()

	assert.NotPanics(t, func() {
		d.Dispatch(Event{Action: ActionBookingCancelled})
	})
	d.Close()
	assert.Equal(t, 1, rec.n)
}

func TestDispatcher_ConcurrentDispatchAndClose(t *testing.T) {
	d := NewDispatcher(&recordCounter{}, nil, 1000)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				d.Dispatch(Event{Action: ActionSlotUpdated})
			}
		}()
	}
	d.Close()
	wg.Wait()
}
