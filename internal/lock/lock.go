// Package lock serializes short critical sections keyed by name, either
// inside one process or across replicas through redis.
package lock

import (
	"context"
	"sync"
)

type Unlock func()

type Locker interface {
	Lock(ctx context.Context, key string) (Unlock, error)
}

// ======================================================
// LOCAL
// ======================================================

type entry struct {
	ch   chan struct{}
	refs int
}

// Local is a keyed mutex. Entries are dropped when no caller holds or
// waits on them.
type Local struct {
	mu    sync.Mutex
	locks map[string]*entry
}

func NewLocal() *Local {
	return &Local{locks: make(map[string]*entry)}
}

func (l *Local) Lock(ctx context.Context, key string) (Unlock, error) {
	l.mu.Lock()
	e, ok := l.locks[key]
	if !ok {
		e = &entry{ch: make(chan struct{}, 1)}
		l.locks[key] = e
	}
	e.refs++
	l.mu.Unlock()

	select {
	case e.ch <- struct{}{}:
	case <-ctx.Done():
		l.release(key, e, false)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() { l.release(key, e, true) })
	}, nil
}

func (l *Local) release(key string, e *entry, held bool) {
	if held {
		<-e.ch
	}

	l.mu.Lock()
	e.refs--
	if e.refs == 0 {
		delete(l.locks, key)
	}
	l.mu.Unlock()
}

// Len is the number of live keys.
func (l *Local) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}

// ======================================================
// NOOP
// ======================================================

type Noop struct{}

func (Noop) Lock(context.Context, string) (Unlock, error) {
	return func() {}, nil
}

// OrNoop returns l, or a Locker that never blocks when l is nil.
func OrNoop(l Locker) Locker {
	if l == nil {
		return Noop{}
	}
	return l
}
