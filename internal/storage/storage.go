// Package storage puts public objects (barbershop logos) somewhere a
// browser can fetch them.
package storage

import (
	"context"
	"sync"
)

type ObjectStore interface {
	// Put stores body under key and returns its public URL.
	Put(ctx context.Context, key, contentType string, body []byte) (string, error)
}

// Memory keeps objects in process. Used by tests and local runs.
type Memory struct {
	BaseURL string

	mu      sync.Mutex
	objects map[string][]byte
}

func (m *Memory) Put(_ context.Context, key, _ string, body []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.objects == nil {
		m.objects = make(map[string][]byte)
	}
	m.objects[key] = append([]byte(nil), body...)
	return joinURL(m.BaseURL, key), nil
}

func (m *Memory) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.objects[key]
	return b, ok
}
