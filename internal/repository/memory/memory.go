// Package memory is a process-local snapshot store, used for tests and for
// running without durable storage.
package memory

import (
	"context"
	"encoding/json"
	"slices"
	"sync"

	"github.com/PrathamSatpute/SkillSwap-Hackthon/internal/domain"
)

// DB implements domain.Database in memory.
type DB struct {
	mu   sync.RWMutex
	data map[string]json.RawMessage
}

func New() *DB {
	return &DB{data: make(map[string]json.RawMessage)}
}

func (d *DB) Migrate(context.Context) error { return nil }

func (d *DB) Close() error { return nil }

func (d *DB) Get(_ context.Context, key string) (json.RawMessage, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	v, ok := d.data[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return slices.Clone(v), nil
}

func (d *DB) Put(_ context.Context, key string, value json.RawMessage) error {
	d.mu.Lock()
	d.data[key] = slices.Clone(value)
	d.mu.Unlock()
	return nil
}

func (d *DB) Delete(_ context.Context, keys ...string) error {
	d.mu.Lock()
	for _, k := range keys {
		delete(d.data, k)
	}
	d.mu.Unlock()
	return nil
}
