// Package cache provides a bounded in-memory key-value cache with per-entry
// expiry and oldest-first eviction.
package cache

import (
	"context"
	"sync"
	"time"
)

const (
	DefaultTTL     = 5 * time.Minute
	DefaultMaxSize = 100
)

// Observer receives hit and miss notifications, e.g. for metrics.
type Observer interface {
	Hit(name string)
	Miss(name string)
}

type entry[V any] struct {
	value      V
	insertedAt time.Time
	ttl        time.Duration
}

// Cache is safe for concurrent use. Each call behaves as if the cache were
// accessed by a single caller.
type Cache[K comparable, V any] struct {
	mu       sync.Mutex
	name     string
	items    map[K]*entry[V]
	ttl      time.Duration
	maxSize  int
	now      func() time.Time
	observer Observer
	hits     uint64
	misses   uint64
}

// Option configures a Cache.
type Option func(*options)

type options struct {
	name     string
	ttl      time.Duration
	maxSize  int
	now      func() time.Time
	observer Observer
}

// WithTTL sets the default time-to-live for entries stored without one.
func WithTTL(ttl time.Duration) Option {
	return func(o *options) { o.ttl = ttl }
}

// WithMaxSize bounds the number of entries.
func WithMaxSize(n int) Option {
	return func(o *options) { o.maxSize = n }
}

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithName labels the cache for observers.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithObserver attaches hit/miss reporting.
func WithObserver(obs Observer) Option {
	return func(o *options) { o.observer = obs }
}

// New creates an empty cache. Non-positive ttl or size fall back to the defaults.
func New[K comparable, V any](opts ...Option) *Cache[K, V] {
	o := options{ttl: DefaultTTL, maxSize: DefaultMaxSize, now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if o.ttl <= 0 {
		o.ttl = DefaultTTL
	}
	if o.maxSize <= 0 {
		o.maxSize = DefaultMaxSize
	}
	return &Cache[K, V]{
		name:     o.name,
		items:    make(map[K]*entry[V]),
		ttl:      o.ttl,
		maxSize:  o.maxSize,
		now:      o.now,
		observer: o.observer,
	}
}

// Set inserts or overwrites key. A zero ttl uses the cache default.
func (c *Cache[K, V]) Set(key K, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	c.purge(now)
	if len(c.items) >= c.maxSize {
		c.evictOldest()
	}

	if ttl <= 0 {
		ttl = c.ttl
	}
	c.items[key] = &entry[V]{value: value, insertedAt: now, ttl: ttl}
}

// Get returns the value for key if it has not expired.
// Expired entries are removed on access.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	v, ok := c.get(key)
	c.mu.Unlock()

	if c.observer != nil {
		if ok {
			c.observer.Hit(c.name)
		} else {
			c.observer.Miss(c.name)
		}
	}
	return v, ok
}

func (c *Cache[K, V]) get(key K) (V, bool) {
	var zero V
	e, ok := c.items[key]
	if !ok {
		c.misses++
		return zero, false
	}
	if c.now().Sub(e.insertedAt) > e.ttl {
		delete(c.items, key)
		c.misses++
		return zero, false
	}
	c.hits++
	return e.value, true
}

// Has reports whether Get would return a value.
func (c *Cache[K, V]) Has(key K) bool {
	_, ok := c.Get(key)
	return ok
}

// Delete removes key. Deleting a missing key is a no-op.
func (c *Cache[K, V]) Delete(key K) {
	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()
}

// Clear removes every entry.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	clear(c.items)
	c.mu.Unlock()
}

// Len returns the number of live entries.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.purge(c.now())
	return len(c.items)
}

// Keys returns the live keys in no particular order.
func (c *Cache[K, V]) Keys() []K {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.purge(c.now())
	keys := make([]K, 0, len(c.items))
	for k := range c.items {
		keys = append(keys, k)
	}
	return keys
}

// Stats is a point-in-time view of the cache.
type Stats struct {
	Size    int           `json:"size"`
	MaxSize int           `json:"maxSize"`
	TTL     time.Duration `json:"ttl"`
	Hits    uint64        `json:"hits"`
	Misses  uint64        `json:"misses"`
}

func (c *Cache[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.purge(c.now())
	return Stats{
		Size:    len(c.items),
		MaxSize: c.maxSize,
		TTL:     c.ttl,
		Hits:    c.hits,
		Misses:  c.misses,
	}
}

// GetOrLoad returns the cached value for key, or calls load and caches its
// result. Load errors are returned and nothing is cached.
func (c *Cache[K, V]) GetOrLoad(ctx context.Context, key K, ttl time.Duration, load func(context.Context) (V, error)) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}
	v, err := load(ctx)
	if err != nil {
		var zero V
		return zero, err
	}
	c.Set(key, v, ttl)
	return v, nil
}

func (c *Cache[K, V]) purge(now time.Time) {
	for k, e := range c.items {
		if now.Sub(e.insertedAt) > e.ttl {
			delete(c.items, k)
		}
	}
}

// evictOldest drops the entry with the earliest insertion time.
func (c *Cache[K, V]) evictOldest() {
	var (
		oldestKey K
		oldest    time.Time
		found     bool
	)
	for k, e := range c.items {
		if !found || e.insertedAt.Before(oldest) {
			oldestKey, oldest, found = k, e.insertedAt, true
		}
	}
	if found {
		delete(c.items, oldestKey)
	}
}
