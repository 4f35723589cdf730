// Package cache provides a bounded in-memory TTL+LRU response cache.
// This is part of the platform layer and contains no business logic.
package cache

import (
	"container/list"
	"sync"
	"time"

	"places_gateway_backend/platform/logger"
)

// Config holds the per-instance cache settings.
type Config struct {
	// MaxEntries is the hard capacity bound; the least-recently-used entry
	// is evicted when an insert exceeds it.
	MaxEntries int
	// TTL is the fixed time-to-live applied on every Set.
	TTL time.Duration
	// Label identifies the instance in cache event logs.
	Label string
	// Clock overrides the time source; nil means time.Now. Tests inject a
	// fake clock here to advance time deterministically.
	Clock func() time.Time
}

type entry[T any] struct {
	key       string
	value     T
	expiresAt time.Time
}

// Cache is a thread-safe TTL+LRU keyed store. Expired entries are evicted
// on access and count as misses; a hit refreshes recency.
type Cache[T any] struct {
	mu      sync.Mutex
	cfg     Config
	now     func() time.Time
	order   *list.List // front = most recently used
	entries map[string]*list.Element
	log     *logger.Logger
}

// New creates a cache instance with the given settings.
func New[T any](cfg Config, log *logger.Logger) *Cache[T] {
	now := cfg.Clock
	if now == nil {
		now = time.Now
	}
	return &Cache[T]{
		cfg:     cfg,
		now:     now,
		order:   list.New(),
		entries: make(map[string]*list.Element),
		log:     log,
	}
}

// Get retrieves the value for key. The second return is false on a miss,
// including when the stored entry has expired (the stale entry is removed).
func (c *Cache[T]) Get(key string) (T, bool) {
	var zero T

	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[key]
	if !ok {
		c.event("MISS", key)
		return zero, false
	}

	ent := elem.Value.(*entry[T])
	if c.now().After(ent.expiresAt) {
		c.remove(elem)
		c.event("EXPIRED", key)
		return zero, false
	}

	c.order.MoveToFront(elem)
	c.event("HIT", key)
	return ent.value, true
}

// Set inserts or overwrites the value for key with a fresh expiry, then
// trims least-recently-used entries until the capacity bound holds.
func (c *Cache[T]) Set(key string, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := c.now().Add(c.cfg.TTL)

	if elem, ok := c.entries[key]; ok {
		ent := elem.Value.(*entry[T])
		ent.value = value
		ent.expiresAt = expiresAt
		c.order.MoveToFront(elem)
	} else {
		c.entries[key] = c.order.PushFront(&entry[T]{key: key, value: value, expiresAt: expiresAt})
	}

	for len(c.entries) > c.cfg.MaxEntries {
		oldest := c.order.Back()
		if oldest == nil {
			return
		}
		evicted := oldest.Value.(*entry[T]).key
		c.remove(oldest)
		c.event("EVICT", evicted)
	}
}

// Len returns the current number of entries, expired or not.
func (c *Cache[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cache[T]) remove(elem *list.Element) {
	c.order.Remove(elem)
	delete(c.entries, elem.Value.(*entry[T]).key)
}

func (c *Cache[T]) event(event, key string) {
	if c.log != nil {
		c.log.CacheEvent(c.cfg.Label, event, key)
	}
}
