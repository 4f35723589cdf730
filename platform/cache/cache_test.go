package cache

import (
	"testing"
	"time"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.now = f.now.Add(d)
}

func newTestCache(maxEntries int, ttl time.Duration) (*Cache[string], *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	c := New[string](Config{MaxEntries: maxEntries, TTL: ttl, Label: "test", Clock: clock.Now}, nil)
	return c, clock
}

func TestSetThenGetReturnsStoredValue(t *testing.T) {
	c, _ := newTestCache(10, time.Minute)

	c.Set("k", "v")

	got, ok := c.Get("k")
	if !ok {
		t.Fatal("expected hit after set")
	}
	if got != "v" {
		t.Fatalf("expected %q, got %q", "v", got)
	}
}

func TestGetMissOnUnknownKey(t *testing.T) {
	c, _ := newTestCache(10, time.Minute)

	if _, ok := c.Get("absent"); ok {
		t.Fatal("expected miss for unknown key")
	}
}

func TestExpiredEntryIsMissAndEvicted(t *testing.T) {
	c, clock := newTestCache(10, time.Minute)

	c.Set("k", "v")
	clock.Advance(time.Minute + time.Second)

	if _, ok := c.Get("k"); ok {
		t.Fatal("expected miss after TTL elapsed")
	}
	if c.Len() != 0 {
		t.Fatalf("expected stale entry to be removed, have %d entries", c.Len())
	}
}

func TestEntryJustBeforeExpiryIsStillServed(t *testing.T) {
	c, clock := newTestCache(10, time.Minute)

	c.Set("k", "v")
	clock.Advance(time.Minute)

	if _, ok := c.Get("k"); !ok {
		t.Fatal("entry at exactly TTL should still be served")
	}
}

func TestCapacityEvictsLeastRecentlyUsed(t *testing.T) {
	c, _ := newTestCache(3, time.Minute)

	c.Set("a", "1")
	c.Set("b", "2")
	c.Set("c", "3")
	c.Set("d", "4")

	if _, ok := c.Get("a"); ok {
		t.Fatal("expected oldest entry to be evicted")
	}
	for _, key := range []string{"b", "c", "d"} {
		if _, ok := c.Get(key); !ok {
			t.Fatalf("expected %q to survive eviction", key)
		}
	}
	if c.Len() != 3 {
		t.Fatalf("expected 3 entries, got %d", c.Len())
	}
}

func TestGetRefreshesRecency(t *testing.T) {
	c, _ := newTestCache(3, time.Minute)

	c.Set("a", "1")
	c.Set("b", "2")
	c.Set("c", "3")

	// Touch "a" so "b" becomes the least recently used.
	if _, ok := c.Get("a"); !ok {
		t.Fatal("expected hit for a")
	}

	c.Set("d", "4")

	if _, ok := c.Get("b"); ok {
		t.Fatal("expected b to be evicted after a was refreshed")
	}
	if _, ok := c.Get("a"); !ok {
		t.Fatal("expected a to survive, it was recently used")
	}
}

func TestSetOverwritesAndRefreshesExpiry(t *testing.T) {
	c, clock := newTestCache(10, time.Minute)

	c.Set("k", "old")
	clock.Advance(45 * time.Second)
	c.Set("k", "new")
	clock.Advance(30 * time.Second)

	got, ok := c.Get("k")
	if !ok {
		t.Fatal("expected hit, expiry should have been refreshed by second set")
	}
	if got != "new" {
		t.Fatalf("expected overwritten value, got %q", got)
	}
	if c.Len() != 1 {
		t.Fatalf("expected a single entry, got %d", c.Len())
	}
}
