// Package ratelimit provides a fixed-window request counter keyed by client
// identifier. This is part of the platform layer and contains no business logic.
package ratelimit

import (
	"sync"
	"time"
)

// Config holds the limiter settings.
type Config struct {
	// Limit is the number of requests allowed per window.
	Limit int
	// Window is the fixed window length.
	Window time.Duration
	// Clock overrides the time source; nil means time.Now.
	Clock func() time.Time
}

// Result reports a single admission decision.
type Result struct {
	Allowed   bool
	Remaining int
}

type window struct {
	start time.Time
	count int
}

// Limiter counts requests per client identifier within fixed windows.
// A window starts on the first request after the previous window elapsed;
// the counter resets fully at that point.
type Limiter struct {
	mu      sync.Mutex
	cfg     Config
	now     func() time.Time
	windows map[string]*window
}

// New creates a limiter with the given settings.
func New(cfg Config) *Limiter {
	now := cfg.Clock
	if now == nil {
		now = time.Now
	}
	return &Limiter{
		cfg:     cfg,
		now:     now,
		windows: make(map[string]*window),
	}
}

// Allow records one request for id and reports whether it is admitted.
func (l *Limiter) Allow(id string) Result {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	win, ok := l.windows[id]
	if !ok || now.Sub(win.start) > l.cfg.Window {
		l.windows[id] = &window{start: now, count: 1}
		return Result{Allowed: true, Remaining: l.cfg.Limit - 1}
	}

	if win.count >= l.cfg.Limit {
		return Result{Allowed: false, Remaining: 0}
	}

	win.count++
	return Result{Allowed: true, Remaining: l.cfg.Limit - win.count}
}
