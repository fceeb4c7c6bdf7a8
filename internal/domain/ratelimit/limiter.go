// Package ratelimit implements a per-client fixed-window request counter.
//
// Windows are anchored at a client's first request and reset wholesale once
// they are older than the window length, so a client can be admitted up to
// twice the limit across a window boundary.
package ratelimit

import (
	"sync"
	"time"

	"github.com/yanqian/page-summarizer/pkg/util"
)

// UnknownClient is the shared identifier for callers without an address.
const UnknownClient = "unknown"

// sweepThreshold bounds how many windows are kept before expired ones are
// dropped on the next admission.
const sweepThreshold = 10000

// ClientWindow is the counter state of one client.
type ClientWindow struct {
	Start time.Time
	Count int
}

// Config holds the limiter policy.
type Config struct {
	Limit  int
	Window time.Duration
}

// Limiter is a mutex-guarded fixed-window counter keyed by client identifier.
type Limiter struct {
	mu      sync.Mutex
	windows map[string]*ClientWindow
	limit   int
	window  time.Duration
	now     util.Clock
}

// New constructs a limiter. A nil clock falls back to util.Now.
func New(cfg Config, clock util.Clock) *Limiter {
	if clock == nil {
		clock = util.Now
	}
	return &Limiter{
		windows: make(map[string]*ClientWindow),
		limit:   cfg.Limit,
		window:  cfg.Window,
		now:     clock,
	}
}

// Allow counts one request for clientID and reports whether it is admitted.
func (l *Limiter) Allow(clientID string) bool {
	if clientID == "" {
		clientID = UnknownClient
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.windows[clientID]
	if !ok || now.Sub(w.Start) > l.window {
		if !ok && len(l.windows) >= sweepThreshold {
			l.sweepLocked(now)
		}
		l.windows[clientID] = &ClientWindow{Start: now, Count: 1}
		return true
	}
	if w.Count >= l.limit {
		return false
	}
	w.Count++
	return true
}

// Window returns a copy of the current window for clientID.
func (l *Limiter) Window(clientID string) (ClientWindow, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	w, ok := l.windows[clientID]
	if !ok {
		return ClientWindow{}, false
	}
	return *w, true
}

// Len reports how many client windows are tracked.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.windows)
}

// An expired window behaves exactly like a missing one, so dropping it
// never changes an admission decision.
func (l *Limiter) sweepLocked(now time.Time) {
	for id, w := range l.windows {
		if now.Sub(w.Start) > l.window {
			delete(l.windows, id)
		}
	}
}
