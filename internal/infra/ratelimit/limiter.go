package ratelimit

import (
	"sync"
	"time"
)

// Limiter enforces a per-client ceiling over a sliding window by tracking the
// exact timestamps of admitted requests. A limit of zero or less disables it.
type Limiter struct {
	mu        sync.Mutex
	limit     int
	window    time.Duration
	hits      map[string][]time.Time
	lastSweep time.Time
	now       func() time.Time
}

// New builds a limiter admitting at most limit requests per client within any
// window-sized interval.
func New(limit int, window time.Duration) *Limiter {
	return &Limiter{
		limit:  limit,
		window: window,
		hits:   make(map[string][]time.Time),
		now:    time.Now,
	}
}

// Enabled reports whether the limiter actually restricts anything.
func (l *Limiter) Enabled() bool { return l != nil && l.limit > 0 }

// Allow records the request and admits it unless the client already spent its
// budget. Denied requests are not recorded, so hammering while blocked does
// not extend the block.
func (l *Limiter) Allow(clientID string) bool {
	return l.allowAt(clientID, l.now())
}

func (l *Limiter) allowAt(id string, now time.Time) bool {
	if !l.Enabled() {
		return true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.sweep(now)

	cutoff := now.Add(-l.window)
	kept := l.hits[id][:0]
	for _, ts := range l.hits[id] {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}

	if len(kept) >= l.limit {
		l.hits[id] = kept
		return false
	}
	l.hits[id] = append(kept, now)
	return true
}

// sweep drops idle clients so the map does not grow without bound. It runs at
// most once per window.
func (l *Limiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.window {
		return
	}
	cutoff := now.Add(-l.window)
	for id, stamps := range l.hits {
		kept := stamps[:0]
		for _, ts := range stamps {
			if ts.After(cutoff) {
				kept = append(kept, ts)
			}
		}
		if len(kept) == 0 {
			delete(l.hits, id)
		} else {
			l.hits[id] = kept
		}
	}
	l.lastSweep = now
}
