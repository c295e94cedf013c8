// Package ratelimit throttles authentication attempts per DID.
package ratelimit

import (
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"didauth/internal/domain"
)

// Defaults applied by New for zero fields.
const (
	DefaultIdleTTL    = 10 * time.Minute
	DefaultEvictEvery = 512
)

// Config tunes a MapLimiter. A zero RPS or Burst disables limiting.
type Config struct {
	RPS     float64       `yaml:"rps"`
	Burst   int           `yaml:"burst"`
	IdleTTL time.Duration `yaml:"idle_ttl"`

	// EvictEvery is how many Allow calls pass between sweeps of idle DIDs.
	EvictEvery uint64 `yaml:"evict_every"`
}

// MapLimiter keeps one token bucket per DID.
type MapLimiter struct {
	cfg Config

	mu    sync.Mutex
	byDID map[domain.DID]*bucket
	calls uint64
}

type bucket struct {
	tokens   *rate.Limiter
	lastSeen time.Time
}

// New returns nil when cfg disables limiting. A nil *MapLimiter allows
// every attempt.
func New(cfg Config) *MapLimiter {
	if cfg.RPS <= 0 || cfg.Burst <= 0 {
		return nil
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = DefaultIdleTTL
	}
	if cfg.EvictEvery == 0 {
		cfg.EvictEvery = DefaultEvictEvery
	}
	return &MapLimiter{cfg: cfg, byDID: make(map[domain.DID]*bucket)}
}

// Allow spends one token from did's bucket at now. Blank DIDs are never
// limited; the coordinator rejects them before they get here.
func (l *MapLimiter) Allow(did domain.DID, now time.Time) bool {
	if l == nil {
		return true
	}
	did = domain.DID(strings.TrimSpace(string(did)))
	if did == "" {
		return true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	b := l.byDID[did]
	if b == nil {
		b = &bucket{tokens: rate.NewLimiter(rate.Limit(l.cfg.RPS), l.cfg.Burst)}
		l.byDID[did] = b
	}
	b.lastSeen = now
	ok := b.tokens.AllowN(now, 1)

	l.calls++
	if l.calls%l.cfg.EvictEvery == 0 {
		l.sweep(now)
	}
	return ok
}

// Len returns the number of DIDs currently tracked.
func (l *MapLimiter) Len() int {
	if l == nil {
		return 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.byDID)
}

// sweep drops buckets idle for longer than IdleTTL. Caller holds mu.
func (l *MapLimiter) sweep(now time.Time) {
	cutoff := now.Add(-l.cfg.IdleTTL)
	for did, b := range l.byDID {
		if b.lastSeen.Before(cutoff) {
			delete(l.byDID, did)
		}
	}
}
