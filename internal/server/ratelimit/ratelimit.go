// Package ratelimit throttles requests per client and endpoint with token buckets.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Info describes the client's bucket after a decision.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Limiter tracks one bucket per client, path and method.
type Limiter struct {
	cfg Config
	now func() time.Time

	mu        sync.Mutex
	buckets   map[string]*bucket
	lastPrune time.Time
}

// NewLimiter creates a limiter for cfg.
func NewLimiter(cfg Config) *Limiter {
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = time.Hour
	}
	return &Limiter{
		cfg:     cfg,
		now:     time.Now,
		buckets: make(map[string]*bucket),
	}
}

// Allow consumes a token for the request if one is available.
func (l *Limiter) Allow(clientID, path, method string) (bool, Info) {
	if !l.cfg.Enabled || l.cfg.Whitelist[clientID] {
		return true, Info{Allowed: true}
	}

	rule := MatchRule(path, method, l.cfg.Rules)
	if rule == nil {
		rule = &l.cfg.Default
	}
	if rule.Limit <= 0 || rule.Window <= 0 {
		return true, Info{Allowed: true}
	}

	now := l.now()
	b := l.bucketFor(clientID+":"+rule.Method+":"+rule.Path, *rule, now)

	res := b.limiter.ReserveN(now, 1)
	if !res.OK() {
		return false, Info{Limit: rule.Limit}
	}
	if delay := res.DelayFrom(now); delay > 0 {
		res.CancelAt(now)
		return false, Info{Limit: rule.Limit, RetryAfter: delay}
	}

	remaining := int(b.limiter.TokensAt(now))
	if remaining < 0 {
		remaining = 0
	}
	return true, Info{Allowed: true, Limit: rule.Limit, Remaining: remaining}
}

func (l *Limiter) bucketFor(key string, rule Rule, now time.Time) *bucket {
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastPrune) > l.cfg.IdleTTL {
		l.pruneLocked(now)
	}

	b, ok := l.buckets[key]
	if !ok {
		burst := rule.Burst
		if burst <= 0 {
			burst = rule.Limit
		}
		every := rate.Limit(float64(rule.Limit) / rule.Window.Seconds())
		b = &bucket{limiter: rate.NewLimiter(every, burst)}
		l.buckets[key] = b
	}
	b.lastSeen = now
	return b
}

func (l *Limiter) pruneLocked(now time.Time) {
	cutoff := now.Add(-l.cfg.IdleTTL)
	for key, b := range l.buckets {
		if b.lastSeen.Before(cutoff) {
			delete(l.buckets, key)
		}
	}
	l.lastPrune = now
}

// size returns the number of tracked buckets.
func (l *Limiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}
