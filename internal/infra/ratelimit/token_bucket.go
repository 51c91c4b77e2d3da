package ratelimit

import (
	"math"
	"sync"
	"time"
)

// tokenBucket 在 Allow 時依經過時間補充 token
type tokenBucket struct {
	cfg          LimiterConfig
	tokens       float64
	lastRefilled time.Time
	mu           sync.Mutex
}

func newTokenBucket(cfg LimiterConfig, now time.Time) *tokenBucket {
	return &tokenBucket{
		cfg:          cfg,
		tokens:       float64(cfg.Capacity),
		lastRefilled: now,
	}
}

func (t *tokenBucket) refill(now time.Time) {
	elapsed := now.Sub(t.lastRefilled)
	if elapsed <= 0 {
		return
	}
	t.tokens = math.Min(float64(t.cfg.Capacity), t.tokens+elapsed.Seconds()*t.cfg.RatePS)
	t.lastRefilled = now
}

func (t *tokenBucket) Allow(now time.Time) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.refill(now)
	if t.tokens < 1 {
		return false
	}
	t.tokens--
	return true
}

func (t *tokenBucket) Idle(now time.Time, ttl time.Duration) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	idleFor := now.Sub(t.lastRefilled)
	t.refill(now)
	return idleFor >= ttl && t.tokens >= float64(t.cfg.Capacity)
}
