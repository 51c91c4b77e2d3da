package ratelimit

import (
	"sync"
	"time"
)

/*
會有突刺問題
*/
type fixedWindow struct {
	cfg       LimiterConfig
	count     int
	startedAt time.Time
	mu        sync.Mutex
}

func newFixedWindow(cfg LimiterConfig, now time.Time) *fixedWindow {
	return &fixedWindow{
		cfg:       cfg,
		startedAt: now,
	}
}

func (w *fixedWindow) Allow(now time.Time) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if now.Sub(w.startedAt) >= w.cfg.RefillRate {
		w.count = 0
		w.startedAt = now
	}
	if w.count+1 > w.cfg.Capacity {
		return false
	}
	w.count++
	return true
}

func (w *fixedWindow) Idle(now time.Time, ttl time.Duration) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return now.Sub(w.startedAt) >= ttl && now.Sub(w.startedAt) >= w.cfg.RefillRate
}
