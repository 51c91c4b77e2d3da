package ratelimit

import (
	"sync"
	"time"
)

/*
使用鎖實現，高QPS請採用其他窗口策略
*/
type slideWindow struct {
	cfg    LimiterConfig
	window []time.Time
	mu     sync.Mutex
}

func newSlideWindow(cfg LimiterConfig) *slideWindow {
	return &slideWindow{
		cfg:    cfg,
		window: make([]time.Time, 0, cfg.Capacity),
	}
}

func (w *slideWindow) evict(now time.Time) {
	validStart := len(w.window)
	for i, t := range w.window {
		if now.Sub(t) < w.cfg.RefillRate {
			validStart = i
			break
		}
	}
	w.window = w.window[validStart:]
}

func (w *slideWindow) Allow(now time.Time) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.evict(now)
	if len(w.window) >= w.cfg.Capacity {
		return false
	}
	w.window = append(w.window, now)
	return true
}

func (w *slideWindow) Idle(now time.Time, ttl time.Duration) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.window) == 0 {
		return true
	}
	return now.Sub(w.window[len(w.window)-1]) >= ttl && now.Sub(w.window[len(w.window)-1]) >= w.cfg.RefillRate
}
