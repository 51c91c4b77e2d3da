package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Limiter 以 key (例如 client ip) 為單位限流
type Limiter interface {
	Allow(ctx context.Context, key string) bool
	// Stop 停止背景回收
	Stop()
}

// localLimiter 每個 key 一份 in-process 演算法狀態
type localLimiter struct {
	cfg     LimiterConfig
	factory func(now time.Time) algorithm
	now     func() time.Time
	idleTTL time.Duration

	mu      sync.Mutex
	buckets map[string]algorithm

	cancel chan struct{}
	once   sync.Once
}

/*
請使用 defer 呼叫 Stop()
redis_bucket 必須提供 client
*/
func NewLimiter(limiterType LimiterType, cfg LimiterConfig, client RedisClient) (Limiter, error) {
	cfg = cfg.withDefaults()
	switch limiterType {
	case FixedWindow:
		return newLocalLimiter(cfg, func(now time.Time) algorithm { return newFixedWindow(cfg, now) }, time.Now), nil
	case TokenBucket:
		return newLocalLimiter(cfg, func(now time.Time) algorithm { return newTokenBucket(cfg, now) }, time.Now), nil
	case SlideWindow:
		return newLocalLimiter(cfg, func(time.Time) algorithm { return newSlideWindow(cfg) }, time.Now), nil
	case RedisBucket:
		if client == nil {
			return nil, fmt.Errorf("redis client is required for %s", limiterType)
		}
		return newRedisBucket(client, cfg), nil
	default:
		return nil, fmt.Errorf("invalid rate limit type %q", limiterType)
	}
}

func newLocalLimiter(cfg LimiterConfig, factory func(now time.Time) algorithm, now func() time.Time) *localLimiter {
	idleTTL := 10 * cfg.RefillRate
	if idleTTL < time.Minute {
		idleTTL = time.Minute
	}
	l := &localLimiter{
		cfg:     cfg,
		factory: factory,
		now:     now,
		idleTTL: idleTTL,
		buckets: make(map[string]algorithm),
		cancel:  make(chan struct{}),
	}
	go l.background()
	return l
}

func (l *localLimiter) Allow(ctx context.Context, key string) bool {
	now := l.now()
	l.mu.Lock()
	b, ok := l.buckets[key]
	if !ok {
		b = l.factory(now)
		l.buckets[key] = b
	}
	l.mu.Unlock()
	return b.Allow(now)
}

// sweep 回收閒置的 key
func (l *localLimiter) sweep() {
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, b := range l.buckets {
		if b.Idle(now, l.idleTTL) {
			delete(l.buckets, key)
		}
	}
}

func (l *localLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

func (l *localLimiter) background() {
	ticker := time.NewTicker(l.idleTTL)
	defer ticker.Stop()

	for {
		select {
		case <-l.cancel:
			return
		case <-ticker.C:
			l.sweep()
		}
	}
}

func (l *localLimiter) Stop() {
	l.once.Do(func() {
		close(l.cancel)
	})
}
