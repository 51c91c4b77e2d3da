package ratelimit

import "time"

type LimiterType string

const (
	FixedWindow LimiterType = "fixed_window"
	TokenBucket LimiterType = "token_bucket"
	SlideWindow LimiterType = "slide_window"
	RedisBucket LimiterType = "redis_bucket"
)

type LimiterConfig struct {
	Capacity   int
	RatePS     float64       // tokens/秒, 只有 bucket 類使用
	RefillRate time.Duration // 窗口長度
}

func GetDefaultLimiterConfig() LimiterConfig {
	return LimiterConfig{
		Capacity:   20,
		RatePS:     5,
		RefillRate: time.Second,
	}
}

func (c LimiterConfig) withDefaults() LimiterConfig {
	def := GetDefaultLimiterConfig()
	if c.Capacity <= 0 {
		c.Capacity = def.Capacity
	}
	if c.RatePS <= 0 {
		c.RatePS = def.RatePS
	}
	if c.RefillRate <= 0 {
		c.RefillRate = def.RefillRate
	}
	return c
}

// algorithm 單一 key 的限流狀態
type algorithm interface {
	Allow(now time.Time) bool
	// Idle 超過 ttl 未使用且已回滿, 可以回收
	Idle(now time.Time, ttl time.Duration) bool
}
