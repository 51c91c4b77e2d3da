package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// RedisClient 介面定義
type RedisClient interface {
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

const redisBucketScript = `
	local key = KEYS[1]
	local capacity = tonumber(ARGV[1])
	local rate = tonumber(ARGV[2])
	local now = tonumber(ARGV[3])
	local ttl = tonumber(ARGV[4])

	-- 取得或初始化 bucket 狀態
	local bucket = redis.call('HMGET', key, 'tokens', 'last_refill')
	local currentTokens = tonumber(bucket[1])
	local lastRefill = tonumber(bucket[2])

	if currentTokens == nil then
		currentTokens = capacity
		lastRefill = now
	end

	local elapsedSeconds = (now - lastRefill) / 1000000000
	if elapsedSeconds < 0 then
		elapsedSeconds = 0
	end
	currentTokens = math.min(capacity, currentTokens + elapsedSeconds * rate)

	local allowed = 0
	if currentTokens >= 1 then
		currentTokens = currentTokens - 1
		allowed = 1
	end

	redis.call('HSET', key, 'tokens', currentTokens, 'last_refill', now)
	redis.call('EXPIRE', key, ttl)
	return allowed
`

// redisBucket 多個 instance 共用的 token bucket
type redisBucket struct {
	cfg       LimiterConfig
	client    RedisClient
	keyPrefix string
}

func newRedisBucket(client RedisClient, cfg LimiterConfig) *redisBucket {
	return &redisBucket{
		cfg:       cfg,
		client:    client,
		keyPrefix: "phonebook:ratelimit:",
	}
}

// keyTTL bucket 從空到滿所需時間, 至少一秒
func (r *redisBucket) keyTTL() int64 {
	seconds := int64(float64(r.cfg.Capacity)/r.cfg.RatePS) + 1
	if seconds < 1 {
		seconds = 1
	}
	return seconds
}

// Allow redis 無法使用時放行, 只記錄警告
func (r *redisBucket) Allow(ctx context.Context, key string) bool {
	result, err := r.client.Eval(
		ctx,
		redisBucketScript,
		[]string{r.keyPrefix + key},
		r.cfg.Capacity,
		r.cfg.RatePS,
		time.Now().UnixNano(),
		r.keyTTL(),
	).Int64()
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("redis rate limiter unavailable")
		return true
	}
	return result == 1
}

func (r *redisBucket) Stop() {}
