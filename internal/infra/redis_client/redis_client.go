package redis_client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	_instances = sync.Map{}
)

// GetRedisClient 同一個 address 共用一個 client, 建立時會 ping 一次
func GetRedisClient(ctx context.Context, address string, options ...Option) (*redis.Client, error) {
	if address == "" {
		return nil, fmt.Errorf("redis address is empty")
	}
	if client, ok := _instances.Load(address); ok {
		return client.(*redis.Client), nil
	}

	client := createRedisClient(address, options...)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", address, err)
	}

	actual, loaded := _instances.LoadOrStore(address, client)
	if loaded {
		client.Close()
	}
	return actual.(*redis.Client), nil
}

// CloseAll 關閉所有 client
func CloseAll() error {
	var firstErr error
	_instances.Range(func(key, value any) bool {
		if err := value.(*redis.Client).Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		_instances.Delete(key)
		return true
	})
	return firstErr
}

func createRedisClient(address string, options ...Option) *redis.Client {
	opts := &redis.Options{
		Addr: address,
	}

	for _, option := range options {
		option(opts)
	}

	return redis.NewClient(opts)
}

type Option func(*redis.Options)

func WithPassword(password string) Option {
	return func(o *redis.Options) {
		o.Password = password
	}
}

func WithDB(db int) Option {
	return func(o *redis.Options) {
		o.DB = db
	}
}

func WithPoolSize(poolSize int) Option {
	return func(o *redis.Options) {
		o.PoolSize = poolSize
	}
}
