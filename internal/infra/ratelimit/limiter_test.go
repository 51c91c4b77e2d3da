package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type LimiterTestSuite struct {
	suite.Suite
	clock *fakeClock
	cfg   LimiterConfig
	ctx   context.Context
}

func (s *LimiterTestSuite) SetupTest() {
	s.clock = &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	s.cfg = LimiterConfig{Capacity: 3, RatePS: 1, RefillRate: time.Second}
	s.ctx = context.Background()
}

func (s *LimiterTestSuite) newLimiter(limiterType LimiterType) *localLimiter {
	var factory func(now time.Time) algorithm
	switch limiterType {
	case FixedWindow:
		factory = func(now time.Time) algorithm { return newFixedWindow(s.cfg, now) }
	case TokenBucket:
		factory = func(now time.Time) algorithm { return newTokenBucket(s.cfg, now) }
	case SlideWindow:
		factory = func(time.Time) algorithm { return newSlideWindow(s.cfg) }
	}
	l := newLocalLimiter(s.cfg, factory, s.clock.Now)
	s.T().Cleanup(l.Stop)
	return l
}

func (s *LimiterTestSuite) allowN(l Limiter, key string, n int) {
	for i := 0; i < n; i++ {
		require.True(s.T(), l.Allow(s.ctx, key), "應該允許第 %d 次請求", i+1)
	}
}

func (s *LimiterTestSuite) TestTokenBucket() {
	l := s.newLimiter(TokenBucket)
	s.allowN(l, "ip-1", 3)
	require.False(s.T(), l.Allow(s.ctx, "ip-1"))

	// 不同 key 各自計算
	require.True(s.T(), l.Allow(s.ctx, "ip-2"))

	s.clock.Advance(time.Second)
	require.True(s.T(), l.Allow(s.ctx, "ip-1"))
	require.False(s.T(), l.Allow(s.ctx, "ip-1"))

	s.clock.Advance(10 * time.Second)
	s.allowN(l, "ip-1", 3)
	require.False(s.T(), l.Allow(s.ctx, "ip-1"))
}

func (s *LimiterTestSuite) TestFixedWindow() {
	l := s.newLimiter(FixedWindow)
	s.allowN(l, "ip-1", 3)
	require.False(s.T(), l.Allow(s.ctx, "ip-1"))

	s.clock.Advance(999 * time.Millisecond)
	require.False(s.T(), l.Allow(s.ctx, "ip-1"))

	s.clock.Advance(time.Millisecond)
	s.allowN(l, "ip-1", 3)
}

func (s *LimiterTestSuite) TestSlideWindow() {
	l := s.newLimiter(SlideWindow)
	require.True(s.T(), l.Allow(s.ctx, "ip-1"))
	s.clock.Advance(500 * time.Millisecond)
	s.allowN(l, "ip-1", 2)
	require.False(s.T(), l.Allow(s.ctx, "ip-1"))

	// 第一筆滑出窗口
	s.clock.Advance(510 * time.Millisecond)
	require.True(s.T(), l.Allow(s.ctx, "ip-1"))
	require.False(s.T(), l.Allow(s.ctx, "ip-1"))
}

func (s *LimiterTestSuite) TestSweepRemovesIdleKeys() {
	l := s.newLimiter(TokenBucket)
	s.allowN(l, "ip-1", 1)
	s.allowN(l, "ip-2", 1)
	require.Equal(s.T(), 2, l.size())

	l.sweep()
	require.Equal(s.T(), 2, l.size())

	s.clock.Advance(2 * time.Minute)
	l.sweep()
	require.Equal(s.T(), 0, l.size())
}

func TestLimiterTestSuite(t *testing.T) {
	suite.Run(t, new(LimiterTestSuite))
}

type fakeRedis struct {
	keys   []string
	result int64
	err    error
}

func (f *fakeRedis) Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd {
	f.keys = append(f.keys, keys...)
	cmd := redis.NewCmd(ctx)
	if f.err != nil {
		cmd.SetErr(f.err)
		return cmd
	}
	cmd.SetVal(f.result)
	return cmd
}

func TestRedisBucket(t *testing.T) {
	ctx := context.Background()
	client := &fakeRedis{result: 1}
	l, err := NewLimiter(RedisBucket, LimiterConfig{Capacity: 5, RatePS: 1}, client)
	require.NoError(t, err)
	defer l.Stop()

	require.True(t, l.Allow(ctx, "10.0.0.1"))
	require.Equal(t, []string{"phonebook:ratelimit:10.0.0.1"}, client.keys)

	client.result = 0
	require.False(t, l.Allow(ctx, "10.0.0.1"))

	// redis 失效時放行
	client.err = errors.New("connection refused")
	require.True(t, l.Allow(ctx, "10.0.0.1"))
}

func TestNewLimiter(t *testing.T) {
	_, err := NewLimiter(RedisBucket, LimiterConfig{}, nil)
	require.Error(t, err)

	_, err = NewLimiter(LimiterType("leaky"), LimiterConfig{}, nil)
	require.Error(t, err)

	for _, lt := range []LimiterType{FixedWindow, TokenBucket, SlideWindow} {
		l, err := NewLimiter(lt, LimiterConfig{}, nil)
		require.NoError(t, err)
		require.True(t, l.Allow(context.Background(), "k"))
		l.Stop()
		l.Stop()
	}
}
