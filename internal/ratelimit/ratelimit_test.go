package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/smallbiznis/clinicdesk/internal/clock"
	"github.com/smallbiznis/clinicdesk/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMemoryBucketRefills(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	bucket := NewMemoryBucket(clk)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		res, err := bucket.Allow(ctx, "ip", 0.5, 3)
		require.NoError(t, err)
		assert.True(t, res.Allowed)
		assert.Equal(t, 2-i, res.Remaining)
	}

	res, err := bucket.Allow(ctx, "ip", 0.5, 3)
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, 2*time.Second, res.RetryAfter)

	res, err = bucket.Allow(ctx, "other", 0.5, 3)
	require.NoError(t, err)
	assert.True(t, res.Allowed)

	clk.Advance(2 * time.Second)
	res, err = bucket.Allow(ctx, "ip", 0.5, 3)
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}

func TestMemoryBucketValidates(t *testing.T) {
	bucket := NewMemoryBucket(clock.NewSystemClock())
	_, err := bucket.Allow(context.Background(), "", 1, 1)
	assert.ErrorIs(t, err, ErrEmptyKey)
	_, err = bucket.Allow(context.Background(), "k", 0, 1)
	assert.ErrorIs(t, err, ErrInvalidRate)
}

func TestRedisBucketNotConfigured(t *testing.T) {
	var bucket *RedisBucket
	_, err := bucket.Allow(context.Background(), "k", 1, 1)
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.Nil(t, NewRedisBucket(nil))
}

func TestParseTokens(t *testing.T) {
	assert.Equal(t, 2.5, parseTokens("2.5"))
	assert.Equal(t, 3.0, parseTokens(int64(3)))
	assert.Equal(t, 0.0, parseTokens("nan?"))
}

type failingBucket struct{}

func (failingBucket) Allow(context.Context, string, float64, int) (Result, error) {
	return Result{}, errors.New("connection refused")
}

func TestLoginLimiterFallsBackToMemory(t *testing.T) {
	clk := clock.NewFakeClock(time.Now())
	limiter := NewLoginLimiter(Params{
		Config: config.Config{RateLimit: config.RateLimitConfig{LoginRate: 0.1, LoginBurst: 1}},
		Log:    zap.NewNop(),
		Clock:  clk,
	})
	limiter.primary = failingBucket{}

	res, err := limiter.Allow(context.Background(), "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, res.Allowed)

	res, err = limiter.Allow(context.Background(), "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, res.Allowed)
}
