package ratelimit

import (
	"context"
	"fmt"
	"strings"

	redis "github.com/redis/go-redis/v9"
	"github.com/smallbiznis/clinicdesk/internal/clock"
	"github.com/smallbiznis/clinicdesk/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const keyLoginAttempt = "clinicdesk:login:%s"

type bucket interface {
	Allow(ctx context.Context, key string, rate float64, burst int) (Result, error)
}

// LoginLimiter throttles login attempts per client IP. When redis is
// unreachable it degrades to the in-process bucket.
type LoginLimiter struct {
	log      *zap.Logger
	primary  bucket
	fallback bucket
	rate     float64
	burst    int
}

type Params struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    config.Config
	Log       *zap.Logger
	Clock     clock.Clock
}

func NewLoginLimiter(p Params) *LoginLimiter {
	cfg := p.Config.RateLimit
	log := p.Log.Named("ratelimit.login")
	limiter := &LoginLimiter{
		log:      log,
		fallback: NewMemoryBucket(p.Clock),
		rate:     cfg.LoginRate,
		burst:    cfg.LoginBurst,
	}

	addr := strings.TrimSpace(cfg.RedisAddr)
	if addr == "" {
		log.Info("using in-memory login limiter")
		return limiter
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	limiter.primary = NewRedisBucket(client)
	if p.Lifecycle != nil {
		p.Lifecycle.Append(fx.StopHook(client.Close))
	}
	log.Info("using redis login limiter", zap.String("addr", addr))
	return limiter
}

func (l *LoginLimiter) Allow(ctx context.Context, clientIP string) (Result, error) {
	key := fmt.Sprintf(keyLoginAttempt, strings.TrimSpace(clientIP))
	if l.primary != nil {
		res, err := l.primary.Allow(ctx, key, l.rate, l.burst)
		if err == nil {
			return res, nil
		}
		l.log.Warn("redis limiter failed, using in-memory bucket", zap.Error(err))
	}
	return l.fallback.Allow(ctx, key, l.rate, l.burst)
}
