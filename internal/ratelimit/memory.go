package ratelimit

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/smallbiznis/clinicdesk/internal/clock"
)

type memoryEntry struct {
	tokens float64
	ts     time.Time
}

// MemoryBucket is the single-process token bucket used when no redis is
// configured.
type MemoryBucket struct {
	clock clock.Clock

	mu      sync.Mutex
	buckets map[string]*memoryEntry
}

func NewMemoryBucket(clk clock.Clock) *MemoryBucket {
	return &MemoryBucket{clock: clk, buckets: map[string]*memoryEntry{}}
}

func (b *MemoryBucket) Allow(_ context.Context, key string, rate float64, burst int) (Result, error) {
	if err := validate(key, rate, burst); err != nil {
		return Result{}, err
	}

	now := b.clock.Now()

	b.mu.Lock()
	defer b.mu.Unlock()

	b.evict(now, rate, burst)

	entry, ok := b.buckets[key]
	if !ok {
		entry = &memoryEntry{tokens: float64(burst), ts: now}
		b.buckets[key] = entry
	} else {
		elapsed := now.Sub(entry.ts).Seconds()
		if elapsed < 0 {
			elapsed = 0
		}
		entry.tokens = math.Min(float64(burst), entry.tokens+elapsed*rate)
		entry.ts = now
	}

	allowed := entry.tokens >= 1
	if allowed {
		entry.tokens--
	}
	return decide(allowed, entry.tokens, rate, burst), nil
}

// evict drops buckets idle long enough to have refilled completely.
func (b *MemoryBucket) evict(now time.Time, rate float64, burst int) {
	ttl := bucketTTL(rate, burst)
	for key, entry := range b.buckets {
		if now.Sub(entry.ts) > ttl {
			delete(b.buckets, key)
		}
	}
}
