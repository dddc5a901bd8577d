// Package ratelimit provides per-client request limiting, backed by Redis
// when one is configured and by an in-process limiter otherwise.
package ratelimit

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis_rate/v10"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// Limiter answers whether a keyed client may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RedisLimiter enforces limits through redis_rate, sharing state across
// server instances.
type RedisLimiter struct {
	limiter   *redis_rate.Limiter
	perMinute int
}

// NewRedisLimiter creates a Redis-backed limiter.
func NewRedisLimiter(client *redis.Client, perMinute int) *RedisLimiter {
	return &RedisLimiter{
		limiter:   redis_rate.NewLimiter(client),
		perMinute: perMinute,
	}
}

// Allow implements Limiter.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	res, err := l.limiter.Allow(ctx, "ratelimit:"+key, redis_rate.PerMinute(l.perMinute))
	if err != nil {
		return false, err
	}

	return res.Allowed > 0, nil
}

// MemoryLimiter keeps one token bucket per client in process memory. Idle
// buckets are dropped after an hour.
type MemoryLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*bucket
	perMinute int
	stop      chan struct{}
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewMemoryLimiter creates an in-process limiter.
func NewMemoryLimiter(perMinute int) *MemoryLimiter {
	l := &MemoryLimiter{
		buckets:   make(map[string]*bucket),
		perMinute: perMinute,
		stop:      make(chan struct{}),
	}
	go l.cleanup()

	return l
}

// Allow implements Limiter.
func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{
			limiter: rate.NewLimiter(rate.Limit(float64(l.perMinute)/60.0), l.perMinute),
		}
		l.buckets[key] = b
	}
	b.lastSeen = time.Now()
	l.mu.Unlock()

	return b.limiter.Allow(), nil
}

// Close stops the cleanup goroutine.
func (l *MemoryLimiter) Close() {
	close(l.stop)
}

func (l *MemoryLimiter) cleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			cutoff := time.Now().Add(-1 * time.Hour)
			l.mu.Lock()
			for key, b := range l.buckets {
				if b.lastSeen.Before(cutoff) {
					delete(l.buckets, key)
				}
			}
			l.mu.Unlock()
		case <-l.stop:
			return
		}
	}
}

// Middleware rejects requests from clients over their per-minute budget.
// A limiter backend error lets the request through; rate limiting is not
// worth an outage.
func Middleware(limiter Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			c.Next()
			return
		}

		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "rate limit exceeded",
			})
			return
		}

		c.Next()
	}
}
