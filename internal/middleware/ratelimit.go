package middleware

import (
	"fmt"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// RedisRateLimiter counts requests per key in Redis over a fixed window,
// so the limit holds across replicas.
type RedisRateLimiter struct {
	rdb    *redis.Client
	prefix string
	limit  int
	window time.Duration
}

func NewRedisRateLimiter(rdb *redis.Client, prefix string, limit int, window time.Duration) *RedisRateLimiter {
	return &RedisRateLimiter{rdb: rdb, prefix: prefix, limit: limit, window: window}
}

func (r *RedisRateLimiter) Handler(keyFunc func(c *fiber.Ctx) string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := fmt.Sprintf("%s:%s", r.prefix, keyFunc(c))
		count, err := r.rdb.Incr(c.Context(), key).Result()
		if err != nil {
			// limiter outage must not take the endpoint down
			return c.Next()
		}
		if count == 1 {
			r.rdb.Expire(c.Context(), key, r.window)
		}
		if count > int64(r.limit) {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"status": "error", "message": "rate limit exceeded",
			})
		}
		return c.Next()
	}
}

// LocalRateLimiter is the in-process fallback used when Redis is not
// configured: one token bucket per key, stale buckets swept periodically.
type LocalRateLimiter struct {
	visitors sync.Map
	rps      rate.Limit
	burst    int
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewLocalRateLimiter(perMinute int) *LocalRateLimiter {
	l := &LocalRateLimiter{
		rps:   rate.Limit(float64(perMinute) / 60.0),
		burst: perMinute,
	}
	go l.sweep()
	return l
}

func (l *LocalRateLimiter) get(key string) *rate.Limiter {
	if v, ok := l.visitors.Load(key); ok {
		vi := v.(*visitor)
		vi.lastSeen = time.Now()
		return vi.limiter
	}
	lim := rate.NewLimiter(l.rps, l.burst)
	l.visitors.Store(key, &visitor{limiter: lim, lastSeen: time.Now()})
	return lim
}

func (l *LocalRateLimiter) sweep() {
	for {
		time.Sleep(time.Minute)
		cutoff := time.Now().Add(-10 * time.Minute)
		l.visitors.Range(func(k, v interface{}) bool {
			if v.(*visitor).lastSeen.Before(cutoff) {
				l.visitors.Delete(k)
			}
			return true
		})
	}
}

func (l *LocalRateLimiter) Handler(keyFunc func(c *fiber.Ctx) string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !l.get(keyFunc(c)).Allow() {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"status": "error", "message": "rate limit exceeded",
			})
		}
		return c.Next()
	}
}
