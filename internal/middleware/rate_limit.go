package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

const msgRateLimited = "too many attempts, try again later"

// RateLimit caps requests per client IP to maxPerMin within a minute. The
// counter lives in Redis when a client is given; otherwise each process keeps
// its own token buckets.
func RateLimit(cache *redis.Client, scope string, maxPerMin int) fiber.Handler {
	if maxPerMin <= 0 {
		maxPerMin = 10
	}
	if cache == nil {
		return localRateLimit(maxPerMin)
	}
	return func(c *fiber.Ctx) error {
		key := "rl:" + scope + ":" + c.IP()
		cnt, err := cache.Incr(c.UserContext(), key).Result()
		if err != nil {
			return c.Next() // fail open on cache errors
		}
		if cnt == 1 {
			cache.Expire(c.UserContext(), key, time.Minute)
		}
		if cnt > int64(maxPerMin) {
			return fiber.NewError(http.StatusTooManyRequests, msgRateLimited)
		}
		return c.Next()
	}
}

func localRateLimit(maxPerMin int) fiber.Handler {
	var (
		mu       sync.Mutex
		limiters = map[string]*rate.Limiter{}
	)
	every := rate.Every(time.Minute / time.Duration(maxPerMin))
	limiterFor := func(ip string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		l, ok := limiters[ip]
		if !ok {
			l = rate.NewLimiter(every, maxPerMin)
			limiters[ip] = l
		}
		return l
	}
	return func(c *fiber.Ctx) error {
		if !limiterFor(c.IP()).Allow() {
			return fiber.NewError(http.StatusTooManyRequests, msgRateLimited)
		}
		return c.Next()
	}
}
