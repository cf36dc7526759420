package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"github.com/octobees/sitegen/internal/config"
)

// maxTrackedClients bounds the per-client limiter table; idle entries are
// swept once it is reached.
const maxTrackedClients = 10000

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter applies a token bucket per client IP. A zero config disables it.
func RateLimiter(cfg config.RateLimitConfig) echo.MiddlewareFunc {
	if cfg.Requests <= 0 || cfg.Interval <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return next
		}
	}

	perRequest := cfg.Interval / time.Duration(cfg.Requests)
	if perRequest <= 0 {
		perRequest = time.Second
	}

	var (
		mu      sync.Mutex
		clients = make(map[string]*clientLimiter)
	)

	allow := func(key string, now time.Time) bool {
		mu.Lock()
		defer mu.Unlock()

		entry, ok := clients[key]
		if !ok {
			if len(clients) >= maxTrackedClients {
				for k, v := range clients {
					if now.Sub(v.lastSeen) > cfg.Interval {
						delete(clients, k)
					}
				}
			}
			entry = &clientLimiter{limiter: rate.NewLimiter(rate.Every(perRequest), cfg.Requests)}
			clients[key] = entry
		}
		entry.lastSeen = now
		return entry.limiter.AllowN(now, 1)
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !allow(c.RealIP(), time.Now()) {
				c.Response().Header().Set("Retry-After", retryAfter(perRequest))
				return deny(c, http.StatusTooManyRequests, "rate limit exceeded")
			}
			return next(c)
		}
	}
}

func retryAfter(d time.Duration) string {
	secs := int((d + time.Second - 1) / time.Second)
	if secs < 1 {
		secs = 1
	}
	return strconv.Itoa(secs)
}
