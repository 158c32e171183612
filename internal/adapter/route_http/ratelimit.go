package route_http

import (
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

// RateLimiter enforces a per-client token bucket keyed by remote IP. The
// engine itself is cheap, but the audit sink behind it is not free, so
// abusive clients are shed at the edge.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*rate.Limiter
	rps     rate.Limit
	burst   int
	maxIdle int
}

// NewRateLimiter creates a limiter allowing rps requests per second with
// the given burst per client.
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	return &RateLimiter{
		clients: make(map[string]*rate.Limiter),
		rps:     rate.Limit(rps),
		burst:   burst,
		maxIdle: 10000,
	}
}

func (rl *RateLimiter) limiterFor(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if lim, ok := rl.clients[key]; ok {
		return lim
	}
	// Crude bound on tracked clients; resetting drops stale buckets.
	if len(rl.clients) >= rl.maxIdle {
		rl.clients = make(map[string]*rate.Limiter)
	}
	lim := rate.NewLimiter(rl.rps, rl.burst)
	rl.clients[key] = lim
	return lim
}

// Middleware returns the echo middleware applying the limit.
func (rl *RateLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			if !rl.limiterFor(ctx.RealIP()).Allow() {
				return ctx.JSON(http.StatusTooManyRequests, map[string]string{"error": "rate limit exceeded"})
			}
			return next(ctx)
		}
	}
}
