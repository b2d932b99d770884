package middleware

import (
	"net"

	"golang.org/x/time/rate"

	"github.com/yndnr/wirehttp-go/internal/httpcore"
	"github.com/yndnr/wirehttp-go/pkg/cmap"
)

// limiterRegistry hands out one token bucket per client host.
type limiterRegistry struct {
	limiters *cmap.Map[string, *rate.Limiter]
	limit    rate.Limit
	burst    int
}

func newLimiterRegistry(rps float64, burst int) *limiterRegistry {
	return &limiterRegistry{
		limiters: cmap.New[string, *rate.Limiter](),
		limit:    rate.Limit(rps),
		burst:    burst,
	}
}

func (r *limiterRegistry) getOrCreate(host string) *rate.Limiter {
	if limiter, ok := r.limiters.Get(host); ok {
		return limiter
	}
	limiter, _ := r.limiters.GetOrSet(host, rate.NewLimiter(r.limit, r.burst))
	return limiter
}

// RateLimit returns a middleware that applies a per-client token bucket.
// Clients are keyed by remote host; requests over the budget get a 429.
func RateLimit(rps float64, burst int) httpcore.Middleware {
	registry := newLimiterRegistry(rps, burst)

	return func(next httpcore.Handler) httpcore.Handler {
		return func(req *httpcore.Request) (*httpcore.Response, error) {
			host, _, err := net.SplitHostPort(req.RemoteAddr)
			if err != nil {
				host = req.RemoteAddr
			}

			if !registry.getOrCreate(host).Allow() {
				return httpcore.Text(429, "rate limit exceeded"), nil
			}
			return next(req)
		}
	}
}
