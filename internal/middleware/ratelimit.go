package middleware

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"connectrpc.com/connect"
	"golang.org/x/time/rate"

	"github.com/mmynk/shoplist/internal/metrics"
)

// ErrRateLimited is returned when a caller exceeds its request rate.
var ErrRateLimited = errors.New("too many requests, slow down")

// maxLimiters bounds the per-key limiter map. When exceeded the map is reset.
const maxLimiters = 10000

// RateLimiter applies a token bucket per caller.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rate     rate.Limit
	burst    int
}

// NewRateLimiter creates a rate limiter allowing requestsPerSecond with the
// given burst for every caller.
func NewRateLimiter(requestsPerSecond float64, burst int) *RateLimiter {
	return &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Limit(requestsPerSecond),
		burst:    burst,
	}
}

// Allow reports whether the caller identified by key may proceed.
func (rl *RateLimiter) Allow(key string) bool {
	return rl.limiter(key).Allow()
}

func (rl *RateLimiter) limiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	limiter, ok := rl.limiters[key]
	if !ok {
		if len(rl.limiters) >= maxLimiters {
			rl.limiters = make(map[string]*rate.Limiter)
		}
		limiter = rate.NewLimiter(rl.rate, rl.burst)
		rl.limiters[key] = limiter
	}
	return limiter
}

// Interceptor returns a Connect interceptor that rejects callers over their
// rate with CodeResourceExhausted. Callers are keyed by user ID, or by peer
// address before authentication.
func (rl *RateLimiter) Interceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			key := GetUserID(ctx)
			if key == "" {
				key = req.Peer().Addr
			}

			if !rl.Allow(key) {
				metrics.RecordRateLimited()
				slog.WarnContext(ctx, "rate limit exceeded",
					"key", key,
					"procedure", req.Spec().Procedure,
				)
				return nil, connect.NewError(connect.CodeResourceExhausted, ErrRateLimited)
			}
			return next(ctx, req)
		}
	}
}
