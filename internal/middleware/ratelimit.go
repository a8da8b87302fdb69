package middleware

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
)

// NewLimiter builds a per-IP limiter from a formatted rate such as "120-M".
// Counters live in redis when a client is given, otherwise in memory.
func NewLimiter(formatted string, redisClient *redis.Client) (*limiter.Limiter, error) {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return nil, fmt.Errorf("invalid rate limit %q: %w", formatted, err)
	}

	var store limiter.Store
	if redisClient != nil {
		store, err = sredis.NewStoreWithOptions(redisClient, limiter.StoreOptions{Prefix: "exchange:ratelimit"})
		if err != nil {
			return nil, fmt.Errorf("redis limiter store: %w", err)
		}
	} else {
		store = memory.NewStore()
	}

	return limiter.New(store, rate), nil
}

func RateLimit(l *limiter.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := l.GetIPKey(r)
			lctx, err := l.Get(r.Context(), ip)
			if err != nil {
				// fail open
				LoggerFromContext(r.Context()).Error("rate limit check failed", slog.String("ip", ip), slog.String("error", err.Error()))
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.FormatInt(lctx.Limit, 10))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(lctx.Remaining, 10))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(lctx.Reset, 10))

			if lctx.Reached {
				LoggerFromContext(r.Context()).Warn("rate limit exceeded", slog.String("ip", ip), slog.Int64("limit", lctx.Limit))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				json.NewEncoder(w).Encode(map[string]string{"error": "too many requests"})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
