package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/stockroom/product-catalog/internal/config"
	appErrors "github.com/stockroom/product-catalog/internal/errors"
	"github.com/stockroom/product-catalog/internal/utils/response"
)

// RateLimiter throttles requests per client address with a Redis-backed
// sliding window. Each request lands in a sorted set scored by its timestamp;
// the window is everything newer than now minus the window size.
type RateLimiter struct {
	client redis.Cmdable
	cfg    *config.RateLimit
	now    func() time.Time
}

func NewRateLimiter(client redis.Cmdable, cfg *config.RateLimit) *RateLimiter {
	return &RateLimiter{client: client, cfg: cfg, now: time.Now}
}

// Limit rejects clients that exceeded the configured request budget with a
// 429 and a Retry-After header. Redis outages fail open: throttling is
// protection, not a dependency the catalog should go down with.
func (l *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := LoggerFromContext(r.Context())

		allowed, retryAfter, err := l.check(r.Context(), clientIP(r))
		if err != nil {
			logger.Error("Rate limit check failed, allowing request", slog.Any("error", err))
			next.ServeHTTP(w, r)

			return
		}

		if !allowed {
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			response.Error(w, appErrors.TooManyRequestsError("Too many requests, slow down"))

			return
		}

		next.ServeHTTP(w, r)
	})
}

// check returns whether the client is within budget and, if not, the seconds
// until the oldest request leaves the window.
func (l *RateLimiter) check(ctx context.Context, client string) (bool, int, error) {
	key := "ratelimit:" + client

	now := l.now().Unix()
	windowStart := now - int64(l.cfg.WindowSize.Seconds())

	pipe := l.client.Pipeline()

	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(windowStart, 10))
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now), Member: now})
	count := pipe.ZCard(ctx, key)
	pipe.Expire(ctx, key, l.cfg.WindowSize)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, fmt.Errorf("rate limit pipeline: %w", err)
	}

	if count.Val() <= l.cfg.MaxRequests {
		return true, 0, nil
	}

	oldest, err := l.client.ZRangeArgsWithScores(ctx, redis.ZRangeArgs{
		Key: key, Start: 0, Stop: 0,
	}).Result()
	if err != nil || len(oldest) == 0 {
		// Can't tell when the window frees up; use the full window.
		return false, int(l.cfg.WindowSize.Seconds()), nil
	}

	retryAfter := max(int64(oldest[0].Score)+int64(l.cfg.WindowSize.Seconds())-now, 0)

	return false, int(retryAfter), nil
}

// clientIP prefers the first X-Forwarded-For hop so limits survive a reverse
// proxy, falling back to the connection's remote address.
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		if first, _, ok := strings.Cut(forwarded, ","); ok {
			return strings.TrimSpace(first)
		}

		return strings.TrimSpace(forwarded)
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}
