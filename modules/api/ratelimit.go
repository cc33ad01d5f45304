package api

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-monolith/mono/pkg/types"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// Decision is the outcome of one limiter check.
type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetAt    time.Time
	RetryAfter time.Duration
}

// Limiter decides whether a keyed request may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (*Decision, error)
}

// slidingWindowScript trims the window, counts it and records the request
// when there is room. It returns {allowed, remaining, retry_after_ms}.
var slidingWindowScript = redis.NewScript(`
	local key = KEYS[1]
	local counter_key = KEYS[2]
	local now = tonumber(ARGV[1])
	local window_start = tonumber(ARGV[2])
	local limit = tonumber(ARGV[3])
	local window_ms = tonumber(ARGV[4])

	redis.call('ZREMRANGEBYSCORE', key, '-inf', window_start)
	local count = redis.call('ZCARD', key)

	if count < limit then
		local counter = redis.call('INCR', counter_key)
		redis.call('ZADD', key, now, now .. ':' .. counter)
		redis.call('PEXPIRE', key, window_ms)
		redis.call('PEXPIRE', counter_key, window_ms)
		return {1, limit - count - 1, 0}
	end

	local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
	local retry_after = 0
	if #oldest >= 2 then
		retry_after = oldest[2] + window_ms - now
	end
	return {0, 0, retry_after}
`)

// SlidingWindowLimiter counts requests per key over a sliding window kept in
// a Redis sorted set.
type SlidingWindowLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
	prefix string
	now    func() time.Time
}

var _ Limiter = (*SlidingWindowLimiter)(nil)

// NewSlidingWindowLimiter allows limit requests per window for every key.
func NewSlidingWindowLimiter(client *redis.Client, limit int, window time.Duration, prefix string) *SlidingWindowLimiter {
	return &SlidingWindowLimiter{
		client: client,
		limit:  limit,
		window: window,
		prefix: prefix,
		now:    time.Now,
	}
}

// Allow records the request for key if the window still has room.
func (l *SlidingWindowLimiter) Allow(ctx context.Context, key string) (*Decision, error) {
	now := l.now()
	redisKey := l.prefix + key

	result, err := slidingWindowScript.Run(ctx, l.client,
		[]string{redisKey, redisKey + ":counter"},
		now.UnixMilli(),
		now.Add(-l.window).UnixMilli(),
		l.limit,
		l.window.Milliseconds(),
	).Slice()
	if err != nil {
		return nil, fmt.Errorf("failed to run rate limit script: %w", err)
	}
	if len(result) < 3 {
		return nil, fmt.Errorf("unexpected result length: %d", len(result))
	}

	values := make([]int64, 3)
	for i := range values {
		v, ok := result[i].(int64)
		if !ok {
			return nil, fmt.Errorf("unexpected type at index %d: %T", i, result[i])
		}
		values[i] = v
	}

	d := &Decision{
		Allowed:   values[0] == 1,
		Limit:     l.limit,
		Remaining: int(values[1]),
		ResetAt:   now.Add(l.window),
	}
	if !d.Allowed && values[2] > 0 {
		d.RetryAfter = time.Duration(values[2]) * time.Millisecond
	}
	return d, nil
}

// RateLimit rejects requests over the limiter's budget with 429. Requests are
// keyed by client IP. A failing limiter lets the request through.
func RateLimit(limiter Limiter, scope string, logger types.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := scope + ":" + c.IP()

		d, err := limiter.Allow(c.UserContext(), key)
		if err != nil {
			logger.Warn("Rate limiter unavailable, allowing request", "key", key, "error", err)
			c.Set("X-RateLimit-Error", "limiter unavailable")
			return c.Next()
		}

		c.Set("X-RateLimit-Limit", strconv.Itoa(d.Limit))
		c.Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
		c.Set("X-RateLimit-Reset", strconv.FormatInt(d.ResetAt.Unix(), 10))

		if !d.Allowed {
			retry := int(d.RetryAfter.Seconds())
			if retry < 1 {
				retry = 1
			}
			c.Set("Retry-After", strconv.Itoa(retry))
			return c.Status(fiber.StatusTooManyRequests).JSON(ErrorResponse{
				Error:   "rate_limited",
				Message: fmt.Sprintf("too many requests, retry in %d seconds", retry),
			})
		}
		return c.Next()
	}
}
