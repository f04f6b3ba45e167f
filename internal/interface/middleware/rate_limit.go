package middleware

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/careerconnect-api/pkg/apperror"
	"github.com/oksasatya/careerconnect-api/pkg/response"
)

// KeyFunc picks the bucket a request is counted in.
type KeyFunc func(c *gin.Context) string

// AllowFunc reports whether a request skips the limiter.
type AllowFunc func(*gin.Context) bool

func ipFromCtx(c *gin.Context) string {
	if ip := c.GetString("real_ip"); ip != "" {
		return ip
	}
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	return "unknown"
}

// normalizePath prefers the route pattern so /internships/1 and
// /internships/2 share a bucket.
func normalizePath(c *gin.Context) string {
	if fp := c.FullPath(); fp != "" {
		return fp
	}
	return c.Request.URL.Path
}

func KeyByIP() KeyFunc {
	return func(c *gin.Context) string { return "rl:ip:" + ipFromCtx(c) }
}

func KeyByIPAndPath() KeyFunc {
	return func(c *gin.Context) string {
		return "rl:path:" + normalizePath(c) + ":ip:" + ipFromCtx(c)
	}
}

// KeyByUserID limits per verified caller, falling back to the client IP.
func KeyByUserID() KeyFunc {
	return func(c *gin.Context) string {
		if uid := c.GetString(CtxUserIDKey); uid != "" {
			return "rl:user:" + uid
		}
		return "rl:user:anon:ip:" + ipFromCtx(c)
	}
}

// KeyByUserAndPath limits one caller on one route, e.g. applying.
func KeyByUserAndPath() KeyFunc {
	byUser := KeyByUserID()
	return func(c *gin.Context) string {
		return byUser(c) + ":path:" + normalizePath(c)
	}
}

// fixedWindow counts a hit and returns {count, pttl} in one round trip. The
// expiry is set only by the first hit of a window.
var fixedWindow = redis.NewScript(`
local n = redis.call("INCR", KEYS[1])
if n == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return {n, redis.call("PTTL", KEYS[1])}
`)

type window struct {
	count int
	reset time.Duration
}

func hit(ctx context.Context, rdb *redis.Client, key string, size time.Duration) (window, error) {
	res, err := fixedWindow.Run(ctx, rdb, []string{key}, size.Milliseconds()).Int64Slice()
	if err != nil {
		return window{}, err
	}
	w := window{count: int(res[0])}
	if len(res) > 1 && res[1] > 0 {
		w.reset = time.Duration(res[1]) * time.Millisecond
	}
	return w, nil
}

func seconds(d time.Duration) int { return int(math.Ceil(d.Seconds())) }

// RateLimit allows max requests per window for each key, using a fixed window
// counter in Redis. A nil client disables it. Redis errors let the request
// through.
func RateLimit(rdb *redis.Client, max int, size time.Duration, keyFn KeyFunc, allow AllowFunc) gin.HandlerFunc {
	if rdb == nil || max <= 0 || size <= 0 || keyFn == nil {
		return func(c *gin.Context) { c.Next() }
	}
	limit := strconv.Itoa(max)
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions || (allow != nil && allow(c)) {
			c.Next()
			return
		}
		w, err := hit(c.Request.Context(), rdb, keyFn(c), size)
		if err != nil {
			c.Next()
			return
		}

		left := max - w.count
		if left < 0 {
			left = 0
		}
		reset := strconv.Itoa(seconds(w.reset))
		c.Header("X-RateLimit-Limit", limit)
		c.Header("X-RateLimit-Remaining", strconv.Itoa(left))
		c.Header("X-RateLimit-Reset", reset)

		if w.count > max {
			if w.reset > 0 {
				c.Header("Retry-After", reset)
			}
			response.Error[any](c, http.StatusTooManyRequests, apperror.KindRateLimited.Code(), "rate limit exceeded", nil)
			return
		}
		c.Next()
	}
}
