package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/careerconnect-api/internal/interface/middleware"
)

// Limiter builds Redis rate limits for modules. A disabled limiter or a nil
// client yields pass-through handlers.
type Limiter struct {
	RDB     *redis.Client
	Enabled bool
	Allow   middleware.AllowFunc
}

func (l Limiter) build(max int, window time.Duration, key middleware.KeyFunc) gin.HandlerFunc {
	if !l.Enabled {
		return middleware.RateLimit(nil, max, window, key, nil)
	}
	return middleware.RateLimit(l.RDB, max, window, key, l.Allow)
}

func (l Limiter) PerIP(max int, window time.Duration) gin.HandlerFunc {
	return l.build(max, window, middleware.KeyByIP())
}

func (l Limiter) PerIPAndPath(max int, window time.Duration) gin.HandlerFunc {
	return l.build(max, window, middleware.KeyByIPAndPath())
}

func (l Limiter) PerUser(max int, window time.Duration) gin.HandlerFunc {
	return l.build(max, window, middleware.KeyByUserID())
}

func (l Limiter) PerUserAndPath(max int, window time.Duration) gin.HandlerFunc {
	return l.build(max, window, middleware.KeyByUserAndPath())
}
