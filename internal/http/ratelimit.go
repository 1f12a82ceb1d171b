package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/sneha-1019/PawfectHomes/internal/log"
)

// RateLimiter is a fixed-window per-IP counter in Redis, applied to the
// OTP-issuing auth endpoints. With a nil client it allows everything.
type RateLimiter struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
}

func NewRateLimiter(rdb *redis.Client, perMin int) *RateLimiter {
	return &RateLimiter{rdb: rdb, limit: perMin, window: time.Minute}
}

func (rl *RateLimiter) Limit(route string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl == nil || rl.rdb == nil || rl.limit <= 0 {
			c.Next()
			return
		}
		key := "rl:" + route + ":" + c.ClientIP()
		ctx := c.Request.Context()

		n, err := rl.rdb.Incr(ctx, key).Result()
		if err != nil {
			// rate limiting is advisory; never block traffic on Redis trouble
			log.Errorf("rate limit incr: %v", err)
			c.Next()
			return
		}
		if n == 1 {
			rl.rdb.Expire(ctx, key, rl.window)
		}
		if n > int64(rl.limit) {
			abortFail(c, http.StatusTooManyRequests, "Too many requests, try again later")
			return
		}
		c.Next()
	}
}
