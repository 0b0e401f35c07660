package middleware

import (
	"net/http"
	"strconv"
	"time"

	"sdtech_backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimiter allows count requests per client IP and period, counted in Redis.
// A nil client disables limiting; Redis errors let the request through.
func RateLimiter(client redis.UniversalClient, scope string, count int, period time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if client == nil || count <= 0 {
			c.Next()
			return
		}

		key := "rate_limit:" + scope + ":" + c.ClientIP()
		ctx := c.Request.Context()

		n, err := client.Incr(ctx, key).Result()
		if err != nil {
			utils.LogError(err, "RateLimiter: redis INCR failed")
			c.Next()
			return
		}
		if n == 1 {
			client.Expire(ctx, key, period)
		}

		if n > int64(count) {
			c.Header("Retry-After", strconv.Itoa(int(period.Seconds())))
			utils.RespondWithError(c, utils.NewAPIError(http.StatusTooManyRequests, utils.ErrCodeTooManyRequests, "Too many requests", ""))
			return
		}

		c.Next()
	}
}
