package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// InFlight rejects a request while the same user already has one running
// for name. The lock expires after ttl if the holder never releases it.
func InFlight(rdb *redis.Client, log zerolog.Logger, name string, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "inflight:" + name + ":" + c.GetString(CtxUserID)

		ok, err := rdb.SetNX(c, key, 1, ttl).Result()
		if err != nil {
			log.Warn().Err(err).Str("key", key).Msg("in-flight lock unavailable")
			c.Next()
			return
		}
		if !ok {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"error":   "in_progress",
				"message": "a previous request is still being processed",
			})
			return
		}
		defer rdb.Del(context.WithoutCancel(c.Request.Context()), key)
		c.Next()
	}
}
