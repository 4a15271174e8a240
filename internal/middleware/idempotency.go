package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go-hradmin/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	HeaderIdempotencyKey = "Idempotency-Key"

	ctxIdempotencyCacheKey = "idempotency_cache_key"
	ctxIdempotencyLockKey  = "idempotency_lock_key"

	idempotencyLockTTL   = 30 * time.Second
	idempotencyResultTTL = 24 * time.Hour
)

// Idempotency replays the stored result of a POST carrying an Idempotency-Key and
// rejects a duplicate that arrives while the first one is still running.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	log := zap.L().Named("middleware.idempotency")
	return func(c *gin.Context) {
		idempKey := c.GetHeader(HeaderIdempotencyKey)
		if rdb == nil || idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		cacheKey := fmt.Sprintf("idemp:%s:%s:%s", c.FullPath(), c.GetString(ctxUserID), idempKey)
		lockKey := cacheKey + ":lock"

		if val, err := rdb.Get(ctx, cacheKey).Result(); err == nil {
			var cached any
			if json.Unmarshal([]byte(val), &cached) == nil {
				log.Debug("idempotent replay", zap.String("key", cacheKey))
				response.Success(c, http.StatusOK, cached, nil)
				c.Abort()
				return
			}
		}

		isNew, err := rdb.SetNX(ctx, lockKey, "locked", idempotencyLockTTL).Result()
		if err != nil {
			log.Warn("idempotency lock unavailable, continuing without it", zap.Error(err))
			c.Next()
			return
		}
		if !isNew {
			response.Abort(c, http.StatusConflict, "PROCESSING", "The same request is still being processed")
			return
		}

		c.Set(ctxIdempotencyCacheKey, cacheKey)
		c.Set(ctxIdempotencyLockKey, lockKey)
		c.Next()
	}
}

// CompleteIdempotency stores a successful result for replay (when data is non-nil) and releases the lock.
func CompleteIdempotency(c *gin.Context, rdb *redis.Client, data any) {
	if rdb == nil {
		return
	}
	ctx := c.Request.Context()
	if cacheKey := c.GetString(ctxIdempotencyCacheKey); cacheKey != "" && data != nil {
		if raw, err := json.Marshal(data); err == nil {
			rdb.Set(ctx, cacheKey, raw, idempotencyResultTTL)
		}
	}
	if lockKey := c.GetString(ctxIdempotencyLockKey); lockKey != "" {
		rdb.Del(ctx, lockKey)
	}
}
