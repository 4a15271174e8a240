package middleware

import (
	"go-hradmin/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ContextLogger attaches a request-scoped logger. It must run after RequestID and AuthMiddleware.
func ContextLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		reqLogger := logger.With(
			zap.String("request_id", contextutil.GetRequestID(ctx)),
			zap.String("user_id", c.GetString(ctxUserID)),
		)

		c.Request = c.Request.WithContext(contextutil.WithLogger(ctx, reqLogger))
		c.Next()
	}
}

// AccessLog writes one line per request once the handler chain is done, through the
// request-scoped logger when ContextLogger ran.
func AccessLog(logger *zap.Logger) gin.HandlerFunc {
	log := logger.Named("http")
	return func(c *gin.Context) {
		c.Next()
		ctx := c.Request.Context()
		fallback := log.With(zap.String("request_id", contextutil.GetRequestID(ctx)))
		contextutil.GetLogger(ctx, fallback).Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
		)
	}
}
