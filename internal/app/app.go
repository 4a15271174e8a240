package app

import (
	"time"

	"go-hradmin/internal/middleware"
	"go-hradmin/internal/shared/config"
	"go-hradmin/internal/shared/connection"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// BuildApp connects infrastructure, applies migrations and registers every module on router.
// The returned func releases the connections.
func BuildApp(router *gin.Engine, cfg *config.Config) (func(), error) {
	logger := zap.L()

	if err := connection.RunMigrations(cfg.Postgres, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Postgres, cfg.ConnectRetries)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	logger.Info("database connection established")

	rdb, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, cfg.ConnectRetries)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	logger.Info("redis connection established")

	cleanup := func() {
		_ = rdb.Close()
		_ = sqlDB.Close()
	}

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     cfg.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Authorization", "Content-Type", "Idempotency-Key", middleware.HeaderRequestID},
			ExposeHeaders:    []string{middleware.HeaderRequestID},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		middleware.RequestID(),
		middleware.AccessLog(logger),
		middleware.RateLimitByIP(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst),
	)

	if err := registerModules(router, cfg, sqlDB, gormDB, rdb, logger); err != nil {
		cleanup()
		return nil, err
	}
	return cleanup, nil
}
