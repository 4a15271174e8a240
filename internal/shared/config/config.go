package config

import (
	"strings"
	"time"

	"go-hradmin/internal/shared/connection"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type Config struct {
	Port           string
	Postgres       connection.PostgresConfig
	RedisAddr      string
	KafkaBroker    string
	JWTSecret      string
	UploadsPath    string
	MigrationsPath string
	CORSOrigins    []string

	RateLimitRPS   float64
	RateLimitBurst int

	OutboxPollInterval time.Duration
	ConnectRetries     int
}

// Load reads .env (when present) and then the process environment, which wins.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PORT", "3000")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "hradmin")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("KAFKA_BROKER", "localhost:9092")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("UPLOADS_PATH", "./uploads")
	v.SetDefault("MIGRATIONS_PATH", "./migrations")
	v.SetDefault("CORS_ORIGINS", "http://localhost:5173")
	v.SetDefault("RATE_LIMIT_RPS", 10)
	v.SetDefault("RATE_LIMIT_BURST", 20)
	v.SetDefault("OUTBOX_POLL_INTERVAL", "3s")
	v.SetDefault("CONNECT_RETRIES", 5)
	v.AutomaticEnv()

	cfg := &Config{
		Port: v.GetString("PORT"),
		Postgres: connection.PostgresConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		RedisAddr:      v.GetString("REDIS_ADDR"),
		KafkaBroker:    v.GetString("KAFKA_BROKER"),
		JWTSecret:      v.GetString("JWT_SECRET"),
		UploadsPath:    v.GetString("UPLOADS_PATH"),
		MigrationsPath: v.GetString("MIGRATIONS_PATH"),
		CORSOrigins:    splitList(v.GetString("CORS_ORIGINS")),
		RateLimitRPS:   v.GetFloat64("RATE_LIMIT_RPS"),
		RateLimitBurst: v.GetInt("RATE_LIMIT_BURST"),
		ConnectRetries: v.GetInt("CONNECT_RETRIES"),
	}

	poll, err := time.ParseDuration(v.GetString("OUTBOX_POLL_INTERVAL"))
	if err != nil || poll <= 0 {
		zap.L().Warn("invalid OUTBOX_POLL_INTERVAL, using default",
			zap.String("value", v.GetString("OUTBOX_POLL_INTERVAL")),
		)
		poll = 3 * time.Second
	}
	cfg.OutboxPollInterval = poll

	if cfg.JWTSecret == "" {
		zap.L().Warn("JWT_SECRET is not set, every authenticated request will be rejected")
	}

	return cfg, nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
