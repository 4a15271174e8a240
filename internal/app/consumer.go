package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go-hradmin/internal/employee"
	"go-hradmin/internal/events"
	"go-hradmin/internal/messaging/kafka/consumer"
	"go-hradmin/internal/notification"
	"go-hradmin/internal/shared/config"
	"go-hradmin/internal/shared/connection"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const notificationGroupID = "go-hradmin-notifications"

func RunConsumer(cfg *config.Config) error {
	logger := zap.L().Named("app.consumer")

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Postgres, cfg.ConnectRetries)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	dispatcher := notification.NewDispatcher(
		employee.NewRepository(gormDB),
		notification.NewLogNotifier(logger),
		logger,
	)

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{cfg.KafkaBroker},
		Topic:          events.AuditRecordedTopic,
		GroupID:        notificationGroupID,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeAuditEvents(ctx, reader, dispatcher, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
