package consumer

import (
	"context"
	"encoding/json"

	"go-hradmin/internal/events"
	"go-hradmin/internal/notification"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the part of *kafkago.Reader the consumer needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// ConsumeAuditEvents notifies employees about audit facts that concern them.
// Undecodable messages are committed and skipped; delivery failures are left
// uncommitted so the group redelivers them after a restart.
func ConsumeAuditEvents(
	ctx context.Context,
	reader MessageReader,
	dispatcher *notification.Dispatcher,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.audit_recorded")
	log.Info("audit consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("audit consumer stopped")
				return
			}
			log.Error("fetch audit message failed", zap.Error(err))
			continue
		}

		var event events.AuditRecordedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil || event.EventType != events.AuditRecordedEventType {
			log.Error("decode audit_recorded event failed",
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		sent, err := dispatcher.Dispatch(ctx, event)
		if err != nil {
			log.Error("dispatch notification failed",
				zap.String("audit_id", event.AuditID),
				zap.String("kind", event.Kind),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit audit message failed", zap.Error(err))
			continue
		}

		if sent {
			log.Info("notification sent from audit event",
				zap.String("audit_id", event.AuditID),
				zap.String("kind", event.Kind),
				zap.String("employee_id", event.EmployeeID),
			)
		}
	}
}
