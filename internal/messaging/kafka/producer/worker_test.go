package producer_test

import (
	"context"
	"errors"
	"testing"

	"go-hradmin/internal/events"
	"go-hradmin/internal/messaging/kafka"
	"go-hradmin/internal/messaging/kafka/mock"
	"go-hradmin/internal/messaging/kafka/producer"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type fakeWriter struct {
	written []kafkago.Message
	failKey string
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	for _, m := range msgs {
		if string(m.Key) == w.failKey {
			return errors.New("broker unavailable")
		}
		w.written = append(w.written, m)
	}
	return nil
}

func TestProcessPendingEvents(t *testing.T) {
	ctx := context.Background()

	t.Run("sends and marks", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock.NewMockOutboxRepository(ctrl)
		writer := &fakeWriter{failKey: "vr-2"}

		repo.EXPECT().ListPending(ctx, 50).Return([]kafka.OutboxEvent{
			{ID: "o-1", RequestID: "req-1", AggregateType: "vacation_request", AggregateID: "vr-1", EventType: events.AuditRecordedEventType, Topic: events.AuditRecordedTopic, Payload: []byte(`{}`)},
			{ID: "o-2", AggregateType: "vacation_request", AggregateID: "vr-2", EventType: events.AuditRecordedEventType, Topic: events.AuditRecordedTopic, Payload: []byte(`{}`)},
		}, nil)
		repo.EXPECT().MarkSent(ctx, "o-1").Return(nil)
		repo.EXPECT().MarkFailed(ctx, "o-2", "broker unavailable").Return(nil)

		sent, err := producer.ProcessPendingEvents(ctx, repo, writer, zap.NewNop())

		require.NoError(t, err)
		assert.Equal(t, 1, sent)
		require.Len(t, writer.written, 1)
		assert.Equal(t, events.AuditRecordedTopic, writer.written[0].Topic)
		assert.Equal(t, "vr-1", string(writer.written[0].Key))
		assert.Len(t, writer.written[0].Headers, 3)
	})

	t.Run("negative - list failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock.NewMockOutboxRepository(ctrl)
		repo.EXPECT().ListPending(ctx, 50).Return(nil, errors.New("db down"))

		_, err := producer.ProcessPendingEvents(ctx, repo, &fakeWriter{}, zap.NewNop())
		assert.Error(t, err)
	})
}
