package consumer_test

import (
	"context"
	"encoding/json"
	"testing"

	"go-hradmin/internal/employee"
	"go-hradmin/internal/events"
	"go-hradmin/internal/messaging/kafka/consumer"
	"go-hradmin/internal/notification"

	employeeMock "go-hradmin/internal/employee/mock"
	notificationMock "go-hradmin/internal/notification/mock"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

// fakeReader serves msgs in order, then cancels the consumer context.
type fakeReader struct {
	msgs      []kafkago.Message
	committed []int64
	cancel    context.CancelFunc
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafkago.Message, error) {
	if len(r.msgs) == 0 {
		r.cancel()
		<-ctx.Done()
		return kafkago.Message{}, ctx.Err()
	}
	m := r.msgs[0]
	r.msgs = r.msgs[1:]
	return m, nil
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafkago.Message) error {
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	return nil
}

func TestConsumeAuditEvents(t *testing.T) {
	ctrl := gomock.NewController(t)
	dir := employeeMock.NewMockRepository(ctrl)
	notifier := notificationMock.NewMockNotifier(ctrl)
	empID := uuid.New()

	payload, err := json.Marshal(events.AuditRecordedEvent{
		EventType:  events.AuditRecordedEventType,
		AuditID:    "a-1",
		Kind:       "VACATION_REJECT",
		EmployeeID: empID.String(),
		Detail:     "request rejected. Comment: none",
	})
	require.NoError(t, err)

	dir.EXPECT().FindByID(gomock.Any(), empID.String()).Return(&employee.Employee{ID: empID, Email: "e@example.com"}, nil)
	notifier.EXPECT().
		Notify(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, n notification.Notification) error {
			assert.Equal(t, "e@example.com", n.Recipient)
			assert.Equal(t, "Your vacation request was rejected", n.Subject)
			return nil
		})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	reader := &fakeReader{
		cancel: cancel,
		msgs: []kafkago.Message{
			{Offset: 1, Value: []byte("not json")},
			{Offset: 2, Value: payload},
		},
	}

	consumer.ConsumeAuditEvents(ctx, reader, notification.NewDispatcher(dir, notifier), zap.NewNop())

	assert.Equal(t, []int64{1, 2}, reader.committed)
}
