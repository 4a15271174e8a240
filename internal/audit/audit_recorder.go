package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"go-hradmin/internal/events"
	"go-hradmin/internal/messaging/kafka"
	"go-hradmin/internal/shared/contextutil"

	"github.com/google/uuid"
)

// Entry is one fact emitted by a domain operation.
// EmployeeID names the employee the fact concerns, used for notifications only.
type Entry struct {
	ActorID    string
	Kind       Kind
	EntityType string
	EntityID   string
	EmployeeID string
	Detail     string
}

// Recorder writes audit events inside the caller's transaction: when the
// transaction rolls back the audit row and its outbox copy disappear with it.
//
//go:generate mockgen -source=audit_recorder.go -destination=mock/audit_recorder_mock.go -package=mock
type Recorder interface {
	WithTx(tx *sql.Tx) Recorder
	Record(ctx context.Context, entry Entry) error
}

type recorder struct {
	repo   Repository
	outbox kafka.OutboxRepository
	tx     *sql.Tx
	now    func() time.Time
}

// NewRecorder builds a Recorder. outbox may be nil, in which case events are only stored.
func NewRecorder(repo Repository, outbox kafka.OutboxRepository) Recorder {
	return &recorder{repo: repo, outbox: outbox, now: func() time.Time { return time.Now().UTC() }}
}

func (r *recorder) WithTx(tx *sql.Tx) Recorder {
	return &recorder{repo: r.repo, outbox: r.outbox, tx: tx, now: r.now}
}

func (r *recorder) Record(ctx context.Context, entry Entry) error {
	if !entry.Kind.Valid() {
		return fmt.Errorf("audit: unknown kind %q", entry.Kind)
	}
	if entry.ActorID == "" {
		entry.ActorID = contextutil.GetUserID(ctx)
	}

	e := &Event{
		ID:         uuid.New(),
		ActorID:    entry.ActorID,
		Kind:       entry.Kind,
		EntityType: entry.EntityType,
		EntityID:   entry.EntityID,
		Detail:     entry.Detail,
		CreatedAt:  r.now(),
	}

	repo := r.repo
	if r.tx != nil {
		repo = repo.WithTx(r.tx)
	}
	if err := repo.Create(ctx, e); err != nil {
		return fmt.Errorf("audit: persist event: %w", err)
	}

	if r.outbox == nil {
		return nil
	}

	rid := contextutil.GetRequestID(ctx)
	payload, err := json.Marshal(events.AuditRecordedEvent{
		EventType:  events.AuditRecordedEventType,
		RequestID:  rid,
		AuditID:    e.ID.String(),
		ActorID:    e.ActorID,
		Kind:       string(e.Kind),
		EntityType: e.EntityType,
		EntityID:   e.EntityID,
		EmployeeID: entry.EmployeeID,
		Detail:     e.Detail,
		OccurredAt: e.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("audit: marshal event: %w", err)
	}

	outbox := r.outbox
	if r.tx != nil {
		outbox = outbox.WithTx(r.tx)
	}
	if err := outbox.Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: e.EntityType,
		AggregateID:   e.EntityID,
		EventType:     events.AuditRecordedEventType,
		Topic:         events.AuditRecordedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		return fmt.Errorf("audit: queue outbox event: %w", err)
	}
	return nil
}
