package events

import "time"

const (
	AuditRecordedTopic     = "hr.audit.events.v1"
	AuditRecordedEventType = "audit_recorded"
)

// AuditRecordedEvent is the asynchronous copy of an audit row, relayed through the outbox.
type AuditRecordedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	AuditID    string    `json:"audit_id"`
	ActorID    string    `json:"actor_id"`
	Kind       string    `json:"kind"`
	EntityType string    `json:"entity_type"`
	EntityID   string    `json:"entity_id"`
	EmployeeID string    `json:"employee_id,omitempty"`
	Detail     string    `json:"detail"`
	OccurredAt time.Time `json:"occurred_at"`
}
