package bootstrap

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// AuditLog is a process lifecycle fact. Domain facts go through audit.Recorder instead.
type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}

type StdoutAuditLogger struct {
	logger *zap.Logger
}

func NewStdoutAuditLogger(logger ...*zap.Logger) *StdoutAuditLogger {
	l := zap.L().Named("audit.lifecycle")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("audit.lifecycle")
	}
	return &StdoutAuditLogger{logger: l}
}

func (l *StdoutAuditLogger) Log(_ context.Context, entry AuditLog) {
	l.logger.Info("lifecycle event",
		zap.String("timestamp", time.Now().UTC().Format(time.RFC3339)),
		zap.String("action", entry.Action),
		zap.String("message", entry.Message),
		zap.Any("meta", entry.Meta),
	)
}
