package bootstrap

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestStdoutAuditLogger_Log(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	l := NewStdoutAuditLogger(zap.New(core))

	l.Log(context.Background(), AuditLog{Action: "SERVER_SHUTDOWN", Message: "bye", Meta: map[string]any{"signal": "terminated"}})

	entries := logs.FilterMessage("lifecycle event").All()
	if assert.Len(t, entries, 1) {
		fields := entries[0].ContextMap()
		assert.Equal(t, "SERVER_SHUTDOWN", fields["action"])
		assert.Equal(t, "audit.lifecycle", entries[0].LoggerName)
	}
}
