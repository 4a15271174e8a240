package notification

import (
	"context"

	"go.uber.org/zap"
)

// Notification is a message addressed to one employee.
type Notification struct {
	EmployeeID string
	Recipient  string
	Name       string
	Subject    string
	Body       string
}

//go:generate mockgen -source=notifier.go -destination=mock/notifier_mock.go -package=mock
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// LogNotifier writes notifications as structured log lines. It stands in for
// email delivery, which lives outside this service.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger ...*zap.Logger) *LogNotifier {
	l := zap.L().Named("notification.log")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.log")
	}
	return &LogNotifier{logger: l}
}

func (n *LogNotifier) Notify(_ context.Context, msg Notification) error {
	n.logger.Info("notification",
		zap.String("employee_id", msg.EmployeeID),
		zap.String("recipient", msg.Recipient),
		zap.String("subject", msg.Subject),
		zap.String("body", msg.Body),
	)
	return nil
}
