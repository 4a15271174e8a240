package notification

import (
	"context"
	"errors"
	"fmt"

	"go-hradmin/internal/audit"
	"go-hradmin/internal/employee"
	"go-hradmin/internal/events"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Directory resolves the employee a fact concerns. employee.Repository satisfies it.
type Directory interface {
	FindByID(ctx context.Context, id string) (*employee.Employee, error)
}

var subjects = map[audit.Kind]string{
	audit.KindVacationApprove:     "Your vacation request was approved",
	audit.KindVacationReject:      "Your vacation request was rejected",
	audit.KindVacationAdjust:      "Your vacation balance was adjusted",
	audit.KindMedicalLeaveRecord:  "A medical leave was registered",
	audit.KindOvertimeApprove:     "Your overtime was approved",
	audit.KindOvertimeReject:      "Your overtime was rejected",
	audit.KindRemunerationPublish: "Your payslip is available",
}

// Dispatcher turns audit facts into employee notifications.
type Dispatcher struct {
	directory Directory
	notifier  Notifier
	logger    *zap.Logger
}

func NewDispatcher(directory Directory, notifier Notifier, logger ...*zap.Logger) *Dispatcher {
	l := zap.L().Named("notification.dispatcher")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.dispatcher")
	}
	return &Dispatcher{directory: directory, notifier: notifier, logger: l}
}

// Dispatch returns (false, nil) for facts nobody is notified about.
func (d *Dispatcher) Dispatch(ctx context.Context, event events.AuditRecordedEvent) (bool, error) {
	subject, ok := subjects[audit.Kind(event.Kind)]
	if !ok || event.EmployeeID == "" {
		return false, nil
	}

	empl, err := d.directory.FindByID(ctx, event.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			d.logger.Warn("notification recipient not found",
				zap.String("employee_id", event.EmployeeID),
				zap.String("audit_id", event.AuditID),
			)
			return false, nil
		}
		return false, fmt.Errorf("notification: load recipient: %w", err)
	}

	if err := d.notifier.Notify(ctx, Notification{
		EmployeeID: event.EmployeeID,
		Recipient:  empl.Email,
		Name:       empl.FullName,
		Subject:    subject,
		Body:       event.Detail,
	}); err != nil {
		return false, fmt.Errorf("notification: deliver: %w", err)
	}
	return true, nil
}
