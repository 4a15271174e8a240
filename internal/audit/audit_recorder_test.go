package audit_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"go-hradmin/internal/audit"
	auditMock "go-hradmin/internal/audit/mock"
	"go-hradmin/internal/events"
	"go-hradmin/internal/messaging/kafka"
	kafkaMock "go-hradmin/internal/messaging/kafka/mock"
	"go-hradmin/internal/shared/contextutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestRecorder_Record(t *testing.T) {
	t.Run("success - event stored and queued in the same tx", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := auditMock.NewMockRepository(ctrl)
		outbox := kafkaMock.NewMockOutboxRepository(ctrl)

		db, sqlMock, _ := sqlmock.New()
		defer db.Close()
		sqlMock.ExpectBegin()
		tx, err := db.Begin()
		assert.NoError(t, err)

		ctx := contextutil.WithRequestID(context.Background(), "REQ-1")
		entry := audit.Entry{
			ActorID:    "user-1",
			Kind:       audit.KindVacationApprove,
			EntityType: audit.EntityVacationRequest,
			EntityID:   "vac-1",
			EmployeeID: "emp-1",
			Detail:     "approved 3 days",
		}

		repo.EXPECT().WithTx(tx).Return(repo)
		repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, e *audit.Event) error {
			assert.Equal(t, "user-1", e.ActorID)
			assert.Equal(t, audit.KindVacationApprove, e.Kind)
			assert.Equal(t, "vac-1", e.EntityID)
			assert.False(t, e.CreatedAt.IsZero())
			return nil
		})
		outbox.EXPECT().WithTx(tx).Return(outbox)
		outbox.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, ev kafka.OutboxEvent) error {
			assert.Equal(t, events.AuditRecordedTopic, ev.Topic)
			assert.Equal(t, "REQ-1", ev.RequestID)
			assert.Equal(t, kafka.OutboxStatusPending, ev.Status)

			var payload events.AuditRecordedEvent
			assert.NoError(t, json.Unmarshal(ev.Payload, &payload))
			assert.Equal(t, "VACATION_APPROVE", payload.Kind)
			assert.Equal(t, "emp-1", payload.EmployeeID)
			return nil
		})

		err = audit.NewRecorder(repo, outbox).WithTx(tx).Record(ctx, entry)
		assert.NoError(t, err)
	})

	t.Run("negative - unknown kind is rejected before any write", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := auditMock.NewMockRepository(ctrl)

		err := audit.NewRecorder(repo, nil).Record(context.Background(), audit.Entry{Kind: "VACATION_DELETE"})
		assert.Error(t, err)
	})

	t.Run("negative - persist failure is returned", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := auditMock.NewMockRepository(ctrl)
		outbox := kafkaMock.NewMockOutboxRepository(ctrl)

		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("db down"))

		err := audit.NewRecorder(repo, outbox).Record(context.Background(), audit.Entry{Kind: audit.KindVacationReject})
		assert.Error(t, err)
	})
}

func TestService_List(t *testing.T) {
	t.Run("success - filters and pagination", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := auditMock.NewMockRepository(ctrl)

		repo.EXPECT().
			List(gomock.Any(), gomock.Any(), 20, 20).
			DoAndReturn(func(_ context.Context, f audit.ListFilter, _, _ int) ([]audit.Event, int64, error) {
				assert.Equal(t, audit.KindMedicalLeaveRecord, f.Kind)
				assert.Equal(t, "2024-06-02", f.To.Format("2006-01-02"))
				return []audit.Event{{Kind: audit.KindMedicalLeaveRecord, Detail: "1 request"}}, 21, nil
			})

		rows, total, err := audit.NewService(repo).List(context.Background(), audit.ListAuditEventsQuery{
			Kind: "REGISTRO_LICENCIA_MEDICA",
			To:   "2024-06-01",
			Page: 2,
		})

		assert.NoError(t, err)
		assert.Equal(t, int64(21), total)
		assert.Len(t, rows, 1)
	})

	t.Run("negative - invalid kind", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := auditMock.NewMockRepository(ctrl)

		_, _, err := audit.NewService(repo).List(context.Background(), audit.ListAuditEventsQuery{Kind: "LOGIN"})
		assert.Error(t, err)
	})
}

func TestRecorder_ActorFromContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := auditMock.NewMockRepository(ctrl)
	ctx := contextutil.WithUserID(context.Background(), "user-ctx")

	repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, e *audit.Event) error {
		assert.Equal(t, "user-ctx", e.ActorID)
		return nil
	})

	err := audit.NewRecorder(repo, nil).Record(ctx, audit.Entry{
		Kind:       audit.KindOvertimeRequest,
		EntityType: audit.EntityOvertime,
		EntityID:   "ot-1",
	})
	assert.NoError(t, err)
}
