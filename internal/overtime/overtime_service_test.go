package overtime_test

import (
	"context"
	"testing"
	"time"

	"go-hradmin/internal/audit"
	"go-hradmin/internal/domain"
	"go-hradmin/internal/employee"
	"go-hradmin/internal/overtime"
	overtimeerrors "go-hradmin/internal/overtime/errors"

	auditMock "go-hradmin/internal/audit/mock"
	employeeMock "go-hradmin/internal/employee/mock"
	overtimeMock "go-hradmin/internal/overtime/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

var fixedNow = time.Date(2024, 3, 4, 18, 0, 0, 0, time.UTC)

type serviceDeps struct {
	sqlMock   sqlmock.Sqlmock
	service   overtime.Service
	repo      *overtimeMock.MockRepository
	employees *employeeMock.MockRepository
	audit     *auditMock.MockRecorder
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	deps := &serviceDeps{
		sqlMock:   sqlMock,
		repo:      overtimeMock.NewMockRepository(ctrl),
		employees: employeeMock.NewMockRepository(ctrl),
		audit:     auditMock.NewMockRecorder(ctrl),
	}
	deps.service = overtime.NewService(overtime.Deps{
		DB:        db,
		Repo:      deps.repo,
		Employees: deps.employees,
		Audit:     deps.audit,
		Now:       func() time.Time { return fixedNow },
	})
	return deps
}

func TestParseHours(t *testing.T) {
	cases := []struct {
		raw  string
		want string
		ok   bool
	}{
		{"2.5", "2.50", true},
		{"24", "24.00", true},
		{"0", "", false},
		{"-1", "", false},
		{"24.01", "", false},
		{"abc", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			h, err := overtime.ParseHours(tc.raw)
			if !tc.ok {
				assert.ErrorIs(t, err, overtimeerrors.ErrInvalidHours)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, h.StringFixed(2))
		})
	}
}

func TestOvertimeService_Create(t *testing.T) {
	ctx := context.Background()
	empID := uuid.New()
	actor := domain.Actor{UserID: "u-1", EmployeeID: empID.String(), Role: domain.RoleEmployee}

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.employees.EXPECT().FindByID(ctx, empID.String()).Return(&employee.Employee{ID: empID}, nil)
		deps.sqlMock.ExpectBegin()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).Return(nil)
		deps.audit.EXPECT().WithTx(gomock.Any()).Return(deps.audit)
		deps.audit.EXPECT().
			Record(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, e audit.Entry) error {
				assert.Equal(t, audit.KindOvertimeRequest, e.Kind)
				assert.Equal(t, "overtime of 3.50 hours on 2024-03-02 requested", e.Detail)
				return nil
			})
		deps.sqlMock.ExpectCommit()

		resp, err := deps.service.Create(ctx, actor, overtime.CreateOvertimeRequest{Date: "2024-03-02", Hours: "3.5", Reason: " release "})

		require.NoError(t, err)
		assert.Equal(t, "PENDING", resp.Status)
		assert.Equal(t, "3.50", resp.Hours)
		assert.Equal(t, "release", resp.Reason)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative - hours above a day", func(t *testing.T) {
		deps := setupServiceTest(t)
		_, err := deps.service.Create(ctx, actor, overtime.CreateOvertimeRequest{Date: "2024-03-02", Hours: "25", Reason: "x"})
		assert.ErrorIs(t, err, overtimeerrors.ErrInvalidHours)
	})

	t.Run("negative - bad date", func(t *testing.T) {
		deps := setupServiceTest(t)
		_, err := deps.service.Create(ctx, actor, overtime.CreateOvertimeRequest{Date: "02/03/2024", Hours: "2", Reason: "x"})
		assert.ErrorIs(t, err, overtimeerrors.ErrInvalidDate)
	})

	t.Run("negative - employee missing", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.employees.EXPECT().FindByID(ctx, empID.String()).Return(nil, gorm.ErrRecordNotFound)
		_, err := deps.service.Create(ctx, actor, overtime.CreateOvertimeRequest{Date: "2024-03-02", Hours: "2", Reason: "x"})
		assert.ErrorIs(t, err, overtimeerrors.ErrEmployeeNotFound)
	})
}

func pendingOvertime() *overtime.Overtime {
	return &overtime.Overtime{
		ID:         uuid.New(),
		EmployeeID: uuid.New(),
		WorkDate:   time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
		Hours:      decimal.RequireFromString("2"),
		Reason:     "deploy",
		Status:     overtime.StatusPending,
	}
}

func TestOvertimeService_Review(t *testing.T) {
	ctx := context.Background()
	admin := domain.Actor{UserID: "hr-1", Role: domain.RoleHRAdmin}

	t.Run("success approve", func(t *testing.T) {
		deps := setupServiceTest(t)
		o := pendingOvertime()
		comment := "ok"

		deps.sqlMock.ExpectBegin()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, o.ID.String()).Return(o, nil)
		deps.repo.EXPECT().
			Review(ctx, o.ID.String(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, rv overtime.Review) error {
				assert.Equal(t, overtime.StatusApproved, rv.Status)
				assert.Equal(t, fixedNow, rv.ReviewedAt)
				return nil
			})
		deps.audit.EXPECT().WithTx(gomock.Any()).Return(deps.audit)
		deps.audit.EXPECT().
			Record(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, e audit.Entry) error {
				assert.Equal(t, audit.KindOvertimeApprove, e.Kind)
				assert.Equal(t, "overtime of 2.00 hours approved. Comment: ok", e.Detail)
				return nil
			})
		deps.sqlMock.ExpectCommit()

		resp, err := deps.service.Approve(ctx, admin, o.ID.String(), &comment)

		require.NoError(t, err)
		assert.Equal(t, "APPROVED", resp.Status)
		assert.Equal(t, "hr-1", *resp.ReviewerID)
		assert.NotNil(t, resp.ReviewedAt)
	})

	t.Run("success reject without comment", func(t *testing.T) {
		deps := setupServiceTest(t)
		o := pendingOvertime()

		deps.sqlMock.ExpectBegin()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, o.ID.String()).Return(o, nil)
		deps.repo.EXPECT().Review(ctx, o.ID.String(), gomock.Any()).Return(nil)
		deps.audit.EXPECT().WithTx(gomock.Any()).Return(deps.audit)
		deps.audit.EXPECT().
			Record(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, e audit.Entry) error {
				assert.Equal(t, audit.KindOvertimeReject, e.Kind)
				assert.Contains(t, e.Detail, "Comment: none")
				return nil
			})
		deps.sqlMock.ExpectCommit()

		resp, err := deps.service.Reject(ctx, admin, o.ID.String(), nil)

		require.NoError(t, err)
		assert.Equal(t, "REJECTED", resp.Status)
	})

	t.Run("negative - already resolved", func(t *testing.T) {
		deps := setupServiceTest(t)
		o := pendingOvertime()
		o.Status = overtime.StatusApproved

		deps.sqlMock.ExpectBegin()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, o.ID.String()).Return(o, nil)
		deps.sqlMock.ExpectRollback()

		_, err := deps.service.Approve(ctx, admin, o.ID.String(), nil)
		assert.ErrorIs(t, err, overtimeerrors.ErrAlreadyResolved)
	})

	t.Run("negative - concurrent resolution", func(t *testing.T) {
		deps := setupServiceTest(t)
		o := pendingOvertime()

		deps.sqlMock.ExpectBegin()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, o.ID.String()).Return(o, nil)
		deps.repo.EXPECT().Review(ctx, o.ID.String(), gomock.Any()).Return(overtime.ErrNotPending)
		deps.sqlMock.ExpectRollback()

		_, err := deps.service.Reject(ctx, admin, o.ID.String(), nil)
		assert.ErrorIs(t, err, overtimeerrors.ErrAlreadyResolved)
	})

	t.Run("negative - employee cannot review", func(t *testing.T) {
		deps := setupServiceTest(t)
		_, err := deps.service.Approve(ctx, domain.Actor{UserID: "u-1", Role: domain.RoleEmployee}, uuid.NewString(), nil)
		assert.ErrorIs(t, err, overtimeerrors.ErrReviewForbidden)
	})

	t.Run("negative - not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		id := uuid.NewString()
		deps.sqlMock.ExpectBegin()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, id).Return(nil, gorm.ErrRecordNotFound)
		deps.sqlMock.ExpectRollback()

		_, err := deps.service.Approve(ctx, admin, id, nil)
		assert.ErrorIs(t, err, overtimeerrors.ErrOvertimeNotFound)
	})
}

func TestOvertimeService_List(t *testing.T) {
	ctx := context.Background()
	deps := setupServiceTest(t)
	o := pendingOvertime()
	o.Employee = &overtime.EmployeeRef{ID: o.EmployeeID, FullName: "Ana Pérez"}

	deps.repo.EXPECT().
		ListFiltered(ctx, overtime.ListFilter{Status: "PENDING"}).
		Return([]overtime.Overtime{*o}, nil)

	resp, err := deps.service.List(ctx, overtime.ListOvertimeQuery{Status: "PENDING"})

	require.NoError(t, err)
	require.Len(t, resp, 1)
	assert.Equal(t, "Ana Pérez", resp[0].EmployeeName)
	assert.Equal(t, "2024-03-02", resp[0].Date)
}
