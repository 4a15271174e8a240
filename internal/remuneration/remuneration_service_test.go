package remuneration_test

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	"go-hradmin/internal/audit"
	"go-hradmin/internal/document"
	"go-hradmin/internal/domain"
	"go-hradmin/internal/employee"
	"go-hradmin/internal/remuneration"
	remunerationerrors "go-hradmin/internal/remuneration/errors"

	auditMock "go-hradmin/internal/audit/mock"
	documentMock "go-hradmin/internal/document/mock"
	employeeMock "go-hradmin/internal/employee/mock"
	remunerationMock "go-hradmin/internal/remuneration/mock"
	storageMock "go-hradmin/internal/storage/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

var publishedAt = time.Date(2024, 7, 5, 9, 0, 0, 0, time.UTC)

var hrAdmin = domain.Actor{UserID: "hr-1", Role: domain.RoleHRAdmin}

type serviceDeps struct {
	db        *sql.DB
	sqlMock   sqlmock.Sqlmock
	service   remuneration.Service
	repo      *remunerationMock.MockRepository
	documents *documentMock.MockRepository
	employees *employeeMock.MockRepository
	audit     *auditMock.MockRecorder
	store     *storageMock.MockStore
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)

	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	deps := &serviceDeps{
		db:        db,
		sqlMock:   sqlMock,
		repo:      remunerationMock.NewMockRepository(ctrl),
		documents: documentMock.NewMockRepository(ctrl),
		employees: employeeMock.NewMockRepository(ctrl),
		audit:     auditMock.NewMockRecorder(ctrl),
		store:     storageMock.NewMockStore(ctrl),
	}
	deps.service = remuneration.NewService(remuneration.Deps{
		DB:        db,
		Repo:      deps.repo,
		Documents: deps.documents,
		Employees: deps.employees,
		Audit:     deps.audit,
		Store:     deps.store,
		Now:       func() time.Time { return publishedAt },
	})
	return deps
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func payslip() *document.File {
	return &document.File{
		Filename:    "payslip-2024-06.pdf",
		ContentType: "application/pdf",
		Size:        4096,
		Body:        strings.NewReader("%PDF-1.4 payslip"),
	}
}

func TestRemunerationService_Publish(t *testing.T) {
	ctx := context.Background()

	t.Run("success - payslip file is stored as a shared document", func(t *testing.T) {
		deps := setupServiceTest(t)
		empID := uuid.New()
		path := "employees/" + empID.String() + "/remunerations/abc-payslip-2024-06.pdf"

		var kinds []audit.Kind
		var storedDoc *document.Document

		deps.employees.EXPECT().FindByID(ctx, empID.String()).Return(&employee.Employee{ID: empID}, nil)
		deps.store.EXPECT().
			Save(ctx, "employees/"+empID.String()+"/remunerations", "payslip-2024-06.pdf", gomock.Any()).
			Return(path, nil)
		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().HasPublished(ctx, empID.String(), "2024-06").Return(false, nil)
		deps.audit.EXPECT().WithTx(gomock.Any()).Return(deps.audit)
		deps.documents.EXPECT().WithTx(gomock.Any()).Return(deps.documents)
		deps.documents.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, d *document.Document) error {
				storedDoc = d
				assert.Equal(t, document.TypePayslip, d.Type)
				assert.Equal(t, document.VisibilityShared, d.Visibility)
				assert.Equal(t, path, d.StoragePath)
				require.NotNil(t, d.Period)
				assert.Equal(t, "2024-06", *d.Period)
				return nil
			})
		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, r *remuneration.Remuneration) error {
				assert.Equal(t, storedDoc.ID, r.DocumentID)
				assert.Equal(t, remuneration.StatusPublished, r.Status)
				assert.True(t, r.NetAmount.Valid)
				assert.True(t, decimal.RequireFromString("1234567.89").Equal(r.NetAmount.Decimal))
				assert.False(t, r.GrossAmount.Valid)
				return nil
			})
		deps.audit.EXPECT().
			Record(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, entry audit.Entry) error {
				kinds = append(kinds, entry.Kind)
				if entry.Kind == audit.KindRemunerationPublish {
					assert.Equal(t, empID.String(), entry.EmployeeID)
					assert.Equal(t, "remuneration for 2024-06 published", entry.Detail)
				}
				return nil
			}).
			Times(2)

		resp, err := deps.service.Publish(ctx, hrAdmin, empID.String(), remuneration.PublishRemunerationRequest{
			Period:      "2024-06",
			PaymentDate: "2024-06-30",
			NetAmount:   "1234567.891",
		}, payslip())

		require.NoError(t, err)
		assert.Equal(t, []audit.Kind{audit.KindDocumentUpload, audit.KindRemunerationPublish}, kinds)
		require.NotNil(t, resp.NetAmount)
		assert.Equal(t, "1234567.89", *resp.NetAmount)
		require.NotNil(t, resp.PaymentDate)
		assert.Equal(t, "2024-06-30", *resp.PaymentDate)
		require.NotNil(t, resp.Document)
		assert.Equal(t, "payslip-2024-06.pdf", resp.Document.OriginalName)
		assert.Equal(t, publishedAt.Format(time.RFC3339), resp.PublishedAt)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("success - existing document of the employee is linked", func(t *testing.T) {
		deps := setupServiceTest(t)
		empID := uuid.New()
		doc := &document.Document{ID: uuid.New(), EmployeeID: empID, OriginalName: "june.pdf"}

		deps.employees.EXPECT().FindByID(ctx, empID.String()).Return(&employee.Employee{ID: empID}, nil)
		deps.documents.EXPECT().FindByID(ctx, doc.ID.String()).Return(doc, nil)
		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().HasPublished(ctx, empID.String(), "2024-06").Return(false, nil)
		deps.audit.EXPECT().WithTx(gomock.Any()).Return(deps.audit)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).Return(nil)
		deps.audit.EXPECT().Record(ctx, gomock.Any()).Return(nil)

		resp, err := deps.service.Publish(ctx, hrAdmin, empID.String(), remuneration.PublishRemunerationRequest{
			Period:     "2024-06",
			DocumentID: doc.ID.String(),
		}, nil)

		require.NoError(t, err)
		assert.Equal(t, doc.ID.String(), resp.DocumentID)
		assert.Nil(t, resp.NetAmount)
	})

	t.Run("negative - document of another employee", func(t *testing.T) {
		deps := setupServiceTest(t)
		empID := uuid.New()
		doc := &document.Document{ID: uuid.New(), EmployeeID: uuid.New()}

		deps.employees.EXPECT().FindByID(ctx, empID.String()).Return(&employee.Employee{ID: empID}, nil)
		deps.documents.EXPECT().FindByID(ctx, doc.ID.String()).Return(doc, nil)

		_, err := deps.service.Publish(ctx, hrAdmin, empID.String(), remuneration.PublishRemunerationRequest{
			Period:     "2024-06",
			DocumentID: doc.ID.String(),
		}, nil)

		assert.ErrorIs(t, err, remunerationerrors.ErrInvalidDocument)
	})

	t.Run("negative - period already published removes the stored payslip", func(t *testing.T) {
		deps := setupServiceTest(t)
		empID := uuid.New()

		deps.employees.EXPECT().FindByID(ctx, empID.String()).Return(&employee.Employee{ID: empID}, nil)
		deps.store.EXPECT().Save(ctx, gomock.Any(), gomock.Any(), gomock.Any()).Return("employees/x/remunerations/p.pdf", nil)
		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().HasPublished(ctx, empID.String(), "2024-06").Return(true, nil)
		deps.store.EXPECT().Delete(gomock.Any(), "employees/x/remunerations/p.pdf").Return(nil)

		_, err := deps.service.Publish(ctx, hrAdmin, empID.String(), remuneration.PublishRemunerationRequest{Period: "2024-06"}, payslip())

		assert.ErrorIs(t, err, remunerationerrors.ErrAlreadyPublished)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative - concurrent publish hits the unique index", func(t *testing.T) {
		deps := setupServiceTest(t)
		empID := uuid.New()
		doc := &document.Document{ID: uuid.New(), EmployeeID: empID}

		deps.employees.EXPECT().FindByID(ctx, empID.String()).Return(&employee.Employee{ID: empID}, nil)
		deps.documents.EXPECT().FindByID(ctx, doc.ID.String()).Return(doc, nil)
		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().HasPublished(ctx, empID.String(), "2024-06").Return(false, nil)
		deps.audit.EXPECT().WithTx(gomock.Any()).Return(deps.audit)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).Return(&pgconn.PgError{Code: "23505", ConstraintName: "uq_remunerations_published"})

		_, err := deps.service.Publish(ctx, hrAdmin, empID.String(), remuneration.PublishRemunerationRequest{
			Period:     "2024-06",
			DocumentID: doc.ID.String(),
		}, nil)

		assert.ErrorIs(t, err, remunerationerrors.ErrAlreadyPublished)
	})

	t.Run("negative - validation", func(t *testing.T) {
		deps := setupServiceTest(t)
		empID := uuid.NewString()
		image := payslip()
		image.ContentType = "image/png"
		huge := payslip()
		huge.Size = remuneration.MaxPayslipSize + 1

		cases := []struct {
			name  string
			actor domain.Actor
			req   remuneration.PublishRemunerationRequest
			file  *document.File
			want  error
		}{
			{"employee role", domain.Actor{UserID: "u-1", Role: domain.RoleEmployee}, remuneration.PublishRemunerationRequest{Period: "2024-06"}, payslip(), remunerationerrors.ErrManageForbidden},
			{"bad period", hrAdmin, remuneration.PublishRemunerationRequest{Period: "06-2024"}, payslip(), remunerationerrors.ErrInvalidPeriod},
			{"bad payment date", hrAdmin, remuneration.PublishRemunerationRequest{Period: "2024-06", PaymentDate: "30/06/2024"}, payslip(), remunerationerrors.ErrInvalidPaymentDate},
			{"negative amount", hrAdmin, remuneration.PublishRemunerationRequest{Period: "2024-06", GrossAmount: "-1"}, payslip(), remunerationerrors.ErrInvalidAmount},
			{"no payslip", hrAdmin, remuneration.PublishRemunerationRequest{Period: "2024-06"}, nil, remunerationerrors.ErrDocumentRequired},
			{"payslip not pdf", hrAdmin, remuneration.PublishRemunerationRequest{Period: "2024-06"}, image, remunerationerrors.ErrPayslipType},
			{"payslip too large", hrAdmin, remuneration.PublishRemunerationRequest{Period: "2024-06"}, huge, remunerationerrors.ErrPayslipTooLarge},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := deps.service.Publish(ctx, tc.actor, empID, tc.req, tc.file)
				assert.ErrorIs(t, err, tc.want)
			})
		}
	})
}

func TestRemunerationService_Annul(t *testing.T) {
	ctx := context.Background()

	t.Run("success - published remuneration is annulled and audited", func(t *testing.T) {
		deps := setupServiceTest(t)
		rem := &remuneration.Remuneration{ID: uuid.New(), EmployeeID: uuid.New(), Period: "2024-05", Status: remuneration.StatusPublished, PublishedAt: publishedAt}

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, rem.ID.String()).Return(rem, nil)
		deps.repo.EXPECT().Annul(ctx, rem.ID.String(), "hr-1", publishedAt).Return(nil)
		deps.audit.EXPECT().WithTx(gomock.Any()).Return(deps.audit)
		deps.audit.EXPECT().
			Record(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, entry audit.Entry) error {
				assert.Equal(t, audit.KindRemunerationAnnul, entry.Kind)
				assert.Equal(t, "remuneration for 2024-05 annulled", entry.Detail)
				return nil
			})

		resp, err := deps.service.Annul(ctx, hrAdmin, rem.ID.String())

		require.NoError(t, err)
		assert.Equal(t, "ANNULLED", resp.Status)
		require.NotNil(t, resp.AnnulledAt)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative - already annulled", func(t *testing.T) {
		deps := setupServiceTest(t)
		rem := &remuneration.Remuneration{ID: uuid.New(), Status: remuneration.StatusAnnulled}

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, rem.ID.String()).Return(rem, nil)
		deps.repo.EXPECT().Annul(ctx, rem.ID.String(), "hr-1", publishedAt).Return(remuneration.ErrNotPublished)

		_, err := deps.service.Annul(ctx, hrAdmin, rem.ID.String())

		assert.ErrorIs(t, err, remunerationerrors.ErrAlreadyAnnulled)
	})

	t.Run("negative - unknown remuneration", func(t *testing.T) {
		deps := setupServiceTest(t)
		id := uuid.NewString()

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, id).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.Annul(ctx, hrAdmin, id)

		assert.ErrorIs(t, err, remunerationerrors.ErrRemunerationNotFound)
	})
}

func TestRemunerationService_LatestPublished(t *testing.T) {
	ctx := context.Background()

	t.Run("success - summary includes the payslip name", func(t *testing.T) {
		deps := setupServiceTest(t)
		empID := uuid.New()
		docID := uuid.New()
		net := decimal.NewNullDecimal(decimal.RequireFromString("950000"))

		deps.repo.EXPECT().LatestPublished(ctx, empID.String()).Return(&remuneration.Remuneration{
			ID:          uuid.New(),
			EmployeeID:  empID,
			Period:      "2024-06",
			NetAmount:   net,
			DocumentID:  docID,
			Document:    &document.Document{ID: docID, OriginalName: "june.pdf"},
			Status:      remuneration.StatusPublished,
			PublishedAt: publishedAt,
		}, nil)

		summary, err := deps.service.LatestPublished(ctx, empID.String())

		require.NoError(t, err)
		require.NotNil(t, summary)
		assert.Equal(t, "2024-06", summary.Period)
		assert.Equal(t, "950000.00", *summary.NetAmount)
		assert.Equal(t, "june.pdf", summary.DocumentName)
	})

	t.Run("success - nothing published yet", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().LatestPublished(ctx, "e-1").Return(nil, gorm.ErrRecordNotFound)

		summary, err := deps.service.LatestPublished(ctx, "e-1")

		assert.NoError(t, err)
		assert.Nil(t, summary)
	})
}

func TestRemunerationService_ListMine(t *testing.T) {
	ctx := context.Background()

	t.Run("success - scoped to the caller", func(t *testing.T) {
		deps := setupServiceTest(t)
		empID := uuid.New()
		actor := domain.Actor{UserID: "u-1", Role: domain.RoleEmployee}

		deps.employees.EXPECT().FindByUserID(ctx, "u-1").Return(&employee.Employee{ID: empID}, nil)
		deps.repo.EXPECT().List(ctx, remuneration.ListFilter{EmployeeID: empID.String()}).Return(nil, nil)

		resp, err := deps.service.ListMine(ctx, actor)

		require.NoError(t, err)
		assert.Empty(t, resp)
	})
}
