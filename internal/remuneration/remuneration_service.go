package remuneration

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go-hradmin/internal/audit"
	"go-hradmin/internal/document"
	"go-hradmin/internal/domain"
	"go-hradmin/internal/employee"
	remunerationerrors "go-hradmin/internal/remuneration/errors"
	"go-hradmin/internal/storage"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	dateLayout   = "2006-01-02"
	periodLayout = "2006-01"

	MaxPayslipSize = 15 << 20
)

var payslipTypes = map[string]struct{}{
	"application/pdf": {},
}

//go:generate mockgen -source=remuneration_service.go -destination=mock/remuneration_service_mock.go -package=mock
type Service interface {
	Publish(ctx context.Context, actor domain.Actor, employeeID string, req PublishRemunerationRequest, payslip *document.File) (RemunerationResponse, error)
	Annul(ctx context.Context, actor domain.Actor, id string) (RemunerationResponse, error)
	ListMine(ctx context.Context, actor domain.Actor) ([]RemunerationResponse, error)
	List(ctx context.Context, q ListRemunerationsQuery) ([]RemunerationResponse, error)
	LatestPublished(ctx context.Context, employeeID string) (*employee.RemunerationSummary, error)
}

type Deps struct {
	DB        *sql.DB
	Repo      Repository
	Documents document.Repository
	Employees document.Employees
	Audit     audit.Recorder
	Store     storage.Store
	Now       func() time.Time
}

type service struct {
	db        *sql.DB
	repo      Repository
	documents document.Repository
	employees document.Employees
	audit     audit.Recorder
	store     storage.Store
	now       func() time.Time
	logger    *zap.Logger
}

func NewService(deps Deps, logger ...*zap.Logger) Service {
	l := zap.L().Named("remuneration.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("remuneration.service")
	}
	now := deps.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &service{
		db:        deps.DB,
		repo:      deps.Repo,
		documents: deps.Documents,
		employees: deps.Employees,
		audit:     deps.Audit,
		store:     deps.Store,
		now:       now,
		logger:    l,
	}
}

// Publish links a payslip to the employee's period, either an already uploaded
// document (DocumentID) or the payslip file, which is stored as a PAYSLIP document.
func (s *service) Publish(ctx context.Context, actor domain.Actor, employeeID string, req PublishRemunerationRequest, payslip *document.File) (RemunerationResponse, error) {
	s.logger.Debug("publish remuneration requested",
		zap.String("actor_id", actor.UserID),
		zap.String("employee_id", employeeID),
		zap.String("period", req.Period),
	)

	if !actor.Role.IsAdmin() {
		return RemunerationResponse{}, remunerationerrors.ErrManageForbidden
	}
	empUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return RemunerationResponse{}, remunerationerrors.ErrInvalidID
	}
	rem, err := buildRemuneration(empUUID, req)
	if err != nil {
		s.logger.Warn("publish remuneration validation failed", zap.Error(err))
		return RemunerationResponse{}, err
	}
	if req.DocumentID == "" {
		if err := validatePayslip(payslip); err != nil {
			return RemunerationResponse{}, err
		}
	}

	if _, err := s.employees.FindByID(ctx, employeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RemunerationResponse{}, remunerationerrors.ErrEmployeeNotFound
		}
		s.logger.Error("publish remuneration load employee failed", zap.Error(err))
		return RemunerationResponse{}, err
	}

	var doc *document.Document
	if req.DocumentID != "" {
		doc, err = s.documents.FindByID(ctx, req.DocumentID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("publish remuneration load document failed", zap.Error(err))
			return RemunerationResponse{}, err
		}
		if err != nil || doc.EmployeeID != empUUID {
			return RemunerationResponse{}, remunerationerrors.ErrInvalidDocument
		}
	} else {
		path, err := s.store.Save(ctx, fmt.Sprintf("employees/%s/remunerations", employeeID), payslip.Filename, payslip.Body)
		if err != nil {
			s.logger.Error("publish remuneration store payslip failed", zap.Error(err))
			return RemunerationResponse{}, err
		}
		period := rem.Period
		doc = &document.Document{
			ID:           uuid.New(),
			EmployeeID:   empUUID,
			Type:         document.TypePayslip,
			Visibility:   document.VisibilityShared,
			Period:       &period,
			OriginalName: payslip.Filename,
			StoragePath:  path,
			MimeType:     payslip.ContentType,
			SizeBytes:    payslip.Size,
			UploadedBy:   actor.UserID,
			UploadedAt:   s.now(),
		}
	}

	rem.DocumentID = doc.ID
	rem.PublishedBy = actor.UserID
	rem.PublishedAt = s.now()

	newDoc := req.DocumentID == ""
	if err := s.persist(ctx, actor, rem, doc, newDoc); err != nil {
		if newDoc {
			if derr := s.store.Delete(context.WithoutCancel(ctx), doc.StoragePath); derr != nil {
				s.logger.Error("publish remuneration payslip cleanup failed",
					zap.String("path", doc.StoragePath),
					zap.Error(derr),
				)
			}
		}
		return RemunerationResponse{}, err
	}

	rem.Document = doc
	s.logger.Info("publish remuneration success",
		zap.String("remuneration_id", rem.ID.String()),
		zap.String("employee_id", employeeID),
		zap.String("period", rem.Period),
	)
	return MapToResponse(*rem), nil
}

func (s *service) persist(ctx context.Context, actor domain.Actor, rem *Remuneration, doc *document.Document, newDoc bool) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("publish remuneration begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	published, err := qtx.HasPublished(ctx, rem.EmployeeID.String(), rem.Period)
	if err != nil {
		s.logger.Error("publish remuneration period check failed", zap.Error(err))
		return err
	}
	if published {
		return remunerationerrors.ErrAlreadyPublished
	}

	rtx := s.audit.WithTx(tx)
	if newDoc {
		if err := s.documents.WithTx(tx).Create(ctx, doc); err != nil {
			s.logger.Error("publish remuneration persist payslip failed", zap.Error(err))
			return err
		}
		if err := rtx.Record(ctx, document.UploadEntry(actor, *doc)); err != nil {
			s.logger.Error("publish remuneration payslip audit failed", zap.Error(err))
			return err
		}
	}

	if err := qtx.Create(ctx, rem); err != nil {
		s.logger.Error("publish remuneration persist failed", zap.Error(err))
		return mapRepositoryError(err)
	}
	if err := rtx.Record(ctx, audit.Entry{
		ActorID:    actor.UserID,
		Kind:       audit.KindRemunerationPublish,
		EntityType: audit.EntityRemuneration,
		EntityID:   rem.ID.String(),
		EmployeeID: rem.EmployeeID.String(),
		Detail:     fmt.Sprintf("remuneration for %s published", rem.Period),
	}); err != nil {
		s.logger.Error("publish remuneration audit failed", zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("publish remuneration commit failed", zap.Error(err))
		return err
	}
	return nil
}

func (s *service) Annul(ctx context.Context, actor domain.Actor, id string) (RemunerationResponse, error) {
	s.logger.Debug("annul remuneration requested",
		zap.String("actor_id", actor.UserID),
		zap.String("remuneration_id", id),
	)

	if !actor.Role.IsAdmin() {
		return RemunerationResponse{}, remunerationerrors.ErrManageForbidden
	}
	if _, err := uuid.Parse(id); err != nil {
		return RemunerationResponse{}, remunerationerrors.ErrInvalidID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("annul remuneration begin tx failed", zap.Error(err))
		return RemunerationResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	rem, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RemunerationResponse{}, remunerationerrors.ErrRemunerationNotFound
		}
		s.logger.Error("annul remuneration load failed", zap.Error(err))
		return RemunerationResponse{}, err
	}

	at := s.now()
	if err := qtx.Annul(ctx, id, actor.UserID, at); err != nil {
		if errors.Is(err, ErrNotPublished) {
			s.logger.Warn("annul remuneration already annulled", zap.String("remuneration_id", id))
			return RemunerationResponse{}, remunerationerrors.ErrAlreadyAnnulled
		}
		s.logger.Error("annul remuneration persist failed", zap.Error(err))
		return RemunerationResponse{}, err
	}

	if err := s.audit.WithTx(tx).Record(ctx, audit.Entry{
		ActorID:    actor.UserID,
		Kind:       audit.KindRemunerationAnnul,
		EntityType: audit.EntityRemuneration,
		EntityID:   rem.ID.String(),
		EmployeeID: rem.EmployeeID.String(),
		Detail:     fmt.Sprintf("remuneration for %s annulled", rem.Period),
	}); err != nil {
		s.logger.Error("annul remuneration audit failed", zap.Error(err))
		return RemunerationResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("annul remuneration commit failed", zap.Error(err))
		return RemunerationResponse{}, err
	}

	rem.Status = StatusAnnulled
	rem.AnnulledBy = &actor.UserID
	rem.AnnulledAt = &at
	s.logger.Info("annul remuneration success", zap.String("remuneration_id", id))
	return MapToResponse(*rem), nil
}

func (s *service) ListMine(ctx context.Context, actor domain.Actor) ([]RemunerationResponse, error) {
	employeeID := actor.EmployeeID
	if employeeID == "" {
		if actor.UserID == "" {
			return nil, remunerationerrors.ErrProfileNotLinked
		}
		empl, err := s.employees.FindByUserID(ctx, actor.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, remunerationerrors.ErrProfileNotLinked
			}
			return nil, err
		}
		employeeID = empl.ID.String()
	}
	return s.list(ctx, ListFilter{EmployeeID: employeeID})
}

func (s *service) List(ctx context.Context, q ListRemunerationsQuery) ([]RemunerationResponse, error) {
	return s.list(ctx, ListFilter{EmployeeID: q.EmployeeID, Period: q.Period, Status: q.Status})
}

func (s *service) list(ctx context.Context, filter ListFilter) ([]RemunerationResponse, error) {
	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("list remunerations failed", zap.String("employee_id", filter.EmployeeID), zap.Error(err))
		return nil, err
	}
	resp := make([]RemunerationResponse, len(rows))
	for i, r := range rows {
		resp[i] = MapToResponse(r)
	}
	return resp, nil
}

// LatestPublished returns nil when the employee has no published remuneration.
func (s *service) LatestPublished(ctx context.Context, employeeID string) (*employee.RemunerationSummary, error) {
	rem, err := s.repo.LatestPublished(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	resp := MapToResponse(*rem)
	summary := &employee.RemunerationSummary{
		ID:          resp.ID,
		Period:      resp.Period,
		PaymentDate: resp.PaymentDate,
		NetAmount:   resp.NetAmount,
		DocumentID:  resp.DocumentID,
	}
	if resp.Document != nil {
		summary.DocumentName = resp.Document.OriginalName
	}
	return summary, nil
}

func buildRemuneration(employeeID uuid.UUID, req PublishRemunerationRequest) (*Remuneration, error) {
	if _, err := time.Parse(periodLayout, req.Period); err != nil {
		return nil, remunerationerrors.ErrInvalidPeriod
	}
	rem := &Remuneration{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		Period:     req.Period,
		Status:     StatusPublished,
	}
	if req.PaymentDate != "" {
		paid, err := time.Parse(dateLayout, req.PaymentDate)
		if err != nil {
			return nil, remunerationerrors.ErrInvalidPaymentDate
		}
		rem.PaymentDate = &paid
	}
	var err error
	if rem.NetAmount, err = parseAmount(req.NetAmount); err != nil {
		return nil, err
	}
	if rem.GrossAmount, err = parseAmount(req.GrossAmount); err != nil {
		return nil, err
	}
	return rem, nil
}

func parseAmount(raw string) (decimal.NullDecimal, error) {
	if raw == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil || d.IsNegative() {
		return decimal.NullDecimal{}, remunerationerrors.ErrInvalidAmount
	}
	return decimal.NewNullDecimal(d.Round(2)), nil
}

func validatePayslip(f *document.File) error {
	if f == nil {
		return remunerationerrors.ErrDocumentRequired
	}
	if f.Size > MaxPayslipSize {
		return remunerationerrors.ErrPayslipTooLarge
	}
	if _, ok := payslipTypes[f.ContentType]; !ok {
		return remunerationerrors.ErrPayslipType
	}
	return nil
}

func mapRepositoryError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "uq_remunerations_published" {
		return remunerationerrors.ErrAlreadyPublished
	}
	return err
}

func MapToResponse(r Remuneration) RemunerationResponse {
	resp := RemunerationResponse{
		ID:          r.ID.String(),
		EmployeeID:  r.EmployeeID.String(),
		Period:      r.Period,
		Status:      string(r.Status),
		DocumentID:  r.DocumentID.String(),
		PublishedBy: r.PublishedBy,
		PublishedAt: r.PublishedAt.Format(time.RFC3339),
	}
	if r.PaymentDate != nil {
		v := r.PaymentDate.Format(dateLayout)
		resp.PaymentDate = &v
	}
	if r.NetAmount.Valid {
		v := r.NetAmount.Decimal.StringFixed(2)
		resp.NetAmount = &v
	}
	if r.GrossAmount.Valid {
		v := r.GrossAmount.Decimal.StringFixed(2)
		resp.GrossAmount = &v
	}
	if r.AnnulledAt != nil {
		v := r.AnnulledAt.Format(time.RFC3339)
		resp.AnnulledAt = &v
	}
	if r.Employee != nil {
		resp.Employee = &EmployeeSummary{
			ID:       r.Employee.ID.String(),
			FullName: r.Employee.FullName,
			Area:     r.Employee.Area,
			Position: r.Employee.Position,
		}
	}
	if r.Document != nil {
		resp.Document = &DocumentSummary{
			ID:           r.Document.ID.String(),
			OriginalName: r.Document.OriginalName,
			MimeType:     r.Document.MimeType,
		}
	}
	return resp
}
