package document

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go-hradmin/internal/audit"
	documenterrors "go-hradmin/internal/document/errors"
	"go-hradmin/internal/domain"
	"go-hradmin/internal/employee"
	"go-hradmin/internal/storage"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	periodLayout = "2006-01"

	MaxFileSize = 10 << 20
)

var allowedFileTypes = map[string]struct{}{
	"application/pdf": {},
	"image/png":       {},
	"image/jpeg":      {},
}

// Employees resolves document owners. employee.Repository satisfies it.
type Employees interface {
	FindByID(ctx context.Context, id string) (*employee.Employee, error)
	FindByUserID(ctx context.Context, userID string) (*employee.Employee, error)
}

//go:generate mockgen -source=document_service.go -destination=mock/document_service_mock.go -package=mock
type Service interface {
	Upload(ctx context.Context, actor domain.Actor, employeeID string, req UploadDocumentRequest, file *File) (DocumentResponse, error)
	ListMine(ctx context.Context, actor domain.Actor, q ListDocumentsQuery) ([]DocumentResponse, error)
	ListByEmployee(ctx context.Context, employeeID string, q ListDocumentsQuery) ([]DocumentResponse, error)
	Download(ctx context.Context, actor domain.Actor, id string) (Download, error)
	Delete(ctx context.Context, actor domain.Actor, id string) (DocumentResponse, error)
}

type Deps struct {
	DB        *sql.DB
	Repo      Repository
	Employees Employees
	Audit     audit.Recorder
	Store     storage.Store
	Now       func() time.Time
}

type service struct {
	db        *sql.DB
	repo      Repository
	employees Employees
	audit     audit.Recorder
	store     storage.Store
	now       func() time.Time
	logger    *zap.Logger
}

func NewService(deps Deps, logger ...*zap.Logger) Service {
	l := zap.L().Named("document.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("document.service")
	}
	now := deps.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &service{
		db:        deps.DB,
		repo:      deps.Repo,
		employees: deps.Employees,
		audit:     deps.Audit,
		store:     deps.Store,
		now:       now,
		logger:    l,
	}
}

func (s *service) Upload(ctx context.Context, actor domain.Actor, employeeID string, req UploadDocumentRequest, file *File) (DocumentResponse, error) {
	s.logger.Debug("upload document requested",
		zap.String("actor_id", actor.UserID),
		zap.String("employee_id", employeeID),
		zap.String("type", req.Type),
	)

	if !actor.Role.IsAdmin() {
		return DocumentResponse{}, documenterrors.ErrManageForbidden
	}
	empUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return DocumentResponse{}, documenterrors.ErrInvalidID
	}
	period, err := ParsePeriod(req.Period)
	if err != nil {
		return DocumentResponse{}, err
	}
	if err := ValidateFile(file, MaxFileSize, allowedFileTypes); err != nil {
		s.logger.Warn("upload document rejected file", zap.Error(err))
		return DocumentResponse{}, err
	}
	if _, err := s.employees.FindByID(ctx, employeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DocumentResponse{}, documenterrors.ErrEmployeeNotFound
		}
		s.logger.Error("upload document load employee failed", zap.Error(err))
		return DocumentResponse{}, err
	}

	visibility := VisibilityShared
	if req.Visibility != "" {
		visibility = Visibility(req.Visibility)
	}

	path, err := s.store.Save(ctx, fmt.Sprintf("employees/%s/documents", employeeID), file.Filename, file.Body)
	if err != nil {
		s.logger.Error("upload document store failed", zap.Error(err))
		return DocumentResponse{}, err
	}

	doc := &Document{
		ID:           uuid.New(),
		EmployeeID:   empUUID,
		Type:         Type(req.Type),
		Visibility:   visibility,
		Period:       period,
		OriginalName: file.Filename,
		StoragePath:  path,
		MimeType:     file.ContentType,
		SizeBytes:    file.Size,
		UploadedBy:   actor.UserID,
		UploadedAt:   s.now(),
	}
	if err := s.persist(ctx, actor, doc); err != nil {
		s.discard(ctx, path)
		return DocumentResponse{}, err
	}

	s.logger.Info("upload document success",
		zap.String("document_id", doc.ID.String()),
		zap.String("employee_id", employeeID),
	)
	return MapToResponse(*doc), nil
}

func (s *service) persist(ctx context.Context, actor domain.Actor, doc *Document) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("upload document begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, doc); err != nil {
		s.logger.Error("upload document persist failed", zap.Error(err))
		return err
	}
	if err := s.audit.WithTx(tx).Record(ctx, UploadEntry(actor, *doc)); err != nil {
		s.logger.Error("upload document audit failed", zap.Error(err))
		return err
	}
	return tx.Commit()
}

// UploadEntry is the audit fact for a stored document.
func UploadEntry(actor domain.Actor, doc Document) audit.Entry {
	detail := fmt.Sprintf("document %s uploaded for employee %s", doc.Type, doc.EmployeeID)
	if doc.Period != nil {
		detail += fmt.Sprintf(" (%s)", *doc.Period)
	}
	return audit.Entry{
		ActorID:    actor.UserID,
		Kind:       audit.KindDocumentUpload,
		EntityType: audit.EntityDocument,
		EntityID:   doc.ID.String(),
		Detail:     detail,
	}
}

func (s *service) ListMine(ctx context.Context, actor domain.Actor, q ListDocumentsQuery) ([]DocumentResponse, error) {
	employeeID, err := s.ownEmployeeID(ctx, actor)
	if err != nil {
		return nil, err
	}
	return s.list(ctx, employeeID, ListFilter{Type: q.Type, Period: q.Period, SharedOnly: true})
}

func (s *service) ListByEmployee(ctx context.Context, employeeID string, q ListDocumentsQuery) ([]DocumentResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, documenterrors.ErrInvalidID
	}
	return s.list(ctx, employeeID, ListFilter{Type: q.Type, Period: q.Period})
}

func (s *service) list(ctx context.Context, employeeID string, filter ListFilter) ([]DocumentResponse, error) {
	rows, err := s.repo.ListByEmployee(ctx, employeeID, filter)
	if err != nil {
		s.logger.Error("list documents failed", zap.String("employee_id", employeeID), zap.Error(err))
		return nil, err
	}
	resp := make([]DocumentResponse, len(rows))
	for i, d := range rows {
		resp[i] = MapToResponse(d)
	}
	return resp, nil
}

// Download lets administrators open any document; employees only their own shared ones.
func (s *service) Download(ctx context.Context, actor domain.Actor, id string) (Download, error) {
	if _, err := uuid.Parse(id); err != nil {
		return Download{}, documenterrors.ErrInvalidID
	}
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Download{}, documenterrors.ErrDocumentNotFound
		}
		s.logger.Error("download document load failed", zap.String("document_id", id), zap.Error(err))
		return Download{}, err
	}

	if !actor.Role.IsAdmin() {
		ownID, err := s.ownEmployeeID(ctx, actor)
		if err != nil && !errors.Is(err, documenterrors.ErrProfileNotLinked) {
			return Download{}, err
		}
		if ownID != doc.EmployeeID.String() || !doc.SharedWithEmployee() {
			s.logger.Warn("download document denied",
				zap.String("document_id", id),
				zap.String("user_id", actor.UserID),
			)
			return Download{}, documenterrors.ErrDownloadForbidden
		}
	}

	body, err := s.store.Open(ctx, doc.StoragePath)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.logger.Error("download document file missing", zap.String("path", doc.StoragePath))
			return Download{}, documenterrors.ErrFileUnavailable
		}
		return Download{}, err
	}

	if err := s.audit.Record(ctx, audit.Entry{
		ActorID:    actor.UserID,
		Kind:       audit.KindDocumentDownload,
		EntityType: audit.EntityDocument,
		EntityID:   doc.ID.String(),
		Detail:     fmt.Sprintf("document %s downloaded", doc.Type),
	}); err != nil {
		body.Close()
		s.logger.Error("download document audit failed", zap.Error(err))
		return Download{}, err
	}

	return Download{Document: MapToResponse(*doc), Body: body}, nil
}

func (s *service) Delete(ctx context.Context, actor domain.Actor, id string) (DocumentResponse, error) {
	if !actor.Role.IsAdmin() {
		return DocumentResponse{}, documenterrors.ErrManageForbidden
	}
	if _, err := uuid.Parse(id); err != nil {
		return DocumentResponse{}, documenterrors.ErrInvalidID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete document begin tx failed", zap.Error(err))
		return DocumentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	doc, err := qtx.FindByID(ctx, id)
	if err != nil {
		return DocumentResponse{}, mapRepositoryError(err)
	}
	if err := qtx.Delete(ctx, id); err != nil {
		s.logger.Warn("delete document failed", zap.String("document_id", id), zap.Error(err))
		return DocumentResponse{}, mapRepositoryError(err)
	}
	if err := s.audit.WithTx(tx).Record(ctx, audit.Entry{
		ActorID:    actor.UserID,
		Kind:       audit.KindDocumentDelete,
		EntityType: audit.EntityDocument,
		EntityID:   doc.ID.String(),
		Detail:     fmt.Sprintf("document %s deleted", doc.Type),
	}); err != nil {
		s.logger.Error("delete document audit failed", zap.Error(err))
		return DocumentResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("delete document commit failed", zap.Error(err))
		return DocumentResponse{}, err
	}

	s.discard(ctx, doc.StoragePath)
	s.logger.Info("delete document success", zap.String("document_id", id))
	return MapToResponse(*doc), nil
}

func (s *service) discard(ctx context.Context, path string) {
	if err := s.store.Delete(context.WithoutCancel(ctx), path); err != nil {
		s.logger.Error("document file cleanup failed", zap.String("path", path), zap.Error(err))
	}
}

func (s *service) ownEmployeeID(ctx context.Context, actor domain.Actor) (string, error) {
	if actor.EmployeeID != "" {
		return actor.EmployeeID, nil
	}
	if actor.UserID == "" {
		return "", documenterrors.ErrProfileNotLinked
	}
	empl, err := s.employees.FindByUserID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", documenterrors.ErrProfileNotLinked
		}
		return "", err
	}
	return empl.ID.String(), nil
}

// ParsePeriod accepts "" (no period) or YYYY-MM.
func ParsePeriod(raw string) (*string, error) {
	if raw == "" {
		return nil, nil
	}
	if _, err := time.Parse(periodLayout, raw); err != nil {
		return nil, documenterrors.ErrInvalidPeriod
	}
	return &raw, nil
}

// ValidateFile checks presence, size and sniffed content type of an upload.
func ValidateFile(file *File, maxSize int64, allowed map[string]struct{}) error {
	if file == nil {
		return documenterrors.ErrFileRequired
	}
	if file.Size > maxSize {
		return documenterrors.ErrFileTooLarge
	}
	if _, ok := allowed[file.ContentType]; !ok {
		return documenterrors.ErrFileType
	}
	return nil
}

func mapRepositoryError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return documenterrors.ErrDocumentNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" {
		return documenterrors.ErrDocumentInUse
	}
	return err
}

func MapToResponse(d Document) DocumentResponse {
	return DocumentResponse{
		ID:           d.ID.String(),
		EmployeeID:   d.EmployeeID.String(),
		Type:         string(d.Type),
		Visibility:   string(d.Visibility),
		Period:       d.Period,
		OriginalName: d.OriginalName,
		MimeType:     d.MimeType,
		SizeBytes:    d.SizeBytes,
		UploadedBy:   d.UploadedBy,
		UploadedAt:   d.UploadedAt.Format(time.RFC3339),
	}
}
