package medicalleave

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-hradmin/internal/audit"
	"go-hradmin/internal/balance"
	"go-hradmin/internal/domain"
	"go-hradmin/internal/employee"
	medicalleaveerrors "go-hradmin/internal/medicalleave/errors"
	"go-hradmin/internal/storage"
	"go-hradmin/internal/vacation"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	dateLayout = "2006-01-02"

	MaxDocumentSize = 10 << 20
)

var allowedDocumentTypes = map[string]struct{}{
	"application/pdf": {},
	"image/png":       {},
	"image/jpeg":      {},
}

func AllowedDocumentType(contentType string) bool {
	_, ok := allowedDocumentTypes[contentType]
	return ok
}

// OverlapNote is appended to the approver comment of every approved request a leave overlaps.
func OverlapNote(start, end time.Time) string {
	return fmt.Sprintf("medical leave registered from %s to %s; review balance adjustment",
		start.Format(dateLayout), end.Format(dateLayout))
}

//go:generate mockgen -source=medicalleave_service.go -destination=mock/medicalleave_service_mock.go -package=mock
type Service interface {
	Record(ctx context.Context, actor domain.Actor, employeeID string, req RecordMedicalLeaveRequest, doc *Document) (RecordMedicalLeaveResponse, error)
	ListMine(ctx context.Context, actor domain.Actor) ([]MedicalLeaveResponse, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]MedicalLeaveResponse, error)
}

type Deps struct {
	DB        *sql.DB
	Repo      Repository
	Vacations vacation.Repository
	Employees employee.Repository
	Audit     audit.Recorder
	Store     storage.Store
	Now       func() time.Time
}

type service struct {
	db        *sql.DB
	repo      Repository
	vacations vacation.Repository
	employees employee.Repository
	audit     audit.Recorder
	store     storage.Store
	now       func() time.Time
	logger    *zap.Logger
}

func NewService(deps Deps, logger ...*zap.Logger) Service {
	l := zap.L().Named("medicalleave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("medicalleave.service")
	}
	now := deps.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &service{
		db:        deps.DB,
		repo:      deps.Repo,
		vacations: deps.Vacations,
		employees: deps.Employees,
		audit:     deps.Audit,
		store:     deps.Store,
		now:       now,
		logger:    l,
	}
}

// Record stores the leave and flags every approved vacation request it overlaps. Balances
// are never changed here; flagged requests are left for an administrator to reconcile.
func (s *service) Record(ctx context.Context, actor domain.Actor, employeeID string, req RecordMedicalLeaveRequest, doc *Document) (RecordMedicalLeaveResponse, error) {
	s.logger.Debug("record medical leave requested",
		zap.String("actor_id", actor.UserID),
		zap.String("employee_id", employeeID),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	if !actor.Role.IsAdmin() {
		return RecordMedicalLeaveResponse{}, medicalleaveerrors.ErrRecordForbidden
	}
	empUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return RecordMedicalLeaveResponse{}, medicalleaveerrors.ErrInvalidEmployeeID
	}
	start, end, err := parseRange(req.StartDate, req.EndDate)
	if err != nil {
		s.logger.Warn("record medical leave validation failed", zap.Error(err))
		return RecordMedicalLeaveResponse{}, err
	}
	if doc != nil {
		if doc.Size > MaxDocumentSize {
			return RecordMedicalLeaveResponse{}, medicalleaveerrors.ErrDocumentTooLarge
		}
		if !AllowedDocumentType(doc.ContentType) {
			return RecordMedicalLeaveResponse{}, medicalleaveerrors.ErrDocumentType
		}
	}

	if _, err := s.employees.FindByID(ctx, employeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RecordMedicalLeaveResponse{}, medicalleaveerrors.ErrEmployeeNotFound
		}
		s.logger.Error("record medical leave load employee failed", zap.Error(err))
		return RecordMedicalLeaveResponse{}, err
	}

	leaveType := TypeIllness
	if req.Type != "" {
		leaveType = Type(req.Type)
	}
	leave := &MedicalLeave{
		ID:         uuid.New(),
		EmployeeID: empUUID,
		StartDate:  start,
		EndDate:    end,
		Type:       leaveType,
		Notes:      trimmed(req.Notes),
		CreatedBy:  actor.UserID,
		CreatedAt:  s.now(),
	}

	if doc != nil {
		path, err := s.store.Save(ctx, fmt.Sprintf("employees/%s/medical-leaves", employeeID), doc.Filename, doc.Body)
		if err != nil {
			s.logger.Error("record medical leave store document failed", zap.Error(err))
			return RecordMedicalLeaveResponse{}, err
		}
		leave.DocumentPath = &path
	}

	overlaps, err := s.persist(ctx, actor, leave)
	if err != nil {
		if leave.DocumentPath != nil {
			if derr := s.store.Delete(context.WithoutCancel(ctx), *leave.DocumentPath); derr != nil {
				s.logger.Error("record medical leave document cleanup failed",
					zap.String("path", *leave.DocumentPath),
					zap.Error(derr),
				)
			}
		}
		return RecordMedicalLeaveResponse{}, err
	}

	s.logger.Info("record medical leave success",
		zap.String("medical_leave_id", leave.ID.String()),
		zap.String("employee_id", employeeID),
		zap.Int("overlaps", len(overlaps)),
	)
	return RecordMedicalLeaveResponse{
		Leave:    mapToResponse(*leave),
		Overlaps: overlaps,
	}, nil
}

func (s *service) persist(ctx context.Context, actor domain.Actor, leave *MedicalLeave) ([]vacation.VacationRequestResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("record medical leave begin tx failed", zap.Error(err))
		return nil, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, leave); err != nil {
		s.logger.Error("record medical leave persist failed", zap.Error(err))
		return nil, err
	}

	vtx := s.vacations.WithTx(tx)
	employeeID := leave.EmployeeID.String()
	affected, err := vtx.ListApprovedOverlapping(ctx, employeeID, leave.StartDate, leave.EndDate)
	if err != nil {
		s.logger.Error("record medical leave overlap lookup failed", zap.Error(err))
		return nil, err
	}

	note := OverlapNote(leave.StartDate, leave.EndDate)
	flagged := make([]vacation.VacationRequestResponse, 0, len(affected))
	for _, v := range affected {
		if err := vtx.FlagOverlap(ctx, v.ID.String(), note); err != nil {
			s.logger.Error("record medical leave flag overlap failed",
				zap.String("vacation_request_id", v.ID.String()),
				zap.Error(err),
			)
			return nil, err
		}
		v.OverlapFlag = true
		v.ApproverComment = appendNote(v.ApproverComment, note)
		flagged = append(flagged, vacation.MapToResponse(v))
	}

	detail := fmt.Sprintf("medical leave %s to %s recorded; no overlap with approved vacation requests",
		leave.StartDate.Format(dateLayout), leave.EndDate.Format(dateLayout))
	if len(affected) > 0 {
		detail = fmt.Sprintf("medical leave %s to %s recorded; %d approved vacation request(s) flagged for review",
			leave.StartDate.Format(dateLayout), leave.EndDate.Format(dateLayout), len(affected))
	}
	if err := s.audit.WithTx(tx).Record(ctx, audit.Entry{
		ActorID:    actor.UserID,
		Kind:       audit.KindMedicalLeaveRecord,
		EntityType: audit.EntityMedicalLeave,
		EntityID:   leave.ID.String(),
		EmployeeID: employeeID,
		Detail:     detail,
	}); err != nil {
		s.logger.Error("record medical leave audit failed", zap.Error(err))
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("record medical leave commit failed", zap.Error(err))
		return nil, err
	}
	return flagged, nil
}

func (s *service) ListMine(ctx context.Context, actor domain.Actor) ([]MedicalLeaveResponse, error) {
	employeeID := actor.EmployeeID
	if employeeID == "" {
		if actor.UserID == "" {
			return nil, medicalleaveerrors.ErrProfileNotLinked
		}
		empl, err := s.employees.FindByUserID(ctx, actor.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, medicalleaveerrors.ErrProfileNotLinked
			}
			return nil, err
		}
		employeeID = empl.ID.String()
	}
	return s.list(ctx, employeeID)
}

func (s *service) ListByEmployee(ctx context.Context, employeeID string) ([]MedicalLeaveResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, medicalleaveerrors.ErrInvalidEmployeeID
	}
	return s.list(ctx, employeeID)
}

func (s *service) list(ctx context.Context, employeeID string) ([]MedicalLeaveResponse, error) {
	rows, err := s.repo.ListByEmployee(ctx, employeeID)
	if err != nil {
		s.logger.Error("list medical leaves failed", zap.String("employee_id", employeeID), zap.Error(err))
		return nil, err
	}
	resp := make([]MedicalLeaveResponse, len(rows))
	for i, m := range rows {
		resp[i] = mapToResponse(m)
	}
	return resp, nil
}

func appendNote(prior *string, note string) *string {
	if prior == nil || *prior == "" {
		return &note
	}
	joined := *prior + "\n" + note
	return &joined
}

func parseRange(startRaw, endRaw string) (time.Time, time.Time, error) {
	start, err := time.Parse(dateLayout, startRaw)
	if err != nil {
		return time.Time{}, time.Time{}, medicalleaveerrors.ErrInvalidDate
	}
	end, err := time.Parse(dateLayout, endRaw)
	if err != nil {
		return time.Time{}, time.Time{}, medicalleaveerrors.ErrInvalidDate
	}
	start, end = balance.StartOfDay(start), balance.StartOfDay(end)
	if end.Before(start) {
		return time.Time{}, time.Time{}, medicalleaveerrors.ErrInvalidDateRange
	}
	return start, end, nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func mapToResponse(m MedicalLeave) MedicalLeaveResponse {
	return MedicalLeaveResponse{
		ID:           m.ID.String(),
		EmployeeID:   m.EmployeeID.String(),
		StartDate:    m.StartDate.Format(dateLayout),
		EndDate:      m.EndDate.Format(dateLayout),
		Type:         string(m.Type),
		Notes:        m.Notes,
		DocumentPath: m.DocumentPath,
		CreatedBy:    m.CreatedBy,
		CreatedAt:    m.CreatedAt.Format(time.RFC3339),
	}
}
