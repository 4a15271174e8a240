package overtime

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-hradmin/internal/audit"
	"go-hradmin/internal/domain"
	"go-hradmin/internal/employee"
	overtimeerrors "go-hradmin/internal/overtime/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

var maxHours = decimal.NewFromInt(24)

//go:generate mockgen -source=overtime_service.go -destination=mock/overtime_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actor domain.Actor, req CreateOvertimeRequest) (OvertimeResponse, error)
	Approve(ctx context.Context, actor domain.Actor, id string, comment *string) (OvertimeResponse, error)
	Reject(ctx context.Context, actor domain.Actor, id string, comment *string) (OvertimeResponse, error)
	ListMine(ctx context.Context, actor domain.Actor) ([]OvertimeResponse, error)
	List(ctx context.Context, q ListOvertimeQuery) ([]OvertimeResponse, error)
}

type Deps struct {
	DB        *sql.DB
	Repo      Repository
	Employees employee.Repository
	Audit     audit.Recorder
	Now       func() time.Time
}

type service struct {
	db        *sql.DB
	repo      Repository
	employees employee.Repository
	audit     audit.Recorder
	now       func() time.Time
	logger    *zap.Logger
}

func NewService(deps Deps, logger ...*zap.Logger) Service {
	l := zap.L().Named("overtime.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("overtime.service")
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
		now:       now,
		logger:    l,
	}
}

// ParseHours accepts decimal hours in (0, 24].
func ParseHours(raw string) (decimal.Decimal, error) {
	h, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || !h.IsPositive() || h.GreaterThan(maxHours) {
		return decimal.Zero, overtimeerrors.ErrInvalidHours
	}
	return h.Round(2), nil
}

func (s *service) Create(ctx context.Context, actor domain.Actor, req CreateOvertimeRequest) (OvertimeResponse, error) {
	s.logger.Debug("create overtime requested",
		zap.String("actor_id", actor.UserID),
		zap.String("date", req.Date),
		zap.String("hours", req.Hours),
	)

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return OvertimeResponse{}, overtimeerrors.ErrInvalidDate
	}
	hours, err := ParseHours(req.Hours)
	if err != nil {
		s.logger.Warn("create overtime validation failed", zap.String("hours", req.Hours))
		return OvertimeResponse{}, err
	}

	empl, err := s.resolveEmployee(ctx, actor)
	if err != nil {
		return OvertimeResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create overtime begin tx failed", zap.Error(err))
		return OvertimeResponse{}, err
	}
	defer tx.Rollback()

	o := &Overtime{
		ID:          uuid.New(),
		EmployeeID:  empl.ID,
		WorkDate:    date,
		Hours:       hours,
		Reason:      strings.TrimSpace(req.Reason),
		Status:      StatusPending,
		SubmittedAt: s.now(),
	}
	if err := s.repo.WithTx(tx).Create(ctx, o); err != nil {
		s.logger.Error("create overtime persist failed", zap.Error(err))
		return OvertimeResponse{}, err
	}

	if err := s.audit.WithTx(tx).Record(ctx, audit.Entry{
		ActorID:    actor.UserID,
		Kind:       audit.KindOvertimeRequest,
		EntityType: audit.EntityOvertime,
		EntityID:   o.ID.String(),
		EmployeeID: empl.ID.String(),
		Detail:     fmt.Sprintf("overtime of %s hours on %s requested", hours.StringFixed(2), req.Date),
	}); err != nil {
		s.logger.Error("create overtime audit failed", zap.Error(err))
		return OvertimeResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create overtime commit failed", zap.Error(err))
		return OvertimeResponse{}, err
	}

	s.logger.Info("create overtime success", zap.String("overtime_id", o.ID.String()))
	return mapToResponse(*o), nil
}

func (s *service) Approve(ctx context.Context, actor domain.Actor, id string, comment *string) (OvertimeResponse, error) {
	return s.review(ctx, actor, id, StatusApproved, comment)
}

func (s *service) Reject(ctx context.Context, actor domain.Actor, id string, comment *string) (OvertimeResponse, error) {
	return s.review(ctx, actor, id, StatusRejected, comment)
}

func (s *service) review(ctx context.Context, actor domain.Actor, id string, status Status, comment *string) (OvertimeResponse, error) {
	s.logger.Debug("review overtime requested",
		zap.String("actor_id", actor.UserID),
		zap.String("overtime_id", id),
		zap.String("status", string(status)),
	)

	if !actor.Role.CanApprove() {
		return OvertimeResponse{}, overtimeerrors.ErrReviewForbidden
	}
	if _, err := uuid.Parse(id); err != nil {
		return OvertimeResponse{}, overtimeerrors.ErrInvalidID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("review overtime begin tx failed", zap.Error(err))
		return OvertimeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	o, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return OvertimeResponse{}, overtimeerrors.ErrOvertimeNotFound
		}
		s.logger.Error("review overtime load failed", zap.Error(err))
		return OvertimeResponse{}, err
	}
	if o.Status != StatusPending {
		return OvertimeResponse{}, overtimeerrors.ErrAlreadyResolved
	}

	rv := Review{Status: status, ReviewerID: actor.UserID, Comment: trimmed(comment), ReviewedAt: s.now()}
	if err := qtx.Review(ctx, id, rv); err != nil {
		if errors.Is(err, ErrNotPending) {
			s.logger.Warn("overtime resolved concurrently", zap.String("overtime_id", id))
			return OvertimeResponse{}, overtimeerrors.ErrAlreadyResolved
		}
		s.logger.Error("review overtime persist failed", zap.Error(err))
		return OvertimeResponse{}, err
	}

	kind, verb := audit.KindOvertimeApprove, "approved"
	if status == StatusRejected {
		kind, verb = audit.KindOvertimeReject, "rejected"
	}
	if err := s.audit.WithTx(tx).Record(ctx, audit.Entry{
		ActorID:    actor.UserID,
		Kind:       kind,
		EntityType: audit.EntityOvertime,
		EntityID:   id,
		EmployeeID: o.EmployeeID.String(),
		Detail: fmt.Sprintf("overtime of %s hours %s. Comment: %s",
			o.Hours.StringFixed(2), verb, commentOrNone(rv.Comment)),
	}); err != nil {
		s.logger.Error("review overtime audit failed", zap.Error(err))
		return OvertimeResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("review overtime commit failed", zap.Error(err))
		return OvertimeResponse{}, err
	}

	rv.ApplyTo(o)
	s.logger.Info("review overtime success", zap.String("overtime_id", id), zap.String("status", string(status)))
	return mapToResponse(*o), nil
}

func (s *service) ListMine(ctx context.Context, actor domain.Actor) ([]OvertimeResponse, error) {
	empl, err := s.resolveEmployee(ctx, actor)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.ListByEmployee(ctx, empl.ID.String())
	if err != nil {
		s.logger.Error("list own overtime failed", zap.Error(err))
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) List(ctx context.Context, q ListOvertimeQuery) ([]OvertimeResponse, error) {
	rows, err := s.repo.ListFiltered(ctx, ListFilter{Status: q.Status, EmployeeID: q.EmployeeID})
	if err != nil {
		s.logger.Error("list overtime failed", zap.Error(err))
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) resolveEmployee(ctx context.Context, actor domain.Actor) (*employee.Employee, error) {
	var (
		empl *employee.Employee
		err  error
	)
	switch {
	case actor.EmployeeID != "":
		empl, err = s.employees.FindByID(ctx, actor.EmployeeID)
	case actor.UserID != "":
		empl, err = s.employees.FindByUserID(ctx, actor.UserID)
	default:
		return nil, overtimeerrors.ErrProfileNotLinked
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, overtimeerrors.ErrEmployeeNotFound
		}
		return nil, err
	}
	return empl, nil
}

func trimmed(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	if t == "" {
		return nil
	}
	return &t
}

func commentOrNone(v *string) string {
	if v == nil {
		return "none"
	}
	return *v
}

func mapToListResponse(rows []Overtime) []OvertimeResponse {
	resp := make([]OvertimeResponse, len(rows))
	for i, o := range rows {
		resp[i] = mapToResponse(o)
	}
	return resp
}

func mapToResponse(o Overtime) OvertimeResponse {
	resp := OvertimeResponse{
		ID:            o.ID.String(),
		EmployeeID:    o.EmployeeID.String(),
		Date:          o.WorkDate.Format(dateLayout),
		Hours:         o.Hours.StringFixed(2),
		Reason:        o.Reason,
		Status:        string(o.Status),
		ReviewerID:    o.ReviewerID,
		ReviewComment: o.ReviewComment,
		SubmittedAt:   o.SubmittedAt.Format(time.RFC3339),
	}
	if o.Employee != nil {
		resp.EmployeeName = o.Employee.FullName
	}
	if o.ReviewedAt != nil {
		v := o.ReviewedAt.Format(time.RFC3339)
		resp.ReviewedAt = &v
	}
	return resp
}
