package vacation

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
	"go-hradmin/internal/ledger"
	"go-hradmin/internal/shared/contextutil"
	"go-hradmin/internal/shared/counter"
	vacationerrors "go-hradmin/internal/vacation/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

//go:generate mockgen -source=vacation_service.go -destination=mock/vacation_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actor domain.Actor, req CreateVacationRequest) (VacationRequestResponse, error)
	Approve(ctx context.Context, actor domain.Actor, id string, comment *string) (ApproveVacationResponse, error)
	Reject(ctx context.Context, actor domain.Actor, id string, comment *string) (VacationRequestResponse, error)
	ListMine(ctx context.Context, actor domain.Actor) ([]VacationRequestResponse, error)
	List(ctx context.Context, q ListVacationRequestsQuery) ([]VacationRequestResponse, error)
}

type Deps struct {
	DB        *sql.DB
	Repo      Repository
	Employees employee.Repository
	Ledger    ledger.Repository
	Audit     audit.Recorder
	Counter   counter.Repository
	Now       func() time.Time
}

type service struct {
	db        *sql.DB
	repo      Repository
	employees employee.Repository
	ledger    ledger.Repository
	audit     audit.Recorder
	counter   counter.Repository
	now       func() time.Time
	logger    *zap.Logger
}

func NewService(deps Deps, logger ...*zap.Logger) Service {
	l := zap.L().Named("vacation.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("vacation.service")
	}
	now := deps.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &service{
		db:        deps.DB,
		repo:      deps.Repo,
		employees: deps.Employees,
		ledger:    deps.Ledger,
		audit:     deps.Audit,
		counter:   deps.Counter,
		now:       now,
		logger:    l,
	}
}

func (s *service) Create(ctx context.Context, actor domain.Actor, req CreateVacationRequest) (VacationRequestResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create vacation request requested",
		zap.String("request_id", rid),
		zap.String("actor_id", actor.UserID),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	start, end, err := parseRange(req.StartDate, req.EndDate)
	if err != nil {
		s.logger.Warn("create vacation request validation failed", zap.Error(err))
		return VacationRequestResponse{}, err
	}
	kind := KindVacation
	if req.Kind != "" {
		kind = Kind(req.Kind)
	}

	empl, err := s.resolveEmployee(ctx, actor)
	if err != nil {
		return VacationRequestResponse{}, err
	}

	days := balance.DaySpan(start, end)
	current := empl.VacationBalance(s.now())
	if current.Balance.LessThan(decimal.NewFromInt(int64(days))) {
		s.logger.Warn("create vacation request insufficient balance",
			zap.String("employee_id", empl.ID.String()),
			zap.Int("days", days),
			zap.String("balance", current.Balance.StringFixed(2)),
		)
		return VacationRequestResponse{}, vacationerrors.ErrInsufficientBalance
	}

	seq, err := s.counter.GetNextValue(ctx, counter.TypeVacationFolio)
	if err != nil {
		s.logger.Error("create vacation request folio failed", zap.Error(err))
		return VacationRequestResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create vacation request begin tx failed", zap.Error(err))
		return VacationRequestResponse{}, err
	}
	defer tx.Rollback()

	v := &VacationRequest{
		ID:               uuid.New(),
		EmployeeID:       empl.ID,
		Folio:            counter.Format("VAC", seq),
		Kind:             kind,
		StartDate:        start,
		EndDate:          end,
		Days:             days,
		Status:           StatusPending,
		RequesterComment: trimmed(req.Comment),
		SubmittedAt:      s.now(),
	}
	if err := s.repo.WithTx(tx).Create(ctx, v); err != nil {
		s.logger.Error("create vacation request persist failed", zap.Error(err))
		return VacationRequestResponse{}, err
	}

	if err := s.audit.WithTx(tx).Record(ctx, audit.Entry{
		ActorID:    actor.UserID,
		Kind:       audit.KindVacationRequest,
		EntityType: audit.EntityVacationRequest,
		EntityID:   v.ID.String(),
		EmployeeID: empl.ID.String(),
		Detail:     fmt.Sprintf("request %s created for %d days", v.Folio, days),
	}); err != nil {
		s.logger.Error("create vacation request audit failed", zap.Error(err))
		return VacationRequestResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create vacation request commit failed", zap.Error(err))
		return VacationRequestResponse{}, err
	}

	s.logger.Info("create vacation request success",
		zap.String("request_id", rid),
		zap.String("vacation_request_id", v.ID.String()),
		zap.String("folio", v.Folio),
		zap.Int("days", days),
	)
	return MapToResponse(*v), nil
}

// Approve debits the employee inside one transaction. The employee row is locked first so
// concurrent approvals for the same employee check their balance one after another.
func (s *service) Approve(ctx context.Context, actor domain.Actor, id string, comment *string) (ApproveVacationResponse, error) {
	s.logger.Debug("approve vacation request requested",
		zap.String("actor_id", actor.UserID),
		zap.String("role", actor.Role.String()),
		zap.String("vacation_request_id", id),
	)

	if !actor.Role.CanApprove() {
		return ApproveVacationResponse{}, vacationerrors.ErrApproveForbidden
	}
	if _, err := uuid.Parse(id); err != nil {
		return ApproveVacationResponse{}, vacationerrors.ErrInvalidRequestID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("approve vacation request begin tx failed", zap.Error(err))
		return ApproveVacationResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	v, err := s.loadPending(ctx, qtx, id)
	if err != nil {
		return ApproveVacationResponse{}, err
	}

	etx := s.employees.WithTx(tx)
	empl, err := etx.FindByIDForUpdate(ctx, v.EmployeeID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ApproveVacationResponse{}, vacationerrors.ErrEmployeeNotFound
		}
		s.logger.Error("approve vacation request lock employee failed", zap.Error(err))
		return ApproveVacationResponse{}, err
	}

	days := decimal.NewFromInt(int64(v.Days))
	now := s.now()
	current := empl.VacationBalance(now)
	if current.Balance.LessThan(days) && !actor.Role.CanOverrideBalance() {
		s.logger.Warn("approve vacation request insufficient balance",
			zap.String("vacation_request_id", id),
			zap.Int("days", v.Days),
			zap.String("balance", current.Balance.StringFixed(2)),
		)
		return ApproveVacationResponse{}, vacationerrors.ErrInsufficientBalance
	}

	res := Resolution{Status: StatusApproved, ApproverID: actor.UserID, Comment: trimmed(comment), ResolvedAt: now}
	if err := qtx.Resolve(ctx, id, res); err != nil {
		return ApproveVacationResponse{}, s.mapResolveError(id, err)
	}

	if err := etx.IncrementTaken(ctx, empl.ID.String(), days); err != nil {
		s.logger.Error("approve vacation request increment taken failed", zap.Error(err))
		return ApproveVacationResponse{}, err
	}

	if err := s.ledger.WithTx(tx).Append(ctx, &ledger.Movement{
		EmployeeID: empl.ID,
		Kind:       ledger.KindDeduction,
		Delta:      days,
		Detail:     fmt.Sprintf("vacation request %s approved", v.Folio),
		CreatedAt:  now,
	}); err != nil {
		s.logger.Error("approve vacation request ledger append failed", zap.Error(err))
		return ApproveVacationResponse{}, err
	}

	if err := s.audit.WithTx(tx).Record(ctx, audit.Entry{
		ActorID:    actor.UserID,
		Kind:       audit.KindVacationApprove,
		EntityType: audit.EntityVacationRequest,
		EntityID:   id,
		EmployeeID: empl.ID.String(),
		Detail:     fmt.Sprintf("request approved for %d days. Comment: %s", v.Days, commentOrNone(res.Comment)),
	}); err != nil {
		s.logger.Error("approve vacation request audit failed", zap.Error(err))
		return ApproveVacationResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("approve vacation request commit failed", zap.Error(err))
		return ApproveVacationResponse{}, err
	}

	res.ApplyTo(v)
	empl.TakenDays = empl.TakenDays.Add(days)
	fresh := empl.VacationBalance(now)

	s.logger.Info("approve vacation request success",
		zap.String("vacation_request_id", id),
		zap.Bool("override", current.Balance.LessThan(days)),
		zap.String("balance", fresh.Balance.StringFixed(2)),
	)
	return ApproveVacationResponse{
		Request: MapToResponse(*v),
		Balance: employee.MapBalance(fresh),
	}, nil
}

func (s *service) Reject(ctx context.Context, actor domain.Actor, id string, comment *string) (VacationRequestResponse, error) {
	s.logger.Debug("reject vacation request requested",
		zap.String("actor_id", actor.UserID),
		zap.String("vacation_request_id", id),
	)

	if !actor.Role.CanApprove() {
		return VacationRequestResponse{}, vacationerrors.ErrApproveForbidden
	}
	if _, err := uuid.Parse(id); err != nil {
		return VacationRequestResponse{}, vacationerrors.ErrInvalidRequestID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("reject vacation request begin tx failed", zap.Error(err))
		return VacationRequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	v, err := s.loadPending(ctx, qtx, id)
	if err != nil {
		return VacationRequestResponse{}, err
	}

	res := Resolution{Status: StatusRejected, ApproverID: actor.UserID, Comment: trimmed(comment), ResolvedAt: s.now()}
	if err := qtx.Resolve(ctx, id, res); err != nil {
		return VacationRequestResponse{}, s.mapResolveError(id, err)
	}

	if err := s.audit.WithTx(tx).Record(ctx, audit.Entry{
		ActorID:    actor.UserID,
		Kind:       audit.KindVacationReject,
		EntityType: audit.EntityVacationRequest,
		EntityID:   id,
		EmployeeID: v.EmployeeID.String(),
		Detail:     "request rejected. Comment: " + commentOrNone(res.Comment),
	}); err != nil {
		s.logger.Error("reject vacation request audit failed", zap.Error(err))
		return VacationRequestResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("reject vacation request commit failed", zap.Error(err))
		return VacationRequestResponse{}, err
	}

	res.ApplyTo(v)
	s.logger.Info("reject vacation request success", zap.String("vacation_request_id", id))
	return MapToResponse(*v), nil
}

func (s *service) ListMine(ctx context.Context, actor domain.Actor) ([]VacationRequestResponse, error) {
	empl, err := s.resolveEmployee(ctx, actor)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.ListByEmployee(ctx, empl.ID.String())
	if err != nil {
		s.logger.Error("list own vacation requests failed", zap.String("employee_id", empl.ID.String()), zap.Error(err))
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) List(ctx context.Context, q ListVacationRequestsQuery) ([]VacationRequestResponse, error) {
	filter := ListFilter{Status: q.Status, EmployeeID: q.EmployeeID}
	if q.From != "" {
		from, err := parseDate(q.From)
		if err != nil {
			return nil, vacationerrors.ErrInvalidDate
		}
		filter.From = &from
	}
	if q.To != "" {
		to, err := parseDate(q.To)
		if err != nil {
			return nil, vacationerrors.ErrInvalidDate
		}
		filter.To = &to
	}

	rows, err := s.repo.ListFiltered(ctx, filter)
	if err != nil {
		s.logger.Error("list vacation requests failed", zap.Error(err))
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
		return nil, vacationerrors.ErrProfileNotLinked
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, vacationerrors.ErrEmployeeNotFound
		}
		s.logger.Error("resolve employee failed", zap.String("user_id", actor.UserID), zap.Error(err))
		return nil, err
	}
	return empl, nil
}

func (s *service) loadPending(ctx context.Context, repo Repository, id string) (*VacationRequest, error) {
	v, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, vacationerrors.ErrVacationRequestNotFound
		}
		s.logger.Error("load vacation request failed", zap.String("vacation_request_id", id), zap.Error(err))
		return nil, err
	}
	if v.Status != StatusPending {
		s.logger.Warn("vacation request already resolved",
			zap.String("vacation_request_id", id),
			zap.String("status", string(v.Status)),
		)
		return nil, vacationerrors.ErrAlreadyResolved
	}
	return v, nil
}

func (s *service) mapResolveError(id string, err error) error {
	if errors.Is(err, ErrNotPending) {
		s.logger.Warn("vacation request resolved concurrently", zap.String("vacation_request_id", id))
		return vacationerrors.ErrAlreadyResolved
	}
	s.logger.Error("resolve vacation request failed", zap.String("vacation_request_id", id), zap.Error(err))
	return err
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		t, err = time.Parse(time.RFC3339, v)
		if err != nil {
			return time.Time{}, err
		}
	}
	return balance.StartOfDay(t), nil
}

func parseRange(startRaw, endRaw string) (time.Time, time.Time, error) {
	start, err := parseDate(startRaw)
	if err != nil {
		return time.Time{}, time.Time{}, vacationerrors.ErrInvalidDate
	}
	end, err := parseDate(endRaw)
	if err != nil {
		return time.Time{}, time.Time{}, vacationerrors.ErrInvalidDate
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, vacationerrors.ErrInvalidDateRange
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

func commentOrNone(c *string) string {
	if c == nil {
		return "none"
	}
	return *c
}

func MapToResponse(v VacationRequest) VacationRequestResponse {
	resp := VacationRequestResponse{
		ID:               v.ID.String(),
		EmployeeID:       v.EmployeeID.String(),
		Folio:            v.Folio,
		Kind:             string(v.Kind),
		StartDate:        v.StartDate.Format(dateLayout),
		EndDate:          v.EndDate.Format(dateLayout),
		Days:             v.Days,
		Status:           string(v.Status),
		RequesterComment: v.RequesterComment,
		ApproverID:       v.ApproverID,
		ApproverComment:  v.ApproverComment,
		OverlapFlag:      v.OverlapFlag,
		SubmittedAt:      v.SubmittedAt.Format(time.RFC3339),
	}
	if v.ResolvedAt != nil {
		resolved := v.ResolvedAt.Format(time.RFC3339)
		resp.ResolvedAt = &resolved
	}
	return resp
}

func mapToListResponse(rows []VacationRequest) []VacationRequestResponse {
	resp := make([]VacationRequestResponse, len(rows))
	for i, v := range rows {
		resp[i] = MapToResponse(v)
	}
	return resp
}
