package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-hradmin/internal/audit"
	"go-hradmin/internal/balance"
	"go-hradmin/internal/domain"
	employeeerrors "go-hradmin/internal/employee/errors"
	"go-hradmin/internal/ledger"
	"go-hradmin/internal/shared/contextutil"
	"go-hradmin/internal/shared/counter"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	EmployeeOptionsKey = "employees:options"
	optionsCacheTTL    = time.Hour
)

// PendingCounter reports open requests for the self-service screen.
type PendingCounter interface {
	CountPendingByEmployee(ctx context.Context, employeeID string) (int64, error)
}

// RemunerationLookup returns the latest published remuneration, or nil when there is none.
type RemunerationLookup interface {
	LatestPublished(ctx context.Context, employeeID string) (*RemunerationSummary, error)
}

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actor domain.Actor, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	GetMe(ctx context.Context, actor domain.Actor) (EmployeeResponse, error)
	List(ctx context.Context, q ListEmployeesQuery) ([]EmployeeResponse, error)
	GetOptions(ctx context.Context) ([]EmployeeOptionResponse, error)
	Update(ctx context.Context, actor domain.Actor, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	AdjustVacation(ctx context.Context, actor domain.Actor, id string, req AdjustVacationRequest) (AdjustVacationResponse, error)
	ListMovements(ctx context.Context, id string) ([]ledger.MovementResponse, error)
}

type service struct {
	db            *sql.DB
	repo          Repository
	ledger        ledger.Repository
	audit         audit.Recorder
	counter       counter.Repository
	pending       PendingCounter
	overtime      PendingCounter
	remunerations RemunerationLookup
	rdb           *redis.Client
	sf            *singleflight.Group
	now           func() time.Time
	logger        *zap.Logger
}

type Deps struct {
	DB              *sql.DB
	Repo            Repository
	Ledger          ledger.Repository
	Audit           audit.Recorder
	Counter         counter.Repository
	Pending         PendingCounter
	PendingOvertime PendingCounter
	Remunerations   RemunerationLookup
	Redis           *redis.Client
	Now             func() time.Time
}

func NewService(deps Deps, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	now := deps.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &service{
		db:            deps.DB,
		repo:          deps.Repo,
		ledger:        deps.Ledger,
		audit:         deps.Audit,
		counter:       deps.Counter,
		pending:       deps.Pending,
		overtime:      deps.PendingOvertime,
		remunerations: deps.Remunerations,
		rdb:           deps.Redis,
		sf:            &singleflight.Group{},
		now:           now,
		logger:        l,
	}
}

func (s *service) Create(ctx context.Context, actor domain.Actor, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("actor_id", actor.UserID),
		zap.String("email", req.Email),
	)

	hireDate, err := parseDate(req.HireDate)
	if err != nil {
		s.logger.Warn("create employee invalid hire_date", zap.String("hire_date", req.HireDate))
		return EmployeeResponse{}, employeeerrors.ErrInvalidHireDate
	}

	if req.EmployeeNumber == "" {
		next, err := s.counter.GetNextValue(ctx, counter.TypeEmployeeNumber)
		if err != nil {
			s.logger.Error("create employee generate number failed", zap.Error(err))
			return EmployeeResponse{}, err
		}
		req.EmployeeNumber = counter.Format("EMP", next)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	empl := &Employee{
		ID:             uuid.New(),
		EmployeeNumber: req.EmployeeNumber,
		FullName:       req.FullName,
		Email:          req.Email,
		Area:           req.Area,
		Position:       req.Position,
		Status:         StatusActive,
		HireDate:       hireDate,
	}
	if req.UserID != "" {
		userID := req.UserID
		empl.UserID = &userID
	}
	if req.InitialBalance != nil {
		empl.InitialBalance = decimal.NewNullDecimal(*req.InitialBalance)
	}

	if err := s.repo.WithTx(tx).Create(ctx, empl); err != nil {
		s.logger.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := s.audit.WithTx(tx).Record(ctx, audit.Entry{
		ActorID:    actor.UserID,
		Kind:       audit.KindEmployeeCreate,
		EntityType: audit.EntityEmployee,
		EntityID:   empl.ID.String(),
		EmployeeID: empl.ID.String(),
		Detail:     fmt.Sprintf("employee %s (%s) created", empl.FullName, empl.EmployeeNumber),
	}); err != nil {
		s.logger.Error("create employee audit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create employee commit failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateOptions(ctx)
	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.ID.String()),
	)

	return s.withBalance(*empl), nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("get employee by id failed", zap.String("employee_id", id), zap.Error(err))
		}
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	return s.withBalance(*empl), nil
}

func (s *service) GetMe(ctx context.Context, actor domain.Actor) (EmployeeResponse, error) {
	var (
		empl *Employee
		err  error
	)
	switch {
	case actor.EmployeeID != "":
		empl, err = s.repo.FindByID(ctx, actor.EmployeeID)
	case actor.UserID != "":
		empl, err = s.repo.FindByUserID(ctx, actor.UserID)
	default:
		return EmployeeResponse{}, employeeerrors.ErrProfileNotLinked
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, employeeerrors.ErrProfileNotLinked
		}
		s.logger.Error("get current employee failed", zap.String("user_id", actor.UserID), zap.Error(err))
		return EmployeeResponse{}, err
	}

	employeeID := empl.ID.String()
	resp := s.withBalance(*empl)
	if s.pending != nil {
		count, err := s.pending.CountPendingByEmployee(ctx, employeeID)
		if err != nil {
			s.logger.Error("count pending vacations failed", zap.String("employee_id", employeeID), zap.Error(err))
			return EmployeeResponse{}, err
		}
		resp.PendingVacations = &count
	}
	if s.overtime != nil {
		count, err := s.overtime.CountPendingByEmployee(ctx, employeeID)
		if err != nil {
			s.logger.Error("count pending overtime failed", zap.String("employee_id", employeeID), zap.Error(err))
			return EmployeeResponse{}, err
		}
		resp.PendingOvertime = &count
	}
	if s.remunerations != nil {
		last, err := s.remunerations.LatestPublished(ctx, employeeID)
		if err != nil {
			s.logger.Error("load last remuneration failed", zap.String("employee_id", employeeID), zap.Error(err))
			return EmployeeResponse{}, err
		}
		resp.LastRemuneration = last
	}
	return resp, nil
}

func (s *service) List(ctx context.Context, q ListEmployeesQuery) ([]EmployeeResponse, error) {
	s.logger.Debug("list employees requested",
		zap.String("search", q.Search),
		zap.String("area", q.Area),
		zap.String("status", q.Status),
	)
	rows, err := s.repo.List(ctx, ListFilter{Search: q.Search, Area: q.Area, Status: q.Status})
	if err != nil {
		s.logger.Error("list employees failed", zap.Error(err))
		return nil, err
	}

	resp := make([]EmployeeResponse, len(rows))
	for i, e := range rows {
		resp[i] = s.withBalance(e)
	}
	return resp, nil
}

func (s *service) GetOptions(ctx context.Context) ([]EmployeeOptionResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, EmployeeOptionsKey).Result(); err == nil {
			var resp []EmployeeOptionResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(EmployeeOptionsKey, func() (any, error) {
		rows, err := s.repo.FindOptions(ctx)
		if err != nil {
			return nil, err
		}

		resp := make([]EmployeeOptionResponse, len(rows))
		for i, e := range rows {
			resp[i] = EmployeeOptionResponse{ID: e.ID.String(), FullName: e.FullName, Area: e.Area}
		}

		if s.rdb != nil {
			if raw, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, EmployeeOptionsKey, raw, optionsCacheTTL).Err(); err != nil {
					s.logger.Warn("cache employee options failed", zap.Error(err))
				}
			}
		}
		return resp, nil
	})
	if err != nil {
		s.logger.Error("get employee options failed", zap.Error(err))
		return nil, err
	}
	return v.([]EmployeeOptionResponse), nil
}

func (s *service) Update(ctx context.Context, actor domain.Actor, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	s.logger.Debug("update employee requested",
		zap.String("actor_id", actor.UserID),
		zap.String("employee_id", id),
	)

	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}
	hireDate, err := parseDate(req.HireDate)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidHireDate
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	empl, err := qtx.FindByIDForUpdate(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if !empl.HireDate.Equal(hireDate) && !actor.Role.CanChangeHireDate() {
		s.logger.Warn("update employee hire date change denied",
			zap.String("employee_id", id),
			zap.String("role", actor.Role.String()),
		)
		return EmployeeResponse{}, employeeerrors.ErrHireDateChangeForbidden
	}

	before := *empl
	hireDateChanged := !empl.HireDate.Equal(hireDate)

	empl.FullName = req.FullName
	empl.Email = req.Email
	empl.Area = req.Area
	empl.Position = req.Position
	empl.Status = Status(req.Status)
	empl.HireDate = hireDate
	if req.UserID != nil {
		if *req.UserID == "" {
			empl.UserID = nil
		} else {
			userID := *req.UserID
			empl.UserID = &userID
		}
	}

	if err := qtx.UpdateProfile(ctx, empl); err != nil {
		s.logger.Error("update employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	kind := audit.KindEmploymentChange
	if hireDateChanged {
		kind = audit.KindHireDateChange
	}
	if err := s.audit.WithTx(tx).Record(ctx, audit.Entry{
		ActorID:    actor.UserID,
		Kind:       kind,
		EntityType: audit.EntityEmployee,
		EntityID:   empl.ID.String(),
		EmployeeID: empl.ID.String(),
		Detail:     fmt.Sprintf("employment data updated (%s)", profileChanges(before, *empl)),
	}); err != nil {
		s.logger.Error("update employee audit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update employee commit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateOptions(ctx)
	s.logger.Info("update employee success", zap.String("employee_id", id))
	return s.withBalance(*empl), nil
}

// AdjustVacation overwrites the supplied accrual fields and records the change in the ledger and audit trail.
func (s *service) AdjustVacation(ctx context.Context, actor domain.Actor, id string, req AdjustVacationRequest) (AdjustVacationResponse, error) {
	s.logger.Debug("adjust vacation requested",
		zap.String("actor_id", actor.UserID),
		zap.String("employee_id", id),
	)

	if !actor.Role.CanAdjustVacation() {
		return AdjustVacationResponse{}, employeeerrors.ErrAdjustForbidden
	}
	if _, err := uuid.Parse(id); err != nil {
		return AdjustVacationResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("adjust vacation begin tx failed", zap.Error(err))
		return AdjustVacationResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	empl, err := qtx.FindByIDForUpdate(ctx, id)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("adjust vacation load employee failed", zap.Error(err))
		}
		return AdjustVacationResponse{}, mapRepositoryError(err)
	}

	previousAccrued := empl.ManualAccruedDays
	adj := VacationAdjustment{
		ManualAccrued:  req.ManualAccrued,
		Taken:          req.Taken,
		InitialBalance: req.InitialBalance,
	}
	adj.ApplyTo(empl)

	if err := qtx.ApplyVacationAdjustment(ctx, id, adj); err != nil {
		s.logger.Error("adjust vacation persist failed", zap.String("employee_id", id), zap.Error(err))
		return AdjustVacationResponse{}, mapRepositoryError(err)
	}

	// The ledger delta carries the resulting manual accrual, not the difference; the
	// true difference is kept in the detail text.
	if err := s.ledger.WithTx(tx).Append(ctx, &ledger.Movement{
		EmployeeID: empl.ID,
		Kind:       ledger.KindAdjustment,
		Delta:      empl.ManualAccruedDays,
		Detail: fmt.Sprintf("manual adjustment by %s (accrued change %s)",
			actor.UserID, empl.ManualAccruedDays.Sub(previousAccrued).StringFixed(2)),
		CreatedAt: s.now(),
	}); err != nil {
		s.logger.Error("adjust vacation ledger append failed", zap.Error(err))
		return AdjustVacationResponse{}, err
	}

	if err := s.audit.WithTx(tx).Record(ctx, audit.Entry{
		ActorID:    actor.UserID,
		Kind:       audit.KindVacationAdjust,
		EntityType: audit.EntityEmployee,
		EntityID:   empl.ID.String(),
		EmployeeID: empl.ID.String(),
		Detail:     adjustmentDetail(*empl),
	}); err != nil {
		s.logger.Error("adjust vacation audit failed", zap.Error(err))
		return AdjustVacationResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("adjust vacation commit failed", zap.Error(err))
		return AdjustVacationResponse{}, err
	}

	resp := s.withBalance(*empl)
	s.logger.Info("adjust vacation success",
		zap.String("employee_id", id),
		zap.Float64("balance", resp.Vacation.Balance),
	)
	return AdjustVacationResponse{Employee: resp, Balance: *resp.Vacation}, nil
}

func (s *service) ListMovements(ctx context.Context, id string) ([]ledger.MovementResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, employeeerrors.ErrInvalidEmployeeID
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, mapRepositoryError(err)
	}

	rows, err := s.ledger.ListByEmployee(ctx, id)
	if err != nil {
		s.logger.Error("list vacation movements failed", zap.String("employee_id", id), zap.Error(err))
		return nil, err
	}
	resp := make([]ledger.MovementResponse, len(rows))
	for i, m := range rows {
		resp[i] = ledger.MapToResponse(m)
	}
	return resp, nil
}

func (s *service) invalidateOptions(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, EmployeeOptionsKey).Err(); err != nil {
		s.logger.Error("failed to invalidate employee options cache",
			zap.String("key", EmployeeOptionsKey),
			zap.Error(err),
		)
	}
}

func (s *service) withBalance(e Employee) EmployeeResponse {
	resp := mapToResponse(e)
	b := MapBalance(e.VacationBalance(s.now()))
	resp.Vacation = &b
	return resp
}

func adjustmentDetail(e Employee) string {
	initial := "none"
	if e.InitialBalance.Valid {
		initial = e.InitialBalance.Decimal.StringFixed(2)
	}
	return fmt.Sprintf("new values: accrued=%s, taken=%s, initial=%s",
		e.ManualAccruedDays.StringFixed(2), e.TakenDays.StringFixed(2), initial)
}

// profileChanges lists the edited fields as "field: old -> new".
func profileChanges(before, after Employee) string {
	var changes []string
	diff := func(field, old, updated string) {
		if old != updated {
			changes = append(changes, fmt.Sprintf("%s: %s -> %s", field, old, updated))
		}
	}
	diff("full_name", before.FullName, after.FullName)
	diff("email", before.Email, after.Email)
	diff("area", before.Area, after.Area)
	diff("position", before.Position, after.Position)
	diff("status", string(before.Status), string(after.Status))
	diff("hire_date", before.HireDate.Format("2006-01-02"), after.HireDate.Format("2006-01-02"))
	diff("user_id", derefOrNone(before.UserID), derefOrNone(after.UserID))
	if len(changes) == 0 {
		return "no changes"
	}
	return strings.Join(changes, ", ")
}

func derefOrNone(v *string) string {
	if v == nil {
		return "none"
	}
	return *v
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, err
	}
	return balance.StartOfDay(t), nil
}

func MapBalance(r balance.Result) BalanceResponse {
	return BalanceResponse{
		TotalAccrued: r.TotalAccrued.InexactFloat64(),
		Taken:        r.Taken.InexactFloat64(),
		Balance:      r.Balance.InexactFloat64(),
	}
}

func mapToResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:                e.ID.String(),
		UserID:            e.UserID,
		EmployeeNumber:    e.EmployeeNumber,
		FullName:          e.FullName,
		Email:             e.Email,
		Area:              e.Area,
		Position:          e.Position,
		Status:            string(e.Status),
		HireDate:          e.HireDate.Format("2006-01-02"),
		ManualAccruedDays: e.ManualAccruedDays.InexactFloat64(),
		TakenDays:         e.TakenDays.InexactFloat64(),
	}
	if e.InitialBalance.Valid {
		v := e.InitialBalance.Decimal.InexactFloat64()
		resp.InitialBalance = &v
	}
	return resp
}
