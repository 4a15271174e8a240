package vacation

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go-hradmin/internal/shared/connection"
	"go-hradmin/internal/shared/scope"

	"gorm.io/gorm"
)

// ErrNotPending is returned by Resolve when the request already left PENDING.
var ErrNotPending = errors.New("vacation: request is not pending")

type ListFilter struct {
	Status     string
	EmployeeID string
	From       *time.Time
	To         *time.Time
}

//go:generate mockgen -source=vacation_repo.go -destination=mock/vacation_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, v *VacationRequest) error
	FindByID(ctx context.Context, id string) (*VacationRequest, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]VacationRequest, error)
	ListFiltered(ctx context.Context, filter ListFilter) ([]VacationRequest, error)
	ListApprovedOverlapping(ctx context.Context, employeeID string, start, end time.Time) ([]VacationRequest, error)
	Resolve(ctx context.Context, id string, res Resolution) error
	FlagOverlap(ctx context.Context, id string, note string) error
	CountPendingByEmployee(ctx context.Context, employeeID string) (int64, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) session(ctx context.Context) *gorm.DB {
	return connection.Session(ctx, r.db, r.tx)
}

func (r *repository) Create(ctx context.Context, v *VacationRequest) error {
	return r.session(ctx).Create(v).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*VacationRequest, error) {
	var v VacationRequest
	err := r.session(ctx).First(&v, "id = ?", id).Error
	return &v, err
}

func (r *repository) ListByEmployee(ctx context.Context, employeeID string) ([]VacationRequest, error) {
	var rows []VacationRequest
	err := r.session(ctx).
		Where("employee_id = ?", employeeID).
		Order("submitted_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) ListFiltered(ctx context.Context, filter ListFilter) ([]VacationRequest, error) {
	q := r.session(ctx).Scopes(
		scope.Equal("status", filter.Status),
		scope.Equal("employee_id", filter.EmployeeID),
	)
	if filter.From != nil {
		q = q.Where("start_date >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("end_date <= ?", *filter.To)
	}

	var rows []VacationRequest
	err := q.Order("submitted_at DESC").Find(&rows).Error
	return rows, err
}

// ListApprovedOverlapping uses closed-interval overlap: a request ending on start still overlaps.
func (r *repository) ListApprovedOverlapping(ctx context.Context, employeeID string, start, end time.Time) ([]VacationRequest, error) {
	var rows []VacationRequest
	err := r.session(ctx).
		Where("employee_id = ?", employeeID).
		Where("status = ?", StatusApproved).
		Where("start_date <= ? AND end_date >= ?", end, start).
		Order("start_date ASC").
		Find(&rows).Error
	return rows, err
}

// Resolve moves a PENDING request to its final state. The status guard in the WHERE
// clause makes concurrent resolutions of the same request mutually exclusive.
func (r *repository) Resolve(ctx context.Context, id string, res Resolution) error {
	result := r.session(ctx).
		Model(&VacationRequest{}).
		Where("id = ? AND status = ?", id, StatusPending).
		Updates(map[string]any{
			"status":           res.Status,
			"approver_id":      res.ApproverID,
			"approver_comment": res.Comment,
			"resolved_at":      res.ResolvedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotPending
	}
	return nil
}

// FlagOverlap marks the request and appends note to the approver comment on a new line.
func (r *repository) FlagOverlap(ctx context.Context, id string, note string) error {
	result := r.session(ctx).
		Model(&VacationRequest{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"overlap_flag": true,
			"approver_comment": gorm.Expr(
				"CASE WHEN approver_comment IS NULL OR approver_comment = '' THEN ? ELSE approver_comment || chr(10) || ? END",
				note, note,
			),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) CountPendingByEmployee(ctx context.Context, employeeID string) (int64, error) {
	var count int64
	err := r.session(ctx).
		Model(&VacationRequest{}).
		Where("employee_id = ? AND status = ?", employeeID, StatusPending).
		Count(&count).Error
	return count, err
}
