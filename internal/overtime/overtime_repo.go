package overtime

import (
	"context"
	"database/sql"
	"errors"

	"go-hradmin/internal/shared/connection"
	"go-hradmin/internal/shared/scope"

	"gorm.io/gorm"
)

// ErrNotPending is returned by Review when the request already left PENDING.
var ErrNotPending = errors.New("overtime: request is not pending")

type ListFilter struct {
	Status     string
	EmployeeID string
}

//go:generate mockgen -source=overtime_repo.go -destination=mock/overtime_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, o *Overtime) error
	FindByID(ctx context.Context, id string) (*Overtime, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]Overtime, error)
	ListFiltered(ctx context.Context, filter ListFilter) ([]Overtime, error)
	Review(ctx context.Context, id string, review Review) error
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

func (r *repository) Create(ctx context.Context, o *Overtime) error {
	return r.session(ctx).Create(o).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Overtime, error) {
	var o Overtime
	err := r.session(ctx).First(&o, "id = ?", id).Error
	return &o, err
}

func (r *repository) ListByEmployee(ctx context.Context, employeeID string) ([]Overtime, error) {
	var rows []Overtime
	err := r.session(ctx).
		Where("employee_id = ?", employeeID).
		Order("work_date DESC, submitted_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) ListFiltered(ctx context.Context, filter ListFilter) ([]Overtime, error) {
	var rows []Overtime
	err := r.session(ctx).
		Preload("Employee").
		Scopes(
			scope.Equal("status", filter.Status),
			scope.Equal("employee_id", filter.EmployeeID),
		).
		Order("work_date DESC, submitted_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) Review(ctx context.Context, id string, review Review) error {
	result := r.session(ctx).
		Model(&Overtime{}).
		Where("id = ? AND status = ?", id, StatusPending).
		Updates(map[string]any{
			"status":         review.Status,
			"reviewer_id":    review.ReviewerID,
			"review_comment": review.Comment,
			"reviewed_at":    review.ReviewedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotPending
	}
	return nil
}

func (r *repository) CountPendingByEmployee(ctx context.Context, employeeID string) (int64, error) {
	var count int64
	err := r.session(ctx).
		Model(&Overtime{}).
		Where("employee_id = ? AND status = ?", employeeID, StatusPending).
		Count(&count).Error
	return count, err
}
