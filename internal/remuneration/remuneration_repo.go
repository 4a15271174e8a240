package remuneration

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go-hradmin/internal/shared/connection"
	"go-hradmin/internal/shared/scope"

	"gorm.io/gorm"
)

// ErrNotPublished is returned by Annul when the record already left PUBLISHED.
var ErrNotPublished = errors.New("remuneration: record is not published")

type ListFilter struct {
	EmployeeID string
	Period     string
	Status     string
}

//go:generate mockgen -source=remuneration_repo.go -destination=mock/remuneration_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, r *Remuneration) error
	FindByID(ctx context.Context, id string) (*Remuneration, error)
	List(ctx context.Context, filter ListFilter) ([]Remuneration, error)
	LatestPublished(ctx context.Context, employeeID string) (*Remuneration, error)
	HasPublished(ctx context.Context, employeeID, period string) (bool, error)
	Annul(ctx context.Context, id, actorID string, at time.Time) error
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

func (r *repository) Create(ctx context.Context, rem *Remuneration) error {
	return r.session(ctx).Omit("Employee", "Document").Create(rem).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Remuneration, error) {
	var rem Remuneration
	err := r.session(ctx).Preload("Document").First(&rem, "id = ?", id).Error
	return &rem, err
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]Remuneration, error) {
	var rows []Remuneration
	err := r.session(ctx).
		Preload("Employee").
		Preload("Document").
		Scopes(
			scope.Equal("employee_id", filter.EmployeeID),
			scope.Equal("period", filter.Period),
			scope.Equal("status", filter.Status),
		).
		Order("period DESC, published_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) LatestPublished(ctx context.Context, employeeID string) (*Remuneration, error) {
	var rem Remuneration
	err := r.session(ctx).
		Preload("Document").
		Where("employee_id = ? AND status = ?", employeeID, StatusPublished).
		Order("period DESC, published_at DESC").
		First(&rem).Error
	return &rem, err
}

func (r *repository) HasPublished(ctx context.Context, employeeID, period string) (bool, error) {
	var count int64
	err := r.session(ctx).
		Model(&Remuneration{}).
		Where("employee_id = ? AND period = ? AND status = ?", employeeID, period, StatusPublished).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) Annul(ctx context.Context, id, actorID string, at time.Time) error {
	result := r.session(ctx).
		Model(&Remuneration{}).
		Where("id = ? AND status = ?", id, StatusPublished).
		Updates(map[string]any{
			"status":      StatusAnnulled,
			"annulled_by": actorID,
			"annulled_at": at,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotPublished
	}
	return nil
}
