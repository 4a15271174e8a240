package document

import (
	"context"
	"database/sql"

	"go-hradmin/internal/shared/connection"
	"go-hradmin/internal/shared/scope"

	"gorm.io/gorm"
)

type ListFilter struct {
	Type       string
	Period     string
	SharedOnly bool
}

//go:generate mockgen -source=document_repo.go -destination=mock/document_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, d *Document) error
	FindByID(ctx context.Context, id string) (*Document, error)
	ListByEmployee(ctx context.Context, employeeID string, filter ListFilter) ([]Document, error)
	Delete(ctx context.Context, id string) error
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

func (r *repository) Create(ctx context.Context, d *Document) error {
	return r.session(ctx).Create(d).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Document, error) {
	var d Document
	err := r.session(ctx).First(&d, "id = ?", id).Error
	return &d, err
}

func (r *repository) ListByEmployee(ctx context.Context, employeeID string, filter ListFilter) ([]Document, error) {
	q := r.session(ctx).
		Where("employee_id = ?", employeeID).
		Scopes(
			scope.Equal("type", filter.Type),
			scope.Equal("period", filter.Period),
		)
	if filter.SharedOnly {
		q = q.Where("visibility = ?", VisibilityShared)
	}

	var rows []Document
	err := q.Order("uploaded_at DESC").Find(&rows).Error
	return rows, err
}

// Delete returns gorm.ErrRecordNotFound when no row matched.
func (r *repository) Delete(ctx context.Context, id string) error {
	result := r.session(ctx).Where("id = ?", id).Delete(&Document{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
