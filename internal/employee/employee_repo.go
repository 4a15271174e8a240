package employee

import (
	"context"
	"database/sql"
	"time"

	"go-hradmin/internal/shared/connection"
	"go-hradmin/internal/shared/scope"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ListFilter struct {
	Search string
	Area   string
	Status string
}

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, e *Employee) error
	FindByID(ctx context.Context, id string) (*Employee, error)
	FindByIDForUpdate(ctx context.Context, id string) (*Employee, error)
	FindByUserID(ctx context.Context, userID string) (*Employee, error)
	List(ctx context.Context, filter ListFilter) ([]Employee, error)
	FindOptions(ctx context.Context) ([]Employee, error)
	UpdateProfile(ctx context.Context, e *Employee) error
	IncrementTaken(ctx context.Context, id string, days decimal.Decimal) error
	ApplyVacationAdjustment(ctx context.Context, id string, adj VacationAdjustment) error
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

func (r *repository) Create(ctx context.Context, e *Employee) error {
	return r.session(ctx).Create(e).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Employee, error) {
	var e Employee
	err := r.session(ctx).First(&e, "id = ?", id).Error
	return &e, err
}

// FindByIDForUpdate locks the row until the surrounding transaction ends.
func (r *repository) FindByIDForUpdate(ctx context.Context, id string) (*Employee, error) {
	var e Employee
	err := r.session(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&e, "id = ?", id).Error
	return &e, err
}

func (r *repository) FindByUserID(ctx context.Context, userID string) (*Employee, error) {
	var e Employee
	err := r.session(ctx).First(&e, "user_id = ?", userID).Error
	return &e, err
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]Employee, error) {
	var rows []Employee
	err := r.session(ctx).
		Scopes(
			scope.Search(filter.Search, "full_name", "email", "employee_number"),
			scope.Equal("area", filter.Area),
			scope.Equal("status", filter.Status),
		).
		Order("full_name ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindOptions(ctx context.Context) ([]Employee, error) {
	var rows []Employee
	err := r.session(ctx).
		Select("id", "full_name", "area").
		Where("status = ?", StatusActive).
		Order("full_name ASC").
		Find(&rows).Error
	return rows, err
}

// UpdateProfile never writes the accrual columns; those change only through
// IncrementTaken and ApplyVacationAdjustment.
func (r *repository) UpdateProfile(ctx context.Context, e *Employee) error {
	e.UpdatedAt = time.Now().UTC()
	res := r.session(ctx).
		Model(&Employee{}).
		Where("id = ?", e.ID).
		Select("user_id", "full_name", "email", "area", "position", "status", "hire_date", "updated_at").
		Updates(e)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// IncrementTaken adds days in SQL so concurrent approvals cannot lose an update.
func (r *repository) IncrementTaken(ctx context.Context, id string, days decimal.Decimal) error {
	res := r.session(ctx).
		Model(&Employee{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"taken_days": gorm.Expr("taken_days + ?", days),
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) ApplyVacationAdjustment(ctx context.Context, id string, adj VacationAdjustment) error {
	updates := map[string]any{"updated_at": time.Now().UTC()}
	if adj.ManualAccrued != nil {
		updates["manual_accrued_days"] = *adj.ManualAccrued
	}
	if adj.Taken != nil {
		updates["taken_days"] = *adj.Taken
	}
	if adj.InitialBalance != nil {
		updates["initial_balance"] = *adj.InitialBalance
	}

	res := r.session(ctx).Model(&Employee{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
