package medicalleave

import (
	"context"
	"database/sql"

	"go-hradmin/internal/shared/connection"

	"gorm.io/gorm"
)

//go:generate mockgen -source=medicalleave_repo.go -destination=mock/medicalleave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, m *MedicalLeave) error
	ListByEmployee(ctx context.Context, employeeID string) ([]MedicalLeave, error)
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

func (r *repository) Create(ctx context.Context, m *MedicalLeave) error {
	return connection.Session(ctx, r.db, r.tx).Create(m).Error
}

func (r *repository) ListByEmployee(ctx context.Context, employeeID string) ([]MedicalLeave, error) {
	var rows []MedicalLeave
	err := connection.Session(ctx, r.db, r.tx).
		Where("employee_id = ?", employeeID).
		Order("start_date DESC").
		Find(&rows).Error
	return rows, err
}
