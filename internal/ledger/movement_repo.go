package ledger

import (
	"context"
	"database/sql"
	"time"

	"go-hradmin/internal/shared/connection"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=movement_repo.go -destination=mock/movement_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Append(ctx context.Context, m *Movement) error
	ListByEmployee(ctx context.Context, employeeID string) ([]Movement, error)
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

// Append inserts only; the ledger has no update path.
func (r *repository) Append(ctx context.Context, m *Movement) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	return connection.Session(ctx, r.db, r.tx).Create(m).Error
}

func (r *repository) ListByEmployee(ctx context.Context, employeeID string) ([]Movement, error) {
	var movements []Movement
	err := connection.Session(ctx, r.db, r.tx).
		Where("employee_id = ?", employeeID).
		Order("created_at DESC").
		Find(&movements).Error
	return movements, err
}
