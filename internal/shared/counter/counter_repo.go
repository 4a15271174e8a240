package counter

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

const (
	TypeEmployeeNumber = "employee_number"
	TypeVacationFolio  = "vacation_folio"
)

//go:generate mockgen -source=counter_repo.go -destination=mock/counter_repo_mock.go -package=mock
type Repository interface {
	GetNextValue(ctx context.Context, counterType string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// GetNextValue increments the named sequence with a single UPSERT so concurrent callers never share a value.
func (r *repository) GetNextValue(ctx context.Context, counterType string) (int64, error) {
	var nextValue int64

	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO counters (counter_type, last_value, updated_at)
		VALUES (?, 1, now())
		ON CONFLICT (counter_type) DO UPDATE
		SET last_value = counters.last_value + 1, updated_at = now()
		RETURNING last_value
	`, counterType).Scan(&nextValue).Error
	if err != nil {
		return 0, err
	}

	return nextValue, nil
}

// Format renders a folio such as VAC-000042.
func Format(prefix string, value int64) string {
	return fmt.Sprintf("%s-%06d", prefix, value)
}
