package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Kind string

const (
	KindAdjustment Kind = "ADJUSTMENT"
	KindDeduction  Kind = "DEDUCTION"
)

// Movement is a write-once entry of the vacation ledger.
type Movement struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	EmployeeID uuid.UUID       `gorm:"type:uuid;not null;index:idx_vacation_movements_employee"`
	Kind       Kind            `gorm:"type:varchar(20);not null"`
	Delta      decimal.Decimal `gorm:"type:numeric(8,2);not null"`
	Detail     string          `gorm:"type:text"`
	CreatedAt  time.Time       `gorm:"not null;index:idx_vacation_movements_employee"`
}

func (Movement) TableName() string {
	return "vacation_movements"
}

type MovementResponse struct {
	ID         string  `json:"id"`
	EmployeeID string  `json:"employee_id"`
	Kind       string  `json:"kind"`
	Delta      float64 `json:"delta"`
	Detail     string  `json:"detail"`
	CreatedAt  string  `json:"created_at"`
}

func MapToResponse(m Movement) MovementResponse {
	return MovementResponse{
		ID:         m.ID.String(),
		EmployeeID: m.EmployeeID.String(),
		Kind:       string(m.Kind),
		Delta:      m.Delta.InexactFloat64(),
		Detail:     m.Detail,
		CreatedAt:  m.CreatedAt.Format(time.RFC3339),
	}
}
