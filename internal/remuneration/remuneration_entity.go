package remuneration

import (
	"time"

	"go-hradmin/internal/document"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPublished Status = "PUBLISHED"
	StatusAnnulled  Status = "ANNULLED"
)

// Remuneration is a published payroll record for one employee and period.
// Amounts are optional; the linked payslip document is the record of truth.
type Remuneration struct {
	ID          uuid.UUID           `gorm:"type:uuid;primaryKey"`
	EmployeeID  uuid.UUID           `gorm:"type:uuid;not null;index:idx_remunerations_employee_period"`
	Employee    *EmployeeRef        `gorm:"foreignKey:EmployeeID;references:ID"`
	Period      string              `gorm:"type:varchar(7);not null;index:idx_remunerations_employee_period"`
	PaymentDate *time.Time          `gorm:"type:date"`
	NetAmount   decimal.NullDecimal `gorm:"type:numeric(14,2)"`
	GrossAmount decimal.NullDecimal `gorm:"type:numeric(14,2)"`
	DocumentID  uuid.UUID           `gorm:"type:uuid;not null"`
	Document    *document.Document  `gorm:"foreignKey:DocumentID;references:ID"`
	Status      Status              `gorm:"type:varchar(20);not null;default:'PUBLISHED'"`
	PublishedBy string              `gorm:"type:varchar(64);not null"`
	PublishedAt time.Time           `gorm:"not null"`
	AnnulledBy  *string             `gorm:"type:varchar(64)"`
	AnnulledAt  *time.Time
}

func (Remuneration) TableName() string {
	return "remunerations"
}

type EmployeeRef struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName string    `gorm:"column:full_name"`
	Area     string    `gorm:"column:area"`
	Position string    `gorm:"column:position"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}
