package employee

import (
	"time"

	"go-hradmin/internal/balance"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)

type Employee struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID         *string   `gorm:"type:varchar(64);uniqueIndex:uq_employee_user"`
	EmployeeNumber string    `gorm:"type:varchar(20);not null;uniqueIndex:uq_employee_number"`
	FullName       string    `gorm:"type:varchar(150);not null"`
	Email          string    `gorm:"type:varchar(150);not null;uniqueIndex:uq_employee_email"`
	Area           string    `gorm:"type:varchar(100)"`
	Position       string    `gorm:"type:varchar(100)"`
	Status         Status    `gorm:"type:varchar(20);not null;default:'ACTIVE'"`
	HireDate       time.Time `gorm:"type:date;not null"`

	ManualAccruedDays decimal.Decimal     `gorm:"type:numeric(8,2);not null;default:0"`
	TakenDays         decimal.Decimal     `gorm:"type:numeric(8,2);not null;default:0"`
	InitialBalance    decimal.NullDecimal `gorm:"type:numeric(8,2)"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Employee) TableName() string {
	return "employees"
}

func (e Employee) initialBalance() *decimal.Decimal {
	if !e.InitialBalance.Valid {
		return nil
	}
	v := e.InitialBalance.Decimal
	return &v
}

// VacationBalance evaluates the employee's accrual fields as of asOf.
func (e Employee) VacationBalance(asOf time.Time) balance.Result {
	return balance.Compute(e.HireDate, e.ManualAccruedDays, e.initialBalance(), e.TakenDays, asOf)
}

// VacationAdjustment carries the fields an administrator chose to overwrite; nil means keep.
type VacationAdjustment struct {
	ManualAccrued  *decimal.Decimal
	Taken          *decimal.Decimal
	InitialBalance *decimal.Decimal
}

func (a VacationAdjustment) ApplyTo(e *Employee) {
	if a.ManualAccrued != nil {
		e.ManualAccruedDays = *a.ManualAccrued
	}
	if a.Taken != nil {
		e.TakenDays = *a.Taken
	}
	if a.InitialBalance != nil {
		e.InitialBalance = decimal.NewNullDecimal(*a.InitialBalance)
	}
}
