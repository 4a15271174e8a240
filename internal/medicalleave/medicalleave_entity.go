package medicalleave

import (
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeIllness   Type = "ILLNESS"
	TypeAccident  Type = "ACCIDENT"
	TypeMaternity Type = "MATERNITY"
	TypeOther     Type = "OTHER"
)

type MedicalLeave struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID   uuid.UUID `gorm:"type:uuid;not null;index:idx_medical_leaves_employee_dates"`
	StartDate    time.Time `gorm:"type:date;not null;index:idx_medical_leaves_employee_dates"`
	EndDate      time.Time `gorm:"type:date;not null;index:idx_medical_leaves_employee_dates"`
	Type         Type      `gorm:"type:varchar(20);not null;default:'ILLNESS'"`
	Notes        *string   `gorm:"type:text"`
	DocumentPath *string   `gorm:"type:varchar(255)"`
	CreatedBy    string    `gorm:"type:varchar(64);not null"`
	CreatedAt    time.Time `gorm:"not null"`
}

func (MedicalLeave) TableName() string {
	return "medical_leaves"
}
