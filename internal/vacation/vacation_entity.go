package vacation

import (
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindVacation      Kind = "VACATION"
	KindLeaveDeducted Kind = "LEAVE_DEDUCTED"
)

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

type VacationRequest struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_vacation_requests_employee_dates"`
	Folio      string    `gorm:"type:varchar(20);not null;uniqueIndex:uq_vacation_requests_folio"`
	Kind       Kind      `gorm:"type:varchar(20);not null;default:'VACATION'"`

	StartDate time.Time `gorm:"type:date;not null;index:idx_vacation_requests_employee_dates"`
	EndDate   time.Time `gorm:"type:date;not null;index:idx_vacation_requests_employee_dates"`
	Days      int       `gorm:"type:int;not null"`

	Status           Status  `gorm:"type:varchar(20);not null;default:'PENDING';index:idx_vacation_requests_status"`
	RequesterComment *string `gorm:"type:text"`
	ApproverID       *string `gorm:"type:varchar(64)"`
	ApproverComment  *string `gorm:"type:text"`
	OverlapFlag      bool    `gorm:"not null;default:false"`

	SubmittedAt time.Time `gorm:"not null;index:idx_vacation_requests_submitted"`
	ResolvedAt  *time.Time
}

func (VacationRequest) TableName() string {
	return "vacation_requests"
}

// Resolution is what an approver writes when a request leaves PENDING.
type Resolution struct {
	Status     Status
	ApproverID string
	Comment    *string
	ResolvedAt time.Time
}

func (r Resolution) ApplyTo(v *VacationRequest) {
	approver := r.ApproverID
	resolvedAt := r.ResolvedAt
	v.Status = r.Status
	v.ApproverID = &approver
	v.ApproverComment = r.Comment
	v.ResolvedAt = &resolvedAt
}
