package overtime

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

type Overtime struct {
	ID            uuid.UUID       `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID    uuid.UUID       `gorm:"column:employee_id;type:uuid;not null;index"`
	WorkDate      time.Time       `gorm:"column:work_date;type:date;not null;index"`
	Hours         decimal.Decimal `gorm:"column:hours;type:numeric(4,2);not null"`
	Reason        string          `gorm:"column:reason;type:text;not null"`
	Status        Status          `gorm:"column:status;type:varchar(20);not null;default:PENDING;index"`
	ReviewerID    *string         `gorm:"column:reviewer_id;type:varchar(100)"`
	ReviewComment *string         `gorm:"column:review_comment;type:text"`
	SubmittedAt   time.Time       `gorm:"column:submitted_at;not null"`
	ReviewedAt    *time.Time      `gorm:"column:reviewed_at"`
	Employee      *EmployeeRef    `gorm:"foreignKey:EmployeeID;references:ID"`
}

func (Overtime) TableName() string {
	return "overtime_requests"
}

type EmployeeRef struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName string    `gorm:"column:full_name"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}

// Review is the final state written by Approve or Reject.
type Review struct {
	Status     Status
	ReviewerID string
	Comment    *string
	ReviewedAt time.Time
}

func (r Review) ApplyTo(o *Overtime) {
	o.Status = r.Status
	reviewer := r.ReviewerID
	o.ReviewerID = &reviewer
	o.ReviewComment = r.Comment
	at := r.ReviewedAt
	o.ReviewedAt = &at
}
