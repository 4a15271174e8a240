package document

import (
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeContract    Type = "CONTRACT"
	TypeAnnex       Type = "ANNEX"
	TypePayslip     Type = "PAYSLIP"
	TypeStudy       Type = "STUDY"
	TypeLegal       Type = "LEGAL"
	TypeTraining    Type = "TRAINING"
	TypeManual      Type = "MANUAL"
	TypeConsent     Type = "CONSENT"
	TypeCertificate Type = "CERTIFICATE"
	TypeOther       Type = "OTHER"
)

type Visibility string

const (
	VisibilityAdminOnly Visibility = "ADMIN_ONLY"
	VisibilityShared    Visibility = "ADMIN_AND_EMPLOYEE"
)

type Document struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	EmployeeID   uuid.UUID  `gorm:"type:uuid;not null;index:idx_documents_employee"`
	Type         Type       `gorm:"type:varchar(20);not null"`
	Visibility   Visibility `gorm:"type:varchar(20);not null;default:'ADMIN_AND_EMPLOYEE'"`
	Period       *string    `gorm:"type:varchar(7)"`
	OriginalName string     `gorm:"type:varchar(255);not null"`
	StoragePath  string     `gorm:"type:varchar(255);not null"`
	MimeType     string     `gorm:"type:varchar(100);not null"`
	SizeBytes    int64      `gorm:"not null"`
	UploadedBy   string     `gorm:"type:varchar(64);not null"`
	UploadedAt   time.Time  `gorm:"not null;index:idx_documents_employee"`
}

func (Document) TableName() string {
	return "documents"
}

// SharedWithEmployee reports whether the owning employee may see the document.
func (d Document) SharedWithEmployee() bool {
	return d.Visibility == VisibilityShared
}
