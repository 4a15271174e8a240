package audit

import (
	"time"

	"github.com/google/uuid"
)

// Kind is a closed enumeration. New kinds are appended; existing values are never repurposed.
type Kind string

const (
	KindVacationRequest     Kind = "VACATION_REQUEST"
	KindVacationApprove     Kind = "VACATION_APPROVE"
	KindVacationReject      Kind = "VACATION_REJECT"
	KindVacationAdjust      Kind = "VACATION_ADJUST"
	KindMedicalLeaveRecord  Kind = "REGISTRO_LICENCIA_MEDICA"
	KindOvertimeRequest     Kind = "OVERTIME_REQUEST"
	KindOvertimeApprove     Kind = "OVERTIME_APPROVE"
	KindOvertimeReject      Kind = "OVERTIME_REJECT"
	KindEmployeeCreate      Kind = "EMPLOYEE_CREATE"
	KindHireDateChange      Kind = "VACATION_CHANGE_FECHA_INGRESO"
	KindEmploymentChange    Kind = "CAMBIO_ESTADO_LABORAL"
	KindDocumentUpload      Kind = "SUBIDA_DOCUMENTO"
	KindDocumentDownload    Kind = "DESCARGA_DOCUMENTO"
	KindDocumentDelete      Kind = "ELIMINACION_DOCUMENTO"
	KindRemunerationPublish Kind = "REMUNERACION_PUBLISH"
	KindRemunerationAnnul   Kind = "REMUNERACION_ANULATE"
)

var kinds = map[Kind]struct{}{
	KindVacationRequest:     {},
	KindVacationApprove:     {},
	KindVacationReject:      {},
	KindVacationAdjust:      {},
	KindMedicalLeaveRecord:  {},
	KindOvertimeRequest:     {},
	KindOvertimeApprove:     {},
	KindOvertimeReject:      {},
	KindEmployeeCreate:      {},
	KindHireDateChange:      {},
	KindEmploymentChange:    {},
	KindDocumentUpload:      {},
	KindDocumentDownload:    {},
	KindDocumentDelete:      {},
	KindRemunerationPublish: {},
	KindRemunerationAnnul:   {},
}

func (k Kind) Valid() bool {
	_, ok := kinds[k]
	return ok
}

const (
	EntityVacationRequest = "vacation_request"
	EntityEmployee        = "employee"
	EntityMedicalLeave    = "medical_leave"
	EntityOvertime        = "overtime"
	EntityDocument        = "document"
	EntityRemuneration    = "remuneration"
)

type Event struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	ActorID    string    `gorm:"type:varchar(64);not null;index:idx_audit_events_actor"`
	Kind       Kind      `gorm:"type:varchar(40);not null;index:idx_audit_events_kind"`
	EntityType string    `gorm:"type:varchar(40);not null"`
	EntityID   string    `gorm:"type:varchar(64);not null"`
	Detail     string    `gorm:"type:text"`
	CreatedAt  time.Time `gorm:"not null;index:idx_audit_events_created"`
}

func (Event) TableName() string {
	return "audit_events"
}
