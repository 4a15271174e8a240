package medicalleave

import (
	"io"

	"go-hradmin/internal/vacation"
)

type RecordMedicalLeaveRequest struct {
	StartDate string  `form:"start_date" binding:"required"`
	EndDate   string  `form:"end_date" binding:"required"`
	Type      string  `form:"type" binding:"omitempty,oneof=ILLNESS ACCIDENT MATERNITY OTHER"`
	Notes     *string `form:"notes" binding:"omitempty,max=2000"`
}

// Document is an uploaded supporting file; Body is read once by the store.
type Document struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type MedicalLeaveResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	Type         string  `json:"type"`
	Notes        *string `json:"notes,omitempty"`
	DocumentPath *string `json:"document_path,omitempty"`
	CreatedBy    string  `json:"created_by"`
	CreatedAt    string  `json:"created_at"`
}

type RecordMedicalLeaveResponse struct {
	Leave    MedicalLeaveResponse               `json:"leave"`
	Overlaps []vacation.VacationRequestResponse `json:"overlaps"`
}
