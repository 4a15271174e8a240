package document

import "io"

type UploadDocumentRequest struct {
	Type       string `form:"type" binding:"required,oneof=CONTRACT ANNEX PAYSLIP STUDY LEGAL TRAINING MANUAL CONSENT CERTIFICATE OTHER"`
	Period     string `form:"period" binding:"omitempty,len=7"`
	Visibility string `form:"visibility" binding:"omitempty,oneof=ADMIN_ONLY ADMIN_AND_EMPLOYEE"`
}

type ListDocumentsQuery struct {
	Type   string `form:"type" binding:"omitempty,oneof=CONTRACT ANNEX PAYSLIP STUDY LEGAL TRAINING MANUAL CONSENT CERTIFICATE OTHER"`
	Period string `form:"period" binding:"omitempty,len=7"`
}

// File is an uploaded file; Body is read once by the store.
type File struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type DocumentResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	Type         string  `json:"type"`
	Visibility   string  `json:"visibility"`
	Period       *string `json:"period,omitempty"`
	OriginalName string  `json:"original_name"`
	MimeType     string  `json:"mime_type"`
	SizeBytes    int64   `json:"size_bytes"`
	UploadedBy   string  `json:"uploaded_by"`
	UploadedAt   string  `json:"uploaded_at"`
}

// Download carries an opened document; the caller closes Body.
type Download struct {
	Document DocumentResponse
	Body     io.ReadCloser
}
