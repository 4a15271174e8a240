package remuneration

type PublishRemunerationRequest struct {
	Period      string `form:"period" binding:"required,len=7"`
	PaymentDate string `form:"payment_date" binding:"omitempty"`
	NetAmount   string `form:"net_amount" binding:"omitempty,numeric"`
	GrossAmount string `form:"gross_amount" binding:"omitempty,numeric"`
	DocumentID  string `form:"document_id" binding:"omitempty,uuid"`
}

type ListRemunerationsQuery struct {
	EmployeeID string `form:"employee_id" binding:"omitempty,uuid"`
	Period     string `form:"period" binding:"omitempty,len=7"`
	Status     string `form:"status" binding:"omitempty,oneof=PUBLISHED ANNULLED"`
}

type DocumentSummary struct {
	ID           string `json:"id"`
	OriginalName string `json:"original_name"`
	MimeType     string `json:"mime_type"`
}

type EmployeeSummary struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Area     string `json:"area"`
	Position string `json:"position"`
}

type RemunerationResponse struct {
	ID          string           `json:"id"`
	EmployeeID  string           `json:"employee_id"`
	Employee    *EmployeeSummary `json:"employee,omitempty"`
	Period      string           `json:"period"`
	PaymentDate *string          `json:"payment_date,omitempty"`
	NetAmount   *string          `json:"net_amount,omitempty"`
	GrossAmount *string          `json:"gross_amount,omitempty"`
	Status      string           `json:"status"`
	DocumentID  string           `json:"document_id"`
	Document    *DocumentSummary `json:"document,omitempty"`
	PublishedBy string           `json:"published_by"`
	PublishedAt string           `json:"published_at"`
	AnnulledAt  *string          `json:"annulled_at,omitempty"`
}
