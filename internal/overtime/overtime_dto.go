package overtime

type CreateOvertimeRequest struct {
	Date   string `json:"date" binding:"required"`
	Hours  string `json:"hours" binding:"required"`
	Reason string `json:"reason" binding:"required,max=1000"`
}

type ReviewOvertimeRequest struct {
	Comment *string `json:"comment" binding:"omitempty,max=1000"`
}

type ListOvertimeQuery struct {
	Status     string `form:"status" binding:"omitempty,oneof=PENDING APPROVED REJECTED"`
	EmployeeID string `form:"employee_id" binding:"omitempty,uuid"`
}

type OvertimeResponse struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	EmployeeName  string  `json:"employee_name,omitempty"`
	Date          string  `json:"date"`
	Hours         string  `json:"hours"`
	Reason        string  `json:"reason"`
	Status        string  `json:"status"`
	ReviewerID    *string `json:"reviewer_id,omitempty"`
	ReviewComment *string `json:"review_comment,omitempty"`
	SubmittedAt   string  `json:"submitted_at"`
	ReviewedAt    *string `json:"reviewed_at,omitempty"`
}
