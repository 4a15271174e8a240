package vacation

import "go-hradmin/internal/employee"

type CreateVacationRequest struct {
	Kind      string  `json:"kind" binding:"omitempty,oneof=VACATION LEAVE_DEDUCTED"`
	StartDate string  `json:"start_date" binding:"required"`
	EndDate   string  `json:"end_date" binding:"required"`
	Comment   *string `json:"comment" binding:"omitempty,max=1000"`
}

type ResolveVacationRequest struct {
	Comment *string `json:"comment" binding:"omitempty,max=1000"`
}

type ListVacationRequestsQuery struct {
	Status     string `form:"status" binding:"omitempty,oneof=PENDING APPROVED REJECTED"`
	EmployeeID string `form:"employee_id" binding:"omitempty,uuid"`
	From       string `form:"from"`
	To         string `form:"to"`
}

type VacationRequestResponse struct {
	ID               string  `json:"id"`
	EmployeeID       string  `json:"employee_id"`
	Folio            string  `json:"folio"`
	Kind             string  `json:"kind"`
	StartDate        string  `json:"start_date"`
	EndDate          string  `json:"end_date"`
	Days             int     `json:"days"`
	Status           string  `json:"status"`
	RequesterComment *string `json:"requester_comment,omitempty"`
	ApproverID       *string `json:"approver_id,omitempty"`
	ApproverComment  *string `json:"approver_comment,omitempty"`
	OverlapFlag      bool    `json:"overlap_flag"`
	SubmittedAt      string  `json:"submitted_at"`
	ResolvedAt       *string `json:"resolved_at,omitempty"`
}

type ApproveVacationResponse struct {
	Request VacationRequestResponse  `json:"request"`
	Balance employee.BalanceResponse `json:"balance"`
}
