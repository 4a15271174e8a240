package employee

import "github.com/shopspring/decimal"

type CreateEmployeeRequest struct {
	UserID         string           `json:"user_id"`
	EmployeeNumber string           `json:"employee_number"`
	FullName       string           `json:"full_name" binding:"required,max=150"`
	Email          string           `json:"email" binding:"required,email"`
	Area           string           `json:"area"`
	Position       string           `json:"position"`
	HireDate       string           `json:"hire_date" binding:"required"`
	InitialBalance *decimal.Decimal `json:"initial_balance"`
}

type UpdateEmployeeRequest struct {
	UserID   *string `json:"user_id"`
	FullName string  `json:"full_name" binding:"required,max=150"`
	Email    string  `json:"email" binding:"required,email"`
	Area     string  `json:"area"`
	Position string  `json:"position"`
	Status   string  `json:"status" binding:"required,oneof=ACTIVE INACTIVE"`
	HireDate string  `json:"hire_date" binding:"required"`
}

type AdjustVacationRequest struct {
	ManualAccrued  *decimal.Decimal `json:"manual_accrued"`
	Taken          *decimal.Decimal `json:"taken"`
	InitialBalance *decimal.Decimal `json:"initial_balance"`
}

type ListEmployeesQuery struct {
	Search string `form:"search"`
	Area   string `form:"area"`
	Status string `form:"status" binding:"omitempty,oneof=ACTIVE INACTIVE"`
}

type BalanceResponse struct {
	TotalAccrued float64 `json:"total_accrued"`
	Taken        float64 `json:"taken"`
	Balance      float64 `json:"balance"`
}

type EmployeeResponse struct {
	ID                string               `json:"id"`
	UserID            *string              `json:"user_id,omitempty"`
	EmployeeNumber    string               `json:"employee_number"`
	FullName          string               `json:"full_name"`
	Email             string               `json:"email"`
	Area              string               `json:"area"`
	Position          string               `json:"position"`
	Status            string               `json:"status"`
	HireDate          string               `json:"hire_date"`
	ManualAccruedDays float64              `json:"manual_accrued_days"`
	TakenDays         float64              `json:"taken_days"`
	InitialBalance    *float64             `json:"initial_balance,omitempty"`
	Vacation          *BalanceResponse     `json:"vacation,omitempty"`
	PendingVacations  *int64               `json:"pending_vacation_requests,omitempty"`
	PendingOvertime   *int64               `json:"pending_overtime_requests,omitempty"`
	LastRemuneration  *RemunerationSummary `json:"last_remuneration,omitempty"`
}

// RemunerationSummary is the latest published payslip shown on the self-service profile.
type RemunerationSummary struct {
	ID           string  `json:"id"`
	Period       string  `json:"period"`
	PaymentDate  *string `json:"payment_date,omitempty"`
	NetAmount    *string `json:"net_amount,omitempty"`
	DocumentID   string  `json:"document_id"`
	DocumentName string  `json:"document_name,omitempty"`
}

type EmployeeOptionResponse struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Area     string `json:"area"`
}

type AdjustVacationResponse struct {
	Employee EmployeeResponse `json:"employee"`
	Balance  BalanceResponse  `json:"balance"`
}
