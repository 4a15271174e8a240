package remunerationerrors

import (
	"net/http"

	"go-hradmin/internal/shared/apperror"
)

var (
	ErrRemunerationNotFound = apperror.New(
		apperror.CodeNotFound,
		"Remuneration not found",
		http.StatusNotFound,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrInvalidID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid ID",
		http.StatusBadRequest,
	)
	ErrInvalidPeriod = apperror.New(
		apperror.CodeInvalidInput,
		"invalid period format, expected YYYY-MM",
		http.StatusBadRequest,
	)
	ErrInvalidPaymentDate = apperror.New(
		apperror.CodeInvalidInput,
		"invalid payment_date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidAmount = apperror.New(
		apperror.CodeInvalidInput,
		"amounts must be non-negative numbers",
		http.StatusBadRequest,
	)
	ErrDocumentRequired = apperror.New(
		apperror.CodeDocumentRequired,
		"a payslip document is required",
		http.StatusBadRequest,
	)
	ErrPayslipTooLarge = apperror.New(
		apperror.CodeInvalidInput,
		"payslip exceeds the 15 MiB limit",
		http.StatusBadRequest,
	)
	ErrPayslipType = apperror.New(
		apperror.CodeInvalidInput,
		"payslip must be a PDF document",
		http.StatusBadRequest,
	)
	ErrInvalidDocument = apperror.New(
		apperror.CodeForbidden,
		"Document does not belong to this employee",
		http.StatusForbidden,
	)
	ErrAlreadyPublished = apperror.New(
		apperror.CodeConflict,
		"A remuneration is already published for this period",
		http.StatusConflict,
	)
	ErrAlreadyAnnulled = apperror.New(
		apperror.CodeAlreadyResolved,
		"Remuneration is already annulled",
		http.StatusConflict,
	)
	ErrManageForbidden = apperror.New(
		apperror.CodeForbidden,
		"Only administrators can manage remunerations",
		http.StatusForbidden,
	)
	ErrProfileNotLinked = apperror.New(
		apperror.CodeNotFound,
		"No employee profile is linked to this user",
		http.StatusNotFound,
	)
)
