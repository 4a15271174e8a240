package vacationerrors

import (
	"net/http"

	"go-hradmin/internal/shared/apperror"
)

var (
	ErrVacationRequestNotFound = apperror.New(
		apperror.CodeNotFound,
		"Vacation request not found",
		http.StatusNotFound,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrInvalidRequestID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid vacation request ID",
		http.StatusBadRequest,
	)
	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"end_date must not be before start_date",
		http.StatusBadRequest,
	)
	ErrAlreadyResolved = apperror.New(
		apperror.CodeAlreadyResolved,
		"Vacation request was already resolved",
		http.StatusConflict,
	)
	ErrInsufficientBalance = apperror.New(
		apperror.CodeInsufficientBalance,
		"Insufficient vacation balance",
		http.StatusUnprocessableEntity,
	)
	ErrApproveForbidden = apperror.New(
		apperror.CodeForbidden,
		"Only administrators can resolve vacation requests",
		http.StatusForbidden,
	)
	ErrProfileNotLinked = apperror.New(
		apperror.CodeNotFound,
		"No employee profile is linked to this user",
		http.StatusNotFound,
	)
)
