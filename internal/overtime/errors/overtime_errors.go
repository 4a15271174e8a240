package overtimeerrors

import (
	"net/http"

	"go-hradmin/internal/shared/apperror"
)

var (
	ErrOvertimeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Overtime request not found",
		http.StatusNotFound,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrInvalidID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid overtime request ID",
		http.StatusBadRequest,
	)
	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidHours = apperror.New(
		apperror.CodeInvalidInput,
		"hours must be greater than 0 and at most 24",
		http.StatusBadRequest,
	)
	ErrAlreadyResolved = apperror.New(
		apperror.CodeAlreadyResolved,
		"Overtime request was already resolved",
		http.StatusConflict,
	)
	ErrReviewForbidden = apperror.New(
		apperror.CodeForbidden,
		"Only administrators can resolve overtime requests",
		http.StatusForbidden,
	)
	ErrProfileNotLinked = apperror.New(
		apperror.CodeNotFound,
		"No employee profile is linked to this user",
		http.StatusNotFound,
	)
)
