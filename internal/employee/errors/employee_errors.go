package employeeerrors

import (
	"net/http"

	"go-hradmin/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrEmployeeAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Employee with the same email already exists",
		http.StatusConflict,
	)
	ErrEmployeeNumberAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Employee number already exists",
		http.StatusConflict,
	)
	ErrUserAlreadyLinked = apperror.New(
		apperror.CodeConflict,
		"User is already linked to another employee",
		http.StatusConflict,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
	ErrInvalidHireDate = apperror.New(
		apperror.CodeInvalidInput,
		"invalid hire_date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrProfileNotLinked = apperror.New(
		apperror.CodeNotFound,
		"No employee profile is linked to this user",
		http.StatusNotFound,
	)
	ErrAdjustForbidden = apperror.New(
		apperror.CodeForbidden,
		"Only administrators can adjust vacation balances",
		http.StatusForbidden,
	)
	ErrHireDateChangeForbidden = apperror.New(
		apperror.CodeForbidden,
		"Only direction administrators can change the hire date",
		http.StatusForbidden,
	)
)
