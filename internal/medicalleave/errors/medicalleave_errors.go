package medicalleaveerrors

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
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
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
	ErrDocumentTooLarge = apperror.New(
		apperror.CodeInvalidInput,
		"document exceeds the 10 MiB limit",
		http.StatusBadRequest,
	)
	ErrInvalidDocument = apperror.New(
		apperror.CodeInvalidInput,
		"document upload could not be read",
		http.StatusBadRequest,
	)
	ErrDocumentType = apperror.New(
		apperror.CodeInvalidInput,
		"document must be a PDF, PNG or JPEG file",
		http.StatusBadRequest,
	)
	ErrRecordForbidden = apperror.New(
		apperror.CodeForbidden,
		"Only administrators can record medical leaves",
		http.StatusForbidden,
	)
	ErrProfileNotLinked = apperror.New(
		apperror.CodeNotFound,
		"No employee profile is linked to this user",
		http.StatusNotFound,
	)
)
