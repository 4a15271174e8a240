package auditerrors

import (
	"net/http"

	"go-hradmin/internal/shared/apperror"
)

var (
	ErrInvalidKind = apperror.New(
		apperror.CodeInvalidInput,
		"unknown audit event kind",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
)
