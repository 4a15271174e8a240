package documenterrors

import (
	"net/http"

	"go-hradmin/internal/shared/apperror"
)

var (
	ErrDocumentNotFound = apperror.New(
		apperror.CodeNotFound,
		"Document not found",
		http.StatusNotFound,
	)
	ErrFileUnavailable = apperror.New(
		apperror.CodeNotFound,
		"Document file is not available",
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
	ErrFileRequired = apperror.New(
		apperror.CodeInvalidInput,
		"a file is required",
		http.StatusBadRequest,
	)
	ErrFileTooLarge = apperror.New(
		apperror.CodeInvalidInput,
		"file exceeds the 10 MiB limit",
		http.StatusBadRequest,
	)
	ErrFileType = apperror.New(
		apperror.CodeInvalidInput,
		"file must be a PDF, PNG or JPEG document",
		http.StatusBadRequest,
	)
	ErrInvalidUpload = apperror.New(
		apperror.CodeInvalidInput,
		"file upload could not be read",
		http.StatusBadRequest,
	)
	ErrDownloadForbidden = apperror.New(
		apperror.CodeForbidden,
		"You are not allowed to view this document",
		http.StatusForbidden,
	)
	ErrManageForbidden = apperror.New(
		apperror.CodeForbidden,
		"Only administrators can manage employee documents",
		http.StatusForbidden,
	)
	ErrDocumentInUse = apperror.New(
		apperror.CodeConflict,
		"Document is linked to a published remuneration",
		http.StatusConflict,
	)
	ErrProfileNotLinked = apperror.New(
		apperror.CodeNotFound,
		"No employee profile is linked to this user",
		http.StatusNotFound,
	)
)
