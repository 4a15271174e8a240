package document

import (
	"errors"
	"mime"
	"net/http"

	documenterrors "go-hradmin/internal/document/errors"
	"go-hradmin/internal/middleware"
	"go-hradmin/internal/shared/apperror"
	"go-hradmin/internal/shared/response"
	"go-hradmin/internal/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const fileField = "file"

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("document.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("document.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("document request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Upload(c *gin.Context) {
	employeeID := c.Param("id")
	actor := middleware.ActorFromContext(c)
	h.logger.Debug("http upload document",
		zap.String("actor_id", actor.UserID),
		zap.String("employee_id", employeeID),
	)

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxFileSize+1<<20)

	var req UploadDocumentRequest
	if err := c.ShouldBind(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.writeServiceError(c, documenterrors.ErrFileTooLarge)
			return
		}
		h.logger.Warn("http upload document validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", apperror.MapValidationError(err).Error())
		return
	}

	file, closeFile, err := FormFile(c, fileField)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	defer closeFile()

	resp, err := h.service.Upload(c.Request.Context(), actor, employeeID, req, file)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) ListMine(c *gin.Context) {
	var q ListDocumentsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", apperror.MapValidationError(err).Error())
		return
	}

	resp, err := h.service.ListMine(c.Request.Context(), middleware.ActorFromContext(c), q)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ListByEmployee(c *gin.Context) {
	var q ListDocumentsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", apperror.MapValidationError(err).Error())
		return
	}

	resp, err := h.service.ListByEmployee(c.Request.Context(), c.Param("id"), q)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Download(c *gin.Context) {
	dl, err := h.service.Download(c.Request.Context(), middleware.ActorFromContext(c), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	defer dl.Body.Close()

	disposition := mime.FormatMediaType("inline", map[string]string{"filename": dl.Document.OriginalName})
	c.DataFromReader(http.StatusOK, dl.Document.SizeBytes, dl.Document.MimeType, dl.Body, map[string]string{
		"Content-Disposition": disposition,
		"X-Document-Id":       dl.Document.ID,
	})
}

func (h *Handler) Delete(c *gin.Context) {
	resp, err := h.service.Delete(c.Request.Context(), middleware.ActorFromContext(c), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

// FormFile opens the multipart file under field with its sniffed content type.
// A missing file yields a nil *File; the returned func closes the upload.
func FormFile(c *gin.Context, field string) (*File, func(), error) {
	noop := func() {}
	header, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, noop, nil
		}
		return nil, noop, UploadError(err)
	}

	f, err := header.Open()
	if err != nil {
		return nil, noop, documenterrors.ErrInvalidUpload
	}
	contentType, err := storage.DetectContentType(f)
	if err != nil {
		f.Close()
		return nil, noop, documenterrors.ErrInvalidUpload
	}

	return &File{
		Filename:    header.Filename,
		ContentType: contentType,
		Size:        header.Size,
		Body:        f,
	}, func() { f.Close() }, nil
}

// UploadError maps a multipart read failure to a client error.
func UploadError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return documenterrors.ErrFileTooLarge
	}
	return documenterrors.ErrInvalidUpload
}
