package medicalleave

import (
	"errors"
	"net/http"

	medicalleaveerrors "go-hradmin/internal/medicalleave/errors"
	"go-hradmin/internal/middleware"
	"go-hradmin/internal/shared/apperror"
	"go-hradmin/internal/shared/response"
	"go-hradmin/internal/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const documentField = "document"

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("medicalleave.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("medicalleave.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("medical leave request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Record(c *gin.Context) {
	employeeID := c.Param("id")
	actor := middleware.ActorFromContext(c)
	h.logger.Debug("http record medical leave",
		zap.String("actor_id", actor.UserID),
		zap.String("employee_id", employeeID),
	)

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxDocumentSize+1<<20)

	var req RecordMedicalLeaveRequest
	if err := c.ShouldBind(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.writeServiceError(c, medicalleaveerrors.ErrDocumentTooLarge)
			return
		}
		h.logger.Warn("http record medical leave validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", apperror.MapValidationError(err).Error())
		return
	}

	var doc *Document
	header, err := c.FormFile(documentField)
	switch {
	case err == nil:
		file, err := header.Open()
		if err != nil {
			h.writeServiceError(c, err)
			return
		}
		defer file.Close()

		contentType, err := storage.DetectContentType(file)
		if err != nil {
			h.writeServiceError(c, err)
			return
		}
		doc = &Document{
			Filename:    header.Filename,
			ContentType: contentType,
			Size:        header.Size,
			Body:        file,
		}
	case errors.Is(err, http.ErrMissingFile):
	default:
		h.logger.Warn("http record medical leave document unreadable", zap.Error(err))
		h.writeServiceError(c, documentError(err))
		return
	}

	resp, err := h.service.Record(c.Request.Context(), actor, employeeID, req, doc)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) ListMine(c *gin.Context) {
	resp, err := h.service.ListMine(c.Request.Context(), middleware.ActorFromContext(c))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ListByEmployee(c *gin.Context) {
	resp, err := h.service.ListByEmployee(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func documentError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return medicalleaveerrors.ErrDocumentTooLarge
	}
	return medicalleaveerrors.ErrInvalidDocument
}
