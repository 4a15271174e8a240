package remuneration

import (
	"errors"
	"net/http"

	"go-hradmin/internal/document"
	"go-hradmin/internal/middleware"
	remunerationerrors "go-hradmin/internal/remuneration/errors"
	"go-hradmin/internal/shared/apperror"
	"go-hradmin/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const payslipField = "file"

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("remuneration.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("remuneration.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("remuneration request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Publish(c *gin.Context) {
	employeeID := c.Param("id")
	actor := middleware.ActorFromContext(c)
	h.logger.Debug("http publish remuneration",
		zap.String("actor_id", actor.UserID),
		zap.String("employee_id", employeeID),
	)

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxPayslipSize+1<<20)

	var req PublishRemunerationRequest
	if err := c.ShouldBind(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.writeServiceError(c, remunerationerrors.ErrPayslipTooLarge)
			return
		}
		h.logger.Warn("http publish remuneration validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", apperror.MapValidationError(err).Error())
		return
	}

	payslip, closePayslip, err := document.FormFile(c, payslipField)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	defer closePayslip()

	resp, err := h.service.Publish(c.Request.Context(), actor, employeeID, req, payslip)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) Annul(c *gin.Context) {
	resp, err := h.service.Annul(c.Request.Context(), middleware.ActorFromContext(c), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ListMine(c *gin.Context) {
	resp, err := h.service.ListMine(c.Request.Context(), middleware.ActorFromContext(c))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) List(c *gin.Context) {
	var q ListRemunerationsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", apperror.MapValidationError(err).Error())
		return
	}

	resp, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
