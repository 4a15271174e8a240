package audit

import (
	"net/http"

	"go-hradmin/internal/shared/apperror"
	"go-hradmin/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("audit.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("audit.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) List(c *gin.Context) {
	var q ListAuditEventsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query", err.Error())
		return
	}

	rows, total, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		h.logger.Warn("list audit events failed", zap.Int("status", httpErr.Status), zap.String("code", httpErr.Code))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	page, pageSize := NormalizePage(q.Page, q.PageSize)
	meta := response.NewPaginationMeta(total, page, pageSize)
	response.Success(c, http.StatusOK, rows, &meta)
}
