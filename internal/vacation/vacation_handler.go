package vacation

import (
	"net/http"

	"go-hradmin/internal/middleware"
	"go-hradmin/internal/shared/apperror"
	"go-hradmin/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	rdb     *redis.Client
	logger  *zap.Logger
}

// NewHandler builds the vacation handler. rdb backs Idempotency-Key replay and may be nil.
func NewHandler(service Service, rdb *redis.Client, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("vacation.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("vacation.handler")
	}
	return &Handler{service: service, rdb: rdb, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("vacation request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Create(c *gin.Context) {
	actor := middleware.ActorFromContext(c)
	h.logger.Debug("http create vacation request", zap.String("actor_id", actor.UserID))

	var req CreateVacationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http create vacation request validation failed", zap.Error(err))
		middleware.CompleteIdempotency(c, h.rdb, nil)
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", apperror.MapValidationError(err).Error())
		return
	}

	resp, err := h.service.Create(c.Request.Context(), actor, req)
	if err != nil {
		middleware.CompleteIdempotency(c, h.rdb, nil)
		h.writeServiceError(c, err)
		return
	}

	middleware.CompleteIdempotency(c, h.rdb, resp)
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) Approve(c *gin.Context) {
	id := c.Param("id")
	comment, ok := h.bindComment(c)
	if !ok {
		return
	}

	resp, err := h.service.Approve(c.Request.Context(), middleware.ActorFromContext(c), id, comment)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Reject(c *gin.Context) {
	id := c.Param("id")
	comment, ok := h.bindComment(c)
	if !ok {
		return
	}

	resp, err := h.service.Reject(c.Request.Context(), middleware.ActorFromContext(c), id, comment)
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
	var q ListVacationRequestsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query", apperror.MapValidationError(err).Error())
		return
	}

	resp, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

// bindComment accepts an empty body; resolving without a comment is allowed.
func (h *Handler) bindComment(c *gin.Context) (*string, bool) {
	if c.Request.ContentLength == 0 {
		return nil, true
	}
	var req ResolveVacationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http resolve vacation request validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", apperror.MapValidationError(err).Error())
		return nil, false
	}
	return req.Comment, true
}
