package rbac

import (
	"net/http"

	"go-hradmin/internal/middleware"
	"go-hradmin/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("rbac.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.handler")
	}
	return &Handler{service: service, logger: l}
}

// Mine lists what the caller's role may do, so clients can hide actions up front.
func (h *Handler) Mine(c *gin.Context) {
	actor := middleware.ActorFromContext(c)
	if !actor.Role.Valid() {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Unknown role", nil)
		return
	}

	perms, err := h.service.Permissions(actor.Role)
	if err != nil {
		h.logger.Error("list permissions failed", zap.String("role", actor.Role.String()), zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	resp := PermissionsResponse{Role: actor.Role.String(), Permissions: make([]PermissionResponse, len(perms))}
	for i, p := range perms {
		resp.Permissions[i] = PermissionResponse{Resource: p.Resource, Action: p.Action}
	}
	response.Success(c, http.StatusOK, resp, nil)
}
