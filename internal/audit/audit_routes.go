package audit

import (
	"go-hradmin/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, authz middleware.Authorizer) {
	events := r.Group("/audit-events")
	{
		events.GET("", middleware.RBACAuthorize(authz, "audit", "read"), handler.List)
	}
}
