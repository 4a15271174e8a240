package overtime

import (
	"go-hradmin/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, authz middleware.Authorizer) {
	overtime := r.Group("/overtime")
	{
		overtime.GET("/mine", middleware.RBACAuthorize(authz, "overtime", "read_own"), handler.ListMine)
		overtime.GET("", middleware.RBACAuthorize(authz, "overtime", "read"), handler.List)
		overtime.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(authz, "overtime", "create"),
			handler.Create,
		)
		overtime.PUT("/:id/approve", middleware.RBACAuthorize(authz, "overtime", "approve"), handler.Approve)
		overtime.PUT("/:id/reject", middleware.RBACAuthorize(authz, "overtime", "approve"), handler.Reject)
	}
}
