package document

import (
	"go-hradmin/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, authz middleware.Authorizer) {
	documents := r.Group("/documents")
	{
		documents.GET("/mine", middleware.RBACAuthorize(authz, "document", "read_own"), handler.ListMine)
		documents.GET("/:id/download", middleware.RBACAuthorize(authz, "document", "download"), handler.Download)
		documents.DELETE("/:id", middleware.RBACAuthorize(authz, "document", "delete"), handler.Delete)
	}

	employees := r.Group("/employees/:id/documents")
	{
		employees.GET("", middleware.RBACAuthorize(authz, "document", "read"), handler.ListByEmployee)
		employees.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(authz, "document", "create"),
			handler.Upload,
		)
	}
}
