package employee

import (
	"go-hradmin/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, authz middleware.Authorizer) {
	employees := r.Group("/employees")
	{
		employees.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(authz, "employee", "read"),
			handler.GetAll,
		)

		employees.GET("/options",
			middleware.RateLimitByUser(5, 20),
			middleware.RBACAuthorize(authz, "employee", "read"),
			handler.GetOptions,
		)

		employees.GET("/me",
			middleware.RBACAuthorize(authz, "employee", "read_self"),
			handler.GetMe,
		)

		employees.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(authz, "employee", "read"),
			handler.GetByID,
		)

		employees.GET("/:id/movements",
			middleware.RBACAuthorize(authz, "employee", "read"),
			handler.ListMovements,
		)

		employees.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(authz, "employee", "create"),
			handler.Create,
		)

		employees.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(authz, "employee", "update"),
			handler.Update,
		)

		employees.PUT("/:id/vacation",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(authz, "employee", "adjust"),
			handler.AdjustVacation,
		)
	}
}
