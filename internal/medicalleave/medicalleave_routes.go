package medicalleave

import (
	"go-hradmin/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, authz middleware.Authorizer) {
	r.GET("/medical-leaves/mine",
		middleware.RBACAuthorize(authz, "medical_leave", "read_own"),
		handler.ListMine,
	)

	employees := r.Group("/employees/:id/medical-leaves")
	{
		employees.GET("",
			middleware.RBACAuthorize(authz, "medical_leave", "read"),
			handler.ListByEmployee,
		)
		employees.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(authz, "medical_leave", "create"),
			handler.Record,
		)
	}
}
