package vacation

import (
	"go-hradmin/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, authz middleware.Authorizer, rdb *redis.Client) {
	requests := r.Group("/vacation-requests")
	{
		requests.GET("/mine",
			middleware.RBACAuthorize(authz, "vacation", "read_own"),
			handler.ListMine,
		)

		requests.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(authz, "vacation", "read"),
			handler.List,
		)

		requests.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(authz, "vacation", "create"),
			middleware.Idempotency(rdb),
			handler.Create,
		)

		requests.PUT("/:id/approve",
			middleware.RBACAuthorize(authz, "vacation", "approve"),
			handler.Approve,
		)

		requests.PUT("/:id/reject",
			middleware.RBACAuthorize(authz, "vacation", "approve"),
			handler.Reject,
		)
	}
}
