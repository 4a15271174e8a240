package remuneration

import (
	"go-hradmin/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, authz middleware.Authorizer) {
	remunerations := r.Group("/remunerations")
	{
		remunerations.GET("/mine",
			middleware.RBACAuthorize(authz, "remuneration", "read_own"),
			handler.ListMine,
		)

		remunerations.GET("",
			middleware.RBACAuthorize(authz, "remuneration", "read"),
			handler.List,
		)

		remunerations.PUT("/:id/annul",
			middleware.RBACAuthorize(authz, "remuneration", "annul"),
			handler.Annul,
		)
	}

	r.POST("/employees/:id/remunerations",
		middleware.RateLimitByUser(0.5, 2),
		middleware.RBACAuthorize(authz, "remuneration", "publish"),
		handler.Publish,
	)
}
