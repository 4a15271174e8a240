package middleware

import (
	"net/http"

	"go-hradmin/internal/domain"
	"go-hradmin/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// Authorizer decides whether a role may perform action on resource.
type Authorizer interface {
	Enforce(role domain.Role, resource, action string) (bool, error)
}

func RBACAuthorize(authz Authorizer, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := ActorFromContext(c)
		if actor.UserID == "" || !actor.Role.Valid() {
			response.Abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing auth context")
			return
		}

		allowed, err := authz.Enforce(actor.Role, resource, action)
		if err != nil {
			response.Abort(c, http.StatusInternalServerError, "INTERNAL_ERROR", "authorization check failed")
			return
		}
		if !allowed {
			response.Error(c, http.StatusForbidden, "FORBIDDEN",
				"You do not have permission to access this resource",
				gin.H{"required": resource + ":" + action},
			)
			c.Abort()
			return
		}
		c.Next()
	}
}
