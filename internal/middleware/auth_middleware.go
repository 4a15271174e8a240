package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"go-hradmin/internal/domain"
	"go-hradmin/internal/shared/contextutil"
	"go-hradmin/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	ctxUserID     = "user_id"
	ctxEmployeeID = "employee_id"
	ctxRole       = "role"
)

// AuthMiddleware validates the HS256 bearer token issued by the identity provider.
// Claims: sub (user id), employee_id (optional for pure admins), role.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found {
			tokenString = ""
		}
		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" || secret == "" {
			response.Abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "Token not found")
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			message := "Invalid token"
			if err != nil && strings.Contains(err.Error(), "expired") {
				message = "Token expired"
			}
			response.Abort(c, http.StatusUnauthorized, "INVALID_TOKEN", message)
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.Abort(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid token claims")
			return
		}

		userID, _ := claims["sub"].(string)
		if userID == "" {
			response.Abort(c, http.StatusUnauthorized, "INVALID_TOKEN", "Subject not found in token")
			return
		}

		rawRole, _ := claims["role"].(string)
		role, err := domain.ParseRole(rawRole)
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "INVALID_TOKEN", "Unknown role in token")
			return
		}

		employeeID, _ := claims["employee_id"].(string)

		c.Set(ctxUserID, userID)
		c.Set(ctxEmployeeID, employeeID)
		c.Set(ctxRole, role)

		c.Request = c.Request.WithContext(contextutil.WithUserID(c.Request.Context(), userID))
		c.Next()
	}
}

// ActorFromContext reads what AuthMiddleware stored.
func ActorFromContext(c *gin.Context) domain.Actor {
	actor := domain.Actor{
		UserID:     c.GetString(ctxUserID),
		EmployeeID: c.GetString(ctxEmployeeID),
	}
	if v, ok := c.Get(ctxRole); ok {
		switch r := v.(type) {
		case domain.Role:
			actor.Role = r
		case string:
			actor.Role = domain.Role(r)
		}
	}
	return actor
}

// SetActor is used by tests and internal callers to bypass token parsing.
func SetActor(c *gin.Context, actor domain.Actor) {
	c.Set(ctxUserID, actor.UserID)
	c.Set(ctxEmployeeID, actor.EmployeeID)
	c.Set(ctxRole, actor.Role)
}
