package rbac_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go-hradmin/internal/domain"
	"go-hradmin/internal/middleware"
	"go-hradmin/internal/rbac"
	"go-hradmin/internal/rbac/infra"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newService(t *testing.T) rbac.Service {
	t.Helper()
	enforcer, err := infra.NewEnforcer()
	assert.NoError(t, err)
	svc, err := rbac.NewService(enforcer)
	assert.NoError(t, err)
	return svc
}

func TestService_Enforce(t *testing.T) {
	svc := newService(t)

	tests := []struct {
		name     string
		role     domain.Role
		resource string
		action   string
		want     bool
	}{
		{"employee creates vacation", domain.RoleEmployee, "vacation", "create", true},
		{"employee cannot approve", domain.RoleEmployee, "vacation", "approve", false},
		{"hr admin approves", domain.RoleHRAdmin, "vacation", "approve", true},
		{"hr admin inherits employee self view", domain.RoleHRAdmin, "employee", "read_self", true},
		{"hr admin cannot read audit", domain.RoleHRAdmin, "audit", "read", false},
		{"direction admin reads audit", domain.RoleDirectionAdmin, "audit", "read", true},
		{"direction admin inherits adjust", domain.RoleDirectionAdmin, "employee", "adjust", true},
		{"employee downloads documents", domain.RoleEmployee, "document", "download", true},
		{"employee cannot upload documents", domain.RoleEmployee, "document", "create", false},
		{"employee reads own remunerations", domain.RoleEmployee, "remuneration", "read_own", true},
		{"hr admin publishes remunerations", domain.RoleHRAdmin, "remuneration", "publish", true},
		{"direction admin inherits annul", domain.RoleDirectionAdmin, "remuneration", "annul", true},
		{"unknown action", domain.RoleDirectionAdmin, "vacation", "delete", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			allowed, err := svc.Enforce(tt.role, tt.resource, tt.action)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, allowed)
		})
	}
}

func TestService_Permissions(t *testing.T) {
	svc := newService(t)

	perms, err := svc.Permissions(domain.RoleDirectionAdmin)

	assert.NoError(t, err)
	assert.Contains(t, perms, rbac.Permission{Resource: "audit", Action: "read"})
	assert.Contains(t, perms, rbac.Permission{Resource: "vacation", Action: "create"})
}

func TestHandler_Mine(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := newService(t)

	t.Run("employee sees own permissions", func(t *testing.T) {
		r := gin.New()
		r.Use(func(c *gin.Context) {
			middleware.SetActor(c, domain.Actor{UserID: "u-1", Role: domain.RoleEmployee})
			c.Next()
		})
		rbac.RegisterRoutes(r.Group("/api/v1"), rbac.NewHandler(svc))

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/permissions/mine", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"role":"EMPLOYEE"`)
		assert.Contains(t, w.Body.String(), `"read_own"`)
		assert.NotContains(t, w.Body.String(), `"approve"`)
	})

	t.Run("unknown role", func(t *testing.T) {
		r := gin.New()
		r.Use(func(c *gin.Context) {
			middleware.SetActor(c, domain.Actor{UserID: "u-1", Role: "GUEST"})
			c.Next()
		})
		rbac.RegisterRoutes(r.Group("/api/v1"), rbac.NewHandler(svc))

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/permissions/mine", nil))

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
