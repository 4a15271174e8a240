package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-hradmin/internal/domain"
	"go-hradmin/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	assert.NoError(t, err)
	return token
}

func newAuthRouter(captured *domain.Actor) *gin.Engine {
	r := gin.New()
	r.GET("/me", middleware.AuthMiddleware(testSecret), func(c *gin.Context) {
		*captured = middleware.ActorFromContext(c)
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	t.Run("success - claims become the actor", func(t *testing.T) {
		var actor domain.Actor
		r := newAuthRouter(&actor)
		token := signToken(t, jwt.MapClaims{
			"sub":         "user-1",
			"employee_id": "emp-1",
			"role":        "HR_ADMIN",
			"exp":         time.Now().Add(time.Hour).Unix(),
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, domain.Actor{UserID: "user-1", EmployeeID: "emp-1", Role: domain.RoleHRAdmin}, actor)
	})

	t.Run("negative - missing token", func(t *testing.T) {
		var actor domain.Actor
		w := httptest.NewRecorder()
		newAuthRouter(&actor).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("negative - expired token", func(t *testing.T) {
		var actor domain.Actor
		token := signToken(t, jwt.MapClaims{
			"sub":  "user-1",
			"role": "EMPLOYEE",
			"exp":  time.Now().Add(-time.Minute).Unix(),
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		newAuthRouter(&actor).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Token expired")
	})

	t.Run("negative - unknown role", func(t *testing.T) {
		var actor domain.Actor
		token := signToken(t, jwt.MapClaims{"sub": "user-1", "role": "ROOT"})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		newAuthRouter(&actor).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

type fakeAuthorizer struct {
	allowed bool
	err     error
}

func (f fakeAuthorizer) Enforce(domain.Role, string, string) (bool, error) {
	return f.allowed, f.err
}

func TestRBACAuthorize(t *testing.T) {
	run := func(authz middleware.Authorizer, actor *domain.Actor) *httptest.ResponseRecorder {
		r := gin.New()
		r.GET("/x", func(c *gin.Context) {
			if actor != nil {
				middleware.SetActor(c, *actor)
			}
			c.Next()
		}, middleware.RBACAuthorize(authz, "vacation", "approve"), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
		return w
	}
	admin := &domain.Actor{UserID: "u", Role: domain.RoleHRAdmin}

	assert.Equal(t, http.StatusOK, run(fakeAuthorizer{allowed: true}, admin).Code)
	assert.Equal(t, http.StatusForbidden, run(fakeAuthorizer{allowed: false}, admin).Code)
	assert.Equal(t, http.StatusInternalServerError, run(fakeAuthorizer{err: errors.New("boom")}, admin).Code)
	assert.Equal(t, http.StatusUnauthorized, run(fakeAuthorizer{allowed: true}, nil).Code)
}

func TestIdempotency(t *testing.T) {
	t.Run("negative - duplicate while processing", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		key := "idemp:/v:user-1:abc"
		mock.ExpectGet(key).RedisNil()
		mock.ExpectSetNX(key+":lock", "locked", 30*time.Second).SetVal(false)

		r := gin.New()
		r.POST("/v", func(c *gin.Context) {
			middleware.SetActor(c, domain.Actor{UserID: "user-1", Role: domain.RoleEmployee})
			c.Next()
		}, middleware.Idempotency(rdb), func(c *gin.Context) {
			c.Status(http.StatusCreated)
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v", nil)
		req.Header.Set(middleware.HeaderIdempotencyKey, "abc")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success - cached result is replayed", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		key := "idemp:/v:user-1:abc"
		mock.ExpectGet(key).SetVal(`{"id":"vac-1"}`)

		r := gin.New()
		r.POST("/v", func(c *gin.Context) {
			middleware.SetActor(c, domain.Actor{UserID: "user-1", Role: domain.RoleEmployee})
			c.Next()
		}, middleware.Idempotency(rdb), func(c *gin.Context) {
			t.Fatal("handler must not run on replay")
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v", nil)
		req.Header.Set(middleware.HeaderIdempotencyKey, "abc")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "vac-1")
	})
}

func TestRateLimitByIP(t *testing.T) {
	r := gin.New()
	r.GET("/x", middleware.RateLimitByIP(1, 1), func(c *gin.Context) { c.Status(http.StatusOK) })

	first := httptest.NewRecorder()
	r.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/x", nil))
	second := httptest.NewRecorder()
	r.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}
