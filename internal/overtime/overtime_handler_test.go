package overtime_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-hradmin/internal/domain"
	"go-hradmin/internal/middleware"
	"go-hradmin/internal/overtime"
	overtimeerrors "go-hradmin/internal/overtime/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeOvertimeService struct {
	CreateFn   func(ctx context.Context, actor domain.Actor, req overtime.CreateOvertimeRequest) (overtime.OvertimeResponse, error)
	ApproveFn  func(ctx context.Context, actor domain.Actor, id string, comment *string) (overtime.OvertimeResponse, error)
	RejectFn   func(ctx context.Context, actor domain.Actor, id string, comment *string) (overtime.OvertimeResponse, error)
	ListMineFn func(ctx context.Context, actor domain.Actor) ([]overtime.OvertimeResponse, error)
	ListFn     func(ctx context.Context, q overtime.ListOvertimeQuery) ([]overtime.OvertimeResponse, error)
}

func (f *fakeOvertimeService) Create(ctx context.Context, actor domain.Actor, req overtime.CreateOvertimeRequest) (overtime.OvertimeResponse, error) {
	return f.CreateFn(ctx, actor, req)
}
func (f *fakeOvertimeService) Approve(ctx context.Context, actor domain.Actor, id string, comment *string) (overtime.OvertimeResponse, error) {
	return f.ApproveFn(ctx, actor, id, comment)
}
func (f *fakeOvertimeService) Reject(ctx context.Context, actor domain.Actor, id string, comment *string) (overtime.OvertimeResponse, error) {
	return f.RejectFn(ctx, actor, id, comment)
}
func (f *fakeOvertimeService) ListMine(ctx context.Context, actor domain.Actor) ([]overtime.OvertimeResponse, error) {
	return f.ListMineFn(ctx, actor)
}
func (f *fakeOvertimeService) List(ctx context.Context, q overtime.ListOvertimeQuery) ([]overtime.OvertimeResponse, error) {
	return f.ListFn(ctx, q)
}

func newRouter(svc overtime.Service, actor domain.Actor) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		middleware.SetActor(c, actor)
		c.Next()
	})
	h := overtime.NewHandler(svc)
	r.POST("/overtime", h.Create)
	r.GET("/overtime", h.List)
	r.PUT("/overtime/:id/approve", h.Approve)
	r.PUT("/overtime/:id/reject", h.Reject)
	return r
}

func TestOvertimeHandler(t *testing.T) {
	employeeActor := domain.Actor{UserID: "u-1", Role: domain.RoleEmployee}
	admin := domain.Actor{UserID: "hr-1", Role: domain.RoleHRAdmin}

	t.Run("create success", func(t *testing.T) {
		svc := &fakeOvertimeService{
			CreateFn: func(ctx context.Context, actor domain.Actor, req overtime.CreateOvertimeRequest) (overtime.OvertimeResponse, error) {
				assert.Equal(t, "u-1", actor.UserID)
				assert.Equal(t, "1.5", req.Hours)
				return overtime.OvertimeResponse{ID: "ot-1", Status: "PENDING"}, nil
			},
		}
		req := httptest.NewRequest(http.MethodPost, "/overtime", strings.NewReader(`{"date":"2024-03-02","hours":"1.5","reason":"deploy"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		newRouter(svc, employeeActor).ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "ot-1")
	})

	t.Run("create missing reason", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/overtime", strings.NewReader(`{"date":"2024-03-02","hours":"1.5"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		newRouter(&fakeOvertimeService{}, employeeActor).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("approve already resolved", func(t *testing.T) {
		svc := &fakeOvertimeService{
			ApproveFn: func(ctx context.Context, actor domain.Actor, id string, comment *string) (overtime.OvertimeResponse, error) {
				assert.Equal(t, "ot-1", id)
				assert.Nil(t, comment)
				return overtime.OvertimeResponse{}, overtimeerrors.ErrAlreadyResolved
			},
		}
		req := httptest.NewRequest(http.MethodPut, "/overtime/ot-1/approve", nil)
		w := httptest.NewRecorder()
		newRouter(svc, admin).ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "ALREADY_RESOLVED")
	})

	t.Run("reject with comment", func(t *testing.T) {
		svc := &fakeOvertimeService{
			RejectFn: func(ctx context.Context, actor domain.Actor, id string, comment *string) (overtime.OvertimeResponse, error) {
				assert.Equal(t, "not planned", *comment)
				return overtime.OvertimeResponse{ID: id, Status: "REJECTED"}, nil
			},
		}
		req := httptest.NewRequest(http.MethodPut, "/overtime/ot-2/reject", strings.NewReader(`{"comment":"not planned"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		newRouter(svc, admin).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "REJECTED")
	})

	t.Run("list bad status", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/overtime?status=DONE", nil)
		w := httptest.NewRecorder()
		newRouter(&fakeOvertimeService{}, admin).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
