package vacation_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go-hradmin/internal/domain"
	"go-hradmin/internal/middleware"
	"go-hradmin/internal/vacation"
	vacationerrors "go-hradmin/internal/vacation/errors"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeVacationService struct {
	CreateFn   func(ctx context.Context, actor domain.Actor, req vacation.CreateVacationRequest) (vacation.VacationRequestResponse, error)
	ApproveFn  func(ctx context.Context, actor domain.Actor, id string, comment *string) (vacation.ApproveVacationResponse, error)
	RejectFn   func(ctx context.Context, actor domain.Actor, id string, comment *string) (vacation.VacationRequestResponse, error)
	ListMineFn func(ctx context.Context, actor domain.Actor) ([]vacation.VacationRequestResponse, error)
	ListFn     func(ctx context.Context, q vacation.ListVacationRequestsQuery) ([]vacation.VacationRequestResponse, error)
}

func (f *fakeVacationService) Create(ctx context.Context, actor domain.Actor, req vacation.CreateVacationRequest) (vacation.VacationRequestResponse, error) {
	return f.CreateFn(ctx, actor, req)
}
func (f *fakeVacationService) Approve(ctx context.Context, actor domain.Actor, id string, comment *string) (vacation.ApproveVacationResponse, error) {
	return f.ApproveFn(ctx, actor, id, comment)
}
func (f *fakeVacationService) Reject(ctx context.Context, actor domain.Actor, id string, comment *string) (vacation.VacationRequestResponse, error) {
	return f.RejectFn(ctx, actor, id, comment)
}
func (f *fakeVacationService) ListMine(ctx context.Context, actor domain.Actor) ([]vacation.VacationRequestResponse, error) {
	return f.ListMineFn(ctx, actor)
}
func (f *fakeVacationService) List(ctx context.Context, q vacation.ListVacationRequestsQuery) ([]vacation.VacationRequestResponse, error) {
	return f.ListFn(ctx, q)
}

func setupRouter(actor domain.Actor) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		middleware.SetActor(c, actor)
		c.Next()
	})
	return r
}

func TestVacationHandler_Create(t *testing.T) {
	employeeActor := domain.Actor{UserID: "u-1", EmployeeID: uuid.NewString(), Role: domain.RoleEmployee}

	t.Run("success", func(t *testing.T) {
		svc := &fakeVacationService{
			CreateFn: func(ctx context.Context, actor domain.Actor, req vacation.CreateVacationRequest) (vacation.VacationRequestResponse, error) {
				assert.Equal(t, employeeActor, actor)
				assert.Equal(t, "2024-03-01", req.StartDate)
				return vacation.VacationRequestResponse{ID: uuid.NewString(), Days: 5, Status: "PENDING"}, nil
			},
		}
		r := setupRouter(employeeActor)
		r.POST("/vacation-requests", vacation.NewHandler(svc, nil).Create)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/vacation-requests",
			strings.NewReader(`{"start_date":"2024-03-01","end_date":"2024-03-05"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"days":5`)
	})

	t.Run("insufficient balance maps to 422", func(t *testing.T) {
		svc := &fakeVacationService{
			CreateFn: func(ctx context.Context, actor domain.Actor, req vacation.CreateVacationRequest) (vacation.VacationRequestResponse, error) {
				return vacation.VacationRequestResponse{}, vacationerrors.ErrInsufficientBalance
			},
		}
		r := setupRouter(employeeActor)
		r.POST("/vacation-requests", vacation.NewHandler(svc, nil).Create)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/vacation-requests",
			strings.NewReader(`{"start_date":"2024-03-01","end_date":"2024-03-05"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "INSUFFICIENT_BALANCE")
	})

	t.Run("invalid kind", func(t *testing.T) {
		r := setupRouter(employeeActor)
		r.POST("/vacation-requests", vacation.NewHandler(&fakeVacationService{}, nil).Create)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/vacation-requests",
			strings.NewReader(`{"kind":"SABBATICAL","start_date":"2024-03-01","end_date":"2024-03-05"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("idempotent result is stored", func(t *testing.T) {
		created := vacation.VacationRequestResponse{ID: "r-1", Days: 1}
		raw, _ := json.Marshal(created)

		rdb, mock := redismock.NewClientMock()
		mock.ExpectSet("idemp:/vacation-requests:u-1:abc", raw, 24*time.Hour).SetVal("OK")
		mock.ExpectDel("idemp:/vacation-requests:u-1:abc:lock").SetVal(1)

		svc := &fakeVacationService{
			CreateFn: func(ctx context.Context, actor domain.Actor, req vacation.CreateVacationRequest) (vacation.VacationRequestResponse, error) {
				return created, nil
			},
		}
		r := setupRouter(employeeActor)
		r.POST("/vacation-requests", func(c *gin.Context) {
			c.Set("idempotency_cache_key", "idemp:/vacation-requests:u-1:abc")
			c.Set("idempotency_lock_key", "idemp:/vacation-requests:u-1:abc:lock")
		}, vacation.NewHandler(svc, rdb).Create)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/vacation-requests",
			strings.NewReader(`{"start_date":"2024-03-01","end_date":"2024-03-01"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestVacationHandler_Approve(t *testing.T) {
	t.Run("success without body", func(t *testing.T) {
		id := uuid.NewString()
		svc := &fakeVacationService{
			ApproveFn: func(ctx context.Context, actor domain.Actor, got string, comment *string) (vacation.ApproveVacationResponse, error) {
				assert.Equal(t, id, got)
				assert.Nil(t, comment)
				assert.Equal(t, domain.RoleDirectionAdmin, actor.Role)
				return vacation.ApproveVacationResponse{Request: vacation.VacationRequestResponse{ID: got, Status: "APPROVED"}}, nil
			},
		}
		r := setupRouter(domain.Actor{UserID: "dir-1", Role: domain.RoleDirectionAdmin})
		r.PUT("/vacation-requests/:id/approve", vacation.NewHandler(svc, nil).Approve)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/vacation-requests/"+id+"/approve", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "APPROVED")
	})

	t.Run("already resolved maps to 409", func(t *testing.T) {
		svc := &fakeVacationService{
			ApproveFn: func(ctx context.Context, actor domain.Actor, id string, comment *string) (vacation.ApproveVacationResponse, error) {
				assert.Equal(t, "ok", *comment)
				return vacation.ApproveVacationResponse{}, vacationerrors.ErrAlreadyResolved
			},
		}
		r := setupRouter(domain.Actor{UserID: "hr-1", Role: domain.RoleHRAdmin})
		r.PUT("/vacation-requests/:id/approve", vacation.NewHandler(svc, nil).Approve)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/vacation-requests/"+uuid.NewString()+"/approve", strings.NewReader(`{"comment":"ok"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "ALREADY_RESOLVED")
	})
}

func TestVacationHandler_Reject(t *testing.T) {
	svc := &fakeVacationService{
		RejectFn: func(ctx context.Context, actor domain.Actor, id string, comment *string) (vacation.VacationRequestResponse, error) {
			return vacation.VacationRequestResponse{}, vacationerrors.ErrVacationRequestNotFound
		},
	}
	r := setupRouter(domain.Actor{UserID: "hr-1", Role: domain.RoleHRAdmin})
	r.PUT("/vacation-requests/:id/reject", vacation.NewHandler(svc, nil).Reject)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/vacation-requests/"+uuid.NewString()+"/reject", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestVacationHandler_List(t *testing.T) {
	t.Run("invalid status", func(t *testing.T) {
		r := setupRouter(domain.Actor{UserID: "hr-1", Role: domain.RoleHRAdmin})
		r.GET("/vacation-requests", vacation.NewHandler(&fakeVacationService{}, nil).List)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/vacation-requests?status=DONE", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("success", func(t *testing.T) {
		svc := &fakeVacationService{
			ListFn: func(ctx context.Context, q vacation.ListVacationRequestsQuery) ([]vacation.VacationRequestResponse, error) {
				assert.Equal(t, "PENDING", q.Status)
				return []vacation.VacationRequestResponse{{ID: "1"}}, nil
			},
		}
		r := setupRouter(domain.Actor{UserID: "hr-1", Role: domain.RoleHRAdmin})
		r.GET("/vacation-requests", vacation.NewHandler(svc, nil).List)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/vacation-requests?status=PENDING", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
