package app

import (
	"database/sql"
	"net/http"

	"go-hradmin/internal/audit"
	"go-hradmin/internal/document"
	"go-hradmin/internal/employee"
	"go-hradmin/internal/ledger"
	"go-hradmin/internal/medicalleave"
	"go-hradmin/internal/messaging/kafka"
	"go-hradmin/internal/middleware"
	"go-hradmin/internal/overtime"
	"go-hradmin/internal/rbac"
	"go-hradmin/internal/rbac/infra"
	"go-hradmin/internal/remuneration"
	"go-hradmin/internal/shared/config"
	"go-hradmin/internal/shared/counter"
	"go-hradmin/internal/storage"
	"go-hradmin/internal/vacation"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	cfg *config.Config,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	logger *zap.Logger,
) error {
	// --- Repositories ---
	auditRepo := audit.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	documentRepo := document.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	ledgerRepo := ledger.NewRepository(gormDB)
	medicalLeaveRepo := medicalleave.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	overtimeRepo := overtime.NewRepository(gormDB)
	remunerationRepo := remuneration.NewRepository(gormDB)
	vacationRepo := vacation.NewRepository(gormDB)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService, err := rbac.NewService(enforcer, logger)
	if err != nil {
		return err
	}

	store, err := storage.NewLocalStore(cfg.UploadsPath, logger)
	if err != nil {
		return err
	}

	// --- Services ---
	recorder := audit.NewRecorder(auditRepo, outboxRepo)
	auditService := audit.NewService(auditRepo, logger)
	documentService := document.NewService(document.Deps{
		DB:        db,
		Repo:      documentRepo,
		Employees: employeeRepo,
		Audit:     recorder,
		Store:     store,
	}, logger)
	remunerationService := remuneration.NewService(remuneration.Deps{
		DB:        db,
		Repo:      remunerationRepo,
		Documents: documentRepo,
		Employees: employeeRepo,
		Audit:     recorder,
		Store:     store,
	}, logger)
	employeeService := employee.NewService(employee.Deps{
		DB:              db,
		Repo:            employeeRepo,
		Ledger:          ledgerRepo,
		Audit:           recorder,
		Counter:         counterRepo,
		Pending:         vacationRepo,
		PendingOvertime: overtimeRepo,
		Remunerations:   remunerationService,
		Redis:           rdb,
	}, logger)
	vacationService := vacation.NewService(vacation.Deps{
		DB:        db,
		Repo:      vacationRepo,
		Employees: employeeRepo,
		Ledger:    ledgerRepo,
		Audit:     recorder,
		Counter:   counterRepo,
	}, logger)
	medicalLeaveService := medicalleave.NewService(medicalleave.Deps{
		DB:        db,
		Repo:      medicalLeaveRepo,
		Vacations: vacationRepo,
		Employees: employeeRepo,
		Audit:     recorder,
		Store:     store,
	}, logger)
	overtimeService := overtime.NewService(overtime.Deps{
		DB:        db,
		Repo:      overtimeRepo,
		Employees: employeeRepo,
		Audit:     recorder,
	}, logger)

	// --- Handlers ---
	auditHandler := audit.NewHandler(auditService, logger)
	documentHandler := document.NewHandler(documentService, logger)
	employeeHandler := employee.NewHandler(employeeService, logger)
	medicalLeaveHandler := medicalleave.NewHandler(medicalLeaveService, logger)
	overtimeHandler := overtime.NewHandler(overtimeService, logger)
	rbacHandler := rbac.NewHandler(rbacService, logger)
	remunerationHandler := remuneration.NewHandler(remunerationService, logger)
	vacationHandler := vacation.NewHandler(vacationService, rdb, logger)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	api.Use(
		middleware.AuthMiddleware(cfg.JWTSecret),
		middleware.ContextLogger(logger),
		middleware.RateLimitByUser(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst),
	)
	{
		audit.RegisterRoutes(api, auditHandler, rbacService)
		document.RegisterRoutes(api, documentHandler, rbacService)
		employee.RegisterRoutes(api, employeeHandler, rbacService)
		medicalleave.RegisterRoutes(api, medicalLeaveHandler, rbacService)
		overtime.RegisterRoutes(api, overtimeHandler, rbacService)
		rbac.RegisterRoutes(api, rbacHandler)
		remuneration.RegisterRoutes(api, remunerationHandler, rbacService)
		vacation.RegisterRoutes(api, vacationHandler, rbacService, rdb)
	}

	return nil
}
