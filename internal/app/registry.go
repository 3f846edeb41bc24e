package app

import (
	"time"

	"leave-tracker/internal/auth"
	"leave-tracker/internal/config"
	"leave-tracker/internal/employee"
	"leave-tracker/internal/leave"
	"leave-tracker/internal/messaging/kafka/producer"
	"leave-tracker/internal/rbac"
	"leave-tracker/internal/rbac/infra"
	"leave-tracker/internal/shared/apperror"
	"leave-tracker/internal/shared/response"
	"leave-tracker/internal/stats"
	"leave-tracker/internal/submission"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const retryBackoff = 2 * time.Second

func registerModules(router *gin.Engine, cfg *config.Config, a *App) error {
	logger := zap.L()

	// --- Repositories ---
	leaveRepo := leave.NewRepository(a.Store, leave.WithRepositoryLogger(logger))
	authRepo := auth.NewRepository(a.Store)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbac.NewStaticRepository(), enforcer, logger)
	if err := rbacService.LoadPolicy(); err != nil {
		return err
	}

	// --- Services ---
	var publisher leave.EventPublisher
	if a.Kafka != nil {
		publisher = producer.NewLeaveEventPublisher(a.Kafka)
	}
	leaveService := leave.NewServiceWithPublisher(leaveRepo, publisher, logger)
	employeeService := employee.NewService(leaveRepo, a.Redis, logger)
	submissionService := submission.NewService(leaveService, logger)
	authService := auth.NewService(
		authRepo,
		auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL),
		leaveService,
		auth.WithLogger(logger),
	)

	// --- Handlers ---
	leaveHandler := leave.NewHandlerWithRedis(leaveService, a.Redis, logger)
	employeeHandler := employee.NewHandler(employeeService)
	submissionHandler := submission.NewHandler(submissionService, logger)
	statsHandler := stats.NewHandler(leaveRepo)
	authHandler := auth.NewHandler(authService, logger)

	// --- Routes Registration ---
	router.GET("/healthz", healthHandler(a.Store))
	router.NoRoute(func(c *gin.Context) {
		httpErr := apperror.ToHTTP(apperror.ErrNotFound)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
	})

	api := router.Group("/api")
	{
		auth.RegisterRoutes(api, authHandler, rbacService, auth.RateLimit{
			PerSecond:        rate.Limit(cfg.AuthRateLimitRPS),
			Burst:            cfg.AuthRateBurst,
			SessionPerSecond: rate.Limit(cfg.SessionRateRPS),
			SessionBurst:     cfg.SessionRateBurst,
		})
		employee.RegisterRoutes(api, employeeHandler)
		leave.RegisterRoutes(api, leaveHandler, a.Redis)
		stats.RegisterRoutes(api, statsHandler)
		submission.RegisterRoutes(api, submissionHandler)
	}

	return nil
}
