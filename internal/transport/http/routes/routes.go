package routes

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/rodriguesaradhan-web/kozhigo/internal/infra/config"
	"github.com/rodriguesaradhan-web/kozhigo/internal/transport/http/handlers"
	"github.com/rodriguesaradhan-web/kozhigo/internal/transport/http/middleware"
	"github.com/rodriguesaradhan-web/kozhigo/internal/usecase"
)

// ServiceSet groups the services the HTTP layer depends on.
type ServiceSet struct {
	Auth         *usecase.AuthService
	Registration *usecase.RegistrationService
	Upgrades     *usecase.UpgradeService
	Rides        *usecase.RideService
	Reports      *usecase.ReportService
	Adjudication *usecase.AdjudicationService
	Admin        *usecase.AdminService
}

// Dependencies encapsulates the objects required to register routes.
type Dependencies struct {
	Config      *config.AppConfig
	Logger      *zap.Logger
	RateLimiter *middleware.RateLimiter
	Services    ServiceSet
	Database    DatabaseChecker
	Cache       CacheChecker
	EvidenceDir string
}

// DatabaseChecker exposes readiness behaviour for database connections.
type DatabaseChecker interface {
	Ping(ctx context.Context) error
}

// CacheChecker exposes readiness behaviour for cache backends.
type CacheChecker interface {
	HealthCheck(ctx context.Context) error
}

// Register configures the Gin engine with routes and middleware.
func Register(deps Dependencies) *gin.Engine {
	if deps.Config.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.EnrichContext())
	r.Use(middleware.RequestID())
	r.Use(middleware.AccessLog(deps.Logger))

	if metrics, err := middleware.NewHTTPMetrics(middleware.HTTPMetricsOptions{}); err == nil {
		r.Use(metrics.Handler())
	} else if deps.Logger != nil {
		deps.Logger.Warn("http metrics disabled", zap.Error(err))
	}

	authMiddleware := middleware.RequireAuth(deps.Services.Auth)
	adminOnly := middleware.RequireRole("admin")

	healthOptions := make([]handlers.HealthOption, 0, 2)
	if deps.Database != nil {
		healthOptions = append(healthOptions, handlers.WithReadinessCheck("database", deps.Database.Ping))
	}
	if deps.Cache != nil {
		healthOptions = append(healthOptions, handlers.WithReadinessCheck("redis", deps.Cache.HealthCheck))
	}

	healthHandler := handlers.NewHealthHandler(healthOptions...)

	r.GET("/healthz", healthHandler.Status)
	r.GET("/readyz", healthHandler.Readiness)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if deps.EvidenceDir != "" && deps.Config.Evidence.PublicPath != "" {
		r.Static(deps.Config.Evidence.PublicPath, deps.EvidenceDir)
	}

	api := r.Group("/api")
	{
		authGroup := api.Group("/auth")

		authHandler := handlers.NewAuthHandler(deps.Services.Auth)
		authHandler.RegisterRoutes(authGroup, buildRateLimitMiddlewares(deps, "auth_login_ip", deps.Config.RateLimit.LoginMaxAttempts)...)

		registrationHandler := handlers.NewRegistrationHandler(deps.Services.Registration)
		registrationHandler.RegisterRoutes(authGroup, buildRateLimitMiddlewares(deps, "auth_register_ip", deps.Config.RateLimit.RegisterMaxAttempts)...)

		accountGroup := api.Group("/account")
		accountGroup.Use(authMiddleware)
		upgradeHandler := handlers.NewUpgradeHandler(deps.Services.Upgrades)
		upgradeHandler.RegisterRoutes(accountGroup)

		ridesGroup := api.Group("/rides")
		ridesGroup.Use(authMiddleware)
		rideHandler := handlers.NewRideHandler(deps.Services.Rides)
		rideHandler.RegisterRoutes(ridesGroup)

		reportsGroup := api.Group("/reports")
		reportsGroup.Use(authMiddleware)
		reportHandler := handlers.NewReportHandler(deps.Services.Reports)
		reportHandler.RegisterRoutes(reportsGroup, buildRateLimitMiddlewares(deps, "report_file_ip", deps.Config.RateLimit.ReportMaxAttempts)...)

		adminGroup := api.Group("/admin")
		adminGroup.Use(authMiddleware, adminOnly)
		adminHandler := handlers.NewAdminHandler(deps.Services.Admin, deps.Services.Adjudication, deps.Services.Reports)
		adminHandler.RegisterRoutes(adminGroup)
	}

	return r
}

func buildRateLimitMiddlewares(deps Dependencies, name string, limit int) []gin.HandlerFunc {
	if deps.RateLimiter == nil || deps.Config == nil || limit <= 0 {
		return nil
	}

	window := deps.Config.RateLimit.WindowDuration
	if window <= 0 {
		window = time.Minute
	}

	rule := middleware.RateLimitRule{
		Name:       name,
		Limit:      limit,
		Window:     window,
		Identifier: middleware.ClientIPIdentifier(),
	}

	return []gin.HandlerFunc{deps.RateLimiter.RateLimit(rule)}
}
