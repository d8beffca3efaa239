package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/rodriguesaradhan-web/kozhigo/internal/core/port"
	"github.com/rodriguesaradhan-web/kozhigo/internal/infra/config"
	"github.com/rodriguesaradhan-web/kozhigo/internal/infra/database"
	kafkainfra "github.com/rodriguesaradhan-web/kozhigo/internal/infra/kafka"
	"github.com/rodriguesaradhan-web/kozhigo/internal/infra/logger"
	redisinfra "github.com/rodriguesaradhan-web/kozhigo/internal/infra/redis"
	"github.com/rodriguesaradhan-web/kozhigo/internal/infra/security"
	"github.com/rodriguesaradhan-web/kozhigo/internal/infra/storage"
	postgresrepo "github.com/rodriguesaradhan-web/kozhigo/internal/repository/postgres"
	redisrepo "github.com/rodriguesaradhan-web/kozhigo/internal/repository/redis"
	"github.com/rodriguesaradhan-web/kozhigo/internal/transport/http/middleware"
	"github.com/rodriguesaradhan-web/kozhigo/internal/transport/http/routes"
	"github.com/rodriguesaradhan-web/kozhigo/internal/usecase"
)

type Application struct {
	cfg    *config.AppConfig
	engine *gin.Engine
	logger *zap.Logger
	pool   *pgxpool.Pool
	redis  *redisinfra.Client
}

func New(ctx context.Context, cfg *config.AppConfig) (*Application, error) {
	log, err := logger.New(cfg.App.Env)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	pool, err := database.NewPostgresPool(ctx, cfg.Postgres, log)
	if err != nil {
		return nil, fmt.Errorf("init postgres: %w", err)
	}

	redisClient, err := redisinfra.NewClient(cfg.Redis, log)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("init redis: %w", err)
	}

	hasher := security.NewHasher(
		cfg.Argon2.Memory,
		cfg.Argon2.Iterations,
		cfg.Argon2.Parallelism,
		cfg.Argon2.SaltLength,
		cfg.Argon2.KeyLength,
	)

	tokenManager, err := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.AccessTokenTTL)
	if err != nil {
		_ = redisClient.Close()
		pool.Close()
		return nil, fmt.Errorf("init token manager: %w", err)
	}

	evidenceStore, err := storage.NewLocalEvidenceStore(cfg.Evidence.Directory, cfg.Evidence.PublicPath, log)
	if err != nil {
		_ = redisClient.Close()
		pool.Close()
		return nil, fmt.Errorf("init evidence store: %w", err)
	}

	repos := postgresrepo.NewRepositories(pool)

	var eventPublisher port.EventPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaProducer, err := kafkainfra.NewProducer(cfg.Kafka, log)
		if err != nil {
			log.Warn("failed to init kafka producer, using stub publisher", zap.Error(err))
			eventPublisher = kafkainfra.NewStubPublisher(log)
		} else {
			eventPublisher = kafkainfra.NewEventPublisher(kafkaProducer, cfg.App, log)
			log.Info("kafka event publisher initialized", zap.Strings("brokers", cfg.Kafka.Brokers))
		}
	} else {
		log.Info("kafka brokers not configured, using stub publisher")
		eventPublisher = kafkainfra.NewStubPublisher(log)
	}

	passwordValidator := security.DefaultPasswordValidator()

	rateLimitWindow := cfg.RateLimit.WindowDuration
	if rateLimitWindow <= 0 {
		rateLimitWindow = time.Minute
	}
	rateLimitStore := redisrepo.NewRateLimitRepository(redisClient.Client(), redisrepo.SlidingWindowConfig{
		KeyPrefix: cfg.Redis.RateLimitPrefix,
		TTL:       rateLimitWindow * 2,
	})
	rateLimiter := middleware.NewRateLimiter(rateLimitStore, log)

	authService := usecase.NewAuthService(repos.Accounts, hasher, tokenManager)
	registrationService := usecase.NewRegistrationService(repos.Accounts, repos.Applications, evidenceStore, eventPublisher, hasher, passwordValidator, log)
	upgradeService := usecase.NewUpgradeService(repos.Accounts, repos.Applications, evidenceStore, log)
	adjudicationService := usecase.NewAdjudicationService(repos.Accounts, repos.Applications, eventPublisher, log)
	cascadeExecutor := usecase.NewCascadeExecutor(repos.Rides, log)
	reportService := usecase.NewReportService(repos.Accounts, repos.Reports, repos.Rides, cascadeExecutor, eventPublisher, log)
	rideService := usecase.NewRideService(repos.Accounts, repos.Rides, log)
	adminService := usecase.NewAdminService(repos.Accounts, repos.Applications, repos.Reports, repos.Rides, hasher, log)

	if err := adminService.EnsureAdmin(ctx, cfg.Admin.Name, cfg.Admin.Email, cfg.Admin.Password); err != nil {
		_ = redisClient.Close()
		pool.Close()
		return nil, fmt.Errorf("seed admin account: %w", err)
	}

	engine := routes.Register(routes.Dependencies{
		Config:      cfg,
		Logger:      log,
		RateLimiter: rateLimiter,
		Database:    pool,
		Cache:       redisClient,
		EvidenceDir: evidenceStore.BaseDir(),
		Services: routes.ServiceSet{
			Auth:         authService,
			Registration: registrationService,
			Upgrades:     upgradeService,
			Rides:        rideService,
			Reports:      reportService,
			Adjudication: adjudicationService,
			Admin:        adminService,
		},
	})

	return &Application{
		cfg:    cfg,
		engine: engine,
		logger: log,
		pool:   pool,
		redis:  redisClient,
	}, nil
}

func (a *Application) Run(ctx context.Context) error {
	defer func() {
		_ = a.logger.Sync()
	}()
	defer func() {
		if a.pool != nil {
			a.pool.Close()
		}
	}()
	defer func() {
		if a.redis != nil {
			_ = a.redis.Close()
		}
	}()

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", a.cfg.App.Host, a.cfg.App.Port),
		Handler:           a.engine,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	a.logger.Info("starting trust service API",
		zap.String("env", a.cfg.App.Env),
		zap.String("address", srv.Addr),
	)

	serverErrCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- fmt.Errorf("run server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown server: %w", err)
		}
		return nil
	case err := <-serverErrCh:
		return err
	}
}
