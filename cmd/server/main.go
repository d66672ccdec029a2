package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/studentos/backend/api/handler"
	"github.com/studentos/backend/internal/config"
	"github.com/studentos/backend/internal/identity"
	"github.com/studentos/backend/internal/infrastructure/analytics"
	"github.com/studentos/backend/internal/infrastructure/inbox"
	"github.com/studentos/backend/internal/infrastructure/monitor"
	pgInfra "github.com/studentos/backend/internal/infrastructure/postgres"
	redisInfra "github.com/studentos/backend/internal/infrastructure/redis"
	"github.com/studentos/backend/internal/lifecycle"
	"github.com/studentos/backend/internal/middleware"
	"github.com/studentos/backend/internal/router"
	"github.com/studentos/backend/internal/services"
	"github.com/studentos/backend/pkg/httpcontext"
	"github.com/studentos/backend/pkg/logger"
	"github.com/studentos/backend/pkg/secretbox"
	pgRepo "github.com/studentos/backend/repository/postgres"
	candidateUC "github.com/studentos/backend/usecase/candidate"
	feedUC "github.com/studentos/backend/usecase/feed"
	profileUC "github.com/studentos/backend/usecase/profile"
	taskUC "github.com/studentos/backend/usecase/task"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	if err := pgInfra.RunMigrations(cfg.Database.URL, cfg.Migrations, zapLogger.Named("migrate")); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	manager.Register("postgres", func(ctx context.Context) error {
		pool.Close()
		return nil
	})

	redisClient, err := redisInfra.NewClient(cfg.Redis)
	if err != nil {
		zapLogger.Fatal("redis connection failed", zap.Error(err))
	}
	manager.Register("redis", func(ctx context.Context) error {
		return redisClient.Close()
	})

	journal, err := analytics.Open(cfg.Analytics.Path)
	if err != nil {
		zapLogger.Fatal("failed to open analytics journal", zap.Error(err))
	}
	manager.Register("analytics", func(ctx context.Context) error {
		return journal.Close()
	})

	box, err := secretbox.New(cfg.Encryption.Key)
	if err != nil {
		zapLogger.Fatal("encryption key rejected", zap.Error(err))
	}

	mon := monitor.New(pool, redisClient, journal, 10*time.Second, zapLogger.Named("monitor"))
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	candidateRepo := pgRepo.NewCandidateRepository(pool)
	taskRepo := pgRepo.NewTaskRepository(pool)
	userRepo := pgRepo.NewUserRepository(pool)
	sourceRepo := pgRepo.NewSourceMessageRepository(pool)

	reconciler := services.NewReconciler(candidateRepo, cfg.Reconciler.Schedule, cfg.Reconciler.Batch, zapLogger.Named("reconciler"))
	if err := reconciler.Start(); err != nil {
		zapLogger.Fatal("reconciler failed to start", zap.Error(err))
	}
	manager.Register("reconciler", reconciler.Stop)

	notificationInbox := inbox.New(redisClient, box, zapLogger.Named("inbox"))

	ucLogger := zapLogger.Named("usecase")
	candidateUseCase := candidateUC.New(candidateRepo, taskRepo, sourceRepo, journal, ucLogger)
	feedUseCase := feedUC.New(candidateRepo, taskRepo, ucLogger)
	taskUseCase := taskUC.New(taskRepo, ucLogger)
	profileUseCase := profileUC.New(userRepo, ucLogger)

	verifier := identity.NewVerifier(identity.Config{
		ProviderURL: cfg.Identity.ProviderURL,
		AnonKey:     cfg.Identity.AnonKey,
		JWTSecret:   cfg.Identity.JWTSecret,
		Timeout:     cfg.Identity.VerifyTimeout,
	}, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	apiLogger := zapLogger.Named("api")
	handlers := router.Handlers{
		Feed:      apiHandler.NewFeedHandler(feedUseCase, ctxAdapter, apiLogger),
		Candidate: apiHandler.NewCandidateHandler(candidateUseCase, ctxAdapter, apiLogger),
		Task:      apiHandler.NewTaskHandler(taskUseCase, ctxAdapter, apiLogger),
		User:      apiHandler.NewUserHandler(profileUseCase, ctxAdapter, apiLogger),
		Webhook:   apiHandler.NewWebhookHandler(notificationInbox, profileUseCase, cfg.Forwarding.Secret, ctxAdapter, apiLogger),
		Health:    apiHandler.NewHealthHandler(mon, apiLogger),
	}

	authMiddleware := middleware.Auth(verifier, zapLogger.Named("auth"))
	r := router.New(handlers, authMiddleware)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
