package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-freelance-backend/config"
	_ "go-freelance-backend/docs" // Important for Swagger
	v1 "go-freelance-backend/internal/delivery/http/v1"
	"go-freelance-backend/internal/repository/postgres"
	"go-freelance-backend/internal/usecase"
	"go-freelance-backend/internal/worker"
	"go-freelance-backend/pkg/auth"
	"go-freelance-backend/pkg/database"
	"go-freelance-backend/pkg/email"
	"go-freelance-backend/pkg/logger"
	"go-freelance-backend/pkg/redis"
	"go-freelance-backend/pkg/storage"
	"go-freelance-backend/pkg/validation"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// @title           Freelance Marketplace API
// @version         1.0
// @description     Backend for a freelancer profile marketplace using Clean Architecture.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting freelance backend", "port", cfg.Port)

	// 3. Register custom validators on gin's binding engine
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validation.RegisterValidators(v)
	}

	// 4. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 5. Setup Redis (rate limiting falls back to in-memory when absent)
	if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable, rate limiting runs in-memory", "error", err)
	}

	// 6. Setup Object Storage
	objectStorage, err := storage.NewObjectStorage(context.Background(), cfg)
	if err != nil {
		logger.Log.Error("Failed to set up object storage", "error", err)
		os.Exit(1)
	}

	// 7. Setup Email Service
	emailService := email.NewEmailService(cfg)
	if !emailService.IsConfigured() {
		logger.Log.Warn("Email service not fully configured - registration emails will fail")
	}

	// 8. Setup Repositories
	freelancerRepo := postgres.NewFreelancerRepository(dbPool)
	searchRepo := postgres.NewSearchRepository(dbPool)
	lifecycleRepo := postgres.NewLifecycleRepository(dbPool)

	// 9. Setup UseCases
	authUC := usecase.NewAuthUsecase(freelancerRepo, emailService, cfg.AppURL, cfg.ConfirmTokenTTL, cfg.ResetTokenTTL)
	freelancerUC := usecase.NewFreelancerUsecase(freelancerRepo, objectStorage)
	searchUC := usecase.NewSearchUsecase(searchRepo)

	// 10. Start the token lifecycle sweeper
	sweeperCtx, stopSweeper := context.WithCancel(context.Background())
	defer stopSweeper()
	worker.NewTokenSweeper(lifecycleRepo, cfg.SweepInterval).Start(sweeperCtx)

	// 11. Setup Router
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, time.Duration(cfg.JWTExpireHours)*time.Hour)
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:       authUC,
		FreelancerUC: freelancerUC,
		SearchUC:     searchUC,
		JWTManager:   jwtManager,
		Config:       cfg,
	})

	// 12. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	stopSweeper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
