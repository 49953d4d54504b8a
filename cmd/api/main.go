package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"corvus-contact/config"
	_ "corvus-contact/docs" // Important for Swagger
	v1 "corvus-contact/internal/delivery/http/v1"
	"corvus-contact/internal/delivery/http/middleware"
	"corvus-contact/internal/usecase"
	"corvus-contact/pkg/email"
	"corvus-contact/pkg/logger"
	"corvus-contact/pkg/redis"
	"corvus-contact/pkg/security"

	goredis "github.com/redis/go-redis/v9"
)

// @title           Corvus Labs Contact API
// @version         1.0
// @description     Contact form submission endpoint for the Corvus Labs website.
// @host            localhost:8080
// @BasePath        /api
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Loggers
	logger.Init(cfg.IsProduction())
	logger.Log.Info("Starting contact service", "port", cfg.Port, "env", cfg.Environment)
	secLogger := security.InitSecurityLogger("corvus-contact", cfg.Environment)
	defer func() { _ = secLogger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Setup Redis (optional)
	var redisClient *goredis.Client
	redisClient, err = redis.Connect(ctx, redis.Config{
		URL:      cfg.UpstashRedisURL,
		Password: cfg.UpstashRedisPassword,
	})
	if err != nil {
		if !errors.Is(err, redis.ErrNotConfigured) {
			logger.Log.Warn("Redis unavailable, using in-memory rate limiting", "error", err)
		}
		redisClient = nil
	} else {
		defer redisClient.Close()
	}
	rateLimiter := middleware.NewRateLimiter(redisClient, secLogger)
	rateLimiter.StartCleanup(ctx, 5*time.Minute)

	// 4. Setup Email Sender. Left nil when no key is configured; the
	// contact endpoint then answers 500 instead of attempting delivery.
	var sender email.Sender
	emailMode := usecase.EmailModeNotConfigured
	switch {
	case cfg.EmailDryRun:
		sender = email.NewLogSender(logger.Log)
		emailMode = usecase.EmailModeDryRun
		logger.Log.Warn("EMAIL_DRY_RUN enabled - contact emails will be logged, not delivered")
	case cfg.ResendAPIKey != "":
		sender = email.NewResendSender(cfg.ResendAPIKey, cfg.ContactFromEmail, logger.Log)
		emailMode = usecase.EmailModeResend
	default:
		logger.Log.Warn("Email service not configured - contact form will be unavailable")
	}

	// 5. Setup UseCases
	contactUC := usecase.NewContactUsecase(sender, usecase.ContactConfig{
		FromEmail: cfg.ContactFromEmail,
		ToEmail:   cfg.ContactToEmail,
	}, logger.Log, secLogger)
	healthUC := usecase.NewHealthUsecase(emailMode, redisClient)

	// 6. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		ContactUC:   contactUC,
		HealthUC:    healthUC,
		RateLimiter: rateLimiter,
		Config:      cfg,
	})

	// 7. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
			stop()
		}
	}()

	// Graceful Shutdown
	<-ctx.Done()
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
