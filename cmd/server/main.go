package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"invitationgallery/config"
	_ "invitationgallery/docs"
	"invitationgallery/internal/adapters/auth"
	"invitationgallery/internal/adapters/email"
	"invitationgallery/internal/adapters/upload"
	deliveryhttp "invitationgallery/internal/delivery/http"
	"invitationgallery/internal/delivery/http/controllers"
	"invitationgallery/internal/delivery/http/middleware"
	"invitationgallery/internal/domain"
	"invitationgallery/internal/jobs"
	"invitationgallery/internal/repository/memory"
	"invitationgallery/internal/repository/postgres"
	"invitationgallery/internal/repository/redis"
	"invitationgallery/internal/services"
)

// @title Invitation Gallery API
// @version 1.0
// @description Invitation card catalog with an admin back office.
// @BasePath /api
// @securityDefinitions.apikey SessionCookie
// @in cookie
// @name admin_session
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger := config.NewLogger()

	if cfg.AutoMigrate {
		if err := postgres.Migrate(cfg.DBUrl); err != nil {
			logger.Error("failed to run migrations", "err", err)
			os.Exit(1)
		}
	}

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	db.SetMaxOpenConns(20)
	db.SetConnMaxIdleTime(5 * time.Minute)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := db.PingContext(ctx); err != nil {
		logger.Error("failed to connect to database", "err", err)
		os.Exit(1)
	}

	sessions, err := newSessionStore(ctx, cfg, db)
	if err != nil {
		logger.Error("failed to set up session store", "store", cfg.SessionStore, "err", err)
		os.Exit(1)
	}
	if cfg.IsProduction() && cfg.SessionStore == "memory" {
		logger.Warn("in-memory sessions are lost on restart and are not shared between instances")
	}

	images, err := upload.NewDiskImageStore(cfg.UploadDir, cfg.MaxUploadBytes)
	if err != nil {
		logger.Error("failed to prepare upload directory", "dir", cfg.UploadDir, "err", err)
		os.Exit(1)
	}

	// Repositories
	invitationRepo := postgres.NewInvitationRepository(db)
	adminUserRepo := postgres.NewAdminUserRepository(db)
	settingRepo := postgres.NewSettingRepository(db)

	// Services
	mailer := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:          cfg.Email.AWSRegion,
			AccessKeyID:     cfg.Email.AccessKeyID,
			SecretAccessKey: cfg.Email.SecretAccessKey,
		},
	}, logger)
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer(), logger)
	authService := services.NewAdminAuthService(services.AdminAuthConfig{
		Users:      adminUserRepo,
		Sessions:   sessions,
		Hasher:     auth.NewBcryptHasher(auth.DefaultBcryptCost),
		Signer:     auth.NewJWTSessionSigner(cfg.SessionSecret),
		SessionTTL: cfg.SessionTTL,
		Email:      emailService,
		NotifyTo:   cfg.Email.AdminNotifyTo,
		Logger:     logger,
	})
	invitationService := services.NewInvitationService(invitationRepo, images, logger)
	settingService := services.NewSettingService(settingRepo)

	// Background jobs
	sweeper, err := jobs.NewSessionSweeper(sessions, cfg.SessionSweepSchedule, logger)
	if err != nil {
		logger.Error("failed to schedule session sweep", "err", err)
		os.Exit(1)
	}
	sweeper.Start()

	loginLimiter := middleware.NewRateLimiter(cfg.LoginRatePerSecond, cfg.LoginRateBurst, logger)
	loginLimiter.StartCleanup(ctx, time.Minute)

	router := deliveryhttp.NewRouter(deliveryhttp.Controllers{
		Invitations: controllers.NewInvitationController(logger, invitationService, cfg.MaxUploadBytes),
		Admin:       controllers.NewAdminController(logger, authService, cfg.CookieSecure),
		Settings:    controllers.NewSettingController(logger, settingService),
		Assets:      controllers.NewAssetController(logger, cfg.SampleImagesDir, cfg.UploadDir),
		Health:      controllers.NewHealthController(logger, db),
	}, deliveryhttp.RouterOptions{
		Logger:             logger,
		Auth:               authService,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		LoginLimiter:       loginLimiter,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logger.Info("server starting", "port", cfg.Port, "env", cfg.Environment, "session_store", cfg.SessionStore)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "err", err)
	}
	sweeper.Stop(shutdownCtx)
}

func newSessionStore(ctx context.Context, cfg *config.Config, db *sql.DB) (domain.SessionStore, error) {
	switch cfg.SessionStore {
	case "redis":
		client, err := redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		return redis.NewSessionStore(client), nil
	case "memory":
		return memory.NewSessionStore(), nil
	default:
		return postgres.NewAdminSessionRepository(db), nil
	}
}
