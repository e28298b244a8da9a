package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hassannetsec/doctors-friend/internal/api/router"
	"github.com/hassannetsec/doctors-friend/internal/auth"
	"github.com/hassannetsec/doctors-friend/internal/booking"
	"github.com/hassannetsec/doctors-friend/internal/catalog"
	appconfig "github.com/hassannetsec/doctors-friend/internal/config"
	"github.com/hassannetsec/doctors-friend/internal/notify"
	"github.com/hassannetsec/doctors-friend/internal/observability/metrics"
	"github.com/hassannetsec/doctors-friend/internal/records"
	"github.com/hassannetsec/doctors-friend/internal/registration"
	"github.com/hassannetsec/doctors-friend/pkg/logging"
)

func main() {
	// Load .env if present; real environments configure via env vars.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting doctors-friend API server",
		"env", cfg.Env,
		"port", cfg.Port,
		"records_backend", cfg.RecordsBackend,
	)

	store, err := newRecordStore(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize record store", "error", err)
		os.Exit(1)
	}

	bookingMetrics := metrics.NewBookingMetrics(nil)
	gateway := registration.NewGateway(store, bookingMetrics, logger)

	doctorCatalog, err := catalog.LoadFile(cfg.DoctorsFile, logger)
	if err != nil {
		logger.Error("failed to load doctor catalog", "file", cfg.DoctorsFile, "error", err)
		os.Exit(1)
	}

	sender := newEmailSender(cfg, logger)
	bookingService := booking.NewService(gateway, sender, bookingMetrics, logger)

	authHandler := auth.NewHandler(auth.HandlerConfig{
		Store:         auth.NewCredentialStore(cfg.BcryptCost),
		Gateway:       gateway,
		Secret:        cfg.SessionJWTSecret,
		TTL:           cfg.SessionTTL,
		AdminEmail:    cfg.AdminEmail,
		AdminPassword: cfg.AdminPassword,
		Logger:        logger,
	})

	r := router.New(&router.Config{
		Logger:              logger,
		RegistrationHandler: registration.NewHandler(gateway, logger),
		CatalogHandler:      catalog.NewHandler(doctorCatalog, logger),
		BookingHandler:      booking.NewHandler(bookingService, logger),
		AuthHandler:         authHandler,
		SessionSecret:       cfg.SessionJWTSecret,
		MetricsHandler:      promhttp.Handler(),
		CORSAllowedOrigins:  cfg.CORSAllowedOrigins,
		RateLimitPerSecond:  cfg.RateLimitPerSecond,
		RateLimitBurst:      cfg.RateLimitBurst,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

func newRecordStore(cfg *appconfig.Config, logger *logging.Logger) (records.Store, error) {
	switch cfg.RecordsBackend {
	case "github":
		return records.NewGitHubStore(records.GitHubConfig{
			Token:   cfg.GitHubToken,
			Owner:   cfg.GitHubOwner,
			Repo:    cfg.GitHubRepo,
			Branch:  cfg.GitHubBranch,
			BaseDir: cfg.GitHubBaseDir,
			BaseURL: cfg.GitHubBaseURL,
			Logger:  logger,
		})
	default:
		return records.NewFileStore(cfg.DataDir, logger), nil
	}
}

func newEmailSender(cfg *appconfig.Config, logger *logging.Logger) notify.EmailSender {
	switch cfg.EmailProvider {
	case "sendgrid":
		if s := notify.NewSendGridSender(notify.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.SendGridFromEmail,
			FromName:  cfg.SendGridFromName,
		}, logger); s != nil {
			return s
		}
		logger.Warn("sendgrid not configured, falling back to stub sender")
	case "ses":
		awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
			awsconfig.WithRegion(cfg.AWSRegion))
		if err != nil {
			logger.Error("failed to load AWS config, falling back to stub sender", "error", err)
			break
		}
		if s := notify.NewSESSender(sesv2.NewFromConfig(awsCfg), notify.SESConfig{
			FromEmail: cfg.SESFromEmail,
			FromName:  cfg.SESFromName,
		}, logger); s != nil {
			return s
		}
	}
	return notify.NewStubEmailSender(logger)
}
