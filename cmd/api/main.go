package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"appointment-reminder/internal/api/router"
	"appointment-reminder/internal/appointment"
	appconfig "appointment-reminder/internal/config"
	"appointment-reminder/internal/extract"
	"appointment-reminder/internal/notify"
	"appointment-reminder/internal/observability/metrics"
	"appointment-reminder/pkg/logging"
)

func main() {
	// Load configuration
	cfg := appconfig.Load()

	// Initialize logger
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting appointment-reminder API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	schedMetrics := metrics.NewSchedulerMetrics(nil)

	// Pick an email provider: SendGrid when keyed, otherwise SMTP,
	// otherwise email stays disabled.
	var emailSender notify.EmailSender
	if sg := notify.NewSendGridSender(notify.SendGridConfig{
		APIKey:    cfg.SendGridAPIKey,
		FromEmail: cfg.SendGridFromEmail,
		FromName:  cfg.SendGridFromName,
	}, logger); sg != nil {
		emailSender = sg
		logger.Info("email provider: sendgrid")
	} else if smtp := notify.NewSMTPSender(notify.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.EmailUser,
		Password: cfg.EmailPassword,
	}, logger); smtp != nil {
		emailSender = smtp
		logger.Info("email provider: smtp", "host", cfg.SMTPHost)
	} else {
		logger.Warn("email notifications disabled: no provider configured")
	}

	var smsSender notify.SMSSender
	if tw := notify.NewTwilioSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber, logger); tw != nil {
		smsSender = tw
		logger.Info("sms provider: twilio")
	} else {
		logger.Warn("sms notifications disabled: incomplete twilio credentials")
	}

	gateway := notify.NewGateway(emailSender, smsSender, schedMetrics, logger)

	displayLoc := notify.DefaultDisplayLocation
	if loc, err := time.LoadLocation(cfg.DisplayTimezone); err == nil {
		displayLoc = loc
	} else {
		logger.Warn("unknown display timezone, using default", "tz", cfg.DisplayTimezone)
	}

	scheduler := appointment.NewScheduler(appointment.Config{
		Gateway:         gateway,
		FollowUpDelay:   cfg.FollowUpDelay,
		DisplayLocation: displayLoc,
		Metrics:         schedMetrics,
		Logger:          logger,
	})
	defer scheduler.Stop()

	var extractor extract.Extractor
	if cfg.ExtractorEnabled() {
		gem, err := extract.NewGeminiExtractor(context.Background(), extract.GeminiConfig{
			APIKey:         cfg.GeminiAPIKey,
			Model:          cfg.GeminiModel,
			MaxAttempts:    cfg.ExtractMaxAttempts,
			RetryBaseDelay: cfg.ExtractRetryBaseDelay,
			Logger:         logger,
		})
		if err != nil {
			logger.Error("failed to initialize gemini extractor", "error", err)
			os.Exit(1)
		}
		defer gem.Close()
		extractor = gem
		logger.Info("natural language extraction enabled", "model", cfg.GeminiModel)
	} else {
		logger.Warn("natural language extraction disabled: GEMINI_API_KEY not set")
	}

	// Setup router
	r := router.New(&router.Config{
		Logger:             logger,
		AppointmentHandler: appointment.NewHandler(scheduler, logger),
		ParseHandler:       extract.NewHandler(extractor, logger),
		HealthHandler:      router.NewHealthHandler(gateway.EmailConfigured(), gateway.SMSEnabled(), extractor != nil),
		MetricsHandler:     promhttp.Handler(),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
