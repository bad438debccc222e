package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/luxesalon/frontdesk/cmd/mainconfig"
	"github.com/luxesalon/frontdesk/internal/api/router"
	"github.com/luxesalon/frontdesk/internal/app/bootstrap"
	"github.com/luxesalon/frontdesk/internal/calendar"
	appconfig "github.com/luxesalon/frontdesk/internal/config"
	"github.com/luxesalon/frontdesk/internal/dialogue"
	"github.com/luxesalon/frontdesk/internal/extract"
	"github.com/luxesalon/frontdesk/internal/observability/metrics"
	"github.com/luxesalon/frontdesk/internal/webchat"
	"github.com/luxesalon/frontdesk/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting frontdesk server",
		"env", cfg.Env,
		"port", cfg.Port,
		"salon", cfg.SalonName,
	)

	ctx := context.Background()

	// LLM client for extraction and open-ended replies.
	llm, err := extract.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModelID)
	if err != nil {
		logger.Error("failed to init gemini client", "error", err)
		os.Exit(1)
	}
	defer llm.Close()
	extractor := extract.NewExtractor(llm, logger)

	// Google Calendar is the availability source and booking target.
	calSvc, err := calendar.NewService(ctx, cfg.GoogleCredFile, cfg.GoogleAPIKey)
	if err != nil {
		logger.Error("failed to init calendar service", "error", err)
		os.Exit(1)
	}
	scheduler, err := calendar.NewGoogleScheduler(calSvc, cfg.CalendarID, logger)
	if err != nil {
		logger.Error("failed to init scheduler", "error", err)
		os.Exit(1)
	}

	awsCfg, err := mainconfig.LoadAWSConfig(ctx, cfg)
	if err != nil {
		logger.Error("failed to load AWS config", "error", err)
		os.Exit(1)
	}
	emailSender := bootstrap.BuildEmailSender(cfg, awsCfg, logger)

	historyStore, closeHistory, err := bootstrap.BuildHistoryStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to connect client history store", "error", err)
		os.Exit(1)
	}
	defer closeHistory()

	redisClient := bootstrap.BuildRedisClient(ctx, cfg, logger, true)
	if redisClient != nil {
		defer func() { _ = redisClient.Close() }()
	}
	transcriptStore := bootstrap.BuildTranscriptStore(redisClient, cfg)

	dialogueMetrics := metrics.NewDialogueMetrics(prometheus.DefaultRegisterer)

	engine := dialogue.NewEngine(dialogue.Config{
		SalonName:     cfg.SalonName,
		SalonLocation: cfg.SalonLocation,
		Timezone:      cfg.SalonTimezone,
	}, extractor, scheduler, emailSender, historyStore, dialogueMetrics, logger)

	chatHandler := webchat.NewHandler(engine, transcriptStore, cfg.SessionIdleLimit, logger)

	r := router.New(&router.Config{
		Logger:             logger,
		ChatHandler:        chatHandler,
		MetricsHandler:     promhttp.Handler(),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     r,
		ReadTimeout: 15 * time.Second,
		// Write timeout stays generous: WebSocket sessions are
		// long-lived.
		WriteTimeout: 0,
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
