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

	"github.com/gin-gonic/gin"

	"lead-gateway/pkg/api"
	"lead-gateway/pkg/attribution"
	"lead-gateway/pkg/clients/meta"
	"lead-gateway/pkg/clients/telegram"
	"lead-gateway/pkg/config"
	"lead-gateway/pkg/logging"
	"lead-gateway/pkg/middleware"
	"lead-gateway/pkg/services"
	"lead-gateway/pkg/telemetry"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 15 * time.Second
)

func main() {
	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFmt)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.OTel)
	if err != nil {
		logger.Error("tracing disabled", "error", err)
	}
	defer shutdownTracing(context.Background())

	// Initialize API clients
	telegramClient := telegram.NewClient(cfg.Telegram.APIURL, cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.OutboundTimeout)
	metaClient := meta.NewClient(cfg.Meta.APIURL, cfg.Meta.APIVersion, cfg.Meta.PixelID, cfg.Meta.AccessToken, cfg.OutboundTimeout)

	if !cfg.Telegram.Configured() {
		logger.Warn("telegram credentials missing; submissions will fail until TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID are set")
	}
	if !cfg.Meta.Configured() {
		logger.Warn("meta credentials missing; conversion events will be skipped")
	}

	// Initialize services
	dispatcher := services.NewLeadDispatcher(telegramClient, metaClient, cfg, logger)
	resolver := attribution.NewResolver(cfg.EventSourcePath, nil)

	gin.SetMode(cfg.GinMode)

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger(logger), middleware.CORS())

	// Register routes
	api.RegisterRoutes(router, api.NewHandlers(dispatcher, resolver, cfg.Meta.IncludeExternalID, logger))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		logger.Info("server starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("error starting server", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "error", err)
	}
}
