package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DanielPopoola/yappy-pos-gateway/internal/application"
	"github.com/DanielPopoola/yappy-pos-gateway/internal/application/services"
	"github.com/DanielPopoola/yappy-pos-gateway/internal/config"
	"github.com/DanielPopoola/yappy-pos-gateway/internal/domain/dto"
	"github.com/DanielPopoola/yappy-pos-gateway/internal/infrastructure/persistence/jsonfile"
	"github.com/DanielPopoola/yappy-pos-gateway/internal/infrastructure/persistence/postgres"
	"github.com/DanielPopoola/yappy-pos-gateway/internal/infrastructure/yappy"
	"github.com/DanielPopoola/yappy-pos-gateway/internal/interfaces/rest/handlers"
	"github.com/DanielPopoola/yappy-pos-gateway/internal/interfaces/rest/middleware"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := cfg.Logger.NewLogger()
	slog.SetDefault(logger)

	logger.Info("starting gateway service",
		"port", cfg.Server.Port,
		"storage_driver", cfg.Storage.Driver,
		"sandbox", cfg.Yappy.Sandbox,
	)

	ctx := context.Background()

	var sessionRepo application.SessionRepository
	switch cfg.Storage.Driver {
	case "postgres":
		db, err := postgres.Connect(ctx, &cfg.Database, logger)
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		repo := postgres.NewSessionRepository(db)
		if err := repo.Migrate(ctx); err != nil {
			logger.Error("failed to migrate database", "error", err)
			os.Exit(1)
		}
		sessionRepo = repo
	default:
		sessionRepo = jsonfile.NewSessionRepository(cfg.Storage.DataDir)
	}

	yappyClient := yappy.NewClient(cfg.Yappy)

	device := dto.OpenDeviceRequest{
		IDDevice:   cfg.Yappy.IDDevice,
		NameDevice: cfg.Yappy.NameDevice,
		UserDevice: cfg.Yappy.UserDevice,
		GroupID:    cfg.Yappy.GroupID,
	}

	tokenProvider := services.NewTokenProvider(sessionRepo, yappyClient, device, logger)
	deviceService := services.NewDeviceService(sessionRepo, yappyClient, logger)
	paymentService := services.NewPaymentService(tokenProvider, yappyClient, logger)

	h := handlers.NewHandlers(deviceService, paymentService, logger)

	mux := http.NewServeMux()
	h.RegisterRoutes(mux)

	handler := middleware.Recovery(logger)(mux)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.Timeout(cfg.Server.ReadTimeout)(handler)

	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
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

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
