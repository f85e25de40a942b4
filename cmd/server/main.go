// Package main is the entry point for the device inventory API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"devinventory/internal/config"
	"devinventory/internal/domain/auth"
	v1 "devinventory/internal/infrastructure/http/v1"
	"devinventory/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Development: cfg.Log.Development,
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logger.SetDefault(log)
	defer func() { _ = log.Sync() }()

	ctx := context.Background()
	log.Infow("starting devinventory server",
		"env", cfg.App.Env,
		"version", cfg.App.Version,
		"storage", cfg.Storage.Driver,
	)

	// --- Storage, lock and services ---
	deps, err := buildDependencies(ctx, cfg)
	if err != nil {
		log.Fatalw("failed to initialize dependencies", "error", err)
	}
	defer deps.Close()

	// --- JWT Service ---
	jwtService := auth.NewJWTService(auth.JWTConfig{
		Secret:         cfg.JWT.Secret,
		Issuer:         cfg.JWT.Issuer,
		AccessTokenTTL: cfg.JWT.AccessTokenTTL,
	})

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Logger:       log.WithComponent("http"),
		JWTValidator: jwtService,
		ItemTypes:    deps.ItemTypes,
		Divisions:    deps.Divisions,
		Devices:      deps.Devices,
		Health:       deps.Health(cfg),
	})

	// --- HTTP Server ---
	server := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "port", cfg.App.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}
