package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/berckan/domainwishlist/internal/app"
	"github.com/berckan/domainwishlist/internal/config"
	"github.com/berckan/domainwishlist/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := logging.Configure(cfg.App.LogLevel); err != nil {
		log.Fatalf("logging: %v", err)
	}

	application, err := app.New(cfg)
	if err != nil {
		slog.Error("App init failed.", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := application.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			slog.Error("Wishlist runner stopped.", "error", err)
		}
	}()

	server := &http.Server{
		Addr:         ":" + cfg.HTTP.Port,
		Handler:      application.Router(),
		ReadTimeout:  cfg.HTTP.ReadTimeout.Duration(),
		WriteTimeout: cfg.HTTP.WriteTimeout.Duration(),
		IdleTimeout:  cfg.HTTP.IdleTimeout.Duration(),
	}

	go func() {
		slog.Info("Server starting.", "addr", "http://localhost:"+cfg.HTTP.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server error.", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP shutdown failed.", "error", err)
	}
	if err := application.Close(); err != nil {
		slog.Error("App close failed.", "error", err)
	}
}
