package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/muhammadchandra19/hodlinfo/internal/app"
	"github.com/muhammadchandra19/hodlinfo/pkg/config"
	"github.com/muhammadchandra19/hodlinfo/pkg/logger"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	a, err := app.New(ctx, cfg)
	if err != nil {
		slog.Error("Failed to start application", "error", err)
		os.Exit(1)
	}

	if err := a.EnsureSchema(ctx); err != nil {
		a.Logger.Error(err)
		a.Close(ctx)
		os.Exit(1)
	}

	server := &http.Server{
		Addr:         cfg.App.Addr(),
		Handler:      a.Bootstrap.REST.Router,
		ReadTimeout:  cfg.App.ReadTimeout,
		WriteTimeout: cfg.App.WriteTimeout,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		a.Logger.Info("Server is running", logger.NewField("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Logger.Error(err)
			quit <- syscall.SIGTERM
		}
	}()

	<-quit

	a.Logger.Info("Shutting down HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.App.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		a.Logger.Error(err)
	}

	a.Logger.Info("HTTP server stopped")
	a.Close(ctx)
}
