package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/muhammadchandra19/hodlinfo/internal/app"
	"github.com/muhammadchandra19/hodlinfo/pkg/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

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

	result, err := a.Bootstrap.Usecase.TickerUsecase.Sync(ctx)
	a.Close(context.Background())
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	fmt.Printf("stored %d tickers at %s: %s\n",
		result.Stored,
		result.SyncedAt.Format(time.RFC3339),
		strings.Join(result.Symbols, ","),
	)
}
