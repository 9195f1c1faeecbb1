package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"lifestat/adapters/api"
	"lifestat/internal"
	"lifestat/internal/config"
)

func main() {
	if err := godotenv.Load(); err != nil {
		internal.DefaultLogger.Debug("no .env file loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := internal.NewLogger(cfg.LogLevel, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := api.NewServer(cfg, logger)
	if err := server.ListenAndServe(ctx); err != nil {
		logger.Error("server stopped: %v", err)
		os.Exit(1)
	}
}
