package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"legal-intake-bot/internal/adapter/console"
	"legal-intake-bot/internal/builder"
	"legal-intake-bot/internal/config"
	"legal-intake-bot/internal/logger"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Keep the terminal for the conversation; diagnostics go to stderr.
	lg, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()

	intakeSvc, err := builder.NewIntakeService(cfg, lg)
	if err != nil {
		lg.Fatal("failed to build intake service", zap.Error(err))
	}

	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	ctx = ctxzap.ToContext(ctx, lg)

	if err := console.New(intakeSvc, os.Stdin, os.Stdout).Run(ctx); err != nil {
		if ctx.Err() != nil {
			return
		}
		lg.Fatal("console session failed", zap.Error(err))
	}
}
