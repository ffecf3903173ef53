package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"legal-intake-bot/internal/adapter/telegram"
	"legal-intake-bot/internal/builder"
	"legal-intake-bot/internal/config"
	"legal-intake-bot/internal/logger"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	lg, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()

	intakeSvc, err := builder.NewIntakeService(cfg, lg)
	if err != nil {
		lg.Fatal("failed to build intake service", zap.Error(err))
	}

	bot, err := telegram.NewBot(cfg, intakeSvc, lg)
	if err != nil {
		lg.Fatal("failed to init telegram bot", zap.Error(err))
	}

	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := bot.Run(ctx); err != nil {
		if ctx.Err() != nil {
			lg.Info("shutdown", zap.Error(err))
			return
		}
		lg.Fatal("bot stopped with error", zap.Error(err))
	}
}
