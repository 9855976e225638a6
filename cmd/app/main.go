package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/NastyaGoryachaya/token-price-notifier/internal/app"
	"github.com/NastyaGoryachaya/token-price-notifier/internal/config"
	"github.com/NastyaGoryachaya/token-price-notifier/pkg/logger"
	"github.com/labstack/gommon/log"
)

func main() {

	// context + signals
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// config до логгера, поэтому ошибки пишем через gommon
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Error("config load failed: ", err)
		os.Exit(1)
	}

	logg := logger.New(&cfg.Logger)

	// build application
	application, err := app.NewApp(ctx, *cfg, logg)
	if err != nil {
		logg.Error("app init failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// run application
	if err := application.Run(ctx); err != nil {
		logg.Error("application stopped with error", slog.String("error", err.Error()))
	}

	logg.Info("token-price-notifier stopped")
}
