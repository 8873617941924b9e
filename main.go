package main

import (
	"context"
	"os/signal"
	"syscall"

	"trendchart/internal/config"
	"trendchart/internal/logger"
	"trendchart/internal/server"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}
	logger.Configure(cfg.LogLevel, cfg.LogFormat)

	logger.Info("Starting trend chart service", map[string]interface{}{
		"port":        cfg.Port,
		"environment": cfg.Environment,
		"source":      cfg.DataSource(),
	})

	if err := server.Run(ctx, cfg); err != nil {
		logger.Fatal("Service failed", err)
	}
}
