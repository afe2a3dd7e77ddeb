package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/wheelibin/lumen/internal/app"
	"github.com/wheelibin/lumen/internal/config"
)

func main() {

	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:           log.InfoLevel,
		ReportTimestamp: true,
		ReportCaller:    true,
	})
	logger.Info("lumend starting")

	// read the config file
	cfg, err := config.ReadConfig()
	if err != nil {
		logger.Fatal("Unable to read config", "err", err)
	}
	logger.SetLevel(cfg.LogLevel())

	// create/wire up services
	a, err := app.New(logger, cfg)
	if err != nil {
		logger.Fatal("Unable to start", "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := a.Run(ctx); err != nil {
		logger.Fatal(err)
	}
	logger.Info("lumend is closing")
}
