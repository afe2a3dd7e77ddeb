package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/wheelibin/lumen/internal/app"
	"github.com/wheelibin/lumen/internal/config"
	"github.com/wheelibin/lumen/internal/models"
	"github.com/wheelibin/lumen/internal/tui"
	"gopkg.in/natefinch/lumberjack.v2"
)

func main() {

	// read the config file
	cfg, err := config.ReadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// the terminal belongs to the UI, log to a file
	logger := log.NewWithOptions(&lumberjack.Logger{
		Filename: cfg.Log.File,
		MaxAge:   3,
	}, log.Options{
		Level:      cfg.LogLevel(),
		TimeFormat: "2006/01/02 15:04:05",
	})
	logger.Info("lumen starting")

	// create/wire up services
	a, err := app.New(logger, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	lightsChannel := make(chan []models.Light, 1)
	a.PublishTo(lightsChannel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// run the terminal UI
	ui := tui.NewLumenTUI(cfg.Listen)

	errs := make(chan error, 1)
	go func() {
		errs <- a.Run(ctx)
		ui.Quit()
	}()

	go func() {
		for lights := range lightsChannel {
			ui.RefreshLights(lights)
		}
	}()

	if err := ui.Run(); err != nil {
		logger.Error("Terminal UI failed", "err", err)
	}

	// cleanup before exit
	cancel()
	if err := <-errs; err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger.Info("lumen is closing")
}
