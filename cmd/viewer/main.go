// Package main is the entry point for the scene viewer.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Faultbox/sceneview/internal/config"
	"github.com/Faultbox/sceneview/internal/logger"
	"github.com/Faultbox/sceneview/internal/viewer"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		return 1
	}

	// Initialize logger
	log, err := logger.New(cfg.Logging.Level, cfg.Logging.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		return 1
	}
	defer logger.Sync(log)

	logger.Event(log, "main thread startup")
	log.Sugar().Debugf("Config: %+v", cfg)

	if config.SaveRequested() {
		if err := cfg.Save(); err != nil {
			logger.Failure(log, "failed to save config", err)
			return 1
		}
		logger.Event(log, "config saved", zap.String("path", config.UserConfigPath()))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := viewer.New(cfg, log)
	if err != nil {
		logger.Failure(log, "failed to create viewer", err)
		return 1
	}
	defer app.Close()

	if err := app.Run(ctx); err != nil {
		logger.Failure(log, "viewer error", err)
		return 1
	}

	logger.Event(log, "shutting down", zap.String("reason", "viewer closed normally"))
	return 0
}
