// Package main is the entry point for the OBJ model viewer.
package main

import (
	"fmt"
	"os"
	"runtime"

	"go.uber.org/zap"

	"github.com/Faultbox/objview/internal/config"
	"github.com/Faultbox/objview/internal/logger"
	"github.com/Faultbox/objview/internal/viewer"
)

func init() {
	// SDL and OpenGL calls must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== OBJ Viewer ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	app, err := viewer.Create(cfg, logger.Named("viewer"))
	if err != nil {
		logger.Error("failed to create viewer", zap.Error(err))
		os.Exit(1)
	}
	defer app.Close()

	if err := app.Run(); err != nil {
		logger.Error("viewer error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
}
