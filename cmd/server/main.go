package main

import (
	"context"
	"log"
	"os"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/honeycarbs/jobboard/internal/app"
	"github.com/honeycarbs/jobboard/internal/config"
	"github.com/honeycarbs/jobboard/pkg/logging"
	"github.com/honeycarbs/jobboard/pkg/shutdown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	defer func() { _ = logger.Sync() }()

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	a, cleanup, err := app.Initialize(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize server", "err", err)
		os.Exit(1)
	}

	go shutdown.Graceful(
		[]os.Signal{os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGHUP},
		10*time.Second,
		logger,
		a.Server,
		shutdown.Func(func(context.Context) error {
			cleanup()
			return nil
		}),
	)

	logger.Info("server initialized and starting",
		"addr", a.Server.Addr(),
		"remote_backend", cfg.Remote.Backend,
		"storage_backend", cfg.Storage.Backend,
		"page_size", cfg.PageSize,
	)

	if err := a.Run(ctx); err != nil {
		logger.Error("server exited with error", "err", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}
