package main

import (
	"context"
	"os"

	"github.com/fleshka4/gofi/internal/app"
	"github.com/fleshka4/gofi/internal/config"
	"github.com/fleshka4/gofi/internal/logging"
	transport "github.com/fleshka4/gofi/internal/transport/http"
)

func main() {
	cfg, err := config.Load(config.Path())
	if err != nil {
		logging.NewLogger("info").Error("config.Load", "err", err)
		os.Exit(1)
	}
	logger := logging.NewLogger(cfg.LogLevel)

	ctx := context.Background()
	a, err := app.New(ctx, cfg, logger, false)
	if err != nil {
		logger.Error("app.New", "err", err)
		os.Exit(1)
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Error("a.Close", "err", err)
		}
	}()

	srv := transport.NewServer(logger, a.Service, cfg)
	if err := srv.ListenAndServe(ctx, cfg.ListenAddr); err != nil {
		logger.Error("srv.ListenAndServe", "err", err)
	}
}
