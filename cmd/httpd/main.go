// Command httpd runs the khabarcheck credibility API server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/khabarcheck/khabarcheck/internal/bootstrap"
	"github.com/khabarcheck/khabarcheck/internal/config"
	"github.com/khabarcheck/khabarcheck/internal/logging"
)

const defaultConfigPath = "config.yml"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "khabarcheck: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(config.GetConfigPath(defaultConfigPath))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	components, err := bootstrap.NewComponents(cfg)
	if err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}
	logger := components.Logger
	defer func() { _ = logger.Sync() }()

	errCh := make(chan error, 1)
	go func() {
		errCh <- components.Server.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case sig := <-quit:
		logger.Info("shutdown signal received", logging.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Service.ShutdownTimeout)
	defer cancel()

	if err := components.Server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("server stopped")
	return nil
}
