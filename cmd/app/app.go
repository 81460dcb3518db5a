// Package main is the entry point for the currency rates service.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"ratewatch/internal/config"
	"ratewatch/internal/provider"
	"ratewatch/internal/rates"
	"ratewatch/internal/scheduler"
)

// App holds all application dependencies and manages their lifecycle.
type App struct {
	cfg        *config.Config
	logger     *zap.SugaredLogger
	controller *rates.Controller
	scheduler  *scheduler.Scheduler
	httpServer *http.Server
}

// NewApp initializes all dependencies and returns a ready-to-run App.
func NewApp(cfg *config.Config, logger *zap.SugaredLogger) *App {
	app := &App{
		cfg:    cfg,
		logger: logger,
	}

	monobank := provider.NewMonobankProvider(cfg.Monobank.BaseURL, cfg.Monobank.TimeoutSec)
	app.controller = rates.NewController(
		monobank,
		logger,
		time.Duration(cfg.Refresh.WindowSec)*time.Second,
	)

	app.initHTTP(app.controller)
	return app
}

// Run starts the HTTP server and the auto-refresh scheduler, blocking until
// the context is canceled. The initial refresh fires immediately.
func (app *App) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	// Initial load: the controller starts in Loading and stays not-ready
	// until this completes. Failures land in the error state, not here.
	g.Go(func() error {
		if _, err := app.controller.Refresh(ctx); err != nil {
			app.logger.Warnw("Initial refresh did not run", "error", err)
		}
		return nil
	})

	if app.cfg.Refresh.Auto {
		app.scheduler = scheduler.New(ctx, app.controller, app.logger)
		if err := app.scheduler.Register(app.cfg.Refresh.CronSpec); err != nil {
			return fmt.Errorf("configure auto-refresh: %w", err)
		}
		app.scheduler.Start()
	}

	g.Go(func() error {
		app.logger.Infow("HTTP server listening", "port", app.cfg.Server.Port)
		if err := app.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown: triggered by context cancellation (signal or component failure).
	g.Go(func() error {
		<-ctx.Done()
		return app.shutdown()
	})

	return g.Wait()
}

// shutdown performs ordered teardown: HTTP server first, then the scheduler,
// so no new refreshes start while in-flight requests drain.
func (app *App) shutdown() error {
	app.logger.Infow("Shutting down server...")

	var errs []error

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.httpServer.Shutdown(shutdownCtx); err != nil {
		app.logger.Errorw("HTTP server shutdown error", "error", err)
		errs = append(errs, fmt.Errorf("http shutdown: %w", err))
	}

	if app.scheduler != nil {
		app.scheduler.Stop()
	}

	app.logger.Infow("Shutdown complete")
	return errors.Join(errs...)
}
