package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/AntonStoeckl/library-management-api/app/api"
	"github.com/AntonStoeckl/library-management-api/app/shared/shell/config"
	"github.com/AntonStoeckl/library-management-api/app/shared/shell/jwtauth"
)

const shutdownTimeout = 10 * time.Second

func serve(ctx context.Context, cfg config.AppConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rt, err := openRuntime(ctx, cfg)
	if err != nil {
		return err
	}

	defer func() {
		if closeErr := rt.Close(context.Background()); closeErr != nil {
			rt.logger.Error("shutdown failed", "error", closeErr)
		}
	}()

	issuer, err := jwtauth.NewIssuer(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	if err != nil {
		return fmt.Errorf("%w: %w", config.ErrInvalidConfig, err)
	}

	handlers, err := api.NewHandlers(rt.store, issuer, rt.instrumentation)
	if err != nil {
		return fmt.Errorf("building handlers: %w", err)
	}

	server := api.NewServer(handlers, issuer, rt.store,
		api.WithLogger(rt.logger),
		api.WithDevelopment(cfg.IsDevelopment()),
		api.WithCORSOrigin(cfg.CORSOrigin),
	)

	httpServer := api.NewHTTPServer(cfg.HTTPAddr, server.Routes())

	errChan := make(chan error, 1)
	go func() {
		rt.logger.Info("http server listening", "addr", cfg.HTTPAddr, "env", cfg.Environment, "version", version)

		if listenErr := httpServer.ListenAndServe(); !errors.Is(listenErr, http.ErrServerClosed) {
			errChan <- listenErr
		}

		close(errChan)
	}()

	select {
	case err = <-errChan:
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
		rt.logger.Info("shutdown signal received, draining connections")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err = httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}

	rt.logger.Info("http server stopped")

	return nil
}

func migrate(ctx context.Context, cfg config.AppConfig) error {
	rt, err := openRuntime(ctx, cfg)
	if err != nil {
		return err
	}

	defer func() { _ = rt.Close(context.Background()) }()

	if err = rt.store.Migrate(ctx); err != nil {
		return fmt.Errorf("migrating schema: %w", err)
	}

	rt.logger.Info("schema migrated", "dialect", rt.store.Dialect())

	return nil
}
