package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"

	"github.com/AntonStoeckl/library-management-api/app/api"
	"github.com/AntonStoeckl/library-management-api/app/shared/shell/config"
	"github.com/AntonStoeckl/library-management-api/librarystore/oteladapters"
	"github.com/AntonStoeckl/library-management-api/librarystore/sqlengine"
)

// runtime owns the resources of one CLI invocation.
type runtime struct {
	logger          *slog.Logger
	store           sqlengine.Store
	instrumentation api.Instrumentation
	closers         []func(ctx context.Context) error
}

func newLogger(cfg config.AppConfig) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return nil, fmt.Errorf("%w: log level %q", config.ErrInvalidConfig, cfg.LogLevel)
	}

	options := &slog.HandlerOptions{Level: level}

	if cfg.IsDevelopment() {
		return slog.New(slog.NewTextHandler(os.Stderr, options)), nil
	}

	return slog.New(slog.NewJSONHandler(os.Stderr, options)), nil
}

// openRuntime sets up logging, the optional OpenTelemetry export and the store.
func openRuntime(ctx context.Context, cfg config.AppConfig) (*runtime, error) {
	logger, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}

	rt := &runtime{logger: logger}
	rt.instrumentation = api.Instrumentation{
		ContextualLogger: oteladapters.NewSlogBridgeLoggerWithHandler(logger.Handler()),
		Logger:           logger,
	}

	if cfg.OTLPEndpoint != "" {
		providers, obsErr := config.NewObservabilityProviders(ctx, serviceName, version, cfg.OTLPEndpoint)
		if obsErr != nil {
			return nil, fmt.Errorf("starting opentelemetry: %w", obsErr)
		}

		rt.closers = append(rt.closers, providers.Shutdown)
		rt.instrumentation.Metrics = oteladapters.NewMetricsCollector(otel.Meter(serviceName))
		rt.instrumentation.Tracing = oteladapters.NewTracingCollector(otel.Tracer(serviceName))

		logger.Info("opentelemetry export enabled", "endpoint", cfg.OTLPEndpoint)
	}

	options := []sqlengine.Option{
		sqlengine.WithLogger(logger),
		sqlengine.WithContextualLogger(rt.instrumentation.ContextualLogger),
	}

	if rt.instrumentation.Metrics != nil {
		options = append(options,
			sqlengine.WithMetrics(rt.instrumentation.Metrics),
			sqlengine.WithTracing(rt.instrumentation.Tracing),
		)
	}

	if err = rt.openStore(ctx, cfg, options); err != nil {
		return nil, errors.Join(err, rt.Close(ctx))
	}

	logger.Info("database connected", "driver", cfg.DBDriver, "dialect", rt.store.Dialect())

	return rt, nil
}

func (rt *runtime) openStore(ctx context.Context, cfg config.AppConfig, options []sqlengine.Option) error {
	var err error

	switch cfg.DBDriver {
	case config.DriverPGX:
		primary, poolErr := rt.openPGXPool(ctx, cfg.DSN())
		if poolErr != nil {
			return poolErr
		}

		if cfg.DBReplicaDSN == "" {
			rt.store, err = sqlengine.NewStoreFromPGXPool(primary, options...)
			return err
		}

		replica, poolErr := rt.openPGXPool(ctx, cfg.DBReplicaDSN)
		if poolErr != nil {
			return poolErr
		}

		rt.store, err = sqlengine.NewStoreFromPGXPoolAndReplica(primary, replica, options...)

	case config.DriverSQLDB:
		db, dbErr := config.PostgresSQLDB(ctx, cfg.DSN())
		if dbErr != nil {
			return fmt.Errorf("connecting to postgres: %w", dbErr)
		}

		rt.closers = append(rt.closers, func(context.Context) error { return db.Close() })
		rt.store, err = sqlengine.NewStoreFromSQLDB(db, options...)

	case config.DriverSQLX:
		db, dbErr := config.PostgresSQLX(ctx, cfg.DSN())
		if dbErr != nil {
			return fmt.Errorf("connecting to postgres: %w", dbErr)
		}

		rt.closers = append(rt.closers, func(context.Context) error { return db.Close() })
		rt.store, err = sqlengine.NewStoreFromSQLX(db, options...)

	case config.DriverSQLite:
		db, dbErr := config.SQLiteDB(ctx, cfg.DSN())
		if dbErr != nil {
			return fmt.Errorf("opening sqlite database: %w", dbErr)
		}

		rt.closers = append(rt.closers, func(context.Context) error { return db.Close() })
		rt.store, err = sqlengine.NewStoreFromSQLDB(db, append(options, sqlengine.WithDialect(sqlengine.DialectSQLite))...)

	default:
		return fmt.Errorf("%w: unknown database driver %q", config.ErrInvalidConfig, cfg.DBDriver)
	}

	return err
}

func (rt *runtime) openPGXPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	poolConfig, err := config.PostgresPGXPoolConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parsing postgres dsn: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}

	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}

	rt.closers = append(rt.closers, func(context.Context) error {
		pool.Close()
		return nil
	})

	return pool, nil
}

// Close releases the resources in reverse order of acquisition.
func (rt *runtime) Close(ctx context.Context) error {
	var err error

	for i := len(rt.closers) - 1; i >= 0; i-- {
		err = errors.Join(err, rt.closers[i](ctx))
	}

	rt.closers = nil

	return err
}
