package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/library-management-api/app/shared/shell/config"
)

const serviceName = "library-management-api"

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func newRootCommand() *cobra.Command {
	cfg := config.AppConfigFromEnv()

	root := &cobra.Command{
		Use:           "libraryapi",
		Short:         "Library management REST API",
		Long:          "libraryapi serves the library management REST API. Flags override the LIBRARY_* environment variables.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&cfg.DBDriver, "db-driver", cfg.DBDriver, "database driver: pgx, sqldb, sqlx or sqlite")
	flags.StringVar(&cfg.DBDSN, "db-dsn", cfg.DBDSN, "database DSN, or the file path for sqlite")
	flags.StringVar(&cfg.DBReplicaDSN, "db-replica-dsn", cfg.DBReplicaDSN, "read replica DSN (pgx only)")
	flags.StringVar(&cfg.Environment, "env", cfg.Environment, "environment name, development adds error details to responses")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn or error")
	flags.StringVar(&cfg.OTLPEndpoint, "otlp-endpoint", cfg.OTLPEndpoint, "OTLP gRPC collector endpoint, empty disables tracing and metrics")

	root.AddCommand(
		newServeCommand(&cfg),
		newMigrateCommand(&cfg),
		newUserCommand(&cfg),
	)

	return root
}

func newServeCommand(cfg *config.AppConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), *cfg)
		},
	}

	cmd.Flags().StringVar(&cfg.HTTPAddr, "addr", cfg.HTTPAddr, "listen address")
	cmd.Flags().StringVar(&cfg.CORSOrigin, "cors-origin", cfg.CORSOrigin, "browser origin allowed to call the API")
	cmd.Flags().DurationVar(&cfg.JWTTTL, "jwt-ttl", cfg.JWTTTL, "lifetime of issued tokens")

	return cmd
}

func newMigrateCommand(cfg *config.AppConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the tables and indexes if they do not exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return migrate(cmd.Context(), *cfg)
		},
	}
}

func newUserCommand(cfg *config.AppConfig) *cobra.Command {
	user := &cobra.Command{
		Use:   "user",
		Short: "Manage API users",
	}

	var username string

	create := &cobra.Command{
		Use:   "create",
		Short: "Register a user, the password is read from the terminal or stdin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return createUser(cmd.Context(), *cfg, username, cmd.InOrStdin(), cmd.OutOrStdout(), time.Now())
		},
	}

	create.Flags().StringVarP(&username, "username", "u", "", "username of the new user")
	_ = create.MarkFlagRequired("username")

	user.AddCommand(create)

	return user
}
