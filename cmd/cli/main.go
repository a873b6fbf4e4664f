package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/gamenight/attendance/cmd/cli/commands"
	"github.com/gamenight/attendance/internal/config"
	"github.com/gamenight/attendance/pkg/clients/sheetsclient"
	"github.com/gamenight/attendance/pkg/db"
	"github.com/gamenight/attendance/pkg/postgres"
	"github.com/gamenight/attendance/pkg/utils/logging"
)

var (
	env      string
	logLevel string
	logDir   string
	app      = &commands.AppContext{}
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cli",
		Short: "Game night volunteer attendance",
		Long:  `A read-only dashboard of volunteer attendance: who is scheduled today, full history and per-volunteer detail.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.Database != nil {
				app.Database.Close()
			}
			if app.Logger != nil {
				_ = app.Logger.Sync()
			}
		},
		SilenceUsage: true,
	}

	// Accept --show_inactive as well as --show-inactive, matching the API query names
	rootCmd.SetGlobalNormalizationFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	// Add persistent environment flag
	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Console log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "logs", "Directory for JSON log files (empty disables file logging)")
	rootCmd.PersistentFlags().BoolVar(&app.NoColor, "no-color", false, "Disable colored output")

	// Add all commands
	rootCmd.AddCommand(commands.DashboardCmd(app))
	rootCmd.AddCommand(commands.OverviewCmd(app))
	rootCmd.AddCommand(commands.VolunteerCmd(app))
	rootCmd.AddCommand(commands.CheckScheduleCmd(app))
	rootCmd.AddCommand(commands.InteractiveCmd(app))
	rootCmd.AddCommand(commands.MigrateCmd(app))
	rootCmd.AddCommand(commands.ServeCmd(app))

	if err := rootCmd.Execute(); err != nil {
		if app.Logger != nil {
			app.Logger.Error("Command failed", zap.Error(err))
		}
		os.Exit(1)
	}
}

// initApp sets up logger, config and the attendance store
func initApp(cmd *cobra.Command) error {
	var err error
	app.Ctx = context.Background()
	app.Now = time.Now

	app.Logger, err = logging.InitLogger(env, logging.Options{
		Dir:   logDir,
		Level: logLevel,
		JSON:  cmd.Name() == "serve",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Info("Starting application", zap.String("environment", env))

	// Load configuration
	app.Cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.StoreName = app.Cfg.Store
	app.Logger.Debug("Configuration loaded successfully", zap.String("store", app.Cfg.Store))

	switch app.Cfg.Store {
	case config.StorePostgres:
		pg, err := openPostgres(app.Ctx, app.Cfg, cmd.Name() != "migrate", app.Logger)
		if err != nil {
			return err
		}
		app.Database = pg
	case config.StoreSheets:
		sheetsDB, err := openSheets(app.Ctx, app.Cfg, app.Logger)
		if err != nil {
			return err
		}
		app.Database = sheetsDB
	default:
		return fmt.Errorf("unknown store %q", app.Cfg.Store)
	}

	app.Logger.Info("Database initialized successfully", zap.String("store", app.StoreName))
	return nil
}

func openPostgres(ctx context.Context, cfg *config.Config, autoMigrate bool, logger *zap.Logger) (*postgres.DB, error) {
	logger.Info("Connecting to postgres")
	pg, err := postgres.NewDB(ctx, cfg.Postgres.DSN, postgres.Options{
		MaxConns:        cfg.Postgres.MaxConns,
		MinConns:        cfg.Postgres.MinConns,
		MaxConnIdleTime: cfg.Postgres.ConnMaxIdle(),
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	if autoMigrate && cfg.Postgres.RunMigrations {
		if _, err := pg.RunMigrations(ctx); err != nil {
			pg.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	return pg, nil
}

func openSheets(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*db.DB, error) {
	// Load OAuth client configuration
	logger.Info("Loading OAuth client configuration")
	oauthCfg, err := config.LoadOAuthClientWithEnv(env)
	if err != nil {
		return nil, fmt.Errorf("failed to load OAuth client config: %w", err)
	}

	logger.Info("Initializing sheets client")
	client, err := sheetsclient.NewClient(ctx, oauthCfg, env, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}

	logger.Info("Connecting to spreadsheet", zap.String("spreadsheet_id", cfg.Sheets.SpreadsheetID))
	database, err := db.Open(ctx, client, cfg.Sheets.SpreadsheetID, db.Tables{
		Volunteers: cfg.Sheets.VolunteersTab,
		GameDates:  cfg.Sheets.GameDatesTab,
		Statuses:   cfg.Sheets.StatusTab,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return database, nil
}
