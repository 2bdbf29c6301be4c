package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"coursecatalog-backend/internal/components/telemetry"
	"coursecatalog-backend/pkg/configutil"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
)

var (
	configPath *string
	verbose    *bool
	outputPath *string
	dbPath     *string
)

// set up by rootCmd before any subcommand runs
var (
	config    Config
	tel       telemetry.API = telemetry.SlogAPI{}
	providers telemetry.Telemetry
)

func init() {
	configPath = rootCmd.PersistentFlags().String("config", "config.json5", "The config file, a config.local.json5 next to it is merged on top.")
	verbose = rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging.")
	outputPath = rootCmd.PersistentFlags().StringP("output", "o", "", "The JSON file courses are written to and read from, overrides the config.")
	dbPath = rootCmd.PersistentFlags().String("db", "", "A local sqlite database to ingest into, overrides the config.")
}

func initSlog(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	}))
	slog.SetDefault(logger)
}

var rootCmd = &cobra.Command{
	Use:   "wesmaps-cli",
	Short: "wesmaps-cli crawls the WesMaps course catalog and ingests it into a database.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		initSlog(*verbose)

		cfg, err := configutil.ReadConfigOr(*configPath, defaultConfig)
		if err != nil {
			return fmt.Errorf("read config: %w", err)
		}
		if *outputPath != "" {
			cfg.Output = *outputPath
		}
		if *dbPath != "" {
			cfg.Database.File = *dbPath
			cfg.Database.Url = ""
		}
		config = cfg

		providers, err = telemetry.Setup(cmd.Context(), "wesmaps-cli", cfg.Telemetry)
		if err != nil {
			return fmt.Errorf("setup telemetry: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err := providers.Shutdown(ctx)
		if err != nil {
			slog.Warn("failed to flush telemetry", "err", err)
		}
	},
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
