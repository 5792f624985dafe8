package cli

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rshade/cryptoboard/internal/config"
	"github.com/rshade/cryptoboard/internal/logging"
)

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// Command annotations read by the root pre-run hook.
const (
	// annotationOwnsTerminal marks commands that draw a full-screen UI; their
	// logs always go to a file.
	annotationOwnsTerminal = "cryptoboard/owns-terminal"
	// annotationSkipConfig marks commands that must run even when the config
	// file is invalid.
	annotationSkipConfig = "cryptoboard/skip-config"
)

// NewRootCmd creates the root Cobra command for the cryptoboard CLI.
// Without a subcommand it opens the interactive dashboard.
func NewRootCmd(ver string) *cobra.Command {
	var logResult *logging.LogPathResult

	cmd := &cobra.Command{
		Use:     "cryptoboard",
		Short:   "Live cryptocurrency market dashboard",
		Long:    "cryptoboard: a terminal dashboard of cryptocurrency prices ranked by market cap",
		Version: ver,
		Example: rootCmdExample,
		Args:    cobra.NoArgs,
		Annotations: map[string]string{
			annotationOwnsTerminal: "true",
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadConfig(cmd); err != nil {
				return err
			}
			result := setupLogging(cmd)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return cleanupLogging(logResult)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDashboard(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.Bool("debug", false, "enable debug logging")
	flags.String("config", "", "path to config file (default $CRYPTOBOARD_HOME/config.yaml)")
	flags.Int("per-page", 0, "number of assets to fetch (overrides config)")
	flags.Duration("interval", 0, "refresh interval (overrides config)")
	flags.String("error-mode", "", "failure presentation: banner or panel (overrides config)")

	cmd.AddCommand(NewDashboardCmd(), NewSnapshotCmd(), newConfigCmd())

	return cmd
}

const rootCmdExample = `  # Open the live dashboard
  cryptoboard

  # Refresh every 30 seconds and show failures in a full panel
  cryptoboard --interval 30s --error-mode panel

  # Print the top assets by 24h change once and exit
  cryptoboard snapshot --sort change_24h:desc

  # Emit the current list as JSON
  cryptoboard snapshot --output json

  # Initialize configuration
  cryptoboard config init`

// newConfigCmd creates the config command group.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:         "config",
		Short:       "Configuration management commands",
		Annotations: map[string]string{annotationSkipConfig: "true"},
	}
	cmd.AddCommand(NewConfigInitCmd(), NewConfigShowCmd(), NewConfigValidateCmd(), NewConfigPathCmd())
	return cmd
}

// loadConfig resolves the layered configuration and stores it globally.
// Commands annotated with annotationSkipConfig fall back to defaults when
// loading fails so they can report the problem themselves.
func loadConfig(cmd *cobra.Command) error {
	path, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(path)
	if err != nil {
		if !skipsConfig(cmd) {
			return err
		}
		cfg = config.New()
	}
	if err = applyFlagOverrides(cmd, cfg); err != nil {
		return err
	}

	config.SetGlobalConfig(cfg)
	return nil
}

// applyFlagOverrides copies explicitly set flags over the loaded config.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	changed := false

	if flags.Changed("per-page") {
		cfg.API.PerPage, _ = flags.GetInt("per-page")
		changed = true
	}
	if flags.Changed("interval") {
		var interval time.Duration
		interval, _ = flags.GetDuration("interval")
		cfg.Refresh.Interval = interval
		changed = true
	}
	if flags.Changed("error-mode") {
		cfg.Display.ErrorMode, _ = flags.GetString("error-mode")
		changed = true
	}

	if !changed {
		return nil
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flag value: %w", err)
	}
	return nil
}

// skipsConfig reports whether cmd or one of its parents carries annotationSkipConfig.
func skipsConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[annotationSkipConfig] == "true" {
			return true
		}
	}
	return false
}

// ownsTerminal reports whether cmd draws a full-screen UI.
func ownsTerminal(cmd *cobra.Command) bool {
	return cmd.Annotations[annotationOwnsTerminal] == "true"
}
