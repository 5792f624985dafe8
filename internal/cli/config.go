package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/cryptoboard/internal/config"
)

// NewConfigInitCmd creates the config init command for initializing configuration.
func NewConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file with default values",
		Long: `Creates a new configuration file with default values at
$CRYPTOBOARD_HOME/config.yaml (default ~/.cryptoboard/config.yaml).`,
		Example: `  # Create configuration
  cryptoboard config init

  # Create configuration, overwriting existing
  cryptoboard config init --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := config.GetConfigPath()
			if err != nil {
				return err
			}

			if err = config.New().Save(path, force); err != nil {
				if errors.Is(err, config.ErrConfigExists) {
					return errors.New("configuration file already exists, use --force to overwrite")
				}
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			logger.Info().Ctx(cmd.Context()).Str("path", path).Msg("configuration initialized")
			cmd.Printf("Configuration initialized successfully\n")
			cmd.Printf("Configuration file: %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")

	return cmd
}

// NewConfigValidateCmd creates the config validate command.
func NewConfigValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration",
		Long:  "Loads the configuration file, .env file and environment, and reports any invalid value.",
		Example: `  # Validate the default configuration
  cryptoboard config validate

  # Validate a specific file
  cryptoboard config validate --config ./cryptoboard.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, _ := cmd.Flags().GetString("config")

			cfg, err := config.Load(path)
			if err != nil {
				cmd.Printf("❌ Configuration is invalid\n")
				return err
			}

			cmd.Printf("✅ Configuration is valid\n")
			cmd.Printf("   Endpoint: %s (%s, %d per page)\n", cfg.API.BaseURL, cfg.API.VsCurrency, cfg.API.PerPage)
			cmd.Printf("   Refresh: every %s\n", cfg.Refresh.Interval)
			cmd.Printf("   Errors: %s\n", cfg.Display.ErrorMode)
			return nil
		},
	}
}

// NewConfigShowCmd creates the config show command, which prints the
// effective configuration as YAML.
func NewConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := config.GetGlobalConfig().YAML()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

// NewConfigPathCmd creates the config path command.
func NewConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := config.GetConfigPath()
			if err != nil {
				return err
			}
			cmd.Println(path)
			return nil
		},
	}
}
