package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rshade/cryptoboard/internal/config"
	"github.com/rshade/cryptoboard/internal/logging"
)

// setupLogging configures logging based on config file, environment, and CLI flags.
//
// Commands that own the terminal never log to stderr: without a configured
// file they log to the default file under the config directory, and when no
// file can be opened logging is disabled.
func setupLogging(cmd *cobra.Command) logging.LogPathResult {
	loggingCfg := config.GetLoggingConfig()
	fullScreen := ownsTerminal(cmd)

	debug, _ := cmd.Flags().GetBool("debug")
	if debug {
		loggingCfg.Level = "debug"
		if !fullScreen {
			loggingCfg.Format = "console"
			loggingCfg.File = ""
		}
	}

	if fullScreen && loggingCfg.File == "" {
		if path, err := config.DefaultLogFile(); err == nil {
			loggingCfg.File = path
		}
	}

	result := logging.NewLoggerWithPath(loggingCfg.ToLoggingConfig())

	if result.UsingFile {
		if debug {
			logging.PrintLogPathMessage(cmd.ErrOrStderr(), result.FilePath)
		}
	} else if result.FallbackUsed {
		logging.PrintFallbackWarning(cmd.ErrOrStderr(), result.FallbackReason)
	}
	if fullScreen && !result.UsingFile {
		result.Logger = zerolog.Nop()
	}

	logger = logging.ComponentLogger(result.Logger, "cli")

	ctx := cmd.Context()
	traceID := logging.GetOrGenerateTraceID(ctx)
	ctx = logging.ContextWithTraceID(ctx, traceID)
	ctx = logger.WithContext(ctx)
	cmd.SetContext(ctx)

	logger.Info().Ctx(ctx).Str("command", cmd.Name()).Msg("command started")

	return result
}

// cleanupLogging closes the log file handle, if any.
func cleanupLogging(logResult *logging.LogPathResult) error {
	if logResult != nil {
		return logResult.Close()
	}
	return nil
}
