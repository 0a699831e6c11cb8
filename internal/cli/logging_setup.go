package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/researchfolio/pubpager/internal/config"
	"github.com/researchfolio/pubpager/internal/logging"
)

// setupLogging builds the command logger from the effective config, attaches
// a trace ID and stores both in the command context.
func setupLogging(cmd *cobra.Command, cfg *config.Config) (*logging.Result, zerolog.Logger) {
	result := logging.NewLogger(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		File:   cfg.Logging.File,
	}, cmd.ErrOrStderr())

	if result.UsingFile() {
		logging.PrintLogPathMessage(cmd.ErrOrStderr(), result.FilePath)
	} else if result.FallbackReason != "" {
		logging.PrintFallbackWarning(cmd.ErrOrStderr(), result.FallbackReason)
	}

	ctx := cmd.Context()
	traceID := logging.GetOrGenerateTraceID(ctx)
	ctx = logging.ContextWithTraceID(ctx, traceID)

	logger := result.Logger.With().Str("trace_id", traceID).Logger()
	ctx = logger.WithContext(ctx)
	cmd.SetContext(ctx)

	cliLogger := logging.ComponentLogger(logger, "cli")
	cliLogger.Debug().
		Str("command", cmd.Name()).
		Str("config_path", cfg.Path()).
		Msg("command started")

	return result, logger
}
