// Package cli defines the command-line interface for templatectl.
package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/codex-k8s/templatectl/internal/logging"
)

const (
	// defaultConfigPath is the config file looked up when none is given; it may be absent.
	defaultConfigPath = "templatectl.yaml"
)

// Options carries the global flags resolved by the root command.
type Options struct {
	ConfigPath string
	LogLevel   logging.Level

	// configExplicit is set when the config path came from a flag or env var.
	configExplicit bool
	// levelExplicit is set when the log level came from a flag or env var.
	levelExplicit bool
}

// Execute runs templatectl with args. logger is used until the log level is resolved.
func Execute(args []string, logger *slog.Logger) error {
	if logger == nil {
		logger = defaultLogger()
	}

	cmd := newRootCommand(&Options{ConfigPath: defaultConfigPath, LogLevel: logging.LevelInfo}, logger)
	cmd.SetArgs(args)
	return cmd.Execute()
}

// newRootCommand constructs the root cobra.Command with global flags and subcommands.
func newRootCommand(opts *Options, logger *slog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "templatectl",
		Short:         "templatectl runs a fixed process skeleton around a pluggable step",
		Long:          "templatectl runs a fixed process skeleton whose single step is selected by flags, TEMPLATECTL_* env vars or templatectl.yaml.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var base baseEnv
			if err := parseEnv(&base); err != nil {
				return err
			}

			flags := cmd.Flags()
			switch {
			case flags.Changed("config"):
				opts.configExplicit = true
			case base.ConfigPath != "":
				opts.ConfigPath = base.ConfigPath
				opts.configExplicit = true
			}

			levelText := ""
			switch {
			case flags.Changed("log-level"):
				levelText = cmd.Flag("log-level").Value.String()
			case base.LogLevel != "":
				levelText = base.LogLevel
			}
			if levelText != "" {
				opts.LogLevel = logging.ParseLevel(levelText)
				opts.levelExplicit = true
			}

			logger = logging.NewLogger(cmd.ErrOrStderr(), opts.LogLevel)
			withLogger(cmd, logger)
			logger.Debug("logger initialized", "level", opts.LogLevel)
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", defaultConfigPath, "Path to templatectl.yaml configuration file")
	cmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		newRunCommand(opts),
		newConfigCommand(opts),
	)

	return cmd
}

type loggerKey struct{}

// LoggerFromContext returns the logger set up by the root command, or an info-level stderr logger.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && l != nil {
			return l
		}
	}
	return defaultLogger()
}

func defaultLogger() *slog.Logger {
	return logging.NewLogger(os.Stderr, logging.LevelInfo)
}

// withLogger replaces the logger stored on the command context.
func withLogger(cmd *cobra.Command, logger *slog.Logger) {
	cmd.SetContext(context.WithValue(cmd.Context(), loggerKey{}, logger))
}
