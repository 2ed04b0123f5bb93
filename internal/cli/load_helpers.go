package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/codex-k8s/templatectl/internal/config"
	"github.com/codex-k8s/templatectl/internal/env"
	"github.com/codex-k8s/templatectl/internal/logging"
)

// loadConfigFromCmd loads the config file and applies env var and --vars overrides.
// Command-specific flags are applied by the caller.
func loadConfigFromCmd(opts *Options, cmd *cobra.Command) (config.Config, error) {
	cfg, vars, err := config.Load(opts.ConfigPath, config.LoadOptions{Required: opts.configExplicit})
	if err != nil {
		return cfg, err
	}

	if flag := cmd.Flag("vars"); flag != nil {
		inline, err := env.ParseInlineVars(flag.Value.String())
		if err != nil {
			return cfg, err
		}
		vars = env.Merge(vars, inline)
	}

	var overrides stepEnv
	if err := parseEnvFrom(vars, &overrides); err != nil {
		return cfg, fmt.Errorf("parse TEMPLATECTL_* vars: %w", err)
	}
	if overrides.Message != "" {
		cfg.Step = config.StepConfig{Kind: config.StepKindMessage, Message: overrides.Message}
	}
	if overrides.Times != 0 {
		cfg.Times = overrides.Times
	}

	if !opts.levelExplicit && cfg.LogLevel != "" {
		opts.LogLevel = logging.ParseLevel(cfg.LogLevel)
		withLogger(cmd, logging.NewLogger(cmd.ErrOrStderr(), opts.LogLevel))
	}
	cfg.LogLevel = opts.LogLevel.String()

	LoggerFromContext(cmd.Context()).Debug("config loaded",
		"path", opts.ConfigPath,
		"step", cfg.Step.Kind,
		"times", cfg.Times,
	)
	return cfg, nil
}

func addVarsFlags(cmd *cobra.Command) {
	cmd.Flags().String("vars", "", "Additional TEMPLATECTL_* variables in k=v,k2=v2 format")
}
