package cli

import (
	envparse "github.com/caarlos0/env/v11"

	"github.com/codex-k8s/templatectl/internal/env"
)

// baseEnv holds root CLI defaults sourced from TEMPLATECTL_* env vars.
type baseEnv struct {
	// ConfigPath is the templatectl.yaml path from TEMPLATECTL_CONFIG.
	ConfigPath string `env:"TEMPLATECTL_CONFIG"`
	// LogLevel is the logging level from TEMPLATECTL_LOG_LEVEL.
	LogLevel string `env:"TEMPLATECTL_LOG_LEVEL"`
}

// stepEnv overrides the step section of the config.
// It is parsed from the process environment merged with env files and --vars.
type stepEnv struct {
	// Message switches to the message step from TEMPLATECTL_MESSAGE.
	Message string `env:"TEMPLATECTL_MESSAGE"`
	// Times is the repeat count from TEMPLATECTL_TIMES.
	Times int `env:"TEMPLATECTL_TIMES"`
}

// parseEnv fills target from the process environment.
func parseEnv(target any) error {
	return envparse.Parse(target)
}

// parseEnvFrom fills target from vars instead of the process environment.
func parseEnvFrom(vars env.Vars, target any) error {
	return envparse.ParseWithOptions(target, envparse.Options{Environment: vars})
}
