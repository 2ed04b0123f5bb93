// Package config contains the loader and typed model for templatectl.yaml.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/codex-k8s/templatectl/internal/env"
)

const (
	// StepKindDefault selects the built-in step that prints the default greeting.
	StepKindDefault = "default"
	// StepKindMessage selects the step that prints Step.Message instead.
	StepKindMessage = "message"
)

// ErrInvalidConfig is returned when a loaded configuration fails validation.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the on-disk configuration of templatectl.
type Config struct {
	// EnvFiles lists .env files loaded relative to the config file directory.
	EnvFiles []string `yaml:"envFiles,omitempty"`
	// LogLevel is the default logging level (debug, info, warn, error).
	LogLevel string `yaml:"logLevel,omitempty"`
	// Times is how many times the process skeleton runs per invocation.
	Times int `yaml:"times,omitempty"`
	// Step selects the step variant plugged into the skeleton.
	Step StepConfig `yaml:"step"`
}

// StepConfig describes which step variant to run.
type StepConfig struct {
	// Kind is one of StepKindDefault or StepKindMessage.
	Kind string `yaml:"kind"`
	// Message is the line printed by the message step.
	Message string `yaml:"message,omitempty"`
}

// LoadOptions controls how Load resolves the config file.
type LoadOptions struct {
	// Required makes a missing file an error instead of falling back to defaults.
	Required bool
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel: "info",
		Times:    1,
		Step:     StepConfig{Kind: StepKindDefault},
	}
}

// Load reads the config at path, fills defaults and loads the referenced env files.
// The returned Vars are the process environment merged with the env files.
func Load(path string, opts LoadOptions) (Config, env.Vars, error) {
	cfg := Default()
	osVars := env.FromOS()

	if strings.TrimSpace(path) == "" {
		return cfg, osVars, nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return cfg, nil, fmt.Errorf("resolve config path: %w", err)
	}

	raw, err := os.ReadFile(absPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !opts.Required {
			return cfg, osVars, nil
		}
		return cfg, nil, fmt.Errorf("read config %q: %w", absPath, err)
	}

	if err := decode(raw, &cfg); err != nil {
		return cfg, nil, fmt.Errorf("parse config %q: %w", absPath, err)
	}

	fileVars, err := env.LoadEnvFiles(filepath.Dir(absPath), cfg.EnvFiles)
	if err != nil {
		return cfg, nil, err
	}

	return cfg, env.Merge(osVars, fileVars), nil
}

// decode strictly unmarshals YAML on top of the values already in cfg.
func decode(raw []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate checks that the configuration can drive a run.
func (c Config) Validate() error {
	if c.Times < 1 {
		return fmt.Errorf("%w: times must be at least 1, got %d", ErrInvalidConfig, c.Times)
	}
	switch c.Step.Kind {
	case StepKindDefault:
		if c.Step.Message != "" {
			return fmt.Errorf("%w: step.message is set but step.kind is %q, use kind %q", ErrInvalidConfig, StepKindDefault, StepKindMessage)
		}
	case StepKindMessage:
		if c.Step.Message == "" {
			return fmt.Errorf("%w: step.message is required for kind %q", ErrInvalidConfig, StepKindMessage)
		}
	default:
		return fmt.Errorf("%w: unknown step kind %q", ErrInvalidConfig, c.Step.Kind)
	}
	return nil
}

// Marshal renders the configuration as YAML.
func (c Config) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
