package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/codex-k8s/templatectl/internal/config"
	"github.com/codex-k8s/templatectl/internal/logging"
	"github.com/codex-k8s/templatectl/internal/process"
)

// newRunCommand creates the "run" subcommand that drives the process skeleton.
func newRunCommand(opts *Options) *cobra.Command {
	var (
		message string
		times   int
		toLog   bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the process skeleton with the configured step",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfigFromCmd(opts, cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("message") {
				cfg.Step = config.StepConfig{Kind: config.StepKindMessage, Message: message}
			}
			if cmd.Flags().Changed("times") {
				cfg.Times = times
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger := LoggerFromContext(cmd.Context())
			out := cmd.OutOrStdout()
			if toLog {
				out = logging.NewWriter(logger, "step output")
			}

			p := process.New(newStep(cfg.Step, out), process.WithLogger(logger))
			for i := range cfg.Times {
				if err := p.ProcessDoSomething(); err != nil {
					return fmt.Errorf("process run %d of %d: %w", i+1, cfg.Times, err)
				}
			}
			logger.Debug("process finished", "step", cfg.Step.Kind, "times", cfg.Times)
			return nil
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "Replace the default step with one printing this message")
	cmd.Flags().IntVarP(&times, "times", "n", 1, "Number of times to run the process")
	cmd.Flags().BoolVar(&toLog, "to-log", false, "Send step output to the log instead of stdout")
	addVarsFlags(cmd)

	return cmd
}

// newStep maps a validated step config onto a process.Step writing to out.
func newStep(sc config.StepConfig, out io.Writer) process.Step {
	if sc.Kind == config.StepKindMessage {
		return process.MessageStep{Out: out, Text: sc.Message}
	}
	return process.DefaultStep{Out: out}
}
