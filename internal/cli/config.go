package cli

import (
	"github.com/spf13/cobra"
)

// newConfigCommand creates the "config" command group.
func newConfigCommand(opts *Options) *cobra.Command {
	return newGroupCommand("config", "Inspect templatectl configuration",
		newConfigShowCommand(opts),
	)
}

// newConfigShowCommand prints the effective configuration after env overrides.
func newConfigShowCommand(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfigFromCmd(opts, cmd)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			out, err := cfg.Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	addVarsFlags(cmd)
	return cmd
}
