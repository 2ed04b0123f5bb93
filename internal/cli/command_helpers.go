package cli

import "github.com/spf13/cobra"

// newGroupCommand builds a cobra.Command that only groups subcommands.
func newGroupCommand(use, short string, subcommands ...*cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
	}
	cmd.AddCommand(subcommands...)
	return cmd
}
