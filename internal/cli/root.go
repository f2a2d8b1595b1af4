package cli

import (
	"github.com/spf13/cobra"

	"termtest/internal/version"
)

func Execute() error {
	return newRootCommand().Execute()
}

func newRootCommand() *cobra.Command {
	opts := newRunOptions()
	cmd := &cobra.Command{
		Use:           "termtest [script-paths...]",
		Short:         "Replay recorded routine scripts against the terminal and report failures",
		Version:       version.String(),
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, opts, args)
		},
	}
	opts.register(cmd)

	cmd.AddCommand(
		newListCommand(),
		newVersionCommand(),
	)

	return cmd
}
