package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"termtest/internal/config"
	"termtest/internal/script"
)

func newListCommand() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "list [script-paths...]",
		Short: "List the scripts a run would replay, in replay order",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, configPath, args)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", ".termtest.toml", "harness config file")
	return cmd
}

func runList(cmd *cobra.Command, configPath string, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	files, err := script.Locate(cfg.ScriptsRoot, args, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	for _, file := range files {
		fmt.Fprintln(cmd.OutOrStdout(), script.ShortName(cfg.ScriptsRoot, file))
	}
	return nil
}
