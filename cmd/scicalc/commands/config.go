package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
	}
	var format string
	show := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Long:  "Display the configuration after merging defaults, the configuration file, and the environment.",
		Args:  cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			b, err := a.cfg.Marshal(format)
			if err != nil {
				return err
			}
			if format == "toml" {
				fmt.Fprintln(cmd.OutOrStdout(), "# scicalc configuration")
			}
			_, err = cmd.OutOrStdout().Write(b)
			return err
		}),
	}
	show.Flags().StringVar(&format, "format", "toml", "Output format: toml, json, yaml")
	cmd.AddCommand(show)
	return cmd
}
