package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newConfigCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Long: `config prints the configuration a run would use after applying the
--config file and flags. The output is a valid --config file.

When the path cannot reach the configured ceiling inside the raster, a
trailing comment gives the ceiling a run actually stops at.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if err := writeConfig(out, a.cfg); err != nil {
				return err
			}
			ceiling, err := a.cfg.EffectiveCeiling()
			if err != nil {
				return err
			}
			if ceiling < a.cfg.Ceiling {
				_, err = fmt.Fprintf(out, "# ceiling clamped to %d: the %s path leaves the %dx%d raster after that\n",
					ceiling, a.cfg.Path, a.cfg.Width, a.cfg.Height)
			}
			return err
		},
	}
}
