package cmd

import (
	"github.com/rotorpost/rotorpost/core"
	"github.com/rotorpost/rotorpost/internal/contract"
	"github.com/spf13/cobra"
)

// plotCmd renders figures for the requested output keys.
var plotCmd = &cobra.Command{
	Use:   "plot [case-root]",
	Short: "Render time-history and spanwise-profile figures.",
	Long: `Render figures for the requested output keys: scalar histories become
time-history plots, spanwise keys become per-station profile plots at the
--at instants (or the last sample when no instants are given).

Figures land in --fig-dir as '<case>_<key>_history.<ext>' and
'<case>_<key>_profile_t<t>.<ext>'. With --terminal the same data renders
as quick-look ASCII charts on stdout instead, handy over SSH.

Examples:
  # Thrust, torque and power histories as PNGs
  rotorpost plot ~/cases/nrel5mw

  # Profile figures at two instants, as SVG
  rotorpost plot --keys alpha --at 600,900 --fig-format svg

  # Quick look without leaving the terminal
  rotorpost plot --keys thrust --window 300: --terminal`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecutePlot(rootCtx, cfg, archiveManager); err != nil {
			contract.LogFatal("Cannot render figures", err)
		}
	},
}
