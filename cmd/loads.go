package cmd

import (
	"github.com/rotorpost/rotorpost/core"
	"github.com/rotorpost/rotorpost/internal/contract"
	"github.com/spf13/cobra"
)

// loadsCmd summarizes the integrated rotor load histories of a case.
var loadsCmd = &cobra.Command{
	Use:   "loads [case-root]",
	Short: "Summarize the integrated rotor load histories (thrust, torque, power).",
	Long: `Read the integrated rotor load histories of a finished case and print
windowed statistics for each one.

Defaults to thrust, torqueRotor and powerRotor; use --keys to pick others.
Each series reports sample count, first/last value, mean, standard deviation
and the min/max over the selected window, helping you:
- Verify a run reached a converged operating point
- Compare mean loads between design variants
- Spot transients that should be cropped before averaging

Examples:
  # Mean loads of the latest time directory
  rotorpost loads ~/cases/nrel5mw

  # Discard the startup transient before averaging
  rotorpost loads ~/cases/nrel5mw --window 120:

  # Stitch restarts together and export to CSV
  rotorpost loads --time-dir combine --output csv --output-file loads.csv

  # Only thrust, read from an exact restart directory
  rotorpost loads --keys thrust --time-dir exact --time-dir-value 1200`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteLoads(rootCtx, cfg, archiveManager); err != nil {
			contract.LogFatal("Cannot summarize loads", err)
		}
	},
}
