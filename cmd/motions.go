package cmd

import (
	"github.com/rotorpost/rotorpost/core"
	"github.com/rotorpost/rotorpost/internal/contract"
	"github.com/spf13/cobra"
)

// motionsCmd summarizes the platform motion histories of a case.
var motionsCmd = &cobra.Command{
	Use:   "motions [case-root]",
	Short: "Summarize the platform attitude and translation histories.",
	Long: `Read the platform motion histories of a floating case and print windowed
statistics for each one.

Defaults to roll, pitch, yaw, surge, sway and heave; use --keys to pick a
subset. Useful for:
- Checking mean heel and trim of a floating platform
- Quantifying motion amplitudes in a given sea state
- Confirming a mooring change actually reduced excursions

Examples:
  # All six degrees of freedom over the whole run
  rotorpost motions ~/cases/floater

  # Pitch and surge only, after the transient
  rotorpost motions --keys pitch,surge --window 300:

  # JSON for downstream scripting
  rotorpost motions --output json --output-file motions.json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteMotions(rootCtx, cfg, archiveManager); err != nil {
			contract.LogFatal("Cannot summarize motions", err)
		}
	},
}
