package cmd

import (
	"github.com/rotorpost/rotorpost/core"
	"github.com/rotorpost/rotorpost/internal/contract"
	"github.com/spf13/cobra"
)

// phaseCmd computes phase statistics of one series at a rotation frequency.
var phaseCmd = &cobra.Command{
	Use:   "phase [case-root]",
	Short: "Phase-average one series at a rotation frequency.",
	Long: `Bin one output series by its phase angle at a rotation frequency and
summarize each bin, plus estimate the amplitude and phase of the series at
exactly that frequency.

The phase average reveals once-per-revolution content: tower shadow, shear,
yaw misalignment. The single-frequency estimate quantifies it with one
amplitude and phase instead of a full spectrum. Use this to:
- Measure 1P thrust variation caused by wind shear
- Check whether a controller change reduced periodic loading
- Extract the azimuthal variation of a blade station's loading

Examples:
  # Thrust variation over a revolution at 0.2 Hz rotor speed
  rotorpost phase ~/cases/nrel5mw --keys thrust --frequency 0.2

  # Finer binning over a cropped window
  rotorpost phase --keys thrust --frequency 0.2 --bins 90 --window 300:900

  # Station 12 of the angle-of-attack distribution, blade 0
  rotorpost phase --keys alpha --station 12 --blade 0 --frequency 0.2`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecutePhase(rootCtx, cfg, archiveManager); err != nil {
			contract.LogFatal("Cannot run phase analysis", err)
		}
	},
}
