package cmd

import (
	"github.com/rotorpost/rotorpost/core"
	"github.com/rotorpost/rotorpost/internal/contract"
	"github.com/spf13/cobra"
)

// spanwiseCmd extracts blade profiles at chosen instants.
var spanwiseCmd = &cobra.Command{
	Use:   "spanwise [case-root]",
	Short: "Sample spanwise blade profiles at chosen instants.",
	Long: `Extract per-station blade profiles (angle of attack, sectional forces,
inflow velocity) at one or more target instants.

Each target resolves to the latest sample at or before it, so instants that
fall between solver writes still produce a profile. Station radii from the
radiusC geometry key are paired with the values when available. Use this to:
- Inspect the loading distribution at a specific rotor position
- Compare profiles before and after a control event
- Extract profiles for validation against experiments

Examples:
  # Angle of attack along the blade at t=600s
  rotorpost spanwise ~/cases/nrel5mw --keys alpha --at 600

  # Sectional forces at several instants, blade 0 only
  rotorpost spanwise --keys axialForce,tangentialForce --at 600,620,640 --blade 0

  # Export a profile to CSV
  rotorpost spanwise --keys Cl --at 900 --output csv --output-file cl.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSpanwise(rootCtx, cfg, archiveManager); err != nil {
			contract.LogFatal("Cannot sample spanwise profiles", err)
		}
	},
}
