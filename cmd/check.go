package cmd

import (
	"github.com/rotorpost/rotorpost/core"
	"github.com/rotorpost/rotorpost/internal/contract"
	"github.com/spf13/cobra"
)

// checkCmd focused on CI-style case validation.
var checkCmd = &cobra.Command{
	Use:   "check [case-root]",
	Short: "Validate a case directory for pipelines (fails on unreadable output)",
	Long: `Validate that a case directory is complete and readable, failing with a
non-zero exit code when any rule is violated.

Checks that the case root resolves, that its time directories parse, and
that every requested key (or the whole discovered vocabulary when --keys is
omitted) loads with a consistent shape.

Use cases:
- Post-simulation gates - catch truncated or corrupt output right away
- Batch campaign sweeps - find the broken run among hundreds
- Archival validation - confirm a transferred case is intact

Examples:
  # Validate everything the run wrote
  rotorpost check ~/cases/nrel5mw

  # Only the keys a downstream report needs
  rotorpost check --keys thrust,torqueRotor,alpha,radiusC

  # Validate a combined restart chain
  rotorpost check --time-dir combine`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		// Violation reporting is done in ExecuteCheck
		if err := core.ExecuteCheck(rootCtx, cfg, archiveManager); err != nil {
			contract.LogFatal("Case check failed", err)
		}
	},
}
