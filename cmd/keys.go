package cmd

import (
	"github.com/rotorpost/rotorpost/core"
	"github.com/rotorpost/rotorpost/internal/contract"
	"github.com/spf13/cobra"
)

// keysCmd lists the output vocabulary discovered in a case.
var keysCmd = &cobra.Command{
	Use:   "keys [case-root]",
	Short: "List the output keys available in a case.",
	Long: `Discover which turbine output keys the case wrote and show what each one
measures.

The vocabulary is whatever the solver put on disk: every file found in the
selected time directories is addressable, and known keys are annotated with
their kind, unit and label. Keys outside the catalog still load; they just
print without a unit.

Examples:
  # What did this run write?
  rotorpost keys ~/cases/nrel5mw

  # Vocabulary of a specific restart directory
  rotorpost keys --time-dir exact --time-dir-value 1200`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteKeys(rootCtx, cfg, archiveManager); err != nil {
			contract.LogFatal("Cannot list case keys", err)
		}
	},
}
