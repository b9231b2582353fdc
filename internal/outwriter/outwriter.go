// Package outwriter has output and writer logic.
package outwriter

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/rotorpost/rotorpost/internal/contract"
	"github.com/rotorpost/rotorpost/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteSeriesStats prints windowed series statistics using the configured output format.
func (ow *OutWriter) WriteSeriesStats(result *schema.SeriesStatsResult, cfg *contract.Config, duration time.Duration) error {
	return WriteSeriesStatsResults(result, cfg, duration)
}

// WriteProfiles prints spanwise profile samples using the configured output format.
func (ow *OutWriter) WriteProfiles(result *schema.ProfileResult, cfg *contract.Config, duration time.Duration) error {
	return WriteProfileResults(result, cfg, duration)
}

// WritePhase prints phase average and harmonic results using the configured output format.
func (ow *OutWriter) WritePhase(result *schema.PhaseResult, cfg *contract.Config, duration time.Duration) error {
	return WritePhaseResults(result, cfg, duration)
}

// WriteKeys prints the discovered key catalog using the configured output format.
func (ow *OutWriter) WriteKeys(listings []schema.KeyListing, cfg *contract.Config, duration time.Duration) error {
	return WriteKeyResults(listings, cfg, duration)
}

// LogCaseHeader prints a concise, 2-line header for each analysis phase.
func LogCaseHeader(cfg *contract.Config) {
	caseName := filepath.Base(cfg.CaseRoot)
	if caseName == "" || caseName == "." {
		caseName = "current"
	}

	// Line 1: The case summary (case name, turbine and time directory selection)
	fmt.Printf("🔎 Case: %s (Turbine: %d, Time dirs: %s)\n", caseName, cfg.Turbine, timeDirLabel(cfg))

	// Line 2: The actual time window being analyzed
	fmt.Printf("📅 Window: %s → %s\n", formatBound(cfg.WindowLo, "start"), formatBound(cfg.WindowHi, "end"))
}

// timeDirLabel renders the time directory selection, including the target
// value for modes that take one.
func timeDirLabel(cfg *contract.Config) string {
	if _, ok := schema.TimeDirModesNeedingValue[cfg.TimeDirMode]; ok {
		return fmt.Sprintf("%s %g", cfg.TimeDirMode, cfg.TimeDirValue)
	}
	return string(cfg.TimeDirMode)
}
