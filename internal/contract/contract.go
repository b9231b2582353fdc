// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/rotorpost/rotorpost/schema"
)

// CaseStore defines the necessary operations for locating and parsing on-disk
// case output. It hides the turbineOutput directory convention from the rest
// of the application and is stateless: no caching, and no file handles held
// beyond a single call. This allows the reading logic to be tested without a
// real case directory.
type CaseStore interface {
	// --- Discovery ---

	// Resolve verifies that root points at a readable case and returns its
	// absolute path. A case is readable when it holds a turbineOutput
	// directory with at least one parseable time directory.
	Resolve(ctx context.Context, root string) (string, error)

	// ListTimeDirs returns the time directories of the case in ascending
	// start-time order.
	ListTimeDirs(ctx context.Context, root string) ([]schema.TimeDir, error)

	// ListKeys returns the output keys available in the time directories
	// selected by the store's policy, sorted and deduplicated.
	ListKeys(ctx context.Context, root string) ([]string, error)

	// --- Loading ---

	// ReadOutput locates and parses the output file for key, applying the
	// store's time directory selection policy. The returned arrays are
	// owned by the caller.
	ReadOutput(ctx context.Context, root string, key string) (*schema.RawOutput, error)
}

// ArchiveManager defines the interface for managing the archive store.
// This allows the archive layer to be mocked for testing.
type ArchiveManager interface {
	GetRunStore() RunStore
}

// RunStore defines the interface for tracking runs and storing windowed
// series statistics outside the case directory.
type RunStore interface {
	// BeginRun creates a new run record and returns its unique ID
	BeginRun(startTime time.Time, caseRoot string, command string, configParams map[string]any) (int64, error)

	// EndRun updates the run record with completion data
	EndRun(runID int64, endTime time.Time, totalSeries int) error

	// RecordSeriesStats stores windowed statistics for one series
	RecordSeriesStats(runID int64, caseRoot string, stats schema.SeriesStats) error

	// ListRuns returns the most recent run records, newest first
	ListRuns(limit int) ([]schema.RunRecord, error)

	// ListSeriesStats returns the stats rows recorded for a run
	ListSeriesStats(runID int64) ([]schema.SeriesStatsRecord, error)

	// GetAllRuns retrieves every run record in ascending run order
	GetAllRuns() ([]schema.RunRecord, error)

	// GetAllSeriesStats retrieves every stats row ordered by run and key
	GetAllSeriesStats() ([]schema.SeriesStatsRecord, error)

	// GetStatus returns status information about the archive store
	GetStatus() (schema.ArchiveStatus, error)

	// Clear removes all runs and stats rows
	Clear() error

	// Close closes the underlying connection
	Close() error
}
