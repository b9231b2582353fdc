package schema

import "time"

// ArchiveStatus represents the status of the archive store.
type ArchiveStatus struct {
	Backend         string           `json:"backend"`
	Connected       bool             `json:"connected"`
	TotalRuns       int              `json:"total_runs"`
	LastRunID       int64            `json:"last_run_id"`
	LastRunTime     time.Time        `json:"last_run_time"`
	OldestRunTime   time.Time        `json:"oldest_run_time"`
	TotalSeriesRows int              `json:"total_series_rows"`
	TableSizes      map[string]int64 `json:"table_sizes"`
}

// RunRecord represents a row from the rotorpost_runs table.
type RunRecord struct {
	RunID         int64
	StartTime     time.Time
	EndTime       *time.Time
	RunDurationMs *int32
	CaseRoot      string
	Command       string
	TotalSeries   int32
	ConfigParams  *string
}

// SeriesStatsRecord represents a row from the rotorpost_series_stats table.
type SeriesStatsRecord struct {
	RunID      int64
	CaseRoot   string
	Key        string
	RecordedAt time.Time
	WindowLo   float64
	WindowHi   float64
	Count      int32
	Mean       float64
	Std        float64
	Min        float64
	Max        float64
	Unit       string
}
