// Package parquet provides data structures and functions for exporting rotorpost
// archive data and analysis results to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/rotorpost/rotorpost/schema"
)

// Run represents a single tracked analysis run with metadata.
// This struct maps to the rotorpost_runs database table.
type Run struct {
	// RunID is the unique identifier for this run
	RunID int64 `parquet:"run_id,snappy"`

	// StartTime is when the run began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the run completed (nullable, stored as TIMESTAMP with nanosecond precision)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the run in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	// CaseRoot is the absolute path of the case that was analyzed
	CaseRoot string `parquet:"case_root,snappy"`

	// Command is the rotorpost command that produced the run
	Command string `parquet:"command,snappy"`

	// TotalSeries is the number of series summarized in this run
	TotalSeries int32 `parquet:"total_series,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// SeriesStats represents the windowed statistics of one series in a run.
// This struct maps to the rotorpost_series_stats database table.
type SeriesStats struct {
	// RunID references the parent run
	RunID int64 `parquet:"run_id,snappy"`

	// CaseRoot is the absolute path of the case the series was read from
	CaseRoot string `parquet:"case_root,snappy"`

	// Key is the turbine output key of the series
	Key string `parquet:"series_key,snappy"`

	// RecordedAt is when the row was stored (stored as TIMESTAMP with nanosecond precision)
	RecordedAt time.Time `parquet:"recorded_at,snappy"`

	// WindowLo is the effective lower crop bound of the analysis window
	WindowLo float64 `parquet:"window_lo,snappy"`

	// WindowHi is the effective upper crop bound of the analysis window
	WindowHi float64 `parquet:"window_hi,snappy"`

	// Count is the number of samples inside the window
	Count int32 `parquet:"sample_count,snappy"`

	// Mean is the windowed sample mean
	Mean float64 `parquet:"mean,snappy"`

	// Std is the windowed sample standard deviation
	Std float64 `parquet:"std,snappy"`

	// Min is the smallest windowed sample
	Min float64 `parquet:"min_value,snappy"`

	// Max is the largest windowed sample
	Max float64 `parquet:"max_value,snappy"`

	// Unit is the display unit from the key catalog
	Unit string `parquet:"unit,snappy"`
}

// StatRow is one summarized series of a loads or motions invocation, used when
// the output format is parquet.
type StatRow struct {
	CaseRoot string  `parquet:"case_root,snappy"`
	Key      string  `parquet:"series_key,snappy"`
	Unit     string  `parquet:"unit,snappy"`
	Count    int32   `parquet:"sample_count,snappy"`
	Mean     float64 `parquet:"mean,snappy"`
	Std      float64 `parquet:"std,snappy"`
	Min      float64 `parquet:"min_value,snappy"`
	Max      float64 `parquet:"max_value,snappy"`
	First    float64 `parquet:"first_value,snappy"`
	Last     float64 `parquet:"last_value,snappy"`
	WindowLo float64 `parquet:"window_lo,snappy"`
	WindowHi float64 `parquet:"window_hi,snappy"`
}

// ProfileRow is one station of a sampled spanwise profile, used when the
// output format is parquet. Radius is nullable because radiusC is optional
// case output.
type ProfileRow struct {
	CaseRoot string   `parquet:"case_root,snappy"`
	Key      string   `parquet:"series_key,snappy"`
	Target   float64  `parquet:"target_time,snappy"`
	Actual   float64  `parquet:"actual_time,snappy"`
	Blade    int32    `parquet:"blade,snappy"`
	Station  int32    `parquet:"station,snappy"`
	Radius   *float64 `parquet:"radius,optional,snappy"`
	Value    float64  `parquet:"value,snappy"`
	Unit     string   `parquet:"unit,snappy"`
}

// PhaseBinRow is one bin of a phase average, used when the output format
// is parquet.
type PhaseBinRow struct {
	CaseRoot  string  `parquet:"case_root,snappy"`
	Key       string  `parquet:"series_key,snappy"`
	Frequency float64 `parquet:"frequency_hz,snappy"`
	Center    float64 `parquet:"center_deg,snappy"`
	Count     int32   `parquet:"sample_count,snappy"`
	Mean      float64 `parquet:"mean,snappy"`
	Std       float64 `parquet:"std,snappy"`
}

// KeyRow is one discovered output key with its catalog entry, used when
// the output format is parquet.
type KeyRow struct {
	Key   string `parquet:"series_key,snappy"`
	Kind  string `parquet:"kind,snappy"`
	Unit  string `parquet:"unit,snappy"`
	Label string `parquet:"label,snappy"`
}

// WriteRunsParquet writes a slice of Run structs to a Parquet file.
func WriteRunsParquet(data []Run, outputPath string) error {
	return writeRows(data, outputPath)
}

// WriteSeriesStatsParquet writes a slice of SeriesStats structs to a Parquet file.
func WriteSeriesStatsParquet(data []SeriesStats, outputPath string) error {
	return writeRows(data, outputPath)
}

// WriteStatRowsParquet writes a slice of StatRow structs to a Parquet file.
func WriteStatRowsParquet(data []StatRow, outputPath string) error {
	return writeRows(data, outputPath)
}

// WriteProfileRowsParquet writes a slice of ProfileRow structs to a Parquet file.
func WriteProfileRowsParquet(data []ProfileRow, outputPath string) error {
	return writeRows(data, outputPath)
}

// WritePhaseBinRowsParquet writes a slice of PhaseBinRow structs to a Parquet file.
func WritePhaseBinRowsParquet(data []PhaseBinRow, outputPath string) error {
	return writeRows(data, outputPath)
}

// WriteKeyRowsParquet writes a slice of KeyRow structs to a Parquet file.
func WriteKeyRowsParquet(data []KeyRow, outputPath string) error {
	return writeRows(data, outputPath)
}

// writeRows writes records of any row type to a Parquet file.
func writeRows[T any](data []T, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the row struct tags
	writer := parquet.NewGenericWriter[T](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	// The Write method accepts a variadic slice
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// MockFetchRuns generates sample Run data for demonstration.
func MockFetchRuns() []Run {
	now := time.Now()
	startTime1 := now.Add(-2 * time.Hour)
	endTime1 := startTime1.Add(90 * time.Second)
	durationMs1 := int32(endTime1.Sub(startTime1).Milliseconds())
	configParams1 := `{"keys":"thrust,torqueRotor","time_dir":"latest","window":"600:1200"}`

	startTime2 := now.Add(-24 * time.Hour)
	endTime2 := startTime2.Add(42 * time.Second)
	durationMs2 := int32(endTime2.Sub(startTime2).Milliseconds())
	configParams2 := `{"keys":"surge,sway,heave","time_dir":"combine"}`

	startTime3 := now.Add(-10 * time.Minute)
	// Note: endTime3, durationMs3, configParams3 are nil to demonstrate nullable fields

	return []Run{
		{
			RunID:         1,
			StartTime:     startTime1,
			EndTime:       &endTime1,
			RunDurationMs: &durationMs1,
			CaseRoot:      "/cases/nrel5mw_rated",
			Command:       "loads",
			TotalSeries:   3,
			ConfigParams:  &configParams1,
		},
		{
			RunID:         2,
			StartTime:     startTime2,
			EndTime:       &endTime2,
			RunDurationMs: &durationMs2,
			CaseRoot:      "/cases/nrel5mw_storm",
			Command:       "motions",
			TotalSeries:   6,
			ConfigParams:  &configParams2,
		},
		{
			RunID:         3,
			StartTime:     startTime3,
			EndTime:       nil, // Still running - nullable field
			RunDurationMs: nil, // Not yet calculated - nullable field
			CaseRoot:      "/cases/nrel5mw_rated",
			Command:       "loads",
			TotalSeries:   0,
			ConfigParams:  nil, // No config stored - nullable field
		},
	}
}

// MockFetchSeriesStats generates sample SeriesStats data for demonstration.
func MockFetchSeriesStats() []SeriesStats {
	now := time.Now()

	return []SeriesStats{
		{
			RunID:      1,
			CaseRoot:   "/cases/nrel5mw_rated",
			Key:        "thrust",
			RecordedAt: now.Add(-2 * time.Hour),
			WindowLo:   600,
			WindowHi:   1200,
			Count:      12000,
			Mean:       745832.4,
			Std:        25103.8,
			Min:        682451.0,
			Max:        801294.6,
			Unit:       "N",
		},
		{
			RunID:      1,
			CaseRoot:   "/cases/nrel5mw_rated",
			Key:        "torqueRotor",
			RecordedAt: now.Add(-2 * time.Hour),
			WindowLo:   600,
			WindowHi:   1200,
			Count:      12000,
			Mean:       4180452.7,
			Std:        310284.2,
			Min:        3322108.5,
			Max:        4954317.9,
			Unit:       "N-m",
		},
		{
			RunID:      2,
			CaseRoot:   "/cases/nrel5mw_storm",
			Key:        "pitch",
			RecordedAt: now.Add(-24 * time.Hour),
			WindowLo:   0,
			WindowHi:   3600,
			Count:      72000,
			Mean:       3.82,
			Std:        1.14,
			Min:        -0.45,
			Max:        7.93,
			Unit:       "deg",
		},
	}
}

// ConvertRunRecords converts schema.RunRecord to Run for Parquet export.
func ConvertRunRecords(records []schema.RunRecord) []Run {
	result := make([]Run, len(records))
	for i, record := range records {
		result[i] = Run{
			RunID:         record.RunID,
			StartTime:     record.StartTime,
			EndTime:       record.EndTime,
			RunDurationMs: record.RunDurationMs,
			CaseRoot:      record.CaseRoot,
			Command:       record.Command,
			TotalSeries:   record.TotalSeries,
			ConfigParams:  record.ConfigParams,
		}
	}
	return result
}

// ConvertSeriesStatsRecords converts schema.SeriesStatsRecord to SeriesStats for Parquet export.
func ConvertSeriesStatsRecords(records []schema.SeriesStatsRecord) []SeriesStats {
	result := make([]SeriesStats, len(records))
	for i, record := range records {
		result[i] = SeriesStats{
			RunID:      record.RunID,
			CaseRoot:   record.CaseRoot,
			Key:        record.Key,
			RecordedAt: record.RecordedAt,
			WindowLo:   record.WindowLo,
			WindowHi:   record.WindowHi,
			Count:      record.Count,
			Mean:       record.Mean,
			Std:        record.Std,
			Min:        record.Min,
			Max:        record.Max,
			Unit:       record.Unit,
		}
	}
	return result
}

// ConvertStats converts the summary of one loads or motions invocation to
// StatRow values for Parquet output.
func ConvertStats(caseRoot string, stats []schema.SeriesStats) []StatRow {
	result := make([]StatRow, len(stats))
	for i, s := range stats {
		result[i] = StatRow{
			CaseRoot: caseRoot,
			Key:      s.Key,
			Unit:     s.Unit,
			Count:    int32(s.Count),
			Mean:     s.Mean,
			Std:      s.Std,
			Min:      s.Min,
			Max:      s.Max,
			First:    s.First,
			Last:     s.Last,
			WindowLo: s.WindowLo,
			WindowHi: s.WindowHi,
		}
	}
	return result
}

// ConvertProfiles flattens sampled profiles into one ProfileRow per station
// for Parquet output.
func ConvertProfiles(caseRoot string, profiles []schema.ProfileSample) []ProfileRow {
	var result []ProfileRow
	for _, p := range profiles {
		for station, value := range p.Values {
			row := ProfileRow{
				CaseRoot: caseRoot,
				Key:      p.Key,
				Target:   p.Target,
				Actual:   p.Actual,
				Blade:    int32(p.Blade),
				Station:  int32(station),
				Value:    value,
				Unit:     p.Unit,
			}
			if station < len(p.Stations) {
				radius := p.Stations[station]
				row.Radius = &radius
			}
			result = append(result, row)
		}
	}
	return result
}

// ConvertPhaseBins converts a phase average to PhaseBinRow values for Parquet output.
func ConvertPhaseBins(caseRoot string, avg schema.PhaseAverageResult) []PhaseBinRow {
	result := make([]PhaseBinRow, len(avg.Bins))
	for i, bin := range avg.Bins {
		result[i] = PhaseBinRow{
			CaseRoot:  caseRoot,
			Key:       avg.Key,
			Frequency: avg.Frequency,
			Center:    bin.Center,
			Count:     int32(bin.Count),
			Mean:      bin.Mean,
			Std:       bin.Std,
		}
	}
	return result
}

// ConvertKeyListings converts key listings to KeyRow values for Parquet output.
func ConvertKeyListings(listings []schema.KeyListing) []KeyRow {
	result := make([]KeyRow, len(listings))
	for i, l := range listings {
		result[i] = KeyRow{
			Key:   l.Key,
			Kind:  string(l.Kind),
			Unit:  l.Unit,
			Label: l.Label,
		}
	}
	return result
}
