package parquet

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/rotorpost/rotorpost/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunStructTags(t *testing.T) {
	// Verify struct tags are properly defined for parquet schema inference
	sch := parquet.SchemaOf(new(Run))
	require.NotNil(t, sch)

	// Check that all expected columns exist
	expectedColumns := []string{
		"run_id",
		"start_time",
		"end_time",
		"run_duration_ms",
		"case_root",
		"command",
		"total_series",
		"config_params",
	}

	for _, colName := range expectedColumns {
		col, ok := sch.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestSeriesStatsStructTags(t *testing.T) {
	// Verify struct tags are properly defined for parquet schema inference
	sch := parquet.SchemaOf(new(SeriesStats))
	require.NotNil(t, sch)

	// Check that all expected columns exist
	expectedColumns := []string{
		"run_id",
		"case_root",
		"series_key",
		"recorded_at",
		"window_lo",
		"window_hi",
		"sample_count",
		"mean",
		"std",
		"min_value",
		"max_value",
		"unit",
	}

	for _, colName := range expectedColumns {
		col, ok := sch.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestResultRowStructTags(t *testing.T) {
	// The result row types share the series_key column so exported files
	// join cleanly against the archive tables.
	tests := []struct {
		name    string
		sch     *parquet.Schema
		columns []string
	}{
		{
			name:    "stat row",
			sch:     parquet.SchemaOf(new(StatRow)),
			columns: []string{"case_root", "series_key", "unit", "sample_count", "mean", "std", "min_value", "max_value", "first_value", "last_value", "window_lo", "window_hi"},
		},
		{
			name:    "profile row",
			sch:     parquet.SchemaOf(new(ProfileRow)),
			columns: []string{"case_root", "series_key", "target_time", "actual_time", "blade", "station", "radius", "value", "unit"},
		},
		{
			name:    "phase bin row",
			sch:     parquet.SchemaOf(new(PhaseBinRow)),
			columns: []string{"case_root", "series_key", "frequency_hz", "center_deg", "sample_count", "mean", "std"},
		},
		{
			name:    "key row",
			sch:     parquet.SchemaOf(new(KeyRow)),
			columns: []string{"series_key", "kind", "unit", "label"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.NotNil(t, tc.sch)
			for _, colName := range tc.columns {
				_, ok := tc.sch.Lookup(colName)
				require.True(t, ok, "Column %s should exist in schema", colName)
			}
		})
	}
}

func TestWriteRunsParquet(t *testing.T) {
	// Create temporary directory for test output
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "runs.parquet")

	// Get mock data
	data := MockFetchRuns()
	require.NotEmpty(t, data, "Mock data should not be empty")

	// Write data to Parquet file
	err := WriteRunsParquet(data, outputPath)
	require.NoError(t, err, "Writing Parquet file should not produce error")

	// Verify file was created
	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Output file should not be empty")

	// Read back and verify data
	file, err := os.Open(outputPath)
	require.NoError(t, err, "Should be able to open output file")
	defer file.Close()

	reader := parquet.NewGenericReader[Run](file)
	defer reader.Close()

	// Read all rows
	readData := make([]Run, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err, "Should be able to read data")
	}
	assert.Equal(t, len(data), n, "Should read all records")

	// Verify data integrity
	for i := 0; i < len(data); i++ {
		assert.Equal(t, data[i].RunID, readData[i].RunID, "RunID should match")
		assert.Equal(t, data[i].CaseRoot, readData[i].CaseRoot, "CaseRoot should match")
		assert.Equal(t, data[i].Command, readData[i].Command, "Command should match")
		assert.Equal(t, data[i].TotalSeries, readData[i].TotalSeries, "TotalSeries should match")

		// Check nullable fields
		if data[i].EndTime == nil {
			assert.Nil(t, readData[i].EndTime, "EndTime should be nil")
		} else {
			require.NotNil(t, readData[i].EndTime, "EndTime should not be nil")
			assert.WithinDuration(t, *data[i].EndTime, *readData[i].EndTime, time.Nanosecond, "EndTime should match within nanosecond precision")
		}

		if data[i].RunDurationMs == nil {
			assert.Nil(t, readData[i].RunDurationMs, "RunDurationMs should be nil")
		} else {
			require.NotNil(t, readData[i].RunDurationMs, "RunDurationMs should not be nil")
			assert.Equal(t, *data[i].RunDurationMs, *readData[i].RunDurationMs, "RunDurationMs should match")
		}

		if data[i].ConfigParams == nil {
			assert.Nil(t, readData[i].ConfigParams, "ConfigParams should be nil")
		} else {
			require.NotNil(t, readData[i].ConfigParams, "ConfigParams should not be nil")
			assert.Equal(t, *data[i].ConfigParams, *readData[i].ConfigParams, "ConfigParams should match")
		}
	}
}

func TestWriteSeriesStatsParquet(t *testing.T) {
	// Create temporary directory for test output
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "series_stats.parquet")

	// Get mock data
	data := MockFetchSeriesStats()
	require.NotEmpty(t, data, "Mock data should not be empty")

	// Write data to Parquet file
	err := WriteSeriesStatsParquet(data, outputPath)
	require.NoError(t, err, "Writing Parquet file should not produce error")

	// Verify file was created
	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Output file should not be empty")

	// Read back and verify data
	file, err := os.Open(outputPath)
	require.NoError(t, err, "Should be able to open output file")
	defer file.Close()

	reader := parquet.NewGenericReader[SeriesStats](file)
	defer reader.Close()

	// Read all rows
	readData := make([]SeriesStats, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err, "Should be able to read data")
	}
	assert.Equal(t, len(data), n, "Should read all records")

	// Verify data integrity
	for i := 0; i < len(data); i++ {
		assert.Equal(t, data[i].RunID, readData[i].RunID, "RunID should match")
		assert.Equal(t, data[i].CaseRoot, readData[i].CaseRoot, "CaseRoot should match")
		assert.Equal(t, data[i].Key, readData[i].Key, "Key should match")
		assert.Equal(t, data[i].Count, readData[i].Count, "Count should match")
		assert.Equal(t, data[i].Unit, readData[i].Unit, "Unit should match")
		assert.InDelta(t, data[i].WindowLo, readData[i].WindowLo, 1e-9, "WindowLo should match")
		assert.InDelta(t, data[i].WindowHi, readData[i].WindowHi, 1e-9, "WindowHi should match")
		assert.InDelta(t, data[i].Mean, readData[i].Mean, 1e-9, "Mean should match")
		assert.InDelta(t, data[i].Std, readData[i].Std, 1e-9, "Std should match")
		assert.InDelta(t, data[i].Min, readData[i].Min, 1e-9, "Min should match")
		assert.InDelta(t, data[i].Max, readData[i].Max, 1e-9, "Max should match")
		assert.WithinDuration(t, data[i].RecordedAt, readData[i].RecordedAt, time.Nanosecond, "RecordedAt should match within nanosecond precision")
	}
}

func TestWriteRunsParquet_EmptyData(t *testing.T) {
	// Create temporary directory for test output
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "empty_runs.parquet")

	// Write empty data
	err := WriteRunsParquet([]Run{}, outputPath)
	require.NoError(t, err, "Writing empty data should not produce error")

	// Verify file was created
	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Output file should contain schema even if empty")
}

func TestWriteRunsParquet_InvalidPath(t *testing.T) {
	// Try to write to invalid path
	data := MockFetchRuns()
	err := WriteRunsParquet(data, "/nonexistent/directory/output.parquet")
	require.Error(t, err, "Writing to invalid path should produce error")
}

func TestMockFetchRuns(t *testing.T) {
	data := MockFetchRuns()
	require.NotEmpty(t, data, "Mock data should not be empty")
	assert.Len(t, data, 3, "Should return 3 mock records")

	// Verify the structure of mock data
	assert.Equal(t, int64(1), data[0].RunID)
	assert.NotNil(t, data[0].EndTime, "First record should have EndTime")
	assert.NotNil(t, data[0].RunDurationMs, "First record should have RunDurationMs")
	assert.NotNil(t, data[0].ConfigParams, "First record should have ConfigParams")

	// Third record should have nil nullable fields
	assert.Equal(t, int64(3), data[2].RunID)
	assert.Nil(t, data[2].EndTime, "Third record should have nil EndTime")
	assert.Nil(t, data[2].RunDurationMs, "Third record should have nil RunDurationMs")
	assert.Nil(t, data[2].ConfigParams, "Third record should have nil ConfigParams")
}

func TestConvertRunRecords(t *testing.T) {
	start := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	end := start.Add(75 * time.Second)
	durationMs := int32(75000)
	config := `{"keys":"thrust"}`

	records := []schema.RunRecord{
		{
			RunID:         42,
			StartTime:     start,
			EndTime:       &end,
			RunDurationMs: &durationMs,
			CaseRoot:      "/cases/nrel5mw",
			Command:       "loads",
			TotalSeries:   1,
			ConfigParams:  &config,
		},
		{
			RunID:     43,
			StartTime: start,
			CaseRoot:  "/cases/nrel5mw",
			Command:   "motions",
		},
	}

	rows := ConvertRunRecords(records)
	require.Len(t, rows, 2)

	assert.Equal(t, int64(42), rows[0].RunID)
	assert.Equal(t, "/cases/nrel5mw", rows[0].CaseRoot)
	assert.Equal(t, "loads", rows[0].Command)
	assert.Equal(t, int32(1), rows[0].TotalSeries)
	require.NotNil(t, rows[0].EndTime)
	assert.Equal(t, end, *rows[0].EndTime)

	assert.Equal(t, int64(43), rows[1].RunID)
	assert.Nil(t, rows[1].EndTime)
	assert.Nil(t, rows[1].RunDurationMs)
	assert.Nil(t, rows[1].ConfigParams)
}

func TestConvertSeriesStatsRecords(t *testing.T) {
	recorded := time.Date(2026, 3, 14, 9, 31, 15, 0, time.UTC)

	records := []schema.SeriesStatsRecord{
		{
			RunID:      42,
			CaseRoot:   "/cases/nrel5mw",
			Key:        "thrust",
			RecordedAt: recorded,
			WindowLo:   0,
			WindowHi:   4,
			Count:      5,
			Mean:       11.6,
			Std:        1.14,
			Min:        10,
			Max:        13,
			Unit:       "N",
		},
	}

	rows := ConvertSeriesStatsRecords(records)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(42), rows[0].RunID)
	assert.Equal(t, "thrust", rows[0].Key)
	assert.Equal(t, recorded, rows[0].RecordedAt)
	assert.Equal(t, int32(5), rows[0].Count)
	assert.InDelta(t, 11.6, rows[0].Mean, 1e-9)
	assert.Equal(t, "N", rows[0].Unit)
}

func TestConvertStats(t *testing.T) {
	stats := []schema.SeriesStats{
		{
			Key:      "thrust",
			Unit:     "N",
			Count:    5,
			Mean:     11.6,
			Std:      1.14,
			Min:      10,
			Max:      13,
			First:    10,
			Last:     12,
			WindowLo: 0,
			WindowHi: 4,
		},
	}

	rows := ConvertStats("/cases/nrel5mw", stats)
	require.Len(t, rows, 1)
	assert.Equal(t, "/cases/nrel5mw", rows[0].CaseRoot)
	assert.Equal(t, "thrust", rows[0].Key)
	assert.Equal(t, int32(5), rows[0].Count)
	assert.InDelta(t, 10, rows[0].First, 1e-9)
	assert.InDelta(t, 12, rows[0].Last, 1e-9)
	assert.InDelta(t, 0, rows[0].WindowLo, 1e-9)
	assert.InDelta(t, 4, rows[0].WindowHi, 1e-9)
}

func TestConvertProfiles(t *testing.T) {
	profiles := []schema.ProfileSample{
		{
			Key:      "alpha",
			Target:   0.4,
			Actual:   0,
			Blade:    1,
			Stations: []float64{1.5, 3.0},
			Values:   []float64{4.0, 4.6},
			Unit:     "deg",
		},
		{
			// Case without radiusC output: no station radii available
			Key:    "cl",
			Target: 0.4,
			Actual: 0,
			Blade:  0,
			Values: []float64{0.8, 0.9, 1.1},
		},
	}

	rows := ConvertProfiles("/cases/nrel5mw", profiles)
	require.Len(t, rows, 5, "Should emit one row per station")

	// Rows from the first profile carry radii
	assert.Equal(t, "alpha", rows[0].Key)
	assert.Equal(t, int32(1), rows[0].Blade)
	assert.Equal(t, int32(0), rows[0].Station)
	require.NotNil(t, rows[0].Radius)
	assert.InDelta(t, 1.5, *rows[0].Radius, 1e-9)
	assert.InDelta(t, 4.0, rows[0].Value, 1e-9)
	require.NotNil(t, rows[1].Radius)
	assert.InDelta(t, 3.0, *rows[1].Radius, 1e-9)

	// Rows from the second profile have nil radii
	assert.Equal(t, "cl", rows[2].Key)
	assert.Nil(t, rows[2].Radius)
	assert.Equal(t, int32(2), rows[4].Station)
	assert.InDelta(t, 1.1, rows[4].Value, 1e-9)
}

func TestConvertPhaseBins(t *testing.T) {
	avg := schema.PhaseAverageResult{
		Key:       "thrust",
		Frequency: 0.2,
		BinWidth:  90,
		Samples:   5,
		Bins: []schema.PhaseBin{
			{Center: 0, Mean: 3, Std: 2, Count: 2},
			{Center: 90, Mean: 2, Std: 0, Count: 1},
		},
	}

	rows := ConvertPhaseBins("/cases/nrel5mw", avg)
	require.Len(t, rows, 2)
	assert.Equal(t, "thrust", rows[0].Key)
	assert.InDelta(t, 0.2, rows[0].Frequency, 1e-9)
	assert.InDelta(t, 0, rows[0].Center, 1e-9)
	assert.Equal(t, int32(2), rows[0].Count)
	assert.InDelta(t, 90, rows[1].Center, 1e-9)
}

func TestConvertKeyListings(t *testing.T) {
	listings := []schema.KeyListing{
		{Key: "thrust", Kind: schema.KindLoad, Unit: "N", Label: "Rotor thrust"},
		{Key: "alpha", Kind: schema.KindSpanwise, Unit: "deg", Label: "Angle of attack"},
	}

	rows := ConvertKeyListings(listings)
	require.Len(t, rows, 2)
	assert.Equal(t, "thrust", rows[0].Key)
	assert.Equal(t, string(schema.KindLoad), rows[0].Kind)
	assert.Equal(t, "alpha", rows[1].Key)
	assert.Equal(t, "deg", rows[1].Unit)
}
