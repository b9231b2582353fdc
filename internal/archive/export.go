package archive

import (
	"errors"
	"fmt"

	"github.com/rotorpost/rotorpost/internal/parquet"
)

// ExecuteArchiveExport performs the actual export of archive data to Parquet files.
func ExecuteArchiveExport(outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	// Get the run store
	store := Manager.GetRunStore()

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get archive status: %w", err)
	}

	if status.TotalRuns == 0 {
		return errors.New("no archive data found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total runs: %d\n", status.TotalRuns)
	fmt.Printf("Total series records: %d\n", status.TableSizes[seriesStatsTable])

	// Retrieve all runs
	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve runs: %w", err)
	}

	// Retrieve all series stats
	seriesStats, err := store.GetAllSeriesStats()
	if err != nil {
		return fmt.Errorf("failed to retrieve series stats: %w", err)
	}

	// Convert to Parquet format
	parquetRuns := parquet.ConvertRunRecords(runs)
	parquetSeriesStats := parquet.ConvertSeriesStatsRecords(seriesStats)

	// Write runs to Parquet
	runsFile := outputFile + ".runs.parquet"
	if err := parquet.WriteRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write runs: %w", err)
	}
	fmt.Printf("Exported %d runs to: %s\n", len(parquetRuns), runsFile)

	// Write series stats to Parquet
	seriesStatsFile := outputFile + ".series_stats.parquet"
	if err := parquet.WriteSeriesStatsParquet(parquetSeriesStats, seriesStatsFile); err != nil {
		return fmt.Errorf("failed to write series stats: %w", err)
	}
	fmt.Printf("Exported %d series records to: %s\n", len(parquetSeriesStats), seriesStatsFile)

	fmt.Println("\nExport complete! The Parquet files can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Apache Arrow")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}
