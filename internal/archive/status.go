package archive

import (
	"fmt"

	"github.com/rotorpost/rotorpost/schema"
)

// Number of recent runs shown by the status command.
const recentRunsShown = 5

// PrintArchiveStatus prints archive status information.
func PrintArchiveStatus(status schema.ArchiveStatus) {
	fmt.Printf("Archive Backend: %s\n", status.Backend)
	fmt.Printf("Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	fmt.Printf("Total Runs: %d\n", status.TotalRuns)
	if status.TotalRuns > 0 {
		fmt.Printf("Last Run ID: %d\n", status.LastRunID)
		fmt.Printf("Last Run: %s\n", status.LastRunTime.Format("2006-01-02 15:04:05"))
		fmt.Printf("Oldest Run: %s\n", status.OldestRunTime.Format("2006-01-02 15:04:05"))
		fmt.Printf("Total Series Recorded: %d\n", status.TotalSeriesRows)
	}
	fmt.Println("Table Sizes:")
	for table, size := range status.TableSizes {
		fmt.Printf("  %s: %d rows\n", table, size)
	}
}

// PrintRecentRuns prints a short listing of the most recent runs.
func PrintRecentRuns(records []schema.RunRecord) {
	if len(records) == 0 {
		return
	}
	fmt.Println("Recent Runs:")
	for _, record := range records {
		duration := "running"
		if record.RunDurationMs != nil {
			duration = fmt.Sprintf("%dms", *record.RunDurationMs)
		}
		fmt.Printf("  #%d %s %s (%d series, %s) at %s\n",
			record.RunID, record.Command, record.CaseRoot,
			record.TotalSeries, duration,
			record.StartTime.Format("2006-01-02 15:04:05"))
	}
}

// ExecuteArchiveStatus prints the store status plus the most recent runs.
func ExecuteArchiveStatus() error {
	store := Manager.GetRunStore()

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get archive status: %w", err)
	}

	PrintArchiveStatus(status)

	if status.TotalRuns > 0 {
		records, err := store.ListRuns(recentRunsShown)
		if err != nil {
			return fmt.Errorf("failed to list recent runs: %w", err)
		}
		PrintRecentRuns(records)
	}

	return nil
}
