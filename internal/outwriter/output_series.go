package outwriter

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rotorpost/rotorpost/internal/contract"
	"github.com/rotorpost/rotorpost/internal/parquet"
	"github.com/rotorpost/rotorpost/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteSeriesStatsResults outputs the windowed statistics, dispatching based on the output format configured.
func WriteSeriesStatsResults(result *schema.SeriesStatsResult, cfg *contract.Config, duration time.Duration) error {
	// Create formatters using helper
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeStatsJSONResults(result, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeStatsCSVResults(result, cfg, fmtFloat, intFmt); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := writeStatsParquetResults(result, cfg); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeStatsTable(result, cfg, fmtFloat, intFmt, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeStatsJSONResults handles opening the file and calling the JSON writer.
func writeStatsJSONResults(result *schema.SeriesStatsResult, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSONResultsForStats(w, result)
	}, "Wrote JSON")
}

// writeStatsCSVResults handles opening the file and calling the CSV writer.
func writeStatsCSVResults(result *schema.SeriesStatsResult, cfg *contract.Config, fmtFloat func(float64) string, intFmt string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		return writeCSVResultsForStats(csvWriter, result, fmtFloat, intFmt)
	}, "Wrote CSV")
}

// writeStatsParquetResults converts the statistics to Parquet rows and
// writes them to the configured output file. Parquet has no stdout form.
func writeStatsParquetResults(result *schema.SeriesStatsResult, cfg *contract.Config) error {
	if cfg.OutputFile == "" {
		return errors.New("--output-file is required for parquet output")
	}
	rows := parquet.ConvertStats(result.CaseRoot, result.Stats)
	if err := parquet.WriteStatRowsParquet(rows, cfg.OutputFile); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "💾 Wrote Parquet to %s\n", cfg.OutputFile)
	return nil
}

// writeStatsTable generates and writes the human-readable table.
func writeStatsTable(result *schema.SeriesStatsResult, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	// 1. Define Headers
	headers := []string{"Key", "Unit", "Count", "Mean", "Std", "Min", "Max", "First", "Last"}
	table.Header(headers)

	// 2. Configure Separators/Borders to match a minimal look
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows
	var data [][]string
	for _, s := range result.Stats {
		key := s.Key
		if cfg.UseColors {
			key = contract.KeyColor.Sprint(key)
		}
		row := []string{
			key,
			s.Unit,
			fmt.Sprintf(intFmt, s.Count),
			fmtFloat(s.Mean),
			fmtFloat(s.Std),
			fmtFloat(s.Min),
			fmtFloat(s.Max),
			fmtFloat(s.First),
			fmtFloat(s.Last),
		}
		data = append(data, row)
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "Summarized %d series over window %s → %s\n",
		len(result.Stats), formatBound(cfg.WindowLo, "start"), formatBound(cfg.WindowHi, "end")); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Analysis completed in %v. Archive backend: %s\n", duration, cfg.ArchiveBackend); err != nil {
		return err
	}
	return nil
}

// writeJSONResultsForStats marshals the schema.SeriesStatsResult to JSON and writes it.
func writeJSONResultsForStats(w io.Writer, result *schema.SeriesStatsResult) error {
	return writeJSON(w, result)
}

// writeCSVResultsForStats writes the statistics in CSV format. The window
// columns carry the effective crop bounds of each series, not the requested
// ones, so downstream joins see the samples that were actually summarized.
func writeCSVResultsForStats(w *csv.Writer, result *schema.SeriesStatsResult, fmtFloat func(float64) string, intFmt string) error {
	// CSV header
	header := []string{
		"key",
		"unit",
		"count",
		"mean",
		"std",
		"min",
		"max",
		"first",
		"last",
		"window_lo",
		"window_hi",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, s := range result.Stats {
		rec := []string{
			s.Key,
			s.Unit,
			fmt.Sprintf(intFmt, s.Count),
			fmtFloat(s.Mean),
			fmtFloat(s.Std),
			fmtFloat(s.Min),
			fmtFloat(s.Max),
			fmtFloat(s.First),
			fmtFloat(s.Last),
			fmtFloat(s.WindowLo),
			fmtFloat(s.WindowHi),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}
