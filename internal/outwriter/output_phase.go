package outwriter

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/rotorpost/rotorpost/internal/contract"
	"github.com/rotorpost/rotorpost/internal/parquet"
	"github.com/rotorpost/rotorpost/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WritePhaseResults outputs the phase average and harmonic estimate, dispatching based on the output format configured.
func WritePhaseResults(result *schema.PhaseResult, cfg *contract.Config, duration time.Duration) error {
	// Create formatters using helper
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := writePhaseJSONResults(result, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writePhaseCSVResults(result, cfg, fmtFloat, intFmt); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := writePhaseParquetResults(result, cfg); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writePhaseTable(result, cfg, fmtFloat, intFmt, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writePhaseJSONResults handles opening the file and calling the JSON writer.
// JSON is the only format that carries the harmonic estimate alongside the bins.
func writePhaseJSONResults(result *schema.PhaseResult, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, result)
	}, "Wrote JSON")
}

// writePhaseCSVResults handles opening the file and calling the CSV writer.
func writePhaseCSVResults(result *schema.PhaseResult, cfg *contract.Config, fmtFloat func(float64) string, intFmt string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		return writeCSVResultsForPhase(csvWriter, result, fmtFloat, intFmt)
	}, "Wrote CSV")
}

// writePhaseParquetResults writes the phase bins to the configured output file.
func writePhaseParquetResults(result *schema.PhaseResult, cfg *contract.Config) error {
	if cfg.OutputFile == "" {
		return errors.New("--output-file is required for parquet output")
	}
	rows := parquet.ConvertPhaseBins(result.CaseRoot, result.Average)
	if err := parquet.WritePhaseBinRowsParquet(rows, cfg.OutputFile); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "💾 Wrote Parquet to %s\n", cfg.OutputFile)
	return nil
}

// writePhaseTable generates and writes the human-readable table of phase
// bins, followed by the harmonic estimate.
func writePhaseTable(result *schema.PhaseResult, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	// 1. Define Headers
	headers := []string{"Bin", "Center (deg)", "Count", "Mean", "Std"}
	table.Header(headers)

	// 2. Configure Separators/Borders to match a minimal look
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows
	avg := result.Average
	var data [][]string
	for i, bin := range avg.Bins {
		row := []string{
			strconv.Itoa(i),
			fmtFloat(bin.Center),
			fmt.Sprintf(intFmt, bin.Count),
			fmtFloat(bin.Mean),
			fmtFloat(bin.Std),
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

	key := avg.Key
	if cfg.UseColors {
		key = contract.KeyColor.Sprint(key)
	}
	h := result.Harmonic
	if _, err := fmt.Fprintf(writer, "Phase average of %s: %d samples across %d bins of %s deg\n",
		key, avg.Samples, len(avg.Bins), fmtFloat(avg.BinWidth)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Harmonic at %g Hz: amplitude %s, phase %s deg, mean %s\n",
		h.Frequency, fmtFloat(h.Amplitude), fmtFloat(h.PhaseDeg), fmtFloat(h.Mean)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Analysis completed in %v\n", duration); err != nil {
		return err
	}
	return nil
}

// writeCSVResultsForPhase writes the phase bins in CSV format.
func writeCSVResultsForPhase(w *csv.Writer, result *schema.PhaseResult, fmtFloat func(float64) string, intFmt string) error {
	// CSV header
	header := []string{
		"key",
		"frequency_hz",
		"bin",
		"center_deg",
		"count",
		"mean",
		"std",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	avg := result.Average
	for i, bin := range avg.Bins {
		rec := []string{
			avg.Key,
			fmtFloat(avg.Frequency),
			fmt.Sprintf(intFmt, i),
			fmtFloat(bin.Center),
			fmt.Sprintf(intFmt, bin.Count),
			fmtFloat(bin.Mean),
			fmtFloat(bin.Std),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}
