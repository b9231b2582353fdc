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

// WriteProfileResults outputs the sampled spanwise profiles, dispatching based on the output format configured.
func WriteProfileResults(result *schema.ProfileResult, cfg *contract.Config, duration time.Duration) error {
	// Create formatters using helper
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeProfilesJSONResults(result, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeProfilesCSVResults(result, cfg, fmtFloat, intFmt); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := writeProfilesParquetResults(result, cfg); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeProfilesTable(result, cfg, fmtFloat, intFmt, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeProfilesJSONResults handles opening the file and calling the JSON writer.
func writeProfilesJSONResults(result *schema.ProfileResult, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, result)
	}, "Wrote JSON")
}

// writeProfilesCSVResults handles opening the file and calling the CSV writer.
func writeProfilesCSVResults(result *schema.ProfileResult, cfg *contract.Config, fmtFloat func(float64) string, intFmt string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		return writeCSVResultsForProfiles(csvWriter, result, fmtFloat, intFmt)
	}, "Wrote CSV")
}

// writeProfilesParquetResults flattens the profiles to one row per station
// and writes them to the configured output file.
func writeProfilesParquetResults(result *schema.ProfileResult, cfg *contract.Config) error {
	if cfg.OutputFile == "" {
		return errors.New("--output-file is required for parquet output")
	}
	rows := parquet.ConvertProfiles(result.CaseRoot, result.Profiles)
	if err := parquet.WriteProfileRowsParquet(rows, cfg.OutputFile); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "💾 Wrote Parquet to %s\n", cfg.OutputFile)
	return nil
}

// writeProfilesTable generates and writes the human-readable table with one
// row per station of every sampled profile.
func writeProfilesTable(result *schema.ProfileResult, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	// 1. Define Headers
	headers := []string{"Key", "Target", "Actual", "Blade", "Station", "Radius", "Value"}
	table.Header(headers)

	// 2. Configure Separators/Borders to match a minimal look
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows
	var data [][]string
	for _, p := range result.Profiles {
		key := p.Key
		if cfg.UseColors {
			key = contract.KeyColor.Sprint(key)
		}
		for station, value := range p.Values {
			radius := "-"
			if station < len(p.Stations) {
				radius = fmtFloat(p.Stations[station])
			}
			row := []string{
				key,
				fmtFloat(p.Target),
				fmtFloat(p.Actual),
				formatBlade(p.Blade),
				strconv.Itoa(station),
				radius,
				fmtFloat(value),
			}
			data = append(data, row)
		}
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "Sampled %d profile(s) across %d target instant(s)\n",
		len(result.Profiles), len(cfg.Targets)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Analysis completed in %v\n", duration); err != nil {
		return err
	}
	return nil
}

// writeCSVResultsForProfiles writes the profile samples in CSV format, one
// row per station.
func writeCSVResultsForProfiles(w *csv.Writer, result *schema.ProfileResult, fmtFloat func(float64) string, intFmt string) error {
	// CSV header
	header := []string{
		"key",
		"target_time",
		"actual_time",
		"blade",
		"station",
		"radius",
		"value",
		"unit",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, p := range result.Profiles {
		for station, value := range p.Values {
			radius := ""
			if station < len(p.Stations) {
				radius = fmtFloat(p.Stations[station])
			}
			rec := []string{
				p.Key,
				fmtFloat(p.Target),
				fmtFloat(p.Actual),
				fmt.Sprintf(intFmt, p.Blade),
				fmt.Sprintf(intFmt, station),
				radius,
				fmtFloat(value),
				p.Unit,
			}
			if err := w.Write(rec); err != nil {
				return err
			}
		}
	}
	return nil
}
