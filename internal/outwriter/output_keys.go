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

// WriteKeyResults outputs the discovered key catalog, dispatching based on the output format configured.
func WriteKeyResults(listings []schema.KeyListing, cfg *contract.Config, duration time.Duration) error {
	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeKeysJSONResults(listings, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeKeysCSVResults(listings, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := writeKeysParquetResults(listings, cfg); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeKeysTable(listings, cfg, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeKeysJSONResults handles opening the file and calling the JSON writer.
func writeKeysJSONResults(listings []schema.KeyListing, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, listings)
	}, "Wrote JSON")
}

// writeKeysCSVResults handles opening the file and calling the CSV writer.
func writeKeysCSVResults(listings []schema.KeyListing, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVWithHeader(w, []string{"key", "kind", "unit", "label"}, func(csvWriter *csv.Writer) error {
			for _, l := range listings {
				rec := []string{l.Key, string(l.Kind), l.Unit, l.Label}
				if err := csvWriter.Write(rec); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV")
}

// writeKeysParquetResults writes the key catalog to the configured output file.
func writeKeysParquetResults(listings []schema.KeyListing, cfg *contract.Config) error {
	if cfg.OutputFile == "" {
		return errors.New("--output-file is required for parquet output")
	}
	rows := parquet.ConvertKeyListings(listings)
	if err := parquet.WriteKeyRowsParquet(rows, cfg.OutputFile); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "💾 Wrote Parquet to %s\n", cfg.OutputFile)
	return nil
}

// writeKeysTable generates and writes the human-readable table.
func writeKeysTable(listings []schema.KeyListing, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	// 1. Define Headers
	headers := []string{"Key", "Kind", "Unit", "Label"}
	table.Header(headers)

	// 2. Configure Separators/Borders to match a minimal look
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})

	// 3. Populate Rows
	maxLabel := getMaxLabelWidth(cfg)
	var data [][]string
	for _, l := range listings {
		key := l.Key
		if cfg.UseColors {
			key = contract.KeyColor.Sprint(key)
		}
		row := []string{
			key,
			string(l.Kind),
			l.Unit,
			truncateLabel(l.Label, maxLabel),
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

	if _, err := fmt.Fprintf(writer, "Discovered %d key(s)\n", len(listings)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Listing completed in %v\n", duration); err != nil {
		return err
	}
	return nil
}
