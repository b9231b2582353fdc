package core

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/rotorpost/rotorpost/internal/contract"
	"github.com/rotorpost/rotorpost/internal/figures"
	"github.com/rotorpost/rotorpost/internal/outwriter"
	"github.com/rotorpost/rotorpost/schema"
)

// ExecutePlot renders time-history and spanwise-profile figures for the
// requested keys, or quick-look terminal charts with --terminal. It serves
// as the main entry point for the 'plot' command.
func ExecutePlot(ctx context.Context, cfg *contract.Config, _ contract.ArchiveManager) error {
	start := time.Now()

	outwriter.LogCaseHeader(cfg)
	rdr, err := newCaseReader(ctx, cfg)
	if err != nil {
		return err
	}

	keys := cfg.Keys
	if len(keys) == 0 {
		keys = schema.DefaultLoadKeys
	}

	caseName := filepath.Base(cfg.CaseRoot)
	radii := stationRadii(ctx, rdr)

	var written []string
	for _, key := range keys {
		ds, err := rdr.TurbineOutput(ctx, key)
		if err != nil {
			return err
		}
		scoped, err := scopeDataset(ds, cfg)
		if err != nil {
			return err
		}

		switch v := scoped.(type) {
		case *schema.ScalarSeries:
			paths, err := plotHistory(v, caseName, cfg)
			if err != nil {
				return err
			}
			written = append(written, paths...)
		case *schema.DistributionSeries:
			paths, err := plotProfiles(v, key, caseName, radii, cfg)
			if err != nil {
				return err
			}
			written = append(written, paths...)
		}
	}

	if cfg.Terminal {
		return nil
	}
	duration := time.Since(start)
	for _, path := range written {
		fmt.Printf("📈 Saved: %s\n", path)
	}
	fmt.Printf("Wrote %d figure(s) in %v\n", len(written), duration)
	return nil
}

// plotHistory renders one scalar history, either as a file or a terminal
// chart.
func plotHistory(s *schema.ScalarSeries, caseName string, cfg *contract.Config) ([]string, error) {
	if s.Len() == 0 {
		return nil, fmt.Errorf("key %q has no samples in the selected window", s.Key)
	}
	if cfg.Terminal {
		fmt.Println(figures.TerminalHistory(s, cfg))
		return nil, nil
	}
	path, err := figures.RenderHistory(s, caseName, cfg)
	if err != nil {
		return nil, err
	}
	return []string{path}, nil
}

// plotProfiles renders one profile figure per target instant. Without
// targets the latest sample of the series is plotted.
func plotProfiles(d *schema.DistributionSeries, key, caseName string, radii []float64, cfg *contract.Config) ([]string, error) {
	if d.Len() == 0 {
		return nil, fmt.Errorf("key %q has no samples in the selected window", key)
	}

	targets := cfg.Targets
	if len(targets) == 0 {
		targets = []float64{d.Time[d.Len()-1]}
	}
	stations := radii
	if len(stations) != d.Stations {
		stations = nil
	}

	info := schema.LookupKey(key)
	var written []string
	for _, target := range targets {
		values, actual, err := d.ProfileAt(target)
		if err != nil {
			return nil, fmt.Errorf("key %q at t=%g: %w", key, target, err)
		}
		sample := schema.ProfileSample{
			Key:      key,
			Target:   target,
			Actual:   actual,
			Blade:    cfg.Blade,
			Stations: stations,
			Values:   values,
			Unit:     info.Unit,
		}
		if cfg.Terminal {
			fmt.Println(figures.TerminalProfile(sample, cfg))
			continue
		}
		path, err := figures.RenderProfile(sample, caseName, cfg)
		if err != nil {
			return nil, err
		}
		written = append(written, path)
	}
	return written, nil
}
