package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rotorpost/rotorpost/internal/contract"
	"github.com/rotorpost/rotorpost/internal/outwriter"
	"github.com/rotorpost/rotorpost/reader"
	"github.com/rotorpost/rotorpost/schema"
)

// ExecuteSpanwise samples spanwise profiles at the configured instants and
// prints them. It serves as the main entry point for the 'spanwise' command.
func ExecuteSpanwise(ctx context.Context, cfg *contract.Config, _ contract.ArchiveManager) error {
	start := time.Now()

	if len(cfg.Keys) == 0 {
		return errors.New("--keys is required. Example: rotorpost spanwise --keys alpha --at 600")
	}
	if len(cfg.Targets) == 0 {
		return errors.New("--at is required. Example: rotorpost spanwise --keys alpha --at 600,900")
	}

	outwriter.LogCaseHeader(cfg)
	rdr, err := newCaseReader(ctx, cfg)
	if err != nil {
		return err
	}

	result, err := sampleProfiles(ctx, cfg, rdr)
	if err != nil {
		return err
	}

	duration := time.Since(start)
	ow := outwriter.NewOutWriter()
	return ow.WriteProfiles(result, cfg, duration)
}

// sampleProfiles extracts one profile per key and target instant.
func sampleProfiles(ctx context.Context, cfg *contract.Config, rdr *reader.CaseReader) (*schema.ProfileResult, error) {
	radii := stationRadii(ctx, rdr)

	var profiles []schema.ProfileSample
	for _, key := range cfg.Keys {
		ds, err := rdr.TurbineOutput(ctx, key)
		if err != nil {
			return nil, err
		}
		dist, ok := ds.(*schema.DistributionSeries)
		if !ok {
			return nil, fmt.Errorf("key %q is a scalar history, not a spanwise distribution. Use 'rotorpost loads --keys %s' instead", key, key)
		}

		scoped := dist
		blade := contract.AllBlades
		if cfg.Blade != contract.AllBlades {
			scoped = dist.FilterBlade(cfg.Blade)
			blade = cfg.Blade
		}

		// Radii only pair up when the station counts agree
		stations := radii
		if len(stations) != dist.Stations {
			stations = nil
		}

		info := schema.LookupKey(key)
		for _, target := range cfg.Targets {
			values, actual, err := scoped.ProfileAt(target)
			if err != nil {
				return nil, fmt.Errorf("key %q at t=%g: %w", key, target, err)
			}
			profiles = append(profiles, schema.ProfileSample{
				Key:      key,
				Target:   target,
				Actual:   actual,
				Blade:    blade,
				Stations: stations,
				Values:   values,
				Unit:     info.Unit,
			})
		}
	}
	return &schema.ProfileResult{CaseRoot: cfg.CaseRoot, Profiles: profiles}, nil
}

// stationRadii fetches the radial station positions when the case provides
// them. A case without radiusC still samples fine; profiles just print
// without radii.
func stationRadii(ctx context.Context, rdr *reader.CaseReader) []float64 {
	ds, err := rdr.TurbineOutput(ctx, schema.RadiusKey)
	if err != nil {
		return nil
	}
	dist, ok := ds.(*schema.DistributionSeries)
	if !ok || dist.Len() == 0 {
		return nil
	}
	return dist.Values[0]
}
