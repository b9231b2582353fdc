package core

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/rotorpost/rotorpost/internal/contract"
	"github.com/rotorpost/rotorpost/reader"
	"github.com/rotorpost/rotorpost/schema"
)

// seriesStatsForKey loads one key, applies the configured crop window and
// blade scope, and summarizes the resulting column.
func seriesStatsForKey(ctx context.Context, cfg *contract.Config, rdr *reader.CaseReader, key string) (schema.SeriesStats, error) {
	ds, err := rdr.TurbineOutput(ctx, key)
	if err != nil {
		return schema.SeriesStats{}, err
	}
	scoped, err := scopeDataset(ds, cfg)
	if err != nil {
		return schema.SeriesStats{}, err
	}

	values, err := schema.ScalarValues(scoped, cfg.Station)
	if err != nil {
		return schema.SeriesStats{}, fmt.Errorf("key %q: %w", key, err)
	}
	return summarize(key, scoped.TimeAxis(), values), nil
}

// scopeDataset applies the crop window and, for distributions, the blade
// filter from the config.
func scopeDataset(ds schema.Dataset, cfg *contract.Config) (schema.Dataset, error) {
	cropped, err := schema.CropTime(ds, cfg.WindowLo, cfg.WindowHi)
	if err != nil {
		return nil, err
	}
	if dist, ok := cropped.(*schema.DistributionSeries); ok && cfg.Blade != contract.AllBlades {
		return dist.FilterBlade(cfg.Blade), nil
	}
	return cropped, nil
}

// summarize computes the windowed statistics of one value column. An empty
// column yields a zero-valued summary; JSON output cannot carry NaN.
func summarize(key string, axis []float64, values []float64) schema.SeriesStats {
	info := schema.LookupKey(key)
	s := schema.SeriesStats{Key: key, Unit: info.Unit, Count: len(values)}
	if len(values) == 0 {
		return s
	}

	s.WindowLo = axis[0]
	s.WindowHi = axis[len(axis)-1]
	s.First = values[0]
	s.Last = values[len(values)-1]
	s.Mean = stat.Mean(values, nil)
	s.Min = floats.Min(values)
	s.Max = floats.Max(values)
	if len(values) > 1 {
		s.Std = stat.StdDev(values, nil)
	}
	return s
}
