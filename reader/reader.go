// Package reader provides read-only access to the datasets of a single
// case. A CaseReader resolves its case root once at construction, loads
// output keys lazily through a CaseStore, and caches every dataset it
// builds for the lifetime of the reader. A CaseReader is not safe for
// concurrent use.
package reader

import (
	"context"
	"fmt"
	"sort"

	"github.com/rotorpost/rotorpost/internal/contract"
	"github.com/rotorpost/rotorpost/schema"
)

// CaseReader is the entry point for reading one case.
type CaseReader struct {
	root  string
	store contract.CaseStore
	cache map[string]schema.Dataset
}

// NewCaseReader resolves root through the store and returns a reader for
// the case. Nothing is loaded eagerly; the first TurbineOutput call for a
// key pays its parse cost.
func NewCaseReader(ctx context.Context, store contract.CaseStore, root string) (*CaseReader, error) {
	resolved, err := store.Resolve(ctx, root)
	if err != nil {
		return nil, err
	}
	return &CaseReader{
		root:  resolved,
		store: store,
		cache: make(map[string]schema.Dataset),
	}, nil
}

// Root returns the resolved case root.
func (r *CaseReader) Root() string {
	return r.root
}

// Keys returns the output keys available in the case, sorted.
func (r *CaseReader) Keys(ctx context.Context) ([]string, error) {
	return r.store.ListKeys(ctx, r.root)
}

// TimeDirs returns the case's time directories in ascending order.
func (r *CaseReader) TimeDirs(ctx context.Context) ([]schema.TimeDir, error) {
	return r.store.ListTimeDirs(ctx, r.root)
}

// TurbineOutput returns the dataset for one output key. The first call per
// key reads and parses the on-disk file; subsequent calls return the cached
// dataset. Store failures are returned unchanged and never cached.
func (r *CaseReader) TurbineOutput(ctx context.Context, key string) (schema.Dataset, error) {
	if ds, ok := r.cache[key]; ok {
		return ds, nil
	}

	raw, err := r.store.ReadOutput(ctx, r.root, key)
	if err != nil {
		return nil, err
	}
	ds, err := buildDataset(raw)
	if err != nil {
		return nil, err
	}

	r.cache[key] = ds
	return ds, nil
}

// buildDataset classifies a parsed output into its dataset variant after
// enforcing the load-time invariants.
func buildDataset(raw *schema.RawOutput) (schema.Dataset, error) {
	// 1. The time axis and the data block must agree in length
	if len(raw.Time) != len(raw.Values) {
		return nil, &schema.ShapeError{
			Key:      raw.Key,
			Expected: len(raw.Time),
			Observed: len(raw.Values),
			Detail:   "time axis and data block differ in length",
		}
	}
	if raw.Blade != nil && len(raw.Blade) != len(raw.Time) {
		return nil, &schema.ShapeError{
			Key:      raw.Key,
			Expected: len(raw.Time),
			Observed: len(raw.Blade),
			Detail:   "time axis and blade column differ in length",
		}
	}

	// 2. Restore a non-decreasing time axis. The sort is stable so rows
	// written later keep the higher index among equal timestamps.
	sortRowsByTime(raw)

	// 3. Geometry keys collapse to one row per time step after the
	// symmetric-blade check
	if schema.IsGeometryKey(raw.Key) {
		return buildGeometry(raw)
	}

	// 4. Shape decides the variant: one payload column is a scalar history,
	// more is a per-station distribution
	if raw.PayloadWidth() == 1 {
		values := make([]float64, len(raw.Values))
		for i, row := range raw.Values {
			values[i] = row[0]
		}
		return &schema.ScalarSeries{Key: raw.Key, Time: raw.Time, Values: values}, nil
	}
	return &schema.DistributionSeries{
		Key:      raw.Key,
		Time:     raw.Time,
		Blade:    raw.Blade,
		Values:   raw.Values,
		Stations: raw.PayloadWidth(),
	}, nil
}

// sortRowsByTime stable-sorts the rows of a raw output by timestamp.
// Already-sorted input, the common case, is left untouched.
func sortRowsByTime(raw *schema.RawOutput) {
	if sort.Float64sAreSorted(raw.Time) {
		return
	}

	idx := make([]int, len(raw.Time))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return raw.Time[idx[a]] < raw.Time[idx[b]] })

	time := make([]float64, len(idx))
	values := make([][]float64, len(idx))
	var blade []int
	if raw.Blade != nil {
		blade = make([]int, len(idx))
	}
	for i, j := range idx {
		time[i] = raw.Time[j]
		values[i] = raw.Values[j]
		if blade != nil {
			blade[i] = raw.Blade[j]
		}
	}
	raw.Time = time
	raw.Values = values
	raw.Blade = blade
}

// buildGeometry validates the symmetric-blade assumption and collapses the
// per-blade rows to one row per time step. Geometry is written identically
// for every blade and never changes during a run, so all rows must carry
// the same station vector.
func buildGeometry(raw *schema.RawOutput) (schema.Dataset, error) {
	if len(raw.Values) == 0 {
		return &schema.DistributionSeries{Key: raw.Key, Stations: raw.PayloadWidth()}, nil
	}

	first := raw.Values[0]
	for i, row := range raw.Values[1:] {
		if !equalStations(first, row) {
			return nil, fmt.Errorf("%w: key %q: station geometry differs between rows (row 1 vs row %d)",
				schema.ErrMalformedOutput, raw.Key, i+2)
		}
	}

	var time []float64
	var values [][]float64
	for i, t := range raw.Time {
		if len(time) > 0 && t == time[len(time)-1] {
			continue
		}
		time = append(time, t)
		values = append(values, raw.Values[i])
	}
	return &schema.DistributionSeries{
		Key:      raw.Key,
		Time:     time,
		Values:   values,
		Stations: raw.PayloadWidth(),
	}, nil
}

// equalStations compares two station vectors for exact equality.
func equalStations(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
