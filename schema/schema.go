// Package schema has the dataset model, result types and shared enums for all parts of rotorpost.
package schema

import "sort"

// Dataset is the read-only view shared by all series variants. Exactly two
// variants exist: *ScalarSeries for single-column histories and
// *DistributionSeries for spanwise (multi-column) histories. The variant is
// fixed at load time from the file shape and never changes afterwards.
type Dataset interface {
	// OutputKey reports the turbine output key this dataset was read from.
	OutputKey() string

	// Len reports the number of time samples.
	Len() int

	// TimeAxis returns the sample timestamps in non-decreasing order.
	// Callers must not mutate the returned slice.
	TimeAxis() []float64

	isDataset()
}

// ScalarSeries is the time history of a single integrated quantity, such as
// rotor thrust or platform pitch. Time and Values are index-aligned.
type ScalarSeries struct {
	Key    string    // Output key the series was read from
	Time   []float64 // Sample timestamps in seconds, non-decreasing
	Values []float64 // One value per sample
}

// DistributionSeries is the time history of a quantity resolved along the
// blade span, such as angle of attack or sectional lift. Each row holds one
// value per radial station; rows from different blades carry the same
// timestamp and are told apart by the Blade column.
type DistributionSeries struct {
	Key      string      // Output key the series was read from
	Time     []float64   // Sample timestamps in seconds, non-decreasing
	Blade    []int       // Emitting blade per row; nil when the file has no blade column
	Values   [][]float64 // One row per sample, one column per station
	Stations int         // Columns per row
}

// OutputKey implements Dataset.
func (s *ScalarSeries) OutputKey() string { return s.Key }

// Len implements Dataset.
func (s *ScalarSeries) Len() int { return len(s.Time) }

// TimeAxis implements Dataset.
func (s *ScalarSeries) TimeAxis() []float64 { return s.Time }

func (s *ScalarSeries) isDataset() {}

// OutputKey implements Dataset.
func (d *DistributionSeries) OutputKey() string { return d.Key }

// Len implements Dataset.
func (d *DistributionSeries) Len() int { return len(d.Time) }

// TimeAxis implements Dataset.
func (d *DistributionSeries) TimeAxis() []float64 { return d.Time }

func (d *DistributionSeries) isDataset() {}

// Blades returns the distinct blade indices present in the series, sorted
// ascending. A series without a blade column yields nil.
func (d *DistributionSeries) Blades() []int {
	if len(d.Blade) == 0 {
		return nil
	}
	seen := make(map[int]struct{})
	var out []int
	for _, b := range d.Blade {
		if _, ok := seen[b]; ok {
			continue
		}
		seen[b] = struct{}{}
		out = append(out, b)
	}
	sort.Ints(out)
	return out
}
