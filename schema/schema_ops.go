package schema

import (
	"fmt"
	"math"
	"sort"
)

// checkWindow validates crop bounds. NaN bounds and inverted windows are
// argument errors; infinite bounds are legal and mean "no bound on that side".
func checkWindow(lo, hi float64) error {
	if math.IsNaN(lo) || math.IsNaN(hi) {
		return fmt.Errorf("%w: bounds must not be NaN", ErrBadWindow)
	}
	if lo > hi {
		return fmt.Errorf("%w: lower bound %g exceeds upper bound %g", ErrBadWindow, lo, hi)
	}
	return nil
}

// sampleIndex returns the index of the latest sample at or before target.
// Among duplicate timestamps the highest index wins.
func sampleIndex(time []float64, target float64) (int, error) {
	if math.IsNaN(target) || math.IsInf(target, 0) {
		return 0, fmt.Errorf("%w: %g", ErrBadTarget, target)
	}
	if len(time) == 0 {
		return 0, ErrEmptySeries
	}
	idx := sort.Search(len(time), func(i int) bool { return time[i] > target })
	if idx == 0 {
		return 0, fmt.Errorf("%w: target %g is earlier than %g", ErrTargetBeforeStart, target, time[0])
	}
	return idx - 1, nil
}

// CropTime returns a copy restricted to samples with lo <= t <= hi, both ends
// inclusive. The receiver is never modified and the result shares no backing
// arrays with it. A window containing no samples yields a valid zero-length
// series.
func (s *ScalarSeries) CropTime(lo, hi float64) (*ScalarSeries, error) {
	if err := checkWindow(lo, hi); err != nil {
		return nil, err
	}
	out := &ScalarSeries{Key: s.Key}
	for i, t := range s.Time {
		if t < lo || t > hi {
			continue
		}
		out.Time = append(out.Time, t)
		out.Values = append(out.Values, s.Values[i])
	}
	return out, nil
}

// CropTime returns a copy restricted to samples with lo <= t <= hi, both ends
// inclusive. Rows are deep-copied so the result shares no backing arrays with
// the receiver.
func (d *DistributionSeries) CropTime(lo, hi float64) (*DistributionSeries, error) {
	if err := checkWindow(lo, hi); err != nil {
		return nil, err
	}
	out := &DistributionSeries{Key: d.Key, Stations: d.Stations}
	for i, t := range d.Time {
		if t < lo || t > hi {
			continue
		}
		out.Time = append(out.Time, t)
		if d.Blade != nil {
			out.Blade = append(out.Blade, d.Blade[i])
		}
		out.Values = append(out.Values, append([]float64(nil), d.Values[i]...))
	}
	return out, nil
}

// CropTime crops any dataset variant to the inclusive window [lo, hi],
// preserving the variant.
func CropTime(d Dataset, lo, hi float64) (Dataset, error) {
	switch v := d.(type) {
	case *ScalarSeries:
		return v.CropTime(lo, hi)
	case *DistributionSeries:
		return v.CropTime(lo, hi)
	default:
		return nil, fmt.Errorf("unsupported dataset variant %T", d)
	}
}

// ValueAt samples the series at target using the latest sample at or before
// it. Duplicate timestamps resolve to the later-written sample.
func (s *ScalarSeries) ValueAt(target float64) (float64, error) {
	i, err := sampleIndex(s.Time, target)
	if err != nil {
		return 0, err
	}
	return s.Values[i], nil
}

// ProfileAt samples the spanwise profile at target using the latest row at or
// before it. The returned slice is a copy. The second return is the timestamp
// of the winning row.
func (d *DistributionSeries) ProfileAt(target float64) ([]float64, float64, error) {
	i, err := sampleIndex(d.Time, target)
	if err != nil {
		return nil, 0, err
	}
	return append([]float64(nil), d.Values[i]...), d.Time[i], nil
}

// FilterBlade returns a copy retaining only the rows emitted by blade b. A
// blade absent from the series yields a valid zero-length result. Series
// without a blade column come back unchanged (as a copy).
func (d *DistributionSeries) FilterBlade(b int) *DistributionSeries {
	out := &DistributionSeries{Key: d.Key, Stations: d.Stations}
	if d.Blade == nil {
		out.Time = append([]float64(nil), d.Time...)
		for _, row := range d.Values {
			out.Values = append(out.Values, append([]float64(nil), row...))
		}
		return out
	}
	for i, blade := range d.Blade {
		if blade != b {
			continue
		}
		out.Time = append(out.Time, d.Time[i])
		out.Blade = append(out.Blade, blade)
		out.Values = append(out.Values, append([]float64(nil), d.Values[i]...))
	}
	return out
}

// ScalarValues extracts the value column of a scalar dataset, or the given
// station column of a distribution. Used by the statistics and phase
// averaging paths, which operate on one column at a time.
func ScalarValues(d Dataset, station int) ([]float64, error) {
	switch v := d.(type) {
	case *ScalarSeries:
		return v.Values, nil
	case *DistributionSeries:
		if station < 0 || station >= v.Stations {
			return nil, fmt.Errorf("station %d out of range [0, %d)", station, v.Stations)
		}
		col := make([]float64, len(v.Values))
		for i, row := range v.Values {
			col[i] = row[station]
		}
		return col, nil
	default:
		return nil, fmt.Errorf("unsupported dataset variant %T", d)
	}
}
