package schema

import (
	"math"
	"testing"
)

// FuzzScalarCropTime fuzzes crop bounds against a fixed series and checks the
// crop invariants hold for any window.
func FuzzScalarCropTime(f *testing.F) {
	seeds := []struct {
		lo, hi float64
	}{
		{0, 4},
		{1, 3},
		{2, 2},
		{3, 1},
		{-100, 100},
		{math.Inf(-1), math.Inf(1)},
		{math.NaN(), 1},
	}
	for _, seed := range seeds {
		f.Add(seed.lo, seed.hi)
	}

	f.Fuzz(func(t *testing.T, lo, hi float64) {
		s := &ScalarSeries{
			Key:    "thrust",
			Time:   []float64{0, 1, 1, 2, 3, 4},
			Values: []float64{10, 12, 11, 13, 12, 14},
		}
		got, err := s.CropTime(lo, hi)
		if math.IsNaN(lo) || math.IsNaN(hi) || lo > hi {
			if err == nil {
				t.Errorf("CropTime(%g, %g) should fail", lo, hi)
			}
			return
		}
		if err != nil {
			t.Errorf("CropTime(%g, %g) failed: %v", lo, hi, err)
			return
		}
		if len(got.Time) != len(got.Values) {
			t.Errorf("CropTime(%g, %g) misaligned: %d times, %d values", lo, hi, len(got.Time), len(got.Values))
		}
		if len(got.Time) > len(s.Time) {
			t.Errorf("CropTime(%g, %g) grew the series", lo, hi)
		}
		for _, tv := range got.Time {
			if tv < lo || tv > hi {
				t.Errorf("CropTime(%g, %g) kept out-of-window sample %g", lo, hi, tv)
			}
		}
	})
}

// FuzzSampleIndex fuzzes the nearest-at-or-before search and checks the
// returned index is the latest one at or before the target.
func FuzzSampleIndex(f *testing.F) {
	seeds := []float64{-1, 0, 0.5, 1, 2.5, 4, 100, math.NaN(), math.Inf(1)}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, target float64) {
		axis := []float64{0, 1, 1, 2, 3, 4}
		idx, err := sampleIndex(axis, target)
		if math.IsNaN(target) || math.IsInf(target, 0) || target < axis[0] {
			if err == nil {
				t.Errorf("sampleIndex(%g) should fail", target)
			}
			return
		}
		if err != nil {
			t.Errorf("sampleIndex(%g) failed: %v", target, err)
			return
		}
		if axis[idx] > target {
			t.Errorf("sampleIndex(%g) = %d picked a later sample %g", target, idx, axis[idx])
		}
		if idx+1 < len(axis) && axis[idx+1] <= target {
			t.Errorf("sampleIndex(%g) = %d skipped a closer sample %g", target, idx, axis[idx+1])
		}
	})
}
