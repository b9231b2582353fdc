package contract

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseTimeValue converts a simulation time string like "1200" or "0.5" into
// a float64. NaN and infinities are rejected; simulation timestamps are
// always finite.
func ParseTimeValue(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("empty time value")
	}
	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid time value %q: %w", s, err)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("time value must be finite: %q", s)
	}
	return value, nil
}

// ParseWindow parses a crop window of the form "lo:hi". Either side may be
// empty to leave that bound open, e.g. "120:", ":600" or the empty string
// for no window at all. Open bounds come back as infinities.
func ParseWindow(s string) (float64, float64, error) {
	s = strings.TrimSpace(s)
	lo := math.Inf(-1)
	hi := math.Inf(1)
	if s == "" {
		return lo, hi, nil
	}

	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected 'lo:hi' with either side optional, got %q", s)
	}

	if trimmed := strings.TrimSpace(parts[0]); trimmed != "" {
		value, err := ParseTimeValue(trimmed)
		if err != nil {
			return 0, 0, err
		}
		lo = value
	}
	if trimmed := strings.TrimSpace(parts[1]); trimmed != "" {
		value, err := ParseTimeValue(trimmed)
		if err != nil {
			return 0, 0, err
		}
		hi = value
	}

	if lo > hi {
		return 0, 0, fmt.Errorf("window lower bound %g exceeds upper bound %g", lo, hi)
	}
	return lo, hi, nil
}

// ParseTargets parses a comma-separated list of sample instants like
// "120,240.5,600". An empty string yields no targets.
func ParseTargets(s string) ([]float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	var targets []float64
	for part := range strings.SplitSeq(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		value, err := ParseTimeValue(part)
		if err != nil {
			return nil, err
		}
		targets = append(targets, value)
	}
	if len(targets) == 0 {
		return nil, fmt.Errorf("no usable targets in %q", s)
	}
	return targets, nil
}
