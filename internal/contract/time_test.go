package contract

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseTimeValue covers valid and invalid simulation time strings.
func TestParseTimeValue(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    float64
		expectError bool
	}{
		{"integer seconds", "1200", 1200, false},
		{"fractional seconds", "0.5", 0.5, false},
		{"scientific notation", "1.2e3", 1200, false},
		{"negative time", "-3", -3, false},
		{"padded whitespace", "  42  ", 42, false},
		{"empty string", "", 0, true},
		{"not a number", "twelve", 0, true},
		{"NaN rejected", "NaN", 0, true},
		{"infinity rejected", "Inf", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, err := ParseTimeValue(tt.input)
			if tt.expectError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, value)
		})
	}
}

// TestParseWindow covers the lo:hi window grammar including open bounds.
func TestParseWindow(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expectedLo  float64
		expectedHi  float64
		expectError bool
	}{
		{"both bounds", "120:600", 120, 600, false},
		{"open lower", ":600", math.Inf(-1), 600, false},
		{"open upper", "120:", 120, math.Inf(1), false},
		{"no window", "", math.Inf(-1), math.Inf(1), false},
		{"equal bounds", "5:5", 5, 5, false},
		{"fractional bounds", "0.25:0.75", 0.25, 0.75, false},
		{"inverted bounds", "600:120", 0, 0, true},
		{"missing separator", "120", 0, 0, true},
		{"too many separators", "1:2:3", 0, 0, true},
		{"non-numeric bound", "abc:600", 0, 0, true},
		{"NaN bound", "NaN:600", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi, err := ParseWindow(tt.input)
			if tt.expectError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedLo, lo)
			assert.Equal(t, tt.expectedHi, hi)
		})
	}
}

// TestParseTargets covers comma-separated sample instants.
func TestParseTargets(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    []float64
		expectError bool
	}{
		{"single target", "120", []float64{120}, false},
		{"multiple targets", "120,240.5,600", []float64{120, 240.5, 600}, false},
		{"padded entries", " 1 , 2 ", []float64{1, 2}, false},
		{"trailing comma tolerated", "1,2,", []float64{1, 2}, false},
		{"no targets", "", nil, false},
		{"only commas", ",,,", nil, true},
		{"bad entry", "1,abc,3", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			targets, err := ParseTargets(tt.input)
			if tt.expectError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, targets)
		})
	}
}
