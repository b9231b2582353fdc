package figures

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rotorpost/rotorpost/internal/contract"
)

func TestTerminalHistory(t *testing.T) {
	cfg := &contract.Config{Width: 80}
	chart := TerminalHistory(sampleScalarSeries(), cfg)

	assert.NotEmpty(t, chart)
	assert.Contains(t, chart, "thrust (N), t=0..4 s")
	// More than one line means the chart actually rendered.
	assert.Greater(t, len(strings.Split(chart, "\n")), 1)
}

func TestTerminalProfile(t *testing.T) {
	cfg := &contract.Config{Width: 80}

	t.Run("scoped blade", func(t *testing.T) {
		chart := TerminalProfile(sampleProfile(2, true), cfg)
		assert.Contains(t, chart, "alpha (deg) at t=2 s, blade 2")
	})

	t.Run("all blades", func(t *testing.T) {
		chart := TerminalProfile(sampleProfile(contract.AllBlades, true), cfg)
		assert.Contains(t, chart, "alpha (deg) at t=2 s")
		assert.NotContains(t, chart, "blade")
	})
}

func TestChartWidth(t *testing.T) {
	tests := []struct {
		name     string
		width    int
		expected int
	}{
		{
			name:     "override leaves margin",
			width:    120,
			expected: 108,
		},
		{
			name:     "narrow override clamps to min",
			width:    30,
			expected: 30,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &contract.Config{Width: tt.width}
			assert.Equal(t, tt.expected, chartWidth(cfg))
		})
	}

	t.Run("auto detection stays above min", func(t *testing.T) {
		cfg := &contract.Config{}
		assert.GreaterOrEqual(t, chartWidth(cfg), minChartWidth)
	})
}
