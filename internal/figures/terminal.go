package figures

import (
	"fmt"
	"os"

	"github.com/guptarohit/asciigraph"
	"golang.org/x/term"

	"github.com/rotorpost/rotorpost/internal/contract"
	"github.com/rotorpost/rotorpost/schema"
)

// Terminal chart geometry.
const (
	chartHeight   = 12
	chartMargin   = 12 // Room for the y-axis labels asciigraph adds
	minChartWidth = 30
)

// TerminalHistory renders one scalar series as an ASCII chart for quick
// inspection without leaving the shell.
func TerminalHistory(s *schema.ScalarSeries, cfg *contract.Config) string {
	return asciigraph.Plot(s.Values,
		asciigraph.Height(chartHeight),
		asciigraph.Width(chartWidth(cfg)),
		asciigraph.Caption(historyCaption(s)))
}

// TerminalProfile renders one spanwise profile as an ASCII chart, stations
// left to right.
func TerminalProfile(sample schema.ProfileSample, cfg *contract.Config) string {
	return asciigraph.Plot(sample.Values,
		asciigraph.Height(chartHeight),
		asciigraph.Width(chartWidth(cfg)),
		asciigraph.Caption(profileCaption(sample)))
}

// historyCaption names the series with its time span.
func historyCaption(s *schema.ScalarSeries) string {
	caption := axisLabel(s.Key)
	if s.Len() > 0 {
		caption = fmt.Sprintf("%s, t=%g..%g s", caption, s.Time[0], s.Time[s.Len()-1])
	}
	return caption
}

// profileCaption names the profile with the instant that answered the
// sample request.
func profileCaption(sample schema.ProfileSample) string {
	caption := fmt.Sprintf("%s at t=%g s", axisLabel(sample.Key), sample.Actual)
	if sample.Blade != contract.AllBlades {
		caption = fmt.Sprintf("%s, blade %d", caption, sample.Blade)
	}
	return caption
}

// chartWidth picks the plot width from the configured override or the
// detected terminal size.
func chartWidth(cfg *contract.Config) int {
	width := cfg.Width

	if width == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			width = 80 // Conservative default for narrow terminals and CI
		} else {
			width = detectedWidth
		}
	}

	width -= chartMargin
	if width < minChartWidth {
		width = minChartWidth
	}
	return width
}
