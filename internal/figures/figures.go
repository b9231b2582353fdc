// Package figures renders time histories and spanwise profiles, either as
// figure files through gonum/plot or as quick-look terminal charts.
package figures

import (
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/rotorpost/rotorpost/internal/contract"
	"github.com/rotorpost/rotorpost/schema"
)

// Figure dimensions. Histories are wide and flat, profiles closer to square.
const (
	historyWidth  = 8 * vg.Inch
	historyHeight = 3 * vg.Inch
	profileWidth  = 5 * vg.Inch
	profileHeight = 4 * vg.Inch
)

// RenderHistory draws one scalar series against time and saves it under the
// configured figure directory. It returns the path of the written file.
func RenderHistory(s *schema.ScalarSeries, caseName string, cfg *contract.Config) (string, error) {
	if err := os.MkdirAll(cfg.FigDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create figure directory: %w", err)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s: %s", caseName, s.Key)
	p.X.Label.Text = "Time (s)"
	p.Y.Label.Text = axisLabel(s.Key)
	p.Add(plotter.NewGrid())

	line, err := plotter.NewLine(pairXYs(s.Time, s.Values))
	if err != nil {
		return "", err
	}
	p.Add(line)

	path := filepath.Join(cfg.FigDir, fmt.Sprintf("%s_%s_history.%s", caseName, s.Key, cfg.FigFormat))
	if err := p.Save(historyWidth, historyHeight, path); err != nil {
		return "", err
	}
	return path, nil
}

// RenderProfile draws one spanwise profile and saves it under the configured
// figure directory. The x axis is the station radius when the case provides
// radii, the bare station index otherwise.
func RenderProfile(sample schema.ProfileSample, caseName string, cfg *contract.Config) (string, error) {
	if err := os.MkdirAll(cfg.FigDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create figure directory: %w", err)
	}

	p := plot.New()
	p.Title.Text = profileTitle(sample, caseName)
	p.Y.Label.Text = axisLabel(sample.Key)
	p.Add(plotter.NewGrid())

	var xys plotter.XYs
	if len(sample.Stations) == len(sample.Values) {
		p.X.Label.Text = "Radius (m)"
		xys = pairXYs(sample.Stations, sample.Values)
	} else {
		p.X.Label.Text = "Station"
		xys = indexXYs(sample.Values)
	}

	line, points, err := plotter.NewLinePoints(xys)
	if err != nil {
		return "", err
	}
	p.Add(line, points)

	path := filepath.Join(cfg.FigDir, fmt.Sprintf("%s_%s_profile_t%g.%s", caseName, sample.Key, sample.Target, cfg.FigFormat))
	if err := p.Save(profileWidth, profileHeight, path); err != nil {
		return "", err
	}
	return path, nil
}

// profileTitle names the profile by case, key and the instant that actually
// answered the sample request.
func profileTitle(sample schema.ProfileSample, caseName string) string {
	title := fmt.Sprintf("%s: %s at t=%g s", caseName, sample.Key, sample.Actual)
	if sample.Blade != contract.AllBlades {
		title = fmt.Sprintf("%s (blade %d)", title, sample.Blade)
	}
	return title
}

// axisLabel renders a y-axis label from the key catalog, with the unit in
// parentheses when one is known.
func axisLabel(key string) string {
	info := schema.LookupKey(key)
	if info.Unit == "" {
		return key
	}
	return fmt.Sprintf("%s (%s)", key, info.Unit)
}

// pairXYs zips two index-aligned slices into plotter points.
func pairXYs(xs, ys []float64) plotter.XYs {
	xys := make(plotter.XYs, len(ys))
	for i := range ys {
		xys[i].X = xs[i]
		xys[i].Y = ys[i]
	}
	return xys
}

// indexXYs plots values against their position.
func indexXYs(ys []float64) plotter.XYs {
	xys := make(plotter.XYs, len(ys))
	for i := range ys {
		xys[i].X = float64(i)
		xys[i].Y = ys[i]
	}
	return xys
}
