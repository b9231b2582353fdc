package core

import (
	"context"
	"errors"
	"math"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/rotorpost/rotorpost/internal/contract"
	"github.com/rotorpost/rotorpost/internal/outwriter"
	"github.com/rotorpost/rotorpost/schema"
)

// ExecutePhase computes the phase average and the single-frequency harmonic
// estimate of one series. It serves as the main entry point for the 'phase'
// command.
func ExecutePhase(ctx context.Context, cfg *contract.Config, _ contract.ArchiveManager) error {
	start := time.Now()

	if len(cfg.Keys) != 1 {
		return errors.New("--keys must name exactly one key. Example: rotorpost phase --keys thrust --frequency 0.2")
	}
	if cfg.Frequency <= 0 {
		return errors.New("--frequency is required and must be > 0. Example: rotorpost phase --keys thrust --frequency 0.2")
	}

	outwriter.LogCaseHeader(cfg)
	rdr, err := newCaseReader(ctx, cfg)
	if err != nil {
		return err
	}

	key := cfg.Keys[0]
	ds, err := rdr.TurbineOutput(ctx, key)
	if err != nil {
		return err
	}
	scoped, err := scopeDataset(ds, cfg)
	if err != nil {
		return err
	}
	values, err := schema.ScalarValues(scoped, cfg.Station)
	if err != nil {
		return err
	}
	if len(values) == 0 {
		return errors.New("no samples in the selected window. Widen --window or pick another time directory")
	}

	axis := scoped.TimeAxis()
	result := &schema.PhaseResult{
		CaseRoot: cfg.CaseRoot,
		Average:  phaseAverage(key, axis, values, cfg.Frequency, cfg.Bins),
		Harmonic: harmonicEstimate(key, axis, values, cfg.Frequency),
	}

	duration := time.Since(start)
	ow := outwriter.NewOutWriter()
	return ow.WritePhase(result, cfg, duration)
}

// phaseAverage bins the series by its phase angle at the given rotation
// frequency and summarizes each bin. Bins are centered on multiples of the
// bin width, so the first bin wraps around 0/360.
func phaseAverage(key string, time, values []float64, frequency float64, bins int) schema.PhaseAverageResult {
	width := 360.0 / float64(bins)
	groups := make([][]float64, bins)
	for i, t := range time {
		angle := math.Mod(360*frequency*t, 360)
		shifted := math.Mod(angle+width/2, 360)
		if shifted < 0 {
			shifted += 360
		}
		bin := min(int(shifted/width), bins-1)
		groups[bin] = append(groups[bin], values[i])
	}

	out := schema.PhaseAverageResult{
		Key:       key,
		Frequency: frequency,
		BinWidth:  width,
		Samples:   len(values),
		Bins:      make([]schema.PhaseBin, bins),
	}
	for i, group := range groups {
		bin := schema.PhaseBin{Center: float64(i) * width, Count: len(group)}
		if len(group) > 0 {
			bin.Mean = stat.Mean(group, nil)
			bin.Std = stat.PopStdDev(group, nil)
		}
		out.Bins[i] = bin
	}
	return out
}

// harmonicEstimate computes the discrete Fourier transform of the series at
// exactly one frequency: the amplitude and phase of its oscillation there.
func harmonicEstimate(key string, time, values []float64, frequency float64) schema.HarmonicEstimate {
	var re, im float64
	for i, t := range time {
		theta := 2 * math.Pi * frequency * t
		re += values[i] * math.Cos(theta)
		im -= values[i] * math.Sin(theta)
	}
	n := float64(len(values))
	return schema.HarmonicEstimate{
		Key:       key,
		Frequency: frequency,
		Amplitude: 2 * math.Hypot(re, im) / n,
		PhaseDeg:  math.Atan2(im, re) * 180 / math.Pi,
		Mean:      stat.Mean(values, nil),
	}
}
