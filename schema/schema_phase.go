package schema

// PhaseBin is one bin of a phase average.
type PhaseBin struct {
	Center float64 `json:"center"` // Bin midpoint in degrees
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Count  int     `json:"count"`
}

// PhaseAverageResult holds the binned phase statistics of one series at a
// rotation frequency.
type PhaseAverageResult struct {
	Key       string     `json:"key"`
	Frequency float64    `json:"frequency"` // Hz
	BinWidth  float64    `json:"bin_width"` // Degrees
	Samples   int        `json:"samples"`   // Total samples distributed across bins
	Bins      []PhaseBin `json:"bins"`
}

// HarmonicEstimate is the single-frequency discrete Fourier transform of a
// series: the oscillation amplitude and phase at exactly one frequency.
type HarmonicEstimate struct {
	Key       string  `json:"key"`
	Frequency float64 `json:"frequency"` // Hz
	Amplitude float64 `json:"amplitude"`
	PhaseDeg  float64 `json:"phase_deg"`
	Mean      float64 `json:"mean"` // Series mean over the same window
}

// PhaseResult pairs the phase average with the harmonic estimate for one key.
type PhaseResult struct {
	CaseRoot string             `json:"case_root"`
	Average  PhaseAverageResult `json:"average"`
	Harmonic HarmonicEstimate   `json:"harmonic"`
}
