package schema

// SeriesStats summarizes one series over the analysis window.
type SeriesStats struct {
	Key      string  `json:"key"`
	Unit     string  `json:"unit,omitempty"`
	Count    int     `json:"count"`
	Mean     float64 `json:"mean"`
	Std      float64 `json:"std"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	First    float64 `json:"first"`
	Last     float64 `json:"last"`
	WindowLo float64 `json:"window_lo"` // Effective lower crop bound
	WindowHi float64 `json:"window_hi"` // Effective upper crop bound
}

// SeriesStatsResult holds the statistics for every key of one run.
type SeriesStatsResult struct {
	CaseRoot string        `json:"case_root"`
	Stats    []SeriesStats `json:"stats"`
}

// ProfileSample is one spanwise profile picked at a target instant, paired
// with the station radii when the case provides them.
type ProfileSample struct {
	Key      string    `json:"key"`
	Target   float64   `json:"target"`         // Requested instant
	Actual   float64   `json:"actual"`         // Timestamp of the winning row
	Blade    int       `json:"blade"`          // Emitting blade, -1 when unscoped
	Stations []float64 `json:"stations"`       // Station radii, empty if radiusC is unavailable
	Values   []float64 `json:"values"`         // Profile values per station
	Unit     string    `json:"unit,omitempty"` // Display unit from the catalog
}

// ProfileResult holds every sampled profile of one spanwise run.
type ProfileResult struct {
	CaseRoot string          `json:"case_root"`
	Profiles []ProfileSample `json:"profiles"`
}

// KeyListing is one row of the keys command: a discovered key plus its
// catalog entry.
type KeyListing struct {
	Key   string  `json:"key"`
	Kind  KeyKind `json:"kind"`
	Unit  string  `json:"unit,omitempty"`
	Label string  `json:"label"`
}
