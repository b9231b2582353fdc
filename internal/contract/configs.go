package contract

import (
	"context"
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"time"

	"github.com/rotorpost/rotorpost/schema"
)

// Default values for configuration.
const (
	DefaultPrecision = 3
	MaxPrecision     = 6
	DefaultBins      = 45
	MaxBins          = 3600
	DefaultTurbine   = 0
	AllBlades        = -1
)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// Config holds the runtime configuration for a case analysis.
// This struct remains the "final, validated" config.
type Config struct {
	CaseRoot string   // Absolute path to the case directory
	Keys     []string // Output keys requested on the command line

	TimeDirMode  schema.TimeDirMode
	TimeDirValue float64 // Target start time for exact/closest modes

	WindowLo float64 // Crop window lower bound, -Inf when unbounded
	WindowHi float64 // Crop window upper bound, +Inf when unbounded

	Targets []float64 // Sample instants for profile extraction

	Turbine int // Turbine index to read, 0 for single-turbine cases
	Blade   int // Blade filter for distributions, AllBlades for no filter
	Station int // Station column for phase analysis of distributions

	Frequency float64 // Rotation frequency in Hz for phase analysis
	Bins      int     // Phase average bin count

	Precision  int // Decimal precision for numeric columns
	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)

	FigDir    string // Directory for generated figures
	FigFormat schema.FigureFormat
	Terminal  bool // Render plots as terminal charts instead of files

	ArchiveBackend   schema.ArchiveBackend
	ArchiveDBConnect string // Please use env var as this is plaintext

	UseColors bool // Enable colored labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	CaseRootStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	Keys             string `mapstructure:"keys"`
	TimeDir          string `mapstructure:"time-dir"`
	TimeDirValue     string `mapstructure:"time-dir-value"`
	Window           string `mapstructure:"window"`
	Turbine          int    `mapstructure:"turbine"`
	Blade            int    `mapstructure:"blade"`
	Precision        int    `mapstructure:"precision"`
	Output           string `mapstructure:"output"`
	OutputFile       string `mapstructure:"output-file"`
	Width            int    `mapstructure:"width"`
	Color            string `mapstructure:"color"`
	ArchiveBackend   string `mapstructure:"archive-backend"`
	ArchiveDBConnect string `mapstructure:"archive-db-connect"`

	// --- Fields from spanwiseCmd.Flags() ---
	At      string `mapstructure:"at"`
	Station int    `mapstructure:"station"`

	// --- Fields from phaseCmd.Flags() ---
	Frequency float64 `mapstructure:"frequency"`
	Bins      int     `mapstructure:"bins"`

	// --- Fields from plotCmd.Flags() ---
	FigDir    string `mapstructure:"fig-dir"`
	FigFormat string `mapstructure:"fig-format"`
	Terminal  bool   `mapstructure:"terminal"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Keys != nil {
		clone.Keys = make([]string, len(c.Keys))
		copy(clone.Keys, c.Keys)
	}
	if c.Targets != nil {
		clone.Targets = make([]float64, len(c.Targets))
		copy(clone.Targets, c.Targets)
	}
	return &clone
}

// CloneWithWindow creates a copy of the Config and sets a new crop window.
func (c *Config) CloneWithWindow(lo, hi float64) *Config {
	clone := c.Clone()
	clone.WindowLo = lo
	clone.WindowHi = hi
	return clone
}

// HasWindow reports whether the config restricts the time axis at all.
func (c *Config) HasWindow() bool {
	return !math.IsInf(c.WindowLo, -1) || !math.IsInf(c.WindowHi, 1)
}

// ProcessAndValidate performs all complex parsing and validation on the raw
// inputs and updates the final Config struct.
func ProcessAndValidate(ctx context.Context, cfg *Config, store CaseStore, input *ConfigRawInput) error {
	// All validation functions read from 'input' and populate 'cfg'.
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processTimeDirSelection(cfg, input); err != nil {
		return err
	}
	if err := processWindow(cfg, input); err != nil {
		return err
	}
	if err := processTargets(cfg, input); err != nil {
		return err
	}
	if err := processPhaseInputs(cfg, input); err != nil {
		return err
	}
	if err := processFigureInputs(cfg, input); err != nil {
		return err
	}
	if err := resolveCaseRoot(ctx, cfg, store, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection
// strings for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.ArchiveBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("archive-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("archive-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateSimpleInputs processes and validates all non-path related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.Terminal = input.Terminal

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. Keys Processing ---
	cfg.Keys = nil
	if input.Keys != "" {
		for p := range strings.SplitSeq(input.Keys, ",") {
			trimmed := strings.TrimSpace(p)
			if trimmed != "" {
				cfg.Keys = append(cfg.Keys, trimmed)
			}
		}
	}

	// --- 2. Turbine and Blade Validation ---
	if input.Turbine < 0 {
		return fmt.Errorf("turbine index must be >= 0 (received %d)", input.Turbine)
	}
	cfg.Turbine = input.Turbine

	if input.Blade < AllBlades {
		return fmt.Errorf("blade index must be >= 0, or %d for all blades (received %d)", AllBlades, input.Blade)
	}
	cfg.Blade = input.Blade

	if input.Station < 0 {
		return fmt.Errorf("station index must be >= 0 (received %d)", input.Station)
	}
	cfg.Station = input.Station

	// --- 3. Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > MaxPrecision {
		return fmt.Errorf("precision must be between 1 and %d (received %d)", MaxPrecision, input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}

	// --- 4. Archive Backend Validation ---
	cfg.ArchiveBackend = schema.ArchiveBackend(strings.ToLower(input.ArchiveBackend))
	if _, ok := schema.ValidArchiveBackends[cfg.ArchiveBackend]; !ok {
		return fmt.Errorf("invalid archive backend '%s'. must be sqlite, mysql, postgresql, none", input.ArchiveBackend)
	}
	cfg.ArchiveDBConnect = input.ArchiveDBConnect
	if err := ValidateDatabaseConnectionString(cfg.ArchiveBackend, cfg.ArchiveDBConnect); err != nil {
		return err
	}

	return nil
}

// processTimeDirSelection validates the time directory mode and its target
// value when the mode needs one.
func processTimeDirSelection(cfg *Config, input *ConfigRawInput) error {
	cfg.TimeDirMode = schema.TimeDirMode(strings.ToLower(input.TimeDir))
	if _, ok := schema.ValidTimeDirModes[cfg.TimeDirMode]; !ok {
		return fmt.Errorf("invalid time-dir mode '%s'. must be latest, first, exact, closest, combine", input.TimeDir)
	}

	_, needsValue := schema.TimeDirModesNeedingValue[cfg.TimeDirMode]
	if !needsValue {
		if strings.TrimSpace(input.TimeDirValue) != "" {
			return fmt.Errorf("--time-dir-value is only valid with exact or closest modes (mode is %s)", cfg.TimeDirMode)
		}
		return nil
	}

	value, err := ParseTimeValue(input.TimeDirValue)
	if err != nil {
		return fmt.Errorf("invalid --time-dir-value: %w", err)
	}
	cfg.TimeDirValue = value
	return nil
}

// processWindow parses the crop window specification.
func processWindow(cfg *Config, input *ConfigRawInput) error {
	lo, hi, err := ParseWindow(input.Window)
	if err != nil {
		return fmt.Errorf("invalid --window value: %w", err)
	}
	cfg.WindowLo = lo
	cfg.WindowHi = hi
	return nil
}

// processTargets parses the comma-separated sample instants.
func processTargets(cfg *Config, input *ConfigRawInput) error {
	targets, err := ParseTargets(input.At)
	if err != nil {
		return fmt.Errorf("invalid --at value: %w", err)
	}
	cfg.Targets = targets
	return nil
}

// processPhaseInputs validates the frequency and bin count used by phase
// analysis. A zero frequency is legal here; the phase command itself requires
// one.
func processPhaseInputs(cfg *Config, input *ConfigRawInput) error {
	if math.IsNaN(input.Frequency) || math.IsInf(input.Frequency, 0) || input.Frequency < 0 {
		return fmt.Errorf("frequency must be a finite value >= 0 (received %g)", input.Frequency)
	}
	cfg.Frequency = input.Frequency

	if input.Bins < 1 || input.Bins > MaxBins {
		return fmt.Errorf("bins must be between 1 and %d (received %d)", MaxBins, input.Bins)
	}
	cfg.Bins = input.Bins
	return nil
}

// processFigureInputs validates figure output settings.
func processFigureInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.FigDir = strings.TrimSpace(input.FigDir)
	if cfg.FigDir == "" {
		cfg.FigDir = "figures"
	}

	cfg.FigFormat = schema.FigureFormat(strings.ToLower(input.FigFormat))
	if _, ok := schema.ValidFigureFormats[cfg.FigFormat]; !ok {
		return fmt.Errorf("invalid figure format '%s'. must be png, svg", input.FigFormat)
	}
	return nil
}

// resolveCaseRoot resolves the case directory through the store and pins the
// absolute path into the config.
func resolveCaseRoot(ctx context.Context, cfg *Config, store CaseStore, input *ConfigRawInput) error {
	searchPath := input.CaseRootStr
	if searchPath == "" {
		searchPath = "."
	}
	absSearchPath, err := filepath.Abs(searchPath)
	if err != nil {
		return err
	}
	absSearchPath = filepath.Clean(absSearchPath)

	caseRoot, err := store.Resolve(ctx, absSearchPath)
	if err != nil {
		return err
	}
	cfg.CaseRoot = caseRoot
	return nil
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}
