package contract

import (
	"context"
	"math"
	"path/filepath"
	"testing"

	"github.com/rotorpost/rotorpost/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validRawInput returns a raw input carrying the same defaults the root
// command registers, so each test case only has to state what it breaks.
func validRawInput() *ConfigRawInput {
	return &ConfigRawInput{
		CaseRootStr:    ".",
		TimeDir:        "latest",
		Precision:      DefaultPrecision,
		Output:         "text",
		Color:          "yes",
		ArchiveBackend: "sqlite",
		Bins:           DefaultBins,
		FigFormat:      "png",
		Blade:          AllBlades,
	}
}

func TestProcessAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		modify      func(*ConfigRawInput)
		expectError bool
		verify      func(*testing.T, *Config)
	}{
		{
			name:        "valid minimal config",
			modify:      func(*ConfigRawInput) {},
			expectError: false,
			verify: func(t *testing.T, cfg *Config) {
				assert.Equal(t, schema.LatestDir, cfg.TimeDirMode)
				assert.Equal(t, "/mock/case/root", cfg.CaseRoot)
				assert.False(t, cfg.HasWindow())
			},
		},
		{
			name: "keys split and trimmed",
			modify: func(in *ConfigRawInput) {
				in.Keys = "thrust, torqueRotor ,powerRotor"
			},
			expectError: false,
			verify: func(t *testing.T, cfg *Config) {
				assert.Equal(t, []string{"thrust", "torqueRotor", "powerRotor"}, cfg.Keys)
			},
		},
		{
			name: "window parsed into bounds",
			modify: func(in *ConfigRawInput) {
				in.Window = "120:600"
			},
			expectError: false,
			verify: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 120.0, cfg.WindowLo)
				assert.Equal(t, 600.0, cfg.WindowHi)
				assert.True(t, cfg.HasWindow())
			},
		},
		{
			name: "exact mode with value",
			modify: func(in *ConfigRawInput) {
				in.TimeDir = "exact"
				in.TimeDirValue = "1200"
			},
			expectError: false,
			verify: func(t *testing.T, cfg *Config) {
				assert.Equal(t, schema.ExactDir, cfg.TimeDirMode)
				assert.Equal(t, 1200.0, cfg.TimeDirValue)
			},
		},
		{
			name: "targets parsed",
			modify: func(in *ConfigRawInput) {
				in.At = "120,240"
			},
			expectError: false,
			verify: func(t *testing.T, cfg *Config) {
				assert.Equal(t, []float64{120, 240}, cfg.Targets)
			},
		},
		{
			name: "invalid time-dir mode",
			modify: func(in *ConfigRawInput) {
				in.TimeDir = "newest"
			},
			expectError: true,
		},
		{
			name: "exact mode missing value",
			modify: func(in *ConfigRawInput) {
				in.TimeDir = "exact"
			},
			expectError: true,
		},
		{
			name: "value without exact or closest mode",
			modify: func(in *ConfigRawInput) {
				in.TimeDirValue = "1200"
			},
			expectError: true,
		},
		{
			name: "inverted window",
			modify: func(in *ConfigRawInput) {
				in.Window = "600:120"
			},
			expectError: true,
		},
		{
			name: "invalid output format",
			modify: func(in *ConfigRawInput) {
				in.Output = "yaml"
			},
			expectError: true,
		},
		{
			name: "invalid precision (zero)",
			modify: func(in *ConfigRawInput) {
				in.Precision = 0
			},
			expectError: true,
		},
		{
			name: "invalid precision (too high)",
			modify: func(in *ConfigRawInput) {
				in.Precision = MaxPrecision + 1
			},
			expectError: true,
		},
		{
			name: "invalid archive backend",
			modify: func(in *ConfigRawInput) {
				in.ArchiveBackend = "oracle"
			},
			expectError: true,
		},
		{
			name: "mysql backend without connection string",
			modify: func(in *ConfigRawInput) {
				in.ArchiveBackend = "mysql"
			},
			expectError: true,
		},
		{
			name: "negative turbine",
			modify: func(in *ConfigRawInput) {
				in.Turbine = -1
			},
			expectError: true,
		},
		{
			name: "blade below all-blades sentinel",
			modify: func(in *ConfigRawInput) {
				in.Blade = -2
			},
			expectError: true,
		},
		{
			name: "negative frequency",
			modify: func(in *ConfigRawInput) {
				in.Frequency = -0.5
			},
			expectError: true,
		},
		{
			name: "NaN frequency",
			modify: func(in *ConfigRawInput) {
				in.Frequency = math.NaN()
			},
			expectError: true,
		},
		{
			name: "zero bins",
			modify: func(in *ConfigRawInput) {
				in.Bins = 0
			},
			expectError: true,
		},
		{
			name: "invalid figure format",
			modify: func(in *ConfigRawInput) {
				in.FigFormat = "bmp"
			},
			expectError: true,
		},
		{
			name: "invalid color flag",
			modify: func(in *ConfigRawInput) {
				in.Color = "sometimes"
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validRawInput()
			tt.modify(input)

			ctx := context.Background()
			store := &MockCaseStore{}
			workDir, err := filepath.Abs(input.CaseRootStr)
			require.NoError(t, err)
			store.On("Resolve", ctx, workDir).Return("/mock/case/root", nil).Maybe()

			cfg := &Config{}
			err = ProcessAndValidate(ctx, cfg, store, input)

			if tt.expectError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.verify != nil {
				tt.verify(t, cfg)
			}
		})
	}
}

func TestProcessAndValidateStoreFailure(t *testing.T) {
	input := validRawInput()
	input.CaseRootStr = "/nonexistent/case"

	ctx := context.Background()
	store := &MockCaseStore{}
	store.On("Resolve", ctx, "/nonexistent/case").
		Return("", schema.ErrCaseNotFound)

	cfg := &Config{}
	err := ProcessAndValidate(ctx, cfg, store, input)
	require.Error(t, err)
	assert.ErrorIs(t, err, schema.ErrCaseNotFound)
}

func TestConfigClone(t *testing.T) {
	original := &Config{
		CaseRoot: "/cases/floating-a",
		Keys:     []string{"thrust", "powerRotor"},
		Targets:  []float64{120, 240},
		WindowLo: 100,
		WindowHi: 900,
		Blade:    AllBlades,
	}

	clone := original.Clone()
	clone.Keys[0] = "pitch"
	clone.Targets[0] = -1

	assert.Equal(t, "thrust", original.Keys[0])
	assert.Equal(t, 120.0, original.Targets[0])
	assert.Equal(t, original.CaseRoot, clone.CaseRoot)
}

func TestCloneWithWindow(t *testing.T) {
	original := &Config{WindowLo: math.Inf(-1), WindowHi: math.Inf(1)}

	clone := original.CloneWithWindow(10, 20)

	assert.Equal(t, 10.0, clone.WindowLo)
	assert.Equal(t, 20.0, clone.WindowHi)
	assert.False(t, original.HasWindow())
	assert.True(t, clone.HasWindow())
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	tests := []struct {
		name        string
		backend     schema.ArchiveBackend
		connStr     string
		expectError bool
	}{
		{"sqlite needs nothing", schema.SQLiteBackend, "", false},
		{"none needs nothing", schema.NoneBackend, "", false},
		{"valid mysql", schema.MySQLBackend, "user:pass@tcp(localhost:3306)/rotorpost", false},
		{"mysql missing tcp", schema.MySQLBackend, "user:pass@localhost/rotorpost", true},
		{"mysql missing database", schema.MySQLBackend, "user:pass@tcp(localhost:3306)", true},
		{"mysql empty", schema.MySQLBackend, "", true},
		{"valid postgres", schema.PostgreSQLBackend, "host=localhost port=5432 dbname=rotorpost", false},
		{"postgres missing host", schema.PostgreSQLBackend, "port=5432 dbname=rotorpost", true},
		{"postgres missing dbname", schema.PostgreSQLBackend, "host=localhost", true},
		{"postgres empty", schema.PostgreSQLBackend, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDatabaseConnectionString(tt.backend, tt.connStr)
			if tt.expectError {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
