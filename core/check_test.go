package core

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rotorpost/rotorpost/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const goodThrustFile = `#Turbine    Time(s)    dt(s)    thrust (N)
0 0.0 0.1 10.0
0 1.0 0.1 12.0
0 2.0 0.1 11.0
`

// A row with a missing payload field, so the key fails to load.
const raggedTorqueFile = `#Turbine    Time(s)    dt(s)    torqueRotor (N-m)
0 0.0 0.1 500.0
0 1.0 0.1
`

// writeCaseFiles lays out a turbineOutput time directory on disk.
func writeCaseFiles(t *testing.T, root, timeDir string, files map[string]string) {
	t.Helper()
	dir := filepath.Join(root, "turbineOutput", timeDir)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
}

func TestBuildCheckResultPass(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	writeCaseFiles(t, root, "0", map[string]string{"thrust": goodThrustFile})

	cfg := testConfig(root)
	result := buildCheckResult(ctx, cfg)

	assert.True(t, result.Passed)
	assert.Equal(t, root, result.Root)
	assert.Len(t, result.TimeDirs, 1)
	assert.Equal(t, []string{"thrust"}, result.CheckedKeys)
	assert.Empty(t, result.Failures)
}

func TestBuildCheckResultMalformedKey(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	writeCaseFiles(t, root, "0", map[string]string{
		"thrust":      goodThrustFile,
		"torqueRotor": raggedTorqueFile,
	})

	cfg := testConfig(root)
	result := buildCheckResult(ctx, cfg)

	assert.False(t, result.Passed)
	assert.Equal(t, []string{"thrust"}, result.CheckedKeys)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, "torqueRotor", result.Failures[0].Key)
	assert.NotEmpty(t, result.Failures[0].Reason)
}

func TestBuildCheckResultMissingRoot(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(filepath.Join(t.TempDir(), "missing"))

	result := buildCheckResult(ctx, cfg)

	assert.False(t, result.Passed)
	require.Len(t, result.Failures, 1)
	assert.Empty(t, result.Failures[0].Key)
	assert.Empty(t, result.CheckedKeys)
	assert.Empty(t, result.TimeDirs)
}

func TestBuildCheckResultExplicitKeys(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	writeCaseFiles(t, root, "0", map[string]string{
		"thrust":      goodThrustFile,
		"torqueRotor": raggedTorqueFile,
	})

	cfg := testConfig(root)
	cfg.Keys = []string{"thrust"}
	result := buildCheckResult(ctx, cfg)

	// The malformed key is never touched when keys are given explicitly.
	assert.True(t, result.Passed)
	assert.Equal(t, []string{"thrust"}, result.CheckedKeys)
}

func TestBuildCheckResultUnknownKey(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	writeCaseFiles(t, root, "0", map[string]string{"thrust": goodThrustFile})

	cfg := testConfig(root)
	cfg.Keys = []string{"bendingMoment"}
	result := buildCheckResult(ctx, cfg)

	assert.False(t, result.Passed)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, "bendingMoment", result.Failures[0].Key)
}

func TestExecuteCheckPassingCase(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	writeCaseFiles(t, root, "0", map[string]string{"thrust": goodThrustFile})

	cfg := testConfig(root)
	err := ExecuteCheck(ctx, cfg, nil)
	assert.NoError(t, err)
}

func TestCountKeyFailures(t *testing.T) {
	result := &schema.CheckResult{
		Failures: []schema.CheckFailure{
			{Reason: "case directory does not exist"},
			{Key: "torqueRotor", Reason: "row 2: expected 4 fields"},
			{Key: "powerRotor", Reason: "row 5: expected 4 fields"},
		},
	}

	assert.Equal(t, 2, countKeyFailures(result))
}

func TestPrintCheckResult(t *testing.T) {
	// Test that printCheckResult doesn't panic with various inputs
	tests := []struct {
		name   string
		result schema.CheckResult
	}{
		{
			name: "all passed",
			result: schema.CheckResult{
				Passed: true,
				Root:   "/cases/nrel5mw",
				TimeDirs: []schema.TimeDir{
					{Name: "0", Value: 0},
					{Name: "600", Value: 600},
				},
				CheckedKeys: []string{"thrust", "torqueRotor", "yaw", "radiusC"},
			},
		},
		{
			name: "some failed",
			result: schema.CheckResult{
				Passed: false,
				Root:   "/cases/nrel5mw",
				TimeDirs: []schema.TimeDir{
					{Name: "0", Value: 0},
				},
				CheckedKeys: []string{"thrust"},
				Failures: []schema.CheckFailure{
					{Key: "torqueRotor", Reason: "row 2: expected 4 fields, observed 3"},
					{Reason: "case directory does not exist"},
				},
			},
		},
		{
			name: "many failures truncate",
			result: schema.CheckResult{
				Passed: false,
				Root:   "/cases/nrel5mw",
				Failures: []schema.CheckFailure{
					{Key: "a", Reason: "x"},
					{Key: "b", Reason: "x"},
					{Key: "c", Reason: "x"},
					{Key: "d", Reason: "x"},
					{Key: "e", Reason: "x"},
					{Key: "f", Reason: "x"},
					{Key: "g", Reason: "x"},
				},
			},
		},
		{
			name:   "no time dirs",
			result: schema.CheckResult{Passed: true, Root: "/cases/empty"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Just ensure it doesn't panic
			assert.NotPanics(t, func() {
				printCheckResult(&tt.result, time.Second)
			})
		})
	}
}
