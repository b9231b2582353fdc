package mcp_test

import (
	"context"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rotorpost/rotorpost/internal/archive"
	"github.com/rotorpost/rotorpost/internal/contract"
	mcp_internal "github.com/rotorpost/rotorpost/internal/mcp"
	"github.com/rotorpost/rotorpost/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const thrustFile = `#Turbine    Time(s)    dt(s)    thrust (N)
0    0.0    0.005    10.0
0    1.0    0.005    12.0
0    2.0    0.005    11.0
0    3.0    0.005    13.0
0    4.0    0.005    12.0
`

const alphaFile = `#Turbine    Blade    Time(s)    dt(s)    alpha (deg)
0    0    0.0    0.005    4.1    4.5
0    1    0.0    0.005    4.0    4.6
0    0    1.0    0.005    4.3    4.7
0    1    1.0    0.005    4.2    4.8
`

// writeCase lays out a minimal case with one scalar and one spanwise key.
func writeCase(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	dir := filepath.Join(root, "turbineOutput", "0")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "thrust"), []byte(thrustFile), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "alpha"), []byte(alphaFile), 0o644))
	return root
}

func baseConfig(root string) *contract.Config {
	return &contract.Config{
		CaseRoot:    root,
		TimeDirMode: schema.LatestDir,
		WindowLo:    math.Inf(-1),
		WindowHi:    math.Inf(1),
		Blade:       contract.AllBlades,
		Bins:        contract.DefaultBins,
		Precision:   contract.DefaultPrecision,
		Output:      schema.TextOut,
		FigFormat:   schema.PNGFigure,
	}
}

// noArchive returns a manager whose run store is disabled.
func noArchive() *archive.MockArchiveManager {
	mgr := &archive.MockArchiveManager{}
	mgr.On("GetRunStore").Return(nil)
	return mgr
}

// resultText extracts the text payload of a tool response.
func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	return res.Content[0].(mcp.TextContent).Text
}

func TestMCPServerHandlers_ValidationErrors(t *testing.T) {
	root := writeCase(t)
	s := mcp_internal.NewMCPServer(baseConfig(root), noArchive())

	ctx := context.Background()

	t.Run("get_series_window missing key", func(t *testing.T) {
		tool := s.GetTool("get_series_window")
		require.NotNil(t, tool, "Tool get_series_window should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name:      "get_series_window",
				Arguments: map[string]any{},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, resultText(t, res), "key is required")
	})

	t.Run("sample_at missing time", func(t *testing.T) {
		tool := s.GetTool("sample_at")
		require.NotNil(t, tool, "Tool sample_at should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "sample_at",
				Arguments: map[string]any{
					"key": "thrust",
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(t, res), "time is required")
	})

	t.Run("sample_at before first sample", func(t *testing.T) {
		tool := s.GetTool("sample_at")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "sample_at",
				Arguments: map[string]any{
					"key":  "thrust",
					"time": -1.0,
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(t, res), "sampling failed")
	})

	t.Run("list_case_keys unresolvable case root", func(t *testing.T) {
		tool := s.GetTool("list_case_keys")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "list_case_keys",
				Arguments: map[string]any{
					"case_root": filepath.Join(t.TempDir(), "missing"),
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(t, res), "key discovery failed")
	})

	t.Run("case_loads_summary unknown key", func(t *testing.T) {
		tool := s.GetTool("case_loads_summary")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "case_loads_summary",
				Arguments: map[string]any{
					"keys": "bendingMoment",
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(t, res), "summary failed")
	})
}

func TestMCPServerHandlers_ListCaseKeys(t *testing.T) {
	root := writeCase(t)
	s := mcp_internal.NewMCPServer(baseConfig(root), noArchive())

	tool := s.GetTool("list_case_keys")
	require.NotNil(t, tool)

	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      "list_case_keys",
			Arguments: map[string]any{},
		},
	}

	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err)
	require.False(t, res.IsError)

	var listings []schema.KeyListing
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &listings))
	require.Len(t, listings, 2)
	assert.Equal(t, "alpha", listings[0].Key)
	assert.Equal(t, schema.KindSpanwise, listings[0].Kind)
	assert.Equal(t, "thrust", listings[1].Key)
	assert.Equal(t, schema.KindLoad, listings[1].Kind)
	assert.Equal(t, "N", listings[1].Unit)
}

func TestMCPServerHandlers_GetSeriesWindow(t *testing.T) {
	root := writeCase(t)
	s := mcp_internal.NewMCPServer(baseConfig(root), noArchive())

	ctx := context.Background()
	tool := s.GetTool("get_series_window")
	require.NotNil(t, tool)

	t.Run("scalar history with crop window", func(t *testing.T) {
		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "get_series_window",
				Arguments: map[string]any{
					"key":       "thrust",
					"window_lo": 1.0,
					"window_hi": 3.0,
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		require.False(t, res.IsError, resultText(t, res))

		var payload struct {
			Key     string    `json:"key"`
			Unit    string    `json:"unit"`
			Samples int       `json:"samples"`
			Time    []float64 `json:"time"`
			Values  []float64 `json:"values"`
		}
		require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &payload))
		assert.Equal(t, "thrust", payload.Key)
		assert.Equal(t, "N", payload.Unit)
		assert.Equal(t, 3, payload.Samples)
		assert.Equal(t, []float64{1, 2, 3}, payload.Time)
		assert.Equal(t, []float64{12, 11, 13}, payload.Values)
	})

	t.Run("spanwise history with blade filter", func(t *testing.T) {
		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "get_series_window",
				Arguments: map[string]any{
					"key":   "alpha",
					"blade": 1.0,
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		require.False(t, res.IsError, resultText(t, res))

		var payload struct {
			Key      string      `json:"key"`
			Samples  int         `json:"samples"`
			Time     []float64   `json:"time"`
			Rows     [][]float64 `json:"rows"`
			Blade    []int       `json:"blade"`
			Stations int         `json:"stations"`
		}
		require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &payload))
		assert.Equal(t, "alpha", payload.Key)
		assert.Equal(t, 2, payload.Samples)
		assert.Equal(t, []float64{0, 1}, payload.Time)
		assert.Equal(t, [][]float64{{4.0, 4.6}, {4.2, 4.8}}, payload.Rows)
		assert.Equal(t, []int{1, 1}, payload.Blade)
		assert.Equal(t, 2, payload.Stations)
	})
}

func TestMCPServerHandlers_SampleAt(t *testing.T) {
	root := writeCase(t)
	s := mcp_internal.NewMCPServer(baseConfig(root), noArchive())

	ctx := context.Background()
	tool := s.GetTool("sample_at")
	require.NotNil(t, tool)

	t.Run("scalar history", func(t *testing.T) {
		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "sample_at",
				Arguments: map[string]any{
					"key":  "thrust",
					"time": 2.5,
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		require.False(t, res.IsError, resultText(t, res))

		// The latest sample at or before t=2.5 is the one at t=2.
		var payload struct {
			Key    string  `json:"key"`
			Target float64 `json:"target"`
			Value  float64 `json:"value"`
			Unit   string  `json:"unit"`
		}
		require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &payload))
		assert.Equal(t, "thrust", payload.Key)
		assert.Equal(t, 2.5, payload.Target)
		assert.Equal(t, 11.0, payload.Value)
		assert.Equal(t, "N", payload.Unit)
	})

	t.Run("spanwise history", func(t *testing.T) {
		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "sample_at",
				Arguments: map[string]any{
					"key":   "alpha",
					"time":  1.5,
					"blade": 1.0,
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		require.False(t, res.IsError, resultText(t, res))

		var sample schema.ProfileSample
		require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &sample))
		assert.Equal(t, "alpha", sample.Key)
		assert.Equal(t, 1.5, sample.Target)
		assert.Equal(t, 1.0, sample.Actual)
		assert.Equal(t, 1, sample.Blade)
		assert.Equal(t, []float64{4.2, 4.8}, sample.Values)
		assert.Equal(t, "deg", sample.Unit)
	})
}

func TestMCPServerHandlers_CaseLoadsSummary(t *testing.T) {
	root := writeCase(t)
	s := mcp_internal.NewMCPServer(baseConfig(root), noArchive())

	tool := s.GetTool("case_loads_summary")
	require.NotNil(t, tool)

	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name: "case_loads_summary",
			Arguments: map[string]any{
				"keys": "thrust",
			},
		},
	}

	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err)
	require.False(t, res.IsError, resultText(t, res))

	var result schema.SeriesStatsResult
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &result))
	assert.Equal(t, root, result.CaseRoot)
	require.Len(t, result.Stats, 1)
	assert.Equal(t, "thrust", result.Stats[0].Key)
	assert.Equal(t, 5, result.Stats[0].Count)
	assert.InDelta(t, 11.6, result.Stats[0].Mean, 1e-9)
}
