package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rotorpost/rotorpost/core"
	"github.com/rotorpost/rotorpost/internal/contract"
	"github.com/rotorpost/rotorpost/schema"
)

// toolHandler holds common dependencies for MCP tool handlers. Every request
// works on its own clone of the base config, so concurrent tool calls never
// step on each other.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.ArchiveManager
}

// seriesWindowPayload is the get_series_window response. Scalar histories
// carry values; spanwise histories carry rows plus the blade column and the
// station count.
type seriesWindowPayload struct {
	Key      string      `json:"key"`
	Unit     string      `json:"unit,omitempty"`
	Samples  int         `json:"samples"`
	Time     []float64   `json:"time"`
	Values   []float64   `json:"values,omitempty"`
	Rows     [][]float64 `json:"rows,omitempty"`
	Blade    []int       `json:"blade,omitempty"`
	Stations int         `json:"stations,omitempty"`
}

// scalarSamplePayload is the sample_at response for scalar histories.
// Spanwise histories answer with a schema.ProfileSample instead.
type scalarSamplePayload struct {
	Key    string  `json:"key"`
	Target float64 `json:"target"`
	Value  float64 `json:"value"`
	Unit   string  `json:"unit,omitempty"`
}

func (h *toolHandler) handleListCaseKeys(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("case_root", ""); p != "" {
		cfg.CaseRoot = p
	}

	listings, err := core.GetCaseKeys(ctx, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("key discovery failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(listings, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetSeriesWindow(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key, err := request.RequireString("key")
	if err != nil {
		return mcp.NewToolResultError("key is required"), nil
	}

	cfg := h.baseCfg.Clone()
	if p := request.GetString("case_root", ""); p != "" {
		cfg.CaseRoot = p
	}
	cfg.WindowLo = request.GetFloat("window_lo", cfg.WindowLo)
	cfg.WindowHi = request.GetFloat("window_hi", cfg.WindowHi)
	cfg.Blade = request.GetInt("blade", cfg.Blade)

	ds, err := core.GetSeriesWindow(ctx, cfg, key)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("window extraction failed: %v", err)), nil
	}

	payload := seriesWindowPayload{
		Key:     ds.OutputKey(),
		Unit:    schema.LookupKey(ds.OutputKey()).Unit,
		Samples: ds.Len(),
		Time:    ds.TimeAxis(),
	}
	switch d := ds.(type) {
	case *schema.ScalarSeries:
		payload.Values = d.Values
	case *schema.DistributionSeries:
		payload.Rows = d.Values
		payload.Blade = d.Blade
		payload.Stations = d.Stations
	}

	jsonData, _ := json.MarshalIndent(payload, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleSampleAt(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key, err := request.RequireString("key")
	if err != nil {
		return mcp.NewToolResultError("key is required"), nil
	}
	target, err := request.RequireFloat("time")
	if err != nil {
		return mcp.NewToolResultError("time is required"), nil
	}

	cfg := h.baseCfg.Clone()
	if p := request.GetString("case_root", ""); p != "" {
		cfg.CaseRoot = p
	}
	cfg.Blade = request.GetInt("blade", cfg.Blade)

	ds, err := core.GetSeriesWindow(ctx, cfg, key)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("sampling failed: %v", err)), nil
	}

	var payload any
	switch d := ds.(type) {
	case *schema.ScalarSeries:
		value, err := d.ValueAt(target)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("sampling failed: %v", err)), nil
		}
		payload = scalarSamplePayload{
			Key:    d.Key,
			Target: target,
			Value:  value,
			Unit:   schema.LookupKey(d.Key).Unit,
		}
	case *schema.DistributionSeries:
		values, actual, err := d.ProfileAt(target)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("sampling failed: %v", err)), nil
		}
		payload = schema.ProfileSample{
			Key:    d.Key,
			Target: target,
			Actual: actual,
			Blade:  cfg.Blade,
			Values: values,
			Unit:   schema.LookupKey(d.Key).Unit,
		}
	}

	jsonData, _ := json.MarshalIndent(payload, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleCaseLoadsSummary(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("case_root", ""); p != "" {
		cfg.CaseRoot = p
	}
	cfg.WindowLo = request.GetFloat("window_lo", cfg.WindowLo)
	cfg.WindowHi = request.GetFloat("window_hi", cfg.WindowHi)
	if raw := request.GetString("keys", ""); raw != "" {
		cfg.Keys = nil
		for p := range strings.SplitSeq(raw, ",") {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				cfg.Keys = append(cfg.Keys, trimmed)
			}
		}
	}

	result, err := core.GetLoadsResults(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("summary failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
