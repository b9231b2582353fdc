// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rotorpost/rotorpost/internal/contract"
)

// NewMCPServer initializes and configures the Rotorpost MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.ArchiveManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Rotorpost Case Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: list_case_keys ---
	s.AddTool(mcp.NewTool("list_case_keys",
		mcp.WithDescription("List the turbine output keys available in a case directory, with kind, unit and label."),
		mcp.WithString("case_root", mcp.Description("Path to the case directory (defaults to the configured case).")),
	), h.handleListCaseKeys)

	// --- 2. Tool: get_series_window ---
	s.AddTool(mcp.NewTool("get_series_window",
		mcp.WithDescription("Read one turbine output key and return its samples inside a time window."),
		mcp.WithString("key", mcp.Description("Turbine output key, e.g. 'thrust' or 'alpha'."), mcp.Required()),
		mcp.WithString("case_root", mcp.Description("Path to the case directory.")),
		mcp.WithNumber("window_lo", mcp.Description("Lower crop bound in seconds, inclusive. Defaults to the start of the series.")),
		mcp.WithNumber("window_hi", mcp.Description("Upper crop bound in seconds, inclusive. Defaults to the end of the series.")),
		mcp.WithNumber("blade", mcp.Description("Blade filter for spanwise keys. Defaults to all blades.")),
	), h.handleGetSeriesWindow)

	// --- 3. Tool: sample_at ---
	s.AddTool(mcp.NewTool("sample_at",
		mcp.WithDescription("Sample one turbine output key at an instant, using the latest sample at or before it."),
		mcp.WithString("key", mcp.Description("Turbine output key to sample."), mcp.Required()),
		mcp.WithNumber("time", mcp.Description("Target instant in seconds."), mcp.Required()),
		mcp.WithString("case_root", mcp.Description("Path to the case directory.")),
		mcp.WithNumber("blade", mcp.Description("Blade filter for spanwise keys. Defaults to all blades.")),
	), h.handleSampleAt)

	// --- 4. Tool: case_loads_summary ---
	s.AddTool(mcp.NewTool("case_loads_summary",
		mcp.WithDescription("Summarize the integrated rotor load series of a case: count, mean, std, min, max per key."),
		mcp.WithString("case_root", mcp.Description("Path to the case directory.")),
		mcp.WithString("keys", mcp.Description("Comma-separated keys to summarize. Defaults to thrust,torqueRotor,powerRotor.")),
		mcp.WithNumber("window_lo", mcp.Description("Lower crop bound in seconds, inclusive.")),
		mcp.WithNumber("window_hi", mcp.Description("Upper crop bound in seconds, inclusive.")),
	), h.handleCaseLoadsSummary)

	return s
}

// StartMCPServer starts the Rotorpost MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.ArchiveManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
