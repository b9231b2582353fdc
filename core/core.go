// Package core has core logic for loading, summarizing and sampling case
// datasets.
package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rotorpost/rotorpost/internal/contract"
	"github.com/rotorpost/rotorpost/internal/outwriter"
	"github.com/rotorpost/rotorpost/internal/turbineout"
	"github.com/rotorpost/rotorpost/reader"
	"github.com/rotorpost/rotorpost/schema"
)

// ExecutorFunc defines the function signature for executing different
// analysis commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.ArchiveManager) error

// ExecuteLoads summarizes the integrated rotor load series and prints the
// results. It serves as the main entry point for the 'loads' command.
func ExecuteLoads(ctx context.Context, cfg *contract.Config, mgr contract.ArchiveManager) error {
	start := time.Now()
	result, err := GetLoadsResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	ow := outwriter.NewOutWriter()
	return ow.WriteSeriesStats(result, cfg, duration)
}

// ExecuteMotions summarizes the platform motion series and prints the
// results. It serves as the main entry point for the 'motions' command.
func ExecuteMotions(ctx context.Context, cfg *contract.Config, mgr contract.ArchiveManager) error {
	start := time.Now()
	result, err := GetMotionsResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	ow := outwriter.NewOutWriter()
	return ow.WriteSeriesStats(result, cfg, duration)
}

// ExecuteKeys lists the output vocabulary discovered in the case.
func ExecuteKeys(ctx context.Context, cfg *contract.Config, _ contract.ArchiveManager) error {
	start := time.Now()
	listings, err := GetCaseKeys(ctx, cfg)
	if err != nil {
		return err
	}

	duration := time.Since(start)
	ow := outwriter.NewOutWriter()
	return ow.WriteKeys(listings, cfg, duration)
}

// GetLoadsResults summarizes the integrated rotor load series and returns the
// results without printing them. Exposed for the MCP server.
func GetLoadsResults(ctx context.Context, cfg *contract.Config, mgr contract.ArchiveManager) (*schema.SeriesStatsResult, error) {
	return runSeriesStats(ctx, cfg, mgr, "loads", schema.DefaultLoadKeys)
}

// GetMotionsResults summarizes the platform motion series and returns the
// results without printing them. Exposed for the MCP server.
func GetMotionsResults(ctx context.Context, cfg *contract.Config, mgr contract.ArchiveManager) (*schema.SeriesStatsResult, error) {
	return runSeriesStats(ctx, cfg, mgr, "motions", schema.DefaultMotionKeys)
}

// GetCaseKeys discovers the output keys of the case and pairs each with its
// catalog entry.
func GetCaseKeys(ctx context.Context, cfg *contract.Config) ([]schema.KeyListing, error) {
	rdr, err := newCaseReader(ctx, cfg)
	if err != nil {
		return nil, err
	}

	keys, err := rdr.Keys(ctx)
	if err != nil {
		return nil, err
	}
	listings := make([]schema.KeyListing, len(keys))
	for i, key := range keys {
		info := schema.LookupKey(key)
		listings[i] = schema.KeyListing{Key: key, Kind: info.Kind, Unit: info.Unit, Label: info.Label}
	}
	return listings, nil
}

// GetSeriesWindow loads one key and applies the crop window and blade scope
// from the config. Exposed for the MCP server.
func GetSeriesWindow(ctx context.Context, cfg *contract.Config, key string) (schema.Dataset, error) {
	rdr, err := newCaseReader(ctx, cfg)
	if err != nil {
		return nil, err
	}
	ds, err := rdr.TurbineOutput(ctx, key)
	if err != nil {
		return nil, err
	}
	return scopeDataset(ds, cfg)
}

// newCaseReader builds a reader over the local case store configured by cfg.
// The config's case root was already resolved during validation.
func newCaseReader(ctx context.Context, cfg *contract.Config) (*reader.CaseReader, error) {
	store := turbineout.NewLocalCaseStore(cfg.TimeDirMode, cfg.TimeDirValue, cfg.Turbine)
	return reader.NewCaseReader(ctx, store, cfg.CaseRoot)
}

// runSeriesStats performs the common load, crop and summarize steps shared
// by the loads and motions commands.
func runSeriesStats(ctx context.Context, cfg *contract.Config, mgr contract.ArchiveManager, command string, defaultKeys []string) (*schema.SeriesStatsResult, error) {
	if !shouldSuppressHeader(ctx) {
		outwriter.LogCaseHeader(cfg)
	}

	rdr, err := newCaseReader(ctx, cfg)
	if err != nil {
		return nil, err
	}

	keys := cfg.Keys
	if len(keys) == 0 {
		keys = defaultKeys
	}
	if len(keys) == 0 {
		return nil, errors.New("no keys to summarize")
	}

	// --- 0. Begin Run Tracking (if configured) ---
	var runID int64
	runStore := mgr.GetRunStore()
	if runStore != nil {
		configParams := map[string]any{
			"keys":     strings.Join(keys, ","),
			"time_dir": string(cfg.TimeDirMode),
			"window":   fmt.Sprintf("%g:%g", cfg.WindowLo, cfg.WindowHi),
			"turbine":  cfg.Turbine,
		}
		runID, err = runStore.BeginRun(time.Now(), cfg.CaseRoot, command, configParams)
		if err != nil {
			contract.LogWarn("Run tracking initialization failed", err)
			runID = 0
		}
	}

	// --- 1. Load and Summarize Each Key ---
	stats := make([]schema.SeriesStats, 0, len(keys))
	for _, key := range keys {
		s, err := seriesStatsForKey(ctx, cfg, rdr, key)
		if err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}

	// --- 2. Record and Finalize Run Tracking ---
	if runStore != nil && runID > 0 {
		for _, s := range stats {
			if err := runStore.RecordSeriesStats(runID, cfg.CaseRoot, s); err != nil {
				contract.LogWarn("Failed to record series statistics", err)
				break
			}
		}
		if err := runStore.EndRun(runID, time.Now(), len(stats)); err != nil {
			contract.LogWarn("Failed to finalize run tracking", err)
		}
	}

	return &schema.SeriesStatsResult{CaseRoot: cfg.CaseRoot, Stats: stats}, nil
}
