// Package main provides a performance benchmarking tool for the rotorpost CLI.
// It generates synthetic cases of increasing size, measures execution times
// across command types, treating the first successful run as cold and
// averaging the rest as warm, and writes CSV output for performance analysis.
//
// Prerequisites:
// - rotorpost binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory where synthetic cases are generated
package main

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (cold run and average of warm runs).
type BenchmarkResult struct {
	Case     string
	Command  string
	ColdTime string
	WarmTime string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir   string
	Timeout   time.Duration
	Runs      int
	CaseSizes map[string]int // case name -> number of time steps
}

// caseSpec describes one synthetic case layout.
const (
	syntheticBlades   = 3
	syntheticStations = 32
	syntheticDt       = 0.05
)

func main() {
	// Parse command line arguments
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}
	workDir := os.Args[1]

	config := BenchmarkConfig{
		WorkDir: workDir,
		Timeout: 2 * time.Minute,
		Runs:    4,
		CaseSizes: map[string]int{
			"small":  1_000,
			"medium": 20_000,
			"large":  200_000,
		},
	}

	if err := checkPrerequisites(); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Generating synthetic cases under %s...\n", config.WorkDir)
	if err := generateCases(config); err != nil {
		fmt.Printf("Case generation failed: %v\n", err)
		os.Exit(1)
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the rotorpost binary exists.
func checkPrerequisites() error {
	if _, err := exec.LookPath("rotorpost"); err != nil {
		return fmt.Errorf("rotorpost binary not found in PATH")
	}
	return nil
}

// generateCases writes one synthetic case per configured size.
func generateCases(config BenchmarkConfig) error {
	for name, steps := range config.CaseSizes {
		root := filepath.Join(config.WorkDir, name)
		if err := writeCase(root, steps); err != nil {
			return fmt.Errorf("case %s: %w", name, err)
		}
		fmt.Printf("  %s: %d time steps\n", name, steps)
	}
	return nil
}

// writeCase lays out one case directory: scalar loads, a spanwise
// distribution and the radial geometry, all under a single time directory.
func writeCase(root string, steps int) error {
	dir := filepath.Join(root, "turbineOutput", "0")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	if err := writeScalar(filepath.Join(dir, "thrust"), "thrust (N)", steps, 8e5, 4e4); err != nil {
		return err
	}
	if err := writeScalar(filepath.Join(dir, "torqueRotor"), "torqueRotor (N-m)", steps, 4e6, 1e5); err != nil {
		return err
	}
	if err := writeDistribution(filepath.Join(dir, "alpha"), "alpha (deg)", steps); err != nil {
		return err
	}
	return writeGeometry(filepath.Join(dir, "radiusC"), "radiusC (m)", steps)
}

// writeScalar writes a one-column history with a sinusoidal ripple.
func writeScalar(path, quantity string, steps int, mean, amp float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	w := newRowWriter(f)
	w.header("Turbine", "Time(s)", "dt(s)", quantity)
	for i := range steps {
		t := float64(i) * syntheticDt
		v := mean + amp*math.Sin(2*math.Pi*0.2*t)
		w.row("0", formatTime(t), formatTime(syntheticDt), fmt.Sprintf("%.4f", v))
	}
	return w.flush()
}

// writeDistribution writes a per-blade spanwise history.
func writeDistribution(path, quantity string, steps int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	w := newRowWriter(f)
	w.header("Turbine", "Blade", "Time(s)", "dt(s)", quantity)
	for i := range steps {
		t := float64(i) * syntheticDt
		for b := range syntheticBlades {
			fields := []string{"0", fmt.Sprintf("%d", b), formatTime(t), formatTime(syntheticDt)}
			for s := range syntheticStations {
				v := 4.0 + 0.1*float64(s) + 0.5*math.Sin(2*math.Pi*0.2*t+float64(b))
				fields = append(fields, fmt.Sprintf("%.4f", v))
			}
			w.row(fields...)
		}
	}
	return w.flush()
}

// writeGeometry writes the constant radial station vector for every blade
// and time step, the way solvers dump geometry alongside the flow output.
func writeGeometry(path, quantity string, steps int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	w := newRowWriter(f)
	w.header("Turbine", "Blade", "Time(s)", "dt(s)", quantity)
	for i := range steps {
		t := float64(i) * syntheticDt
		for b := range syntheticBlades {
			fields := []string{"0", fmt.Sprintf("%d", b), formatTime(t), formatTime(syntheticDt)}
			for s := range syntheticStations {
				fields = append(fields, fmt.Sprintf("%.4f", 1.5+float64(s)*1.9))
			}
			w.row(fields...)
		}
	}
	return w.flush()
}

// runBenchmarks executes all benchmark tests across the generated cases.
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d cases, %v timeout, %d runs each\n",
		len(config.CaseSizes), config.Timeout, config.Runs)

	commands := [][]string{
		{"keys"},
		{"loads", "--keys", "thrust,torqueRotor"},
		{"spanwise", "--keys", "alpha", "--at", "30"},
	}

	for _, name := range []string{"small", "medium", "large"} {
		if _, ok := config.CaseSizes[name]; !ok {
			continue
		}
		fmt.Printf("Benchmarking %s\n", name)
		caseRoot := filepath.Join(config.WorkDir, name)

		for _, args := range commands {
			results = append(results, runBenchmarkSuite(config, name, caseRoot, args))
		}
	}

	return results
}

// runBenchmarkSuite times one command against one case.
func runBenchmarkSuite(config BenchmarkConfig, caseName, caseRoot string, args []string) BenchmarkResult {
	command := args[0]
	fmt.Printf("Running %s on %s\n", command, caseName)

	times := runBenchmark(config, caseRoot, args)

	coldTime := "TIMEOUT"
	warmTime := "TIMEOUT"
	if len(times) > 0 {
		coldTime = fmt.Sprintf("%.3fs", times[0])
	}
	if len(times) > 1 {
		var sum float64
		for _, t := range times[1:] {
			sum += t
		}
		warmTime = fmt.Sprintf("%.3fs", sum/float64(len(times)-1))
	}

	fmt.Printf("  Cold time: %s, Warm average: %s\n", coldTime, warmTime)

	return BenchmarkResult{
		Case:     caseName,
		Command:  command,
		ColdTime: coldTime,
		WarmTime: warmTime,
	}
}

// runBenchmark executes a rotorpost command multiple times and returns the
// wall times of the successful runs.
func runBenchmark(config BenchmarkConfig, caseRoot string, args []string) []float64 {
	fullArgs := append([]string{}, args...)
	fullArgs = append(fullArgs, caseRoot, "--archive-backend", "none")

	var times []float64
	for run := 1; run <= config.Runs; run++ {
		start := time.Now()

		cmd := exec.Command("rotorpost", fullArgs...)

		done := make(chan bool)
		var cmdErr error

		go func() {
			_, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			// Timeout - don't add to times
		}
	}
	return times
}

// saveResults writes benchmark results to a timestamped CSV file.
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/rotorpost_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	if err := writer.Write([]string{"case", "cmd", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write results
	for _, result := range results {
		if err := writer.Write([]string{result.Case, result.Command, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary.
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")

	printCommandSummary(results, "keys", "Key Discovery:")
	printCommandSummary(results, "loads", "Load Summaries:")
	printCommandSummary(results, "spanwise", "Profile Sampling:")

	fmt.Printf("Benchmark script completed successfully\n")
}

// printCommandSummary displays results for a specific command type.
func printCommandSummary(results []BenchmarkResult, command, title string) {
	fmt.Printf("%s\n", title)
	for _, result := range results {
		if result.Command == command {
			fmt.Printf("  %-8s: Cold: %s, Warm: %s\n", result.Case, result.ColdTime, result.WarmTime)
		}
	}
}

// rowWriter batches the four-space separated lines of a turbine output file.
type rowWriter struct {
	b    strings.Builder
	dest *os.File
	err  error
}

func newRowWriter(dest *os.File) *rowWriter {
	return &rowWriter{dest: dest}
}

// header writes the '#'-prefixed header line.
func (w *rowWriter) header(names ...string) {
	w.b.WriteString("#")
	w.b.WriteString(strings.Join(names, "    "))
	w.b.WriteString("\n")
}

// row writes one data row. Rows are buffered and flushed in chunks to keep
// allocation flat for the large cases.
func (w *rowWriter) row(fields ...string) {
	w.b.WriteString(strings.Join(fields, "    "))
	w.b.WriteString("\n")
	if w.b.Len() > 1<<20 {
		w.flushBuffer()
	}
}

func (w *rowWriter) flushBuffer() {
	if w.err != nil {
		return
	}
	_, w.err = w.dest.WriteString(w.b.String())
	w.b.Reset()
}

// flush writes any remaining buffered rows and reports the first error.
func (w *rowWriter) flush() error {
	w.flushBuffer()
	return w.err
}

// formatTime renders a timestamp the way the solver writes them.
func formatTime(t float64) string {
	return fmt.Sprintf("%g", t)
}
