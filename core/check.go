package core

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rotorpost/rotorpost/internal/contract"
	"github.com/rotorpost/rotorpost/schema"
)

// ExecuteCheck validates a case for CI/CD gating: the root must resolve, the
// time directories must parse, and every requested key must load cleanly.
// It returns a non-zero exit code if any rule fails.
func ExecuteCheck(ctx context.Context, cfg *contract.Config, _ contract.ArchiveManager) error {
	start := time.Now()

	result := buildCheckResult(ctx, cfg)
	printCheckResult(result, time.Since(start))

	if !result.Passed {
		fmt.Printf("%d violation(s) found\n", len(result.Failures))
		os.Exit(1)
	}
	return nil
}

// buildCheckResult runs every validation rule and collects the failures.
// Structural failures stop the key checks; per-key failures do not stop
// each other.
func buildCheckResult(ctx context.Context, cfg *contract.Config) *schema.CheckResult {
	result := &schema.CheckResult{Root: cfg.CaseRoot}

	rdr, err := newCaseReader(ctx, cfg)
	if err != nil {
		result.Failures = append(result.Failures, schema.CheckFailure{Reason: err.Error()})
		return result
	}

	dirs, err := rdr.TimeDirs(ctx)
	if err != nil {
		result.Failures = append(result.Failures, schema.CheckFailure{Reason: err.Error()})
		return result
	}
	result.TimeDirs = dirs

	keys := cfg.Keys
	if len(keys) == 0 {
		keys, err = rdr.Keys(ctx)
		if err != nil {
			result.Failures = append(result.Failures, schema.CheckFailure{Reason: err.Error()})
			return result
		}
	}

	for _, key := range keys {
		if _, err := rdr.TurbineOutput(ctx, key); err != nil {
			result.Failures = append(result.Failures, schema.CheckFailure{Key: key, Reason: err.Error()})
			continue
		}
		result.CheckedKeys = append(result.CheckedKeys, key)
	}

	result.Passed = len(result.Failures) == 0
	return result
}

// printCheckResult prints the check result in a concise format suitable for CI/CD.
func printCheckResult(result *schema.CheckResult, duration time.Duration) {
	printCheckHeader(result, duration)

	if result.Passed {
		printCheckSuccess(result)
	} else {
		printCheckFailure(result)
	}
}

// printCheckHeader prints the common header information for check results.
func printCheckHeader(result *schema.CheckResult, duration time.Duration) {
	fmt.Println("Case Check Results:")

	span := "none"
	if len(result.TimeDirs) > 0 {
		span = fmt.Sprintf("%g → %g s (%d found)",
			result.TimeDirs[0].Value,
			result.TimeDirs[len(result.TimeDirs)-1].Value,
			len(result.TimeDirs))
	}

	// Define labels and values for dynamic padding
	labels := []string{"Root:", "Time dirs:"}
	values := []any{result.Root, span}

	// Find the longest label for consistent padding
	maxLabelLen := 0
	for _, label := range labels {
		if len(label) > maxLabelLen {
			maxLabelLen = len(label)
		}
	}

	// Print each label-value pair with consistent padding
	for i, label := range labels {
		fmt.Printf("  %-*s %v\n", maxLabelLen+1, label, values[i])
	}
	fmt.Println()

	fmt.Printf("Checked %d keys in %v\n\n", len(result.CheckedKeys)+countKeyFailures(result), duration)
}

// printCheckSuccess prints the success case output.
func printCheckSuccess(result *schema.CheckResult) {
	fmt.Printf("✅ All keys loaded cleanly\n\n")

	byKind := make(map[schema.KeyKind]int)
	for _, key := range result.CheckedKeys {
		byKind[schema.LookupKey(key).Kind]++
	}

	fmt.Println("Keys observed:")
	for _, kind := range []schema.KeyKind{schema.KindLoad, schema.KindMotion, schema.KindGeometry, schema.KindSpanwise, schema.KindPosition, schema.KindOther} {
		if count := byKind[kind]; count > 0 {
			fmt.Printf("  %s: %d\n", kind, count)
		}
	}
}

// printCheckFailure prints the failure case output.
func printCheckFailure(result *schema.CheckResult) {
	fmt.Printf("❌ Case check failed: %d violation(s) found\n\n", len(result.Failures))

	// Show top 5 violations, with "+X more" if needed
	maxToShow := 5
	for i, failure := range result.Failures {
		if i >= maxToShow {
			fmt.Printf("  ... and %d more\n", len(result.Failures)-maxToShow)
			break
		}
		if failure.Key != "" {
			fmt.Printf("  - %s: %s\n", failure.Key, failure.Reason)
		} else {
			fmt.Printf("  - %s\n", failure.Reason)
		}
	}
	fmt.Println()
}

// countKeyFailures counts the failures attributed to a specific key.
func countKeyFailures(result *schema.CheckResult) int {
	count := 0
	for _, failure := range result.Failures {
		if failure.Key != "" {
			count++
		}
	}
	return count
}
