package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

// Check label constants.
const (
	PassValue = "Pass" // Validation rule satisfied
	FailValue = "Fail" // Validation rule violated
	WarnValue = "Warn" // Readable but suspicious
)

// Color variables for console output.
var (
	PassColor = color.New(color.FgGreen)            // passColor marks satisfied rules.
	FailColor = color.New(color.FgRed, color.Bold)  // failColor marks violations.
	WarnColor = color.New(color.FgYellow)           // warnColor marks suspicious but readable data.
	KeyColor  = color.New(color.FgCyan, color.Bold) // keyColor highlights output keys in tables.
)

// GetColorStatus returns a colored pass/fail/warn label for console output.
// Plain variants are used for CSV and JSON printing.
func GetColorStatus(status string) string {
	switch status {
	case PassValue:
		return PassColor.Sprint(status)
	case FailValue:
		return FailColor.Sprint(status)
	case WarnValue:
		return WarnColor.Sprint(status)
	default:
		return status
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It falls back to os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetArchiveDBFilePath returns the path to the SQLite DB file for archive storage.
func GetArchiveDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".rotorpost_archive.db"
	}
	return filepath.Join(homeDir, ".rotorpost_archive.db")
}

// TruncatePath truncates a file path to a maximum width with ellipsis prefix.
// Requires maxWidth > 3 to ensure there's space for both the "..." prefix and at least one character of content.
// Without this check, small maxWidth values could cause slice bounds errors in the truncation calculation.
func TruncatePath(path string, maxWidth int) string {
	runes := []rune(path)
	if len(runes) > maxWidth && maxWidth > 3 {
		return "..." + string(runes[len(runes)-maxWidth+3:])
	}
	return path
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
