package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/arjaygg/teampulse/schema"
)

// Color variables for console output.
var (
	ExcellentColor = color.New(color.FgGreen, color.Bold) // excellentColor marks a healthy signal.
	GoodColor      = color.New(color.FgCyan)              // goodColor marks an acceptable signal.
	FairColor      = color.New(color.FgYellow)            // fairColor marks standard caution, not bold.
	PoorColor      = color.New(color.FgRed, color.Bold)   // poorColor marks a signal needing attention.
)

// GetColorRating returns a colored flow rating label for console output
// (table). CSV, JSON, and parquet writers use the plain string.
func GetColorRating(rating schema.FlowRating) string {
	text := string(rating)

	switch rating {
	case schema.ExcellentRating:
		return ExcellentColor.Sprint(text)
	case schema.GoodRating:
		return GoodColor.Sprint(text)
	case schema.FairRating:
		return FairColor.Sprint(text)
	default: // "Poor"
		return PoorColor.Sprint(text)
	}
}

// GetColorWIPLevel returns a colored daily-WIP label against policy
// thresholds for console output.
func GetColorWIPLevel(avgWIP float64, policy schema.StatePolicy) string {
	text := fmt.Sprintf("%.1f", avgWIP)
	switch {
	case avgWIP > float64(policy.WIPHighThreshold):
		return PoorColor.Sprint(text)
	case avgWIP > float64(policy.WIPModerateThreshold):
		return FairColor.Sprint(text)
	default:
		return ExcellentColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It falls back to os.Stdout on empty path.
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

// GetCacheDBFilePath returns the path to the SQLite DB file for dataset
// cache storage.
func GetCacheDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".teampulse_cache.db"
	}
	return filepath.Join(homeDir, ".teampulse_cache.db")
}

// GetAnalysisDBFilePath returns the path to the SQLite DB file for analysis
// run storage.
func GetAnalysisDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".teampulse_analysis.db"
	}
	return filepath.Join(homeDir, ".teampulse_analysis.db")
}

// TruncateLabel truncates a label (member name, iteration path) to a
// maximum width with ellipsis prefix. Requires maxWidth > 3 so there is
// space for both the "..." prefix and at least one character of content.
func TruncateLabel(label string, maxWidth int) string {
	runes := []rune(label)
	if len(runes) > maxWidth && maxWidth > 3 {
		return "..." + string(runes[len(runes)-maxWidth+3:])
	}
	return label
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
