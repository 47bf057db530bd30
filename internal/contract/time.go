package contract

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// relativeUnits maps accepted unit spellings to their duration in days.
var relativeUnits = map[string]int{
	"day": 1, "days": 1,
	"week": 7, "weeks": 7,
	"month": 30, "months": 30,
	"year": 365, "years": 365,
}

// ParseRelativeTime parses human-friendly relative expressions like
// "3 months ago" or "2 weeks ago" into an absolute time anchored at now.
// Months count as 30 days and years as 365.
func ParseRelativeTime(s string, now time.Time) (time.Time, error) {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(s)))
	if len(fields) != 3 || fields[2] != "ago" {
		return time.Time{}, fmt.Errorf("expected format 'N <unit> ago', got %q", s)
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil || n < 0 {
		return time.Time{}, fmt.Errorf("invalid count %q in relative time", fields[0])
	}
	days, ok := relativeUnits[fields[1]]
	if !ok {
		return time.Time{}, fmt.Errorf("unknown unit %q (use days, weeks, months, years)", fields[1])
	}
	return now.Add(-time.Duration(n*days) * 24 * time.Hour), nil
}

// ParseLookbackDuration converts shorthand like "30d", "12w", "6m", "1y"
// into a duration. Used by the MCP tools where a single token is more
// convenient than a sentence.
func ParseLookbackDuration(s string) (time.Duration, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) < 2 {
		return 0, fmt.Errorf("lookback %q too short, expected forms like 30d, 12w, 6m, 1y", s)
	}
	n, err := strconv.Atoi(s[:len(s)-1])
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid lookback count in %q", s)
	}
	var days int
	switch s[len(s)-1] {
	case 'd':
		days = 1
	case 'w':
		days = 7
	case 'm':
		days = 30
	case 'y':
		days = 365
	default:
		return 0, fmt.Errorf("unknown lookback unit %q in %q (use d, w, m, y)", s[len(s)-1:], s)
	}
	return time.Duration(n*days) * 24 * time.Hour, nil
}
