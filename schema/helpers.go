package schema

import (
	"strings"
	"time"
)

// MonthKey formats a timestamp as the per-period map key for monthly
// aggregates, e.g. "2025-01".
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// DayKey formats a timestamp as the per-day map key used by the WIP metric,
// e.g. "2025-03-05".
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// SprintName extracts the sprint label from an iteration path: the final
// path segment. The tracking system separates segments with backslashes,
// but forward slashes are accepted for hand-written fixtures.
func SprintName(iterationPath string) string {
	p := strings.ReplaceAll(iterationPath, "/", "\\")
	p = strings.TrimRight(p, "\\")
	if idx := strings.LastIndex(p, "\\"); idx >= 0 {
		return p[idx+1:]
	}
	return p
}

// AbbreviateName shortens "Jordan Rivera" to "Jordan R" for narrow table
// columns. Single-word names and the sentinel names pass through unchanged.
func AbbreviateName(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == UnassignedName || trimmed == UnknownName {
		return trimmed
	}
	parts := strings.Fields(trimmed)
	if len(parts) < 2 {
		return trimmed
	}
	last := []rune(parts[len(parts)-1])
	if len(last) == 0 {
		return parts[0]
	}
	return parts[0] + " " + string(last[0])
}

// FormatMembers renders a member list as "Jordan R, Sam T".
func FormatMembers(names []string) string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = AbbreviateName(n)
	}
	return strings.Join(out, ", ")
}
