package schema

import (
	"time"
)

// fieldTimeLayouts are the timestamp formats the tracking system emits.
var fieldTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// AsString renders a field value as a string, or "" when absent or not
// string-shaped. Absence is normal for sparse snapshots and never an error.
func AsString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// AsTime parses a field value into a UTC timestamp. The second return is
// false for absent, empty or unparsable values.
func AsTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t.UTC(), true
	case string:
		if t == "" {
			return time.Time{}, false
		}
		for _, layout := range fieldTimeLayouts {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed.UTC(), true
			}
		}
	}
	return time.Time{}, false
}

// StringField returns the named field as a string, or def when the field is
// absent, null or not a string.
func (w WorkItem) StringField(name, def string) string {
	v, ok := w.Fields[name]
	if !ok || v == nil {
		return def
	}
	if s, ok := v.(string); ok {
		return s
	}
	return def
}

// FloatField returns the named field as a float64, or def when absent or
// not numeric. JSON decoding yields float64 for all numbers, but int is
// accepted for values built in code.
func (w WorkItem) FloatField(name string, def float64) float64 {
	v, ok := w.Fields[name]
	if !ok || v == nil {
		return def
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	}
	return def
}

// TimeField returns the named field as a UTC timestamp. The second return
// is false when the field is absent or unparsable.
func (w WorkItem) TimeField(name string) (time.Time, bool) {
	v, ok := w.Fields[name]
	if !ok {
		return time.Time{}, false
	}
	return AsTime(v)
}

// State returns the item's current workflow state.
func (w WorkItem) State() string {
	return w.StringField(FieldState, "")
}

// Type returns the item's work item type (Bug, Task, User Story, ...).
func (w WorkItem) Type() string {
	return w.StringField(FieldWorkItemType, "")
}

// Identity is the normalized form of an "assigned person" field value. The
// tracking system emits either a bare display-name string or a structured
// identity object; this type collapses both onto one display name.
type Identity struct {
	Display string
}

// ParseIdentity normalizes an assignee/actor field value. Absent values
// normalize to the Unassigned sentinel; structured values without a display
// name normalize to Unknown.
func ParseIdentity(v any) Identity {
	switch t := v.(type) {
	case nil:
		return Identity{Display: UnassignedName}
	case string:
		if t == "" {
			return Identity{Display: UnassignedName}
		}
		return Identity{Display: t}
	case map[string]any:
		if name := AsString(t["displayName"]); name != "" {
			return Identity{Display: name}
		}
		return Identity{Display: UnknownName}
	default:
		return Identity{Display: UnknownName}
	}
}

// AssigneeName resolves the item's assigned person to a canonical display
// name, defaulting to Unassigned.
func (w WorkItem) AssigneeName() string {
	return ParseIdentity(w.Fields[FieldAssignedTo]).Display
}
