// Package schema has the data model, result types and policy constants for
// all parts of teampulse.
package schema

import "time"

// WorkItem is a flat snapshot of one tracked work item as returned by the
// work tracking system. Fields is keyed by the well-known reference names
// (System.State, System.AssignedTo, ...) and holds the item's current values
// only; historical values live in UpdateEvent. The engine never mutates a
// WorkItem after load.
type WorkItem struct {
	ID     int            `json:"id"`
	Fields map[string]any `json:"fields"`
}

// FieldChange records one field's transition within a single revision.
// OldValue is nil for revision 1, whose change map carries initial values.
type FieldChange struct {
	OldValue any `json:"oldValue,omitempty"`
	NewValue any `json:"newValue,omitempty"`
}

// UpdateEvent is one recorded revision of a work item: a monotonic revision
// number, a timestamp, the actor who made the change, and the fields that
// changed in that revision. Events arrive unordered; grouping by item and
// sorting by Rev is the engine's responsibility.
type UpdateEvent struct {
	WorkItemID  int                    `json:"workItemId"`
	Rev         int                    `json:"rev"`
	RevisedDate time.Time              `json:"revisedDate"`
	RevisedBy   string                 `json:"revisedBy"`
	Fields      map[string]FieldChange `json:"fields"`
}

// StateInterval is one entry of a derived state timeline: the state label
// and the moment the item entered it. Interval i ends where interval i+1
// starts; the last interval stays open until the analysis "now".
type StateInterval struct {
	State string
	Start time.Time
}

// TeamMember is one roster entry. DisplayName is the join key against
// WorkItem assignee fields and UpdateEvent actors; the remaining fields are
// used only for filtering and presentation.
type TeamMember struct {
	DisplayName string `yaml:"displayName" json:"displayName"`
	Email       string `yaml:"email,omitempty" json:"email,omitempty"`
	Role        string `yaml:"role,omitempty" json:"role,omitempty"`
	Active      bool   `yaml:"active" json:"active"`
}
