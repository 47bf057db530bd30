package azdo

import (
	"time"

	"github.com/arjaygg/teampulse/schema"
)

// placeholderYear marks the tracker's sentinel revised date ("9999-01-01")
// used on the latest revision of an item. The real change moment lives in
// the System.ChangedDate field of the same revision.
const placeholderYear = 9000

// rawWorkItem is the wire shape of an item snapshot.
type rawWorkItem struct {
	ID     int            `json:"id"`
	Fields map[string]any `json:"fields"`
}

func (r rawWorkItem) toWorkItem() schema.WorkItem {
	return schema.WorkItem{ID: r.ID, Fields: r.Fields}
}

// rawUpdate is the wire shape of one revision history entry.
type rawUpdate struct {
	WorkItemID  int    `json:"workItemId"`
	Rev         int    `json:"rev"`
	RevisedDate string `json:"revisedDate"`
	RevisedBy   struct {
		DisplayName string `json:"displayName"`
	} `json:"revisedBy"`
	Fields map[string]rawFieldChange `json:"fields"`
}

type rawFieldChange struct {
	OldValue any `json:"oldValue"`
	NewValue any `json:"newValue"`
}

func (r rawUpdate) toUpdateEvent(fallbackID int) schema.UpdateEvent {
	id := r.WorkItemID
	if id == 0 {
		id = fallbackID
	}

	ev := schema.UpdateEvent{
		WorkItemID:  id,
		Rev:         r.Rev,
		RevisedDate: resolveRevisedDate(r),
		RevisedBy:   r.RevisedBy.DisplayName,
		Fields:      make(map[string]schema.FieldChange, len(r.Fields)),
	}
	for name, fc := range r.Fields {
		ev.Fields[name] = schema.FieldChange{OldValue: fc.OldValue, NewValue: fc.NewValue}
	}
	return ev
}

// resolveRevisedDate parses the revision timestamp, substituting the
// System.ChangedDate new value when the tracker sends its far-future
// placeholder. An unparseable timestamp yields the zero time, which the
// timeline builder skips.
func resolveRevisedDate(r rawUpdate) time.Time {
	t, ok := schema.AsTime(r.RevisedDate)
	if ok && t.Year() < placeholderYear {
		return t
	}
	if fc, present := r.Fields[schema.FieldChangedDate]; present {
		if ct, cok := schema.AsTime(fc.NewValue); cok {
			return ct
		}
	}
	if ok && t.Year() >= placeholderYear {
		return time.Time{}
	}
	return t
}
