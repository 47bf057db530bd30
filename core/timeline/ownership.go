package timeline

import (
	"time"

	"github.com/arjaygg/teampulse/schema"
)

// OwnershipPeriod is a contiguous span during which one member actively
// worked an item: the item sat in an active-classified state and was
// assigned to that member for the whole span. End is nil while the period
// is still open at analysis time.
type OwnershipPeriod struct {
	Member string
	Start  time.Time
	End    *time.Time
}

// Covers reports whether the period includes the given instant, treating an
// open period as running through now.
func (p OwnershipPeriod) Covers(t, now time.Time) bool {
	if t.Before(p.Start) {
		return false
	}
	end := now
	if p.End != nil {
		end = *p.End
	}
	return t.Before(end)
}

// OwnershipPeriods replays an item's update events in revision order,
// tracking the current state and assignee, and emits one period per
// (member, active span) combination. A period opens when the item is both
// in an active state and assigned; it closes when the item leaves the
// active states or changes hands. A reassignment while active closes the
// old owner's period and immediately opens the new owner's.
func OwnershipPeriods(item schema.WorkItem, updates []schema.UpdateEvent, policy schema.StatePolicy) []OwnershipPeriod {
	var periods []OwnershipPeriod

	var curState, curOwner string
	var open *OwnershipPeriod

	closeAt := func(t time.Time) {
		if open == nil {
			return
		}
		end := t
		open.End = &end
		periods = append(periods, *open)
		open = nil
	}

	evaluate := func(t time.Time) {
		working := policy.IsActive(curState) && assigned(curOwner)
		switch {
		case open != nil && (!working || open.Member != curOwner):
			closeAt(t)
			if working {
				open = &OwnershipPeriod{Member: curOwner, Start: t}
			}
		case open == nil && working:
			open = &OwnershipPeriod{Member: curOwner, Start: t}
		}
	}

	for _, u := range updates {
		if u.RevisedDate.IsZero() {
			continue
		}
		changed := false
		if fc, ok := u.Fields[schema.FieldState]; ok {
			if s := schema.AsString(fc.NewValue); s != "" {
				curState = s
				changed = true
			}
		}
		if fc, ok := u.Fields[schema.FieldAssignedTo]; ok {
			curOwner = schema.ParseIdentity(fc.NewValue).Display
			changed = true
		}
		if changed {
			evaluate(u.RevisedDate)
		}
	}

	if open != nil {
		periods = append(periods, *open)
	}
	return periods
}

// assigned reports whether the owner is a concrete person rather than a
// normalization sentinel.
func assigned(owner string) bool {
	return owner != "" && owner != schema.UnassignedName && owner != schema.UnknownName
}
