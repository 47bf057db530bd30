package core

import (
	"github.com/arjaygg/teampulse/internal/contract"
	"github.com/arjaygg/teampulse/schema"
)

// memberFilter is the roster gate shared by every metric module. A nil
// filter means no roster was configured, so metrics group by whoever
// appears in the data (sentinels excluded).
type memberFilter map[string]bool

func newMemberFilter(cfg *contract.Config) memberFilter {
	names := cfg.MemberNames()
	if len(names) == 0 {
		return nil
	}
	f := make(memberFilter, len(names))
	for _, n := range names {
		f[n] = true
	}
	return f
}

// qualifies reports whether the display name should appear in per-member
// breakdowns. Sentinel names never qualify.
func (f memberFilter) qualifies(name string) bool {
	if name == "" || name == schema.UnassignedName || name == schema.UnknownName {
		return false
	}
	if f == nil {
		return true
	}
	return f[name]
}
