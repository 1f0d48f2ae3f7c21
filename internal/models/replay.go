package models

import (
	"sort"
	"time"
)

// Rewind computes the state of kit at instant t by undoing, newest first,
// every change entry recorded after t: each undone entry writes its
// details' old values back onto the kit. The entries slice must be the
// kit's complete change history; order does not matter.
//
// Starting from the current row and replaying old values backwards is
// correct even for non-monotonic histories (a field reverted and changed
// again), which a forward fold of new values onto the current row is not.
//
// The returned version is the highest entry version with changedAt <= t,
// or 1 when no entry qualifies. Rewind is pure: repeated calls with the
// same inputs return identical results.
func Rewind(kit Kit, entries []ChangeLogEntry, t time.Time) (Kit, error) {
	undo := make([]ChangeLogEntry, 0, len(entries))
	version := 1

	for _, e := range entries {
		if e.ChangedAt.After(t) {
			undo = append(undo, e)
		} else if e.Version > version {
			version = e.Version
		}
	}

	// Newest first, version as tie-breaker since changedAt may collide
	// at second granularity.
	sort.Slice(undo, func(i, j int) bool {
		if !undo[i].ChangedAt.Equal(undo[j].ChangedAt) {
			return undo[i].ChangedAt.After(undo[j].ChangedAt)
		}

		return undo[i].Version > undo[j].Version
	})

	for _, e := range undo {
		for _, c := range e.Changes {
			if err := kit.ApplyField(c.Field, c.OldValue); err != nil {
				return Kit{}, err
			}
		}
	}

	kit.Version = version

	return kit, nil
}
