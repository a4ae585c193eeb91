// Package snapshot captures the top-N leaderboard view and detects
// changes between poll cycles.
package snapshot

import (
	rank "github.com/medalwatch/podium/internal/domain/rank"
)

// Snapshot is the ordered sequence of leading entrant names for one
// cycle. Order carries meaning: two snapshots with the same names in a
// different order are different snapshots.
type Snapshot []string

// Take projects the first n standings entries to their entrant names.
// Fewer than n entrants yields a shorter snapshot; n <= 0 yields an
// empty one.
func Take(entries []rank.Entry, n int) Snapshot {
	if n < 0 {
		n = 0
	}
	if n > len(entries) {
		n = len(entries)
	}
	snap := make(Snapshot, 0, n)
	for _, e := range entries[:n] {
		snap = append(snap, e.Entrant)
	}
	return snap
}

// Equal reports exact sequence equality: same names, same order, same
// length.
func Equal(a, b Snapshot) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Changed reports whether cur differs from prev. A nil prev means no
// baseline exists yet (first cycle), which always counts as a change.
func Changed(prev *Snapshot, cur Snapshot) bool {
	if prev == nil {
		return true
	}
	return !Equal(*prev, cur)
}
