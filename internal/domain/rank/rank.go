// Package rank orders entrants by medal precedence.
package rank

import (
	"sort"

	tally "github.com/medalwatch/podium/internal/domain/tally"
)

// Entry pairs an entrant with its medal counts for ranking.
type Entry struct {
	Entrant string
	Counts  tally.Count
}

// Less reports whether a ranks strictly ahead of b. Precedence is gold
// count, then silver, then bronze, all descending; entrants with
// identical counts order by name (ascending) so standings are
// deterministic regardless of input order.
func Less(a, b Entry) bool {
	// More golds comes first (descending order)
	if a.Counts.Gold != b.Counts.Gold {
		return a.Counts.Gold > b.Counts.Gold
	}
	if a.Counts.Silver != b.Counts.Silver {
		return a.Counts.Silver > b.Counts.Silver
	}
	if a.Counts.Bronze != b.Counts.Bronze {
		return a.Counts.Bronze > b.Counts.Bronze
	}
	// Tie-breaker: entrant name in ascending order
	return a.Entrant < b.Entrant
}

// Standings produces the full ranking for a tally sheet, best first.
// Every entrant on the sheet appears exactly once; truncation to a
// top-N view is the caller's concern.
func Standings(sheet tally.Sheet) []Entry {
	entries := make([]Entry, 0, len(sheet))
	for entrant, counts := range sheet {
		entries = append(entries, Entry{Entrant: entrant, Counts: counts})
	}
	sort.Slice(entries, func(i, j int) bool {
		return Less(entries[i], entries[j])
	})
	return entries
}
