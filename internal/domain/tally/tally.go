// Package tally aggregates award records into per-entrant medal counts.
package tally

import (
	medal "github.com/medalwatch/podium/internal/domain/medal"
)

// Count holds one entrant's medals broken down by class.
type Count struct {
	Gold   int
	Silver int
	Bronze int
}

// Add increments the counter matching the given class. Unknown classes
// are ignored; callers validate awards before tallying.
func (c *Count) Add(class medal.Class) {
	switch class {
	case medal.Gold:
		c.Gold++
	case medal.Silver:
		c.Silver++
	case medal.Bronze:
		c.Bronze++
	}
}

// Total returns the combined medal count across all classes.
func (c Count) Total() int {
	return c.Gold + c.Silver + c.Bronze
}

// Sheet maps entrant names to their medal counts for one poll cycle.
type Sheet map[string]Count

// Build groups awards by entrant and counts occurrences per class.
// Each call produces a fresh Sheet from the full award list; counts are
// never carried over between cycles. Input order is irrelevant and an
// empty input yields an empty, non-nil Sheet.
func Build(awards []medal.Award) Sheet {
	sheet := make(Sheet, len(awards))
	for _, a := range awards {
		count := sheet[a.Entrant]
		count.Add(a.Class)
		sheet[a.Entrant] = count
	}
	return sheet
}
