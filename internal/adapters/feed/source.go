// Package feed fetches the competition results document and extracts
// the award records it advertises.
package feed

import (
	"context"

	medal "github.com/medalwatch/podium/internal/domain/medal"
)

// Source supplies the full current award list for one poll cycle. Each
// Fetch returns the complete list as the feed advertises it right now;
// callers never merge results across calls.
type Source interface {
	// Fetch retrieves and extracts all award records, honoring ctx for
	// cancellation and deadlines.
	Fetch(ctx context.Context) ([]medal.Award, error)
}
