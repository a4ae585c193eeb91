// Package feedsim serves a synthetic competition results feed for
// exercising the watcher locally.
package feedsim

import (
	"time"

	"github.com/medalwatch/podium/internal/domain/medal"
)

// Config holds configuration for the feed simulator
type Config struct {
	Addr          string        // Listen address for the feed endpoint
	Entrants      int           // Number of distinct entrants to draw winners from
	InitialEvents int           // Number of events pre-loaded before serving
	MutateEvery   time.Duration // Pace of appended events; zero keeps the document static
	Seed          int64         // PRNG seed; zero seeds from the current time
}

// Event represents one simulated competition event with its podium
type Event struct {
	ID        string        // Unique event identifier
	Title     string        // Event display title
	TitleOnly bool          // Render participants without a country object
	Awards    []medal.Award // Podium awards, gold first
}
