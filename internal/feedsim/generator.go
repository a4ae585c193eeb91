package feedsim

import (
	"math/rand"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/medalwatch/podium/internal/domain/medal"
)

// podiumOrder lists award classes in podium position order.
//
//nolint:gochecknoglobals
var podiumOrder = [...]medal.Class{medal.Gold, medal.Silver, medal.Bronze}

// Generator produces simulated competition events from a fixed roster.
// A fixed seed reproduces the same sequence of titles and winners;
// event IDs stay unique across runs.
type Generator struct {
	rnd   *rand.Rand
	names []string
	seq   int
}

// NewGenerator creates a generator drawing winners from the first
// entrants names of the roster. Non-positive or oversized counts use
// the full roster; a zero seed falls back to the current time.
func NewGenerator(entrants int, seed int64) *Generator {
	if entrants <= 0 || entrants > len(roster) {
		entrants = len(roster)
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Generator{
		rnd:   rand.New(rand.NewSource(seed)),
		names: roster[:entrants],
	}
}

// Entrants reports how many distinct entrant names the generator draws
// from.
func (g *Generator) Entrants() int {
	return len(g.names)
}

// Event produces the next simulated event. A podium never awards the
// same entrant twice; rosters smaller than a podium award fewer medals.
func (g *Generator) Event() Event {
	g.seq++

	podium := len(podiumOrder)
	if podium > len(g.names) {
		podium = len(g.names)
	}

	order := g.rnd.Perm(len(g.names))
	awards := make([]medal.Award, 0, podium)
	for i := 0; i < podium; i++ {
		awards = append(awards, medal.Award{
			Class:   podiumOrder[i],
			Entrant: g.names[order[i]],
		})
	}

	discipline := disciplines[g.rnd.Intn(len(disciplines))]

	return Event{
		ID:        uuid.New().String(),
		Title:     discipline + " Final " + strconv.Itoa(g.seq),
		TitleOnly: g.rnd.Intn(titleOnlyDivisor) == 0,
		Awards:    awards,
	}
}

// Events produces n consecutive events.
func (g *Generator) Events(n int) []Event {
	events := make([]Event, 0, n)
	for i := 0; i < n; i++ {
		events = append(events, g.Event())
	}
	return events
}
