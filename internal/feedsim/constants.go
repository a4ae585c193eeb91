package feedsim

// Participant rendering constants.
const (
	titleOnlyDivisor = 4 // roughly one event in four renders title-only participants
)

// Roster of entrant names the generator draws winners from.
//
//nolint:gochecknoglobals
var roster = []string{
	"Australia", "Brazil", "Canada", "Ethiopia", "France", "Germany",
	"Italy", "Jamaica", "Japan", "Kenya", "Netherlands", "New Zealand",
	"Norway", "Poland", "South Africa", "Spain", "Sweden", "United States",
}

// Disciplines used for event titles.
//
//nolint:gochecknoglobals
var disciplines = []string{
	"Men's 100m", "Women's 100m", "Men's Marathon", "Women's Marathon",
	"Men's Long Jump", "Women's High Jump", "Mixed 4x400m Relay",
	"Men's Shot Put", "Women's Javelin", "Women's 400m Hurdles",
}
