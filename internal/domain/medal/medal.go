// Package medal defines award classes and the award records extracted
// from the results feed.
package medal

import "fmt"

// Class enumerates the three medal classes.
type Class int

// Medal classes in precedence order.
const (
	Gold Class = iota
	Silver
	Bronze
)

// Wire tokens used by the results feed for medal classes.
const (
	wireGold   = "GOLD"
	wireSilver = "SILVER"
	wireBronze = "BRONZE"
)

// String returns the human-readable class name.
func (c Class) String() string {
	switch c {
	case Gold:
		return "gold"
	case Silver:
		return "silver"
	case Bronze:
		return "bronze"
	default:
		return fmt.Sprintf("class(%d)", int(c))
	}
}

// Valid reports whether c is one of the three known classes.
func (c Class) Valid() bool {
	return c == Gold || c == Silver || c == Bronze
}

// Token returns the feed's wire spelling for the class. Unknown classes
// yield an empty token.
func (c Class) Token() string {
	switch c {
	case Gold:
		return wireGold
	case Silver:
		return wireSilver
	case Bronze:
		return wireBronze
	default:
		return ""
	}
}

// ParseClass maps a feed token to a Class. Unknown tokens are a
// malformed-record condition, not a panic.
func ParseClass(token string) (Class, error) {
	switch token {
	case wireGold:
		return Gold, nil
	case wireSilver:
		return Silver, nil
	case wireBronze:
		return Bronze, nil
	default:
		return 0, fmt.Errorf("%w: medal type %q", ErrUnknownClass, token)
	}
}

// Award is a single medal awarded to a single entrant. The entrant name
// is the grouping key for tallying.
type Award struct {
	Class   Class
	Entrant string
}

// Validate rejects awards with unknown classes or missing entrant names.
func (a Award) Validate() error {
	if !a.Class.Valid() {
		return fmt.Errorf("%w: %s", ErrUnknownClass, a.Class)
	}
	if a.Entrant == "" {
		return ErrNoEntrant
	}
	return nil
}
