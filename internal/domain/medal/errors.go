package medal

import "errors"

// Sentinel kinds for award validation errors.
var (
	ErrUnknownClass = errors.New("unknown medal class")
	ErrNoEntrant    = errors.New("award has no entrant")
)
