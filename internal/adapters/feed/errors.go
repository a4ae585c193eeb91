package feed

import "errors"

// Sentinel kinds for feed errors. Both abandon the current poll cycle;
// neither is fatal to the watcher.
var (
	ErrUnavailable = errors.New("feed unavailable")
	ErrMalformed   = errors.New("malformed feed")
)
