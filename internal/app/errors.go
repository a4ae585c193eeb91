package watcher

import "errors"

// Sentinel kinds for watcher lifecycle errors.
var (
	ErrNoSource       = errors.New("no award source configured")
	ErrAlreadyRunning = errors.New("watcher already running")
)
