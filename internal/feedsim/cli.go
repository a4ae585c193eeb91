package feedsim

import (
	"fmt"
	"os"

	"github.com/medalwatch/podium/pkg/logger"
)

// SetupLogging initializes the logger for the simulator. Verbose
// switches the level to debug.
func SetupLogging(verbose bool) error {
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if verbose {
		if err := logger.SetLevelString("debug"); err != nil {
			return fmt.Errorf("failed to set log level: %w", err)
		}
	}
	return nil
}

// ShowHelp prints usage information for the feed simulator.
func ShowHelp() {
	os.Stdout.WriteString(`Podium Feed Simulator
=====================

A local stand-in for the remote competition results feed. Serves the
results document over HTTP and appends fresh podium results at a
configurable pace, so the watcher can be exercised end to end.

Usage:
  go run cmd/feed-sim/main.go [options]

Options:
  -addr string
        Listen address for the feed endpoint (default ":9471")
  -entrants int
        Number of distinct entrants to draw winners from (default 12)
  -initial int
        Number of events pre-loaded before serving (default 4)
  -every duration
        Pace of appended events; 0 keeps the document static (default 5s)
  -seed int
        PRNG seed; 0 seeds from the current time
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Serve with default settings
  go run cmd/feed-sim/main.go

  # Fast-changing feed with a reproducible seed
  go run cmd/feed-sim/main.go -every 2s -seed 42

  # Static feed for change-detection testing
  go run cmd/feed-sim/main.go -every 0 -initial 10

Point the watcher at the simulator:
  PODIUM_FEED_URL=http://localhost:9471/ go run cmd/main.go
`)
}
