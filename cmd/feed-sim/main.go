package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/medalwatch/podium/internal/feedsim"
)

// Default configuration constants.
const (
	defaultAddr          = ":9471"
	defaultEntrants      = 12
	defaultInitialEvents = 4
	defaultMutateEvery   = 5 * time.Second
)

func main() {
	var (
		addr     = flag.String("addr", defaultAddr, "Listen address for the feed endpoint")
		entrants = flag.Int("entrants", defaultEntrants, "Number of distinct entrants to draw winners from")
		initial  = flag.Int("initial", defaultInitialEvents, "Number of events pre-loaded before serving")
		every    = flag.Duration("every", defaultMutateEvery, "Pace of appended events; 0 keeps the document static")
		seed     = flag.Int64("seed", 0, "PRNG seed; 0 seeds from the current time")
		verbose  = flag.Bool("verbose", false, "Enable verbose logging")
		help     = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		feedsim.ShowHelp()
		return
	}

	// Setup logging
	if err := feedsim.SetupLogging(*verbose); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Create simulator configuration
	config := &feedsim.Config{
		Addr:          *addr,
		Entrants:      *entrants,
		InitialEvents: *initial,
		MutateEvery:   *every,
		Seed:          *seed,
	}

	// Serve the feed
	if err := feedsim.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Feed simulator failed: " + err.Error() + "\n")
		return
	}
}
