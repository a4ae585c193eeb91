// Package watcher runs the poll loop that keeps the top-N leaderboard
// snapshot current and reports it on change.
package watcher

import (
	"context"
	"errors"
	"sync"
	"time"

	feed "github.com/medalwatch/podium/internal/adapters/feed"
	sink "github.com/medalwatch/podium/internal/adapters/sink"
	rank "github.com/medalwatch/podium/internal/domain/rank"
	snapshot "github.com/medalwatch/podium/internal/domain/snapshot"
	tally "github.com/medalwatch/podium/internal/domain/tally"
	"github.com/medalwatch/podium/pkg/logger"
	"github.com/medalwatch/podium/pkg/metrics"
)

// Default watcher configuration.
const (
	defaultTopN               = 5
	defaultInterval           = 2 * time.Second
	nanosecondsPerMillisecond = 1e6
)

// Option applies a configuration option to the Watcher.
type Option func(*Watcher)

// WithSource sets the award source to poll. A source is required; Run
// refuses to start without one.
func WithSource(source feed.Source) Option {
	return func(w *Watcher) {
		if source != nil {
			w.source = source
		}
	}
}

// WithReporters appends sinks receiving changed snapshots.
func WithReporters(reporters ...sink.Reporter) Option {
	return func(w *Watcher) {
		for _, r := range reporters {
			if r != nil {
				w.reporters = append(w.reporters, r)
			}
		}
	}
}

// WithTopN sets how many leading entrants each snapshot keeps.
func WithTopN(n int) Option {
	return func(w *Watcher) {
		if n > 0 {
			w.topN = n
		}
	}
}

// WithInterval sets the pause between poll cycles.
func WithInterval(interval time.Duration) Option {
	return func(w *Watcher) {
		if interval > 0 {
			w.interval = interval
		}
	}
}

// WithLogger sets a custom logger for the watcher.
func WithLogger(log logger.Logger) Option {
	return func(w *Watcher) {
		if log != nil {
			w.log = log
		}
	}
}

// Watcher polls the feed, recomputes the full tally every cycle, and
// reports the top-N snapshot whenever its composition or order changed.
type Watcher struct {
	mu sync.Mutex

	// Collaborators
	source    feed.Source
	reporters []sink.Reporter

	// Configuration
	topN     int
	interval time.Duration

	// State
	running bool
	stopCh  chan struct{}

	// Logging
	log logger.Logger
}

// New constructs a Watcher with default configuration.
func New(opts ...Option) *Watcher {
	w := &Watcher{
		topN:     defaultTopN,
		interval: defaultInterval,
		stopCh:   make(chan struct{}),
	}

	// Apply all options
	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Run executes poll cycles until ctx is cancelled or Stop is called,
// then returns nil. Cycles are strictly sequential: a new fetch starts
// only after the previous cycle finished and the interval elapsed.
func (w *Watcher) Run(ctx context.Context) error {
	if err := w.begin(); err != nil {
		return err
	}
	defer w.end()

	w.log.Info(ctx, "watcher started",
		logger.Int("top_n", w.topN),
		logger.Duration("interval", w.interval),
	)

	// prev is the comparison baseline. It stays nil until the first
	// completed cycle, so that cycle always reports.
	var prev *snapshot.Snapshot

	for {
		// Honor shutdown before touching the feed.
		select {
		case <-ctx.Done():
			w.log.Info(ctx, "watcher stopped", logger.String("reason", "context done"))
			return nil
		case <-w.stopCh:
			w.log.Info(ctx, "watcher stopped", logger.String("reason", "stop requested"))
			return nil
		default:
		}

		if cur, ok := w.cycle(ctx, prev); ok {
			// The new snapshot becomes the baseline even when nothing
			// changed or a reporter failed; only abandoned cycles leave
			// prev untouched.
			prev = &cur
		}

		timer := time.NewTimer(w.interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			w.log.Info(ctx, "watcher stopped", logger.String("reason", "context done"))
			return nil
		case <-w.stopCh:
			timer.Stop()
			w.log.Info(ctx, "watcher stopped", logger.String("reason", "stop requested"))
			return nil
		case <-timer.C:
		}
	}
}

// Stop ends the run loop. It is safe to call more than once.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	select {
	case <-w.stopCh:
		// Channel already closed
	default:
		close(w.stopCh)
	}
}

// begin validates collaborators and marks the watcher running.
func (w *Watcher) begin() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.source == nil {
		return ErrNoSource
	}
	if w.running {
		return ErrAlreadyRunning
	}

	// Initialize logger if not already set
	if w.log == nil {
		w.log = logger.Get()
	}

	w.running = true
	return nil
}

func (w *Watcher) end() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.running = false
}

// cycle runs one fetch-tally-rank-compare pass. The returned snapshot
// becomes the next baseline only when ok is true; abandoned cycles
// report nothing and leave the baseline alone.
func (w *Watcher) cycle(ctx context.Context, prev *snapshot.Snapshot) (snapshot.Snapshot, bool) {
	started := time.Now()

	awards, err := w.source.Fetch(ctx)
	metrics.RecordFetchDuration(durationMs(time.Since(started)))
	if err != nil {
		w.noteFetchFailure(ctx, err)
		return nil, false
	}
	metrics.AddAwardsExtracted(len(awards))

	// Fresh tally every cycle; the feed is the single source of truth
	// and awards may be revoked between polls.
	sheet := tally.Build(awards)
	standings := rank.Standings(sheet)
	cur := snapshot.Take(standings, w.topN)

	metrics.UpdateEntrantsTracked(len(standings))
	metrics.UpdateSnapshotSize(len(cur))

	if snapshot.Changed(prev, cur) {
		metrics.RecordSnapshotChange()
		w.log.Info(ctx, "leaderboard changed",
			logger.Strings("leaders", cur),
			logger.Int("entrants", len(standings)),
			logger.Int("awards", len(awards)),
		)
		w.report(ctx, cur)
	} else {
		w.log.Debug(ctx, "leaderboard unchanged",
			logger.Int("entrants", len(standings)),
			logger.Int("awards", len(awards)),
		)
	}

	metrics.RecordCycle()
	metrics.RecordCycleDuration(durationMs(time.Since(started)))
	metrics.UpdateLastCycleUnix(float64(time.Now().Unix()))
	return cur, true
}

// noteFetchFailure records an abandoned cycle. Feed trouble is routine
// operation, not a watcher failure.
func (w *Watcher) noteFetchFailure(ctx context.Context, err error) {
	metrics.RecordFetchFailure()
	if errors.Is(err, feed.ErrMalformed) {
		metrics.RecordMalformedFeed()
	}
	w.log.Warn(ctx, "cycle abandoned", logger.Error(err))
}

// report delivers the snapshot to every reporter. Delivery failures are
// logged and counted but never block the baseline update or the other
// reporters.
func (w *Watcher) report(ctx context.Context, snap snapshot.Snapshot) {
	for _, r := range w.reporters {
		started := time.Now()
		err := r.Report(ctx, snap)
		metrics.RecordReportDuration(durationMs(time.Since(started)))
		if err != nil {
			metrics.RecordReportFailure()
			w.log.Warn(ctx, "report failed", logger.Error(err))
		}
	}
}

func durationMs(d time.Duration) float64 {
	return float64(d.Nanoseconds()) / nanosecondsPerMillisecond
}
