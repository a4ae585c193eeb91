package watcher_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	feed "github.com/medalwatch/podium/internal/adapters/feed"
	watcher "github.com/medalwatch/podium/internal/app"
	medal "github.com/medalwatch/podium/internal/domain/medal"
	snapshot "github.com/medalwatch/podium/internal/domain/snapshot"
	"github.com/medalwatch/podium/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

// Mock implementations for testing

// fetchResult is one scripted answer from the fake source.
type fetchResult struct {
	awards []medal.Award
	err    error
}

// scriptedSource serves its script one entry per Fetch; the last entry
// repeats forever.
type scriptedSource struct {
	mu     sync.Mutex
	script []fetchResult
	calls  int
}

func (s *scriptedSource) Fetch(_ context.Context) ([]medal.Award, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.calls
	if i >= len(s.script) {
		i = len(s.script) - 1
	}
	s.calls++
	r := s.script[i]
	return r.awards, r.err
}

func (s *scriptedSource) fetches() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// recordingSink captures every delivered snapshot.
type recordingSink struct {
	mu      sync.Mutex
	reports []snapshot.Snapshot
	failing bool
}

func (r *recordingSink) Report(_ context.Context, snap snapshot.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failing {
		return errors.New("sink down")
	}
	copied := make(snapshot.Snapshot, len(snap))
	copy(copied, snap)
	r.reports = append(r.reports, copied)
	return nil
}

func (r *recordingSink) setFailing(failing bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failing = failing
}

func (r *recordingSink) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.reports)
}

func (r *recordingSink) report(i int) snapshot.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.reports[i]
}

// eventually polls cond until it holds or the timeout elapses.
func eventually(cond func() bool, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(2 * time.Millisecond)
	}
	return cond()
}

// runWatcher starts w in the background and returns a wait function
// that yields Run's error.
func runWatcher(ctx context.Context, w *watcher.Watcher) func() error {
	errCh := make(chan error, 1)
	go func() { errCh <- w.Run(ctx) }()
	return func() error {
		select {
		case err := <-errCh:
			return err
		case <-time.After(2 * time.Second):
			return fmt.Errorf("watcher did not stop in time")
		}
	}
}

func awardsABA() []medal.Award {
	return []medal.Award{
		{Class: medal.Gold, Entrant: "A"},
		{Class: medal.Gold, Entrant: "B"},
		{Class: medal.Silver, Entrant: "A"},
		{Class: medal.Gold, Entrant: "A"},
	}
}

func TestWatcher_FirstCycleReports(t *testing.T) {
	Convey("Given a watcher over a stable feed", t, func() {
		source := &scriptedSource{script: []fetchResult{{awards: awardsABA()}}}
		out := &recordingSink{}
		w := watcher.New(
			watcher.WithSource(source),
			watcher.WithReporters(out),
			watcher.WithTopN(2),
			watcher.WithInterval(5*time.Millisecond),
		)

		Convey("When the first cycle completes", func() {
			wait := runWatcher(context.Background(), w)
			So(eventually(func() bool { return out.count() >= 1 }, time.Second), ShouldBeTrue)
			w.Stop()
			So(wait(), ShouldBeNil)

			Convey("Then it should report even though nothing preceded it", func() {
				So(out.count(), ShouldBeGreaterThanOrEqualTo, 1)
			})

			Convey("And the snapshot should hold the ranked, truncated names", func() {
				// A: 2 gold 1 silver, B: 1 gold; top 2 of 2 entrants
				So(out.report(0), ShouldResemble, snapshot.Snapshot{"A", "B"})
			})
		})
	})
}

func TestWatcher_UnchangedStaysSilent(t *testing.T) {
	Convey("Given a watcher over a feed that never changes", t, func() {
		source := &scriptedSource{script: []fetchResult{{awards: awardsABA()}}}
		out := &recordingSink{}
		w := watcher.New(
			watcher.WithSource(source),
			watcher.WithReporters(out),
			watcher.WithInterval(5*time.Millisecond),
		)

		Convey("When several cycles complete", func() {
			wait := runWatcher(context.Background(), w)
			So(eventually(func() bool { return source.fetches() >= 5 }, time.Second), ShouldBeTrue)
			w.Stop()
			So(wait(), ShouldBeNil)

			Convey("Then only the first cycle should have reported", func() {
				So(out.count(), ShouldEqual, 1)
			})
		})
	})
}

func TestWatcher_OrderChangeReports(t *testing.T) {
	Convey("Given a watcher over a feed that reorders its leaders", t, func() {
		first := []medal.Award{
			{Class: medal.Gold, Entrant: "Kenya"},
			{Class: medal.Gold, Entrant: "Kenya"},
			{Class: medal.Gold, Entrant: "Italy"},
		}
		// Italy overtakes Kenya; same membership, different order.
		second := []medal.Award{
			{Class: medal.Gold, Entrant: "Kenya"},
			{Class: medal.Gold, Entrant: "Kenya"},
			{Class: medal.Gold, Entrant: "Italy"},
			{Class: medal.Gold, Entrant: "Italy"},
			{Class: medal.Gold, Entrant: "Italy"},
		}
		source := &scriptedSource{script: []fetchResult{{awards: first}, {awards: second}}}
		out := &recordingSink{}
		w := watcher.New(
			watcher.WithSource(source),
			watcher.WithReporters(out),
			watcher.WithInterval(5*time.Millisecond),
		)

		Convey("When both cycles complete", func() {
			wait := runWatcher(context.Background(), w)
			So(eventually(func() bool { return out.count() >= 2 }, time.Second), ShouldBeTrue)
			w.Stop()
			So(wait(), ShouldBeNil)

			Convey("Then the reorder should have been reported", func() {
				So(out.report(0), ShouldResemble, snapshot.Snapshot{"Kenya", "Italy"})
				So(out.report(1), ShouldResemble, snapshot.Snapshot{"Italy", "Kenya"})
			})
		})
	})
}

func TestWatcher_FetchFailureKeepsBaseline(t *testing.T) {
	Convey("Given a watcher whose feed fails intermittently", t, func() {
		source := &scriptedSource{script: []fetchResult{
			{awards: awardsABA()},
			{err: fmt.Errorf("%w: connection refused", feed.ErrUnavailable)},
			{awards: awardsABA()},
		}}
		out := &recordingSink{}
		w := watcher.New(
			watcher.WithSource(source),
			watcher.WithReporters(out),
			watcher.WithInterval(5*time.Millisecond),
		)

		Convey("When the feed recovers with identical results", func() {
			wait := runWatcher(context.Background(), w)
			So(eventually(func() bool { return source.fetches() >= 4 }, time.Second), ShouldBeTrue)
			w.Stop()
			So(wait(), ShouldBeNil)

			Convey("Then the failed cycle should not have disturbed the baseline", func() {
				// One report from the first cycle; the recovery cycle
				// matches the surviving baseline and stays silent.
				So(out.count(), ShouldEqual, 1)
			})
		})
	})
}

func TestWatcher_MalformedFeedKeepsBaseline(t *testing.T) {
	Convey("Given a watcher whose feed turns malformed for one cycle", t, func() {
		changed := append(awardsABA(), medal.Award{Class: medal.Gold, Entrant: "C"})
		source := &scriptedSource{script: []fetchResult{
			{awards: awardsABA()},
			{err: fmt.Errorf("%w: medal type %q", feed.ErrMalformed, "PLATINUM")},
			{awards: changed},
		}}
		out := &recordingSink{}
		w := watcher.New(
			watcher.WithSource(source),
			watcher.WithReporters(out),
			watcher.WithTopN(3),
			watcher.WithInterval(5*time.Millisecond),
		)

		Convey("When the feed later recovers with new results", func() {
			wait := runWatcher(context.Background(), w)
			So(eventually(func() bool { return out.count() >= 2 }, time.Second), ShouldBeTrue)
			w.Stop()
			So(wait(), ShouldBeNil)

			Convey("Then the malformed cycle should be skipped, not reported", func() {
				So(out.report(0), ShouldResemble, snapshot.Snapshot{"A", "B"})
				So(out.report(1), ShouldResemble, snapshot.Snapshot{"A", "B", "C"})
			})
		})
	})
}

func TestWatcher_ReporterFailureStillAdvancesBaseline(t *testing.T) {
	Convey("Given a watcher whose reporter is down", t, func() {
		source := &scriptedSource{script: []fetchResult{{awards: awardsABA()}}}
		out := &recordingSink{}
		out.setFailing(true)
		w := watcher.New(
			watcher.WithSource(source),
			watcher.WithReporters(out),
			watcher.WithInterval(5*time.Millisecond),
		)

		Convey("When the first delivery fails and the sink later recovers", func() {
			wait := runWatcher(context.Background(), w)
			So(eventually(func() bool { return source.fetches() >= 2 }, time.Second), ShouldBeTrue)
			out.setFailing(false)
			So(eventually(func() bool { return source.fetches() >= 5 }, time.Second), ShouldBeTrue)
			w.Stop()
			So(wait(), ShouldBeNil)

			Convey("Then the snapshot should not be re-delivered", func() {
				// The baseline advanced despite the failed delivery, so
				// the unchanged feed stays silent afterwards.
				So(out.count(), ShouldEqual, 0)
			})
		})
	})
}

func TestWatcher_EmptyFeed(t *testing.T) {
	Convey("Given a watcher over a feed with no awards yet", t, func() {
		source := &scriptedSource{script: []fetchResult{{awards: []medal.Award{}}}}
		out := &recordingSink{}
		w := watcher.New(
			watcher.WithSource(source),
			watcher.WithReporters(out),
			watcher.WithInterval(5*time.Millisecond),
		)

		Convey("When the first cycle completes", func() {
			wait := runWatcher(context.Background(), w)
			So(eventually(func() bool { return out.count() >= 1 }, time.Second), ShouldBeTrue)
			w.Stop()
			So(wait(), ShouldBeNil)

			Convey("Then an empty snapshot should be reported once", func() {
				So(out.report(0), ShouldBeEmpty)
				So(out.count(), ShouldEqual, 1)
			})
		})
	})
}

func TestWatcher_MultipleReporters(t *testing.T) {
	Convey("Given a watcher with several reporters", t, func() {
		source := &scriptedSource{script: []fetchResult{{awards: awardsABA()}}}
		first := &recordingSink{}
		second := &recordingSink{}
		w := watcher.New(
			watcher.WithSource(source),
			watcher.WithReporters(first, second),
			watcher.WithInterval(5*time.Millisecond),
		)

		Convey("When a change is reported", func() {
			wait := runWatcher(context.Background(), w)
			So(eventually(func() bool { return first.count() >= 1 && second.count() >= 1 }, time.Second), ShouldBeTrue)
			w.Stop()
			So(wait(), ShouldBeNil)

			Convey("Then every reporter should receive the same snapshot", func() {
				So(first.report(0), ShouldResemble, second.report(0))
			})
		})
	})
}

func TestWatcher_Lifecycle(t *testing.T) {
	Convey("Given watcher lifecycle rules", t, func() {
		Convey("When Run is called without a source", func() {
			w := watcher.New()

			Convey("Then it should refuse to start", func() {
				So(errors.Is(w.Run(context.Background()), watcher.ErrNoSource), ShouldBeTrue)
			})
		})

		Convey("When Run is called twice", func() {
			source := &scriptedSource{script: []fetchResult{{awards: awardsABA()}}}
			w := watcher.New(
				watcher.WithSource(source),
				watcher.WithInterval(5*time.Millisecond),
			)
			wait := runWatcher(context.Background(), w)
			So(eventually(func() bool { return source.fetches() >= 1 }, time.Second), ShouldBeTrue)

			Convey("Then the second call should be rejected", func() {
				So(errors.Is(w.Run(context.Background()), watcher.ErrAlreadyRunning), ShouldBeTrue)
				w.Stop()
				So(wait(), ShouldBeNil)
			})
		})

		Convey("When the context is cancelled", func() {
			source := &scriptedSource{script: []fetchResult{{awards: awardsABA()}}}
			w := watcher.New(
				watcher.WithSource(source),
				watcher.WithInterval(5*time.Millisecond),
			)
			ctx, cancel := context.WithCancel(context.Background())
			wait := runWatcher(ctx, w)
			So(eventually(func() bool { return source.fetches() >= 1 }, time.Second), ShouldBeTrue)

			Convey("Then Run should return nil promptly", func() {
				cancel()
				So(wait(), ShouldBeNil)
			})
		})

		Convey("When Stop is called twice", func() {
			source := &scriptedSource{script: []fetchResult{{awards: awardsABA()}}}
			w := watcher.New(
				watcher.WithSource(source),
				watcher.WithInterval(5*time.Millisecond),
			)
			wait := runWatcher(context.Background(), w)
			So(eventually(func() bool { return source.fetches() >= 1 }, time.Second), ShouldBeTrue)

			Convey("Then the second call should be harmless", func() {
				w.Stop()
				w.Stop()
				So(wait(), ShouldBeNil)
			})
		})
	})
}
