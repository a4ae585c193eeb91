package sink

import (
	"context"
	"fmt"
	"io"
	"strings"

	snapshot "github.com/medalwatch/podium/internal/domain/snapshot"
)

// ConsoleReporter writes snapshots to a writer, one line per entrant
// with a 1-based position.
type ConsoleReporter struct {
	out io.Writer
}

// NewConsoleReporter creates a reporter writing to out, typically
// os.Stdout.
func NewConsoleReporter(out io.Writer) *ConsoleReporter {
	return &ConsoleReporter{out: out}
}

// Report implements Reporter.
func (r *ConsoleReporter) Report(_ context.Context, snap snapshot.Snapshot) error {
	// Build the block first so it lands in a single write.
	var b strings.Builder
	fmt.Fprintf(&b, "leaders (%d):\n", len(snap))
	for i, name := range snap {
		fmt.Fprintf(&b, "  %2d. %s\n", i+1, name)
	}

	if _, err := io.WriteString(r.out, b.String()); err != nil {
		return fmt.Errorf("%w: %w", ErrReportFailed, err)
	}
	return nil
}
