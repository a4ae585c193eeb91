// Package sink emits changed leaderboard snapshots to their consumers.
package sink

import (
	"context"

	snapshot "github.com/medalwatch/podium/internal/domain/snapshot"
)

// Reporter receives a snapshot whenever the leaderboard changed. The
// payload is the ordered entrant-name sequence; reporters decide how to
// present it.
type Reporter interface {
	Report(ctx context.Context, snap snapshot.Snapshot) error
}
