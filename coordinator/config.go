// File: config.go
// Role: Config — the dependencies a Coordinator needs, validated the
// way the teacher's service Configs are: zero-value fields get a
// sensible default where one exists, otherwise Validate collects every
// missing dependency into one multierror instead of failing on the
// first.
package coordinator

import (
	"context"
	"io/ioutil"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/juju/clock"
	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"

	"github.com/dtxn-go/deptran/depgraph"
	"github.com/dtxn-go/deptran/txn"
	"github.com/dtxn-go/deptran/wire"
)

// Participant is the coordinator's view of a shard's scheduler: the
// two calls it needs to dispatch a piece and later send the merged
// commit graph. *scheduler.Scheduler satisfies this directly for
// in-process use; a networked deployment puts an RPC client shim
// behind it (out of scope here, per the Frame/Communicator boundary).
type Participant interface {
	DispatchPiece(ctx context.Context, cmd wire.SimpleCommand) (*depgraph.Graph[*txn.TxnInfo], error)
	CommitGraph(ctx context.Context, g *depgraph.Graph[*txn.TxnInfo]) error
}

// Config encapsulates the settings for configuring a Coordinator.
type Config struct {
	// Participants maps partition id to the Participant serving it.
	Participants map[int32]Participant
	// Clock generates time-related events (retry backoff). Defaults
	// to clock.WallClock.
	Clock clock.Clock
	// Logger receives structured log entries. Defaults to a
	// logrus.Entry writing to ioutil.Discard.
	Logger *logrus.Entry
	// RetryBackoff is the delay between Broadcast's retransmission
	// attempts to a participant that failed to answer. SendCommit does
	// not retransmit: it calls each participant once.
	RetryBackoff time.Duration
	// MaxRetries bounds the number of Broadcast retransmission
	// attempts; 0 means a single attempt with no retry.
	MaxRetries int
}

// Validate fills in defaults for zero-value fields and reports every
// missing required dependency as one combined error, rather than
// failing on the first.
func (cfg *Config) Validate() error {
	var err error
	if len(cfg.Participants) == 0 {
		err = multierror.Append(err, xerrors.Errorf("coordinator: no participants have been provided"))
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.WallClock
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.NewEntry(&logrus.Logger{Out: ioutil.Discard})
	}
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = 50 * time.Millisecond
	}
	if cfg.MaxRetries < 0 {
		err = multierror.Append(err, xerrors.Errorf("coordinator: MaxRetries must not be negative"))
	}
	return err
}
