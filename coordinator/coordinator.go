// File: coordinator.go
// Role: Coordinator — the per-transaction client-side driver: dispatch
// pieces, merge the subgraphs participants return, send the merged
// graph as the commit message, and wait for quorum.
package coordinator

import (
	"context"
	"sync"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"
	"golang.org/x/xerrors"

	"github.com/dtxn-go/deptran/depgraph"
	"github.com/dtxn-go/deptran/txn"
	"github.com/dtxn-go/deptran/wire"
)

// ErrAborted is returned (wrapped) by SendCommit when no more than half
// of the participants acknowledge the commit message. It is the only
// abort path in this package: conflict detection has no way to reject
// a transaction.
var ErrAborted = xerrors.New("coordinator: transaction aborted by a participant")

// Coordinator drives one transaction through INIT -> DISPATCHING ->
// WAITING_DEPS -> COMMITTING -> WAITING_FINISH -> DONE, serialized via
// its own mutex; a distinct Coordinator is constructed per transaction.
type Coordinator struct {
	cfg   Config
	txnID uint64

	mu          sync.Mutex
	state       State
	accumulator *depgraph.Graph[*txn.TxnInfo]
}

// NewCoordinator returns a Coordinator for txnID. cfg is validated
// (and defaulted) before use.
func NewCoordinator(txnID uint64, cfg Config) (*Coordinator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Coordinator{
		cfg:         cfg,
		txnID:       txnID,
		state:       Init,
		accumulator: depgraph.NewGraph[*txn.TxnInfo](),
	}, nil
}

// State returns the coordinator's current lifecycle state.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Accumulator returns the merged subgraph collected by Broadcast.
func (c *Coordinator) Accumulator() *depgraph.Graph[*txn.TxnInfo] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.accumulator
}

func (c *Coordinator) setState(s State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = s
}

// dispatchOnce fans pieces out to their partitions concurrently via
// errgroup, merging every successfully returned subgraph into the
// accumulator. Failures are collected (not fail-fast) so a caller can
// retry only the partitions that actually failed.
func (c *Coordinator) dispatchOnce(ctx context.Context, pieces []wire.SimpleCommand) []wire.SimpleCommand {
	grp, gctx := errgroup.WithContext(ctx)
	var mu sync.Mutex
	var failed []wire.SimpleCommand

	for _, piece := range pieces {
		piece := piece
		participant, ok := c.cfg.Participants[piece.PartitionID]
		if !ok {
			c.cfg.Logger.WithField("partition_id", piece.PartitionID).Warn("no participant registered for partition")
			mu.Lock()
			failed = append(failed, piece)
			mu.Unlock()
			continue
		}

		grp.Go(func() error {
			sub, err := participant.DispatchPiece(gctx, piece)
			if err != nil {
				c.cfg.Logger.WithField("partition_id", piece.PartitionID).WithError(err).Warn("dispatch failed")
				mu.Lock()
				failed = append(failed, piece)
				mu.Unlock()
				return nil
			}

			mu.Lock()
			defer mu.Unlock()
			if aggErr := c.accumulator.Aggregate(sub, false); aggErr != nil {
				c.cfg.Logger.WithError(aggErr).Warn("merging participant subgraph failed")
				failed = append(failed, piece)
			}
			return nil
		})
	}

	_ = grp.Wait()
	return failed
}

// Broadcast dispatches pieces to their owning partitions, retrying
// only the partitions that failed up to cfg.MaxRetries times with
// cfg.Clock-driven backoff between attempts, and merges every returned
// subgraph into the accumulator. Returns a combined error (via
// go-multierror) describing every partition that never succeeded.
func (c *Coordinator) Broadcast(ctx context.Context, pieces []wire.SimpleCommand) error {
	c.setState(Dispatching)

	remaining := pieces
	for attempt := 0; attempt <= c.cfg.MaxRetries && len(remaining) > 0; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				c.setState(Init)
				return ctx.Err()
			case <-c.cfg.Clock.After(c.cfg.RetryBackoff):
			}
		}
		remaining = c.dispatchOnce(ctx, remaining)
	}

	if len(remaining) > 0 {
		var errs error
		for _, piece := range remaining {
			errs = multierror.Append(errs, xerrors.Errorf("partition %d: dispatch did not succeed after %d attempt(s)", piece.PartitionID, c.cfg.MaxRetries+1))
		}
		c.setState(Init)
		return errs
	}

	c.setState(WaitingDeps)
	return nil
}

// SendCommit sends the accumulator graph to every known participant
// and waits for a quorum (strictly more than half) of acknowledgements
// before transitioning to WAITING_FINISH. A participant whose
// CommitGraph call errors does not count toward the quorum but does
// not by itself abort the transaction — the quorum check is what
// decides that.
func (c *Coordinator) SendCommit(ctx context.Context) error {
	c.setState(Committing)

	accumulator := c.Accumulator()
	participants := c.cfg.Participants

	grp, gctx := errgroup.WithContext(ctx)
	var mu sync.Mutex
	acks := 0

	for partitionID, participant := range participants {
		partitionID, participant := partitionID, participant
		grp.Go(func() error {
			if err := participant.CommitGraph(gctx, accumulator); err != nil {
				c.cfg.Logger.WithField("partition_id", partitionID).WithError(err).Warn("commit failed")
				return nil
			}
			mu.Lock()
			acks++
			mu.Unlock()
			return nil
		})
	}
	_ = grp.Wait()

	if acks <= len(participants)/2 {
		c.setState(Init)
		return xerrors.Errorf("coordinator: only %d/%d participants acked: %w", acks, len(participants), ErrAborted)
	}

	c.setState(WaitingFinish)
	return nil
}

// Finish transitions the coordinator to DONE, once the caller has
// observed every participant report execution complete (the
// out-of-scope row-store/executor boundary this module does not own).
func (c *Coordinator) Finish() {
	c.setState(Done)
}
