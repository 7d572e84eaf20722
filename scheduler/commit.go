// File: commit.go
// Role: CommitGraph — aggregate a coordinator's merged subgraph into
// the shard graph, then execute any strongly-connected component that
// has become fully DECIDED.
package scheduler

import (
	"context"

	"golang.org/x/xerrors"

	"github.com/dtxn-go/deptran/depgraph"
	"github.com/dtxn-go/deptran/scc"
	"github.com/dtxn-go/deptran/txn"
)

// SetOnExecute registers the callback CommitGraph invokes, in
// linearized order, for each transaction id it executes. The row
// store/executor that actually runs a transaction's pieces is out of
// scope here; this hook is the seam a caller wires it in through. A
// nil callback (the default) makes CommitGraph a pure status-advancing
// operation.
func (s *Scheduler) SetOnExecute(fn func(txnID uint64)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onExecute = fn
}

// CommitGraph aggregates g into the shard graph, then for every vertex
// g touched whose status is DECIDED, checks whether its entire SCC has
// reached DECIDED; if so it runs scc.FindSortedSCC and executes the
// component in that order, marking each member EXECUTED. An
// executed-id guard enforces at-most-once execution per transaction.
//
// The whole operation runs under the shard mutex, so execution of one
// SCC is atomic with respect to any other commit racing in on the same
// shard.
func (s *Scheduler) CommitGraph(ctx context.Context, g *depgraph.Graph[*txn.TxnInfo]) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	touched := g.Vertices()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.graph.Aggregate(g, true); err != nil {
		return xerrors.Errorf("scheduler: aggregate commit graph: %w", err)
	}

	for _, tv := range touched {
		local := s.graph.Find(tv.ID)
		if local == nil || local.Payload.Status() != txn.Decided {
			continue
		}
		if s.executed[tv.ID] {
			continue
		}
		if err := s.tryExecuteSCC(tv.ID); err != nil {
			return err
		}
	}
	return nil
}

// tryExecuteSCC runs the SCC containing start if every member has
// reached DECIDED, executing members not yet executed in linearized
// order. Caller must hold s.mu. A no-op if any member is still
// UNDECIDED.
func (s *Scheduler) tryExecuteSCC(start uint64) error {
	component := scc.FindSCC(s.graph, start)
	for _, v := range component {
		if v.Payload.Status() != txn.Decided && v.Payload.Status() != txn.Executed {
			return nil
		}
	}

	order, err := scc.FindSortedSCC(s.graph, start)
	if err != nil {
		return xerrors.Errorf("scheduler: linearize scc containing %d: %w", start, err)
	}

	log := s.log.WithField("scc_root", start)
	for _, v := range order {
		if s.executed[v.ID] {
			continue
		}
		s.executed[v.ID] = true
		v.Payload.SetStatus(txn.Executed)
		if s.onExecute != nil {
			s.onExecute(v.ID)
		}
		log.WithField("txn_id", v.ID).Debug("executed transaction")
	}
	return nil
}
