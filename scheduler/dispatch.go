// File: dispatch.go
// Role: DispatchPiece — turn one dispatched command piece into a
// vertex, run conflict detection, and OR the discovered edges into the
// shard graph.
package scheduler

import (
	"context"

	"golang.org/x/xerrors"

	"github.com/dtxn-go/deptran/depgraph"
	"github.com/dtxn-go/deptran/txn"
	"github.com/dtxn-go/deptran/wire"
)

// DispatchPiece finds or creates the vertex for cmd's root transaction,
// asks the detector which prior transactions conflict with this piece,
// ORs the discovered edges into the shard graph, and returns the
// induced subgraph (the piece's vertex plus its direct local
// predecessors) for the caller to ship back to the coordinator.
//
// Returns ErrNotSynchronous if the detector could not complete its
// scan synchronously; the caller is expected to retry.
func (s *Scheduler) DispatchPiece(ctx context.Context, cmd wire.SimpleCommand) (*depgraph.Graph[*txn.TxnInfo], error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rootID := cmd.RootID
	vertex, _ := s.graph.FindOrCreate(rootID, txn.NewTxnInfo(rootID))
	dtxn := s.dtxnFor(rootID)

	log := s.log.WithField("txn_id", rootID)

	conflicts, synchronous := s.detector.HandleConflicts(dtxn, cmd)
	if !synchronous {
		log.Debug("conflict detection did not complete synchronously")
		return nil, ErrNotSynchronous
	}

	predecessors := make([]*depgraph.Vertex[*txn.TxnInfo], 0, len(conflicts))
	for _, c := range conflicts {
		other, created := s.graph.FindOrCreate(c.TxnID, txn.NewTxnInfo(c.TxnID))
		if created {
			log.WithField("other_txn_id", c.TxnID).Debug("observed new conflicting transaction")
		}
		existing, _ := s.graph.Relation(c.TxnID, rootID)
		if err := s.graph.AddEdge(c.TxnID, rootID, existing|c.Relation); err != nil {
			return nil, xerrors.Errorf("scheduler: add edge %d -> %d: %w", c.TxnID, rootID, err)
		}
		predecessors = append(predecessors, other)
	}

	induced := depgraph.NewGraph[*txn.TxnInfo]()
	if err := induced.AddVertex(vertex.ID, vertex.Payload); err != nil {
		return nil, xerrors.Errorf("scheduler: induce subgraph vertex %d: %w", vertex.ID, err)
	}
	for _, p := range predecessors {
		induced.FindOrCreate(p.ID, p.Payload)
		relation, _ := s.graph.Relation(p.ID, rootID)
		if err := induced.AddEdge(p.ID, vertex.ID, relation); err != nil {
			return nil, xerrors.Errorf("scheduler: induce subgraph edge %d -> %d: %w", p.ID, vertex.ID, err)
		}
	}

	return induced, nil
}
