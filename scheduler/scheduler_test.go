package scheduler_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtxn-go/deptran/depgraph"
	"github.com/dtxn-go/deptran/scheduler"
	"github.com/dtxn-go/deptran/txn"
	"github.com/dtxn-go/deptran/wire"
)

// stubDetector reports no conflicts and only the configured
// synchronous flag, regardless of the DTxn/command it is handed; its
// conflicts field is not consulted.
type stubDetector struct {
	conflicts map[uint64][]scheduler.Conflict
	sync      bool
}

func (d *stubDetector) HandleConflicts(_ *txn.DTxn, _ wire.SimpleCommand) ([]scheduler.Conflict, bool) {
	return nil, d.sync
}

// perTxnDetector routes HandleConflicts by the dtxn's own id, since
// DispatchPiece always supplies the DTxn for the dispatched root.
type perTxnDetector struct {
	conflicts map[uint64][]scheduler.Conflict
}

func (d *perTxnDetector) HandleConflicts(dtxn *txn.DTxn, _ wire.SimpleCommand) ([]scheduler.Conflict, bool) {
	return d.conflicts[dtxn.TxnID()], true
}

func piece(rootID uint64, innID int32) wire.SimpleCommand {
	return wire.SimpleCommand{
		ContainerCommand: wire.ContainerCommand{ID: rootID, InnID: innID, RootID: rootID},
	}
}

func TestDispatchPiece_NotSynchronousReturnsError(t *testing.T) {
	s := scheduler.NewScheduler(1, &stubDetector{sync: false})
	_, err := s.DispatchPiece(context.Background(), piece(10, 0))
	require.Error(t, err)
	assert.ErrorIs(t, err, scheduler.ErrNotSynchronous)
}

func TestDispatchPiece_NoConflicts_InducesSingleVertex(t *testing.T) {
	s := scheduler.NewScheduler(1, &perTxnDetector{conflicts: map[uint64][]scheduler.Conflict{}})
	g, err := s.DispatchPiece(context.Background(), piece(10, 0))
	require.NoError(t, err)
	assert.Equal(t, 1, g.Size())
	assert.NotNil(t, g.Find(10))
}

func TestDispatchPiece_ConflictAddsEdge(t *testing.T) {
	det := &perTxnDetector{conflicts: map[uint64][]scheduler.Conflict{
		20: {{TxnID: 10, Relation: depgraph.RelationWW}},
	}}
	s := scheduler.NewScheduler(1, det)

	_, err := s.DispatchPiece(context.Background(), piece(10, 0))
	require.NoError(t, err)
	induced, err := s.DispatchPiece(context.Background(), piece(20, 0))
	require.NoError(t, err)

	assert.Equal(t, 2, induced.Size())
	r, ok := induced.Relation(10, 20)
	assert.True(t, ok)
	assert.Equal(t, depgraph.RelationWW, r)
}

// TestCommitGraph_ExecutesFullyDecidedSCC drives scenario 1 from the
// testable-properties scenarios: a two-vertex WW cycle, both DECIDED,
// executed in descending-id order.
func TestCommitGraph_ExecutesFullyDecidedSCC(t *testing.T) {
	det := &perTxnDetector{conflicts: map[uint64][]scheduler.Conflict{}}
	s := scheduler.NewScheduler(1, det)

	var executedOrder []uint64
	s.SetOnExecute(func(id uint64) { executedOrder = append(executedOrder, id) })

	g := depgraph.NewGraph[*txn.TxnInfo]()
	t10 := txn.NewTxnInfo(10)
	t10.SetStatus(txn.Decided)
	t20 := txn.NewTxnInfo(20)
	t20.SetStatus(txn.Decided)
	require.NoError(t, g.AddVertex(10, t10))
	require.NoError(t, g.AddVertex(20, t20))
	require.NoError(t, g.AddEdge(10, 20, depgraph.RelationWW))
	require.NoError(t, g.AddEdge(20, 10, depgraph.RelationWW))

	require.NoError(t, s.CommitGraph(context.Background(), g))

	assert.Equal(t, []uint64{20, 10}, executedOrder)
	assert.Equal(t, txn.Executed, s.Graph().Find(10).Payload.Status())
	assert.Equal(t, txn.Executed, s.Graph().Find(20).Payload.Status())
}

// TestCommitGraph_DoesNotExecutePartiallyDecidedSCC verifies that an
// SCC with an UNDECIDED member is left untouched.
func TestCommitGraph_DoesNotExecutePartiallyDecidedSCC(t *testing.T) {
	det := &perTxnDetector{conflicts: map[uint64][]scheduler.Conflict{}}
	s := scheduler.NewScheduler(1, det)

	g := depgraph.NewGraph[*txn.TxnInfo]()
	t10 := txn.NewTxnInfo(10)
	t10.SetStatus(txn.Decided)
	t20 := txn.NewTxnInfo(20) // left Undecided
	require.NoError(t, g.AddVertex(10, t10))
	require.NoError(t, g.AddVertex(20, t20))
	require.NoError(t, g.AddEdge(10, 20, depgraph.RelationWW))
	require.NoError(t, g.AddEdge(20, 10, depgraph.RelationWW))

	require.NoError(t, s.CommitGraph(context.Background(), g))

	assert.Equal(t, txn.Decided, s.Graph().Find(10).Payload.Status())
	assert.Equal(t, txn.Undecided, s.Graph().Find(20).Payload.Status())
}

// TestCommitGraph_AtMostOnceExecution verifies re-committing the same
// already-executed SCC does not re-invoke the execute callback.
func TestCommitGraph_AtMostOnceExecution(t *testing.T) {
	det := &perTxnDetector{conflicts: map[uint64][]scheduler.Conflict{}}
	s := scheduler.NewScheduler(1, det)

	var calls int
	s.SetOnExecute(func(uint64) { calls++ })

	mk := func() *depgraph.Graph[*txn.TxnInfo] {
		g := depgraph.NewGraph[*txn.TxnInfo]()
		t10 := txn.NewTxnInfo(10)
		t10.SetStatus(txn.Decided)
		require.NoError(t, g.AddVertex(10, t10))
		return g
	}

	require.NoError(t, s.CommitGraph(context.Background(), mk()))
	require.NoError(t, s.CommitGraph(context.Background(), mk()))
	assert.Equal(t, 1, calls)
}

func TestEnqueueAndRun_DrainsWorkQueue(t *testing.T) {
	det := &perTxnDetector{conflicts: map[uint64][]scheduler.Conflict{}}
	s := scheduler.NewScheduler(1, det)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	s.Enqueue(func() { close(done) })
	go s.Run(ctx)

	<-done
	cancel()
}
