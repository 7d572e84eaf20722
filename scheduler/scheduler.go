// File: scheduler.go
// Role: Scheduler — the per-shard driver: owns the shard's dependency
// graph behind a single mutex, turns dispatched pieces into vertices
// and edges via an injected ConflictDetector, and feeds a bounded work
// queue the way RPC handlers are expected to in this protocol.
package scheduler

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"

	"github.com/dtxn-go/deptran/depgraph"
	"github.com/dtxn-go/deptran/txn"
	"github.com/dtxn-go/deptran/wire"
)

// queueCapacity bounds the number of pending closures a Scheduler will
// hold before Enqueue blocks the caller; a single-threaded consumer
// goroutine drains it in Run.
const queueCapacity = 256

// Conflict is one conflicting transaction discovered by a
// ConflictDetector: the other transaction's id and the relation mask
// that edge should carry.
type Conflict struct {
	TxnID    uint64
	Relation int8
}

// ConflictDetector is the protocol extension point: given the DTxn a
// dispatched piece belongs to and the piece itself, it reports which
// other transactions conflict with it and whether detection completed
// synchronously (false means the caller should not yet treat the
// result as final — e.g. a protocol still waiting on a remote shard's
// answer). The full command, not just its piece id, is handed in so a
// detector can inspect whatever it needs — partition, input values,
// row identifiers encoded in Input — to decide conflicts.
type ConflictDetector interface {
	HandleConflicts(dtxn *txn.DTxn, cmd wire.SimpleCommand) ([]Conflict, bool)
}

// ErrNotSynchronous is returned by DispatchPiece when the detector
// reports its conflict scan did not complete synchronously; the caller
// retries the dispatch once the detector is ready.
var ErrNotSynchronous = xerrors.New("scheduler: conflict detection did not complete synchronously")

// Scheduler owns one shard's dependency graph and DTxn table.
type Scheduler struct {
	shardID  int32
	detector ConflictDetector
	log      *logrus.Entry

	mu        sync.Mutex
	graph     *depgraph.Graph[*txn.TxnInfo]
	dtxns     map[uint64]*txn.DTxn
	executed  map[uint64]bool
	onExecute func(txnID uint64)

	queue chan func()
}

// NewScheduler returns a Scheduler for shardID, delegating conflict
// detection to detector. Callers that want virtual-dispatch-style
// behavior (a protocol overriding HandleConflicts) construct their own
// type implementing ConflictDetector and pass it here — see the janus
// package's JanusScheduler.
func NewScheduler(shardID int32, detector ConflictDetector) *Scheduler {
	return &Scheduler{
		shardID:  shardID,
		detector: detector,
		log:      logrus.WithField("shard_id", shardID),
		graph:    depgraph.NewGraph[*txn.TxnInfo](),
		dtxns:    make(map[uint64]*txn.DTxn),
		executed: make(map[uint64]bool),
		queue:    make(chan func(), queueCapacity),
	}
}

// Enqueue pushes fn onto the shard's work queue; it blocks if the
// queue is full. RPC handlers (out of scope here) are expected to
// Enqueue rather than call DispatchPiece/CommitGraph directly from an
// arbitrary goroutine, matching the event-loop-per-shard model.
func (s *Scheduler) Enqueue(fn func()) {
	s.queue <- fn
}

// Run drains the work queue on the calling goroutine until ctx is
// canceled. A Scheduler is meant to have exactly one Run call active
// at a time, the shard's single consumer.
func (s *Scheduler) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case fn := <-s.queue:
			fn()
		}
	}
}

// Graph returns the shard's whole dependency graph (not the induced
// subgraph DispatchPiece returns). Callers outside this package should
// treat it as read-only except through DispatchPiece/CommitGraph.
func (s *Scheduler) Graph() *depgraph.Graph[*txn.TxnInfo] {
	return s.graph
}

// dtxnFor returns the DTxn for txnID, creating one if absent. Caller
// must hold s.mu.
func (s *Scheduler) dtxnFor(txnID uint64) *txn.DTxn {
	d, ok := s.dtxns[txnID]
	if !ok {
		d = txn.NewDTxn(txnID)
		s.dtxns[txnID] = d
	}
	return d
}
