// File: txninfo.go
// Role: TxnInfo — the payload carried by every vertex in the
// dependency graph.
//
// Concurrency:
//   - Guarded by a single mutex; UnionData/Trigger/partition and
//     dependency accessors all take it, since a scheduler goroutine
//     may call UnionData via Graph.Aggregate concurrently with an RPC
//     handler reading partitions for logging.
package txn

import (
	"sync"

	"github.com/dtxn-go/deptran/depgraph"
)

// TxnInfo is the payload depgraph.Graph stores at each transaction
// vertex: identity, lifecycle status, the set of partitions this
// transaction touches, the set of transaction ids it has observed a
// dependency on, and a trigger hook fired by Graph.Aggregate.
type TxnInfo struct {
	mu sync.Mutex

	id         uint64
	status     Status
	partitions map[int32]struct{}
	deps       map[uint64]struct{}
	onTrigger  func()
}

// NewTxnInfo returns a fresh, Undecided TxnInfo for the given
// transaction id.
func NewTxnInfo(id uint64) *TxnInfo {
	return &TxnInfo{
		id:         id,
		status:     Undecided,
		partitions: make(map[int32]struct{}),
		deps:       make(map[uint64]struct{}),
	}
}

// ID returns the transaction id, stable across the txn's lifecycle.
func (t *TxnInfo) ID() uint64 { return t.id }

// Status returns the current lifecycle status.
func (t *TxnInfo) Status() Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

// SetStatus advances status to s if s is further along than the
// current status; it never regresses status, mirroring UnionData's
// monotonicity for the scheduler's own direct status transitions.
func (t *TxnInfo) SetStatus(s Status) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if s > t.status {
		t.status = s
	}
}

// AddPartition records that this transaction touches partition p.
func (t *TxnInfo) AddPartition(p int32) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.partitions[p] = struct{}{}
}

// Partitions returns a snapshot of the partitions this transaction
// touches.
func (t *TxnInfo) Partitions() []int32 {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]int32, 0, len(t.partitions))
	for p := range t.partitions {
		out = append(out, p)
	}
	return out
}

// AddDependency records a conflicting transaction id discovered during
// conflict detection.
func (t *TxnInfo) AddDependency(txnID uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.deps[txnID] = struct{}{}
}

// Dependencies returns a snapshot of the collected dependency ids.
func (t *TxnInfo) Dependencies() []uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]uint64, 0, len(t.deps))
	for id := range t.deps {
		out = append(out, id)
	}
	return out
}

// SetTriggerFunc registers the callback Trigger invokes. Schedulers
// wire this to a condition signal so coordinators waiting on decision
// completeness wake up when Graph.Aggregate touches this vertex.
func (t *TxnInfo) SetTriggerFunc(f func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onTrigger = f
}

// Trigger is invoked by Graph.Aggregate once per call that touched
// this payload's vertex. It is a no-op if no callback was registered.
func (t *TxnInfo) Trigger() {
	t.mu.Lock()
	f := t.onTrigger
	t.mu.Unlock()
	if f != nil {
		f()
	}
}

// UnionData monotonically merges other into t: status only advances,
// partitions and dependencies only grow. isClientView/isServer are
// accepted for parity with the protocol's merge signature but do not
// currently change TxnInfo's merge policy — a future protocol variant
// that needs an asymmetric merge (e.g. a client-side view that should
// not absorb server-only dependency data) can branch on them without
// changing this method's signature or its callers.
//
// other is snapshotted under its own lock before t's lock is taken, so
// two TxnInfo values never need to hold each other's locks at once —
// two goroutines merging A into B and B into A concurrently cannot
// deadlock.
func (t *TxnInfo) UnionData(other depgraph.Payload, isClientView, isServer bool) {
	o, ok := other.(*TxnInfo)
	if !ok {
		return
	}

	o.mu.Lock()
	status := o.status
	partitions := make([]int32, 0, len(o.partitions))
	for p := range o.partitions {
		partitions = append(partitions, p)
	}
	deps := make([]uint64, 0, len(o.deps))
	for id := range o.deps {
		deps = append(deps, id)
	}
	o.mu.Unlock()

	t.mu.Lock()
	defer t.mu.Unlock()
	if status > t.status {
		t.status = status
	}
	for _, p := range partitions {
		t.partitions[p] = struct{}{}
	}
	for _, id := range deps {
		t.deps[id] = struct{}{}
	}
}
