// File: dtxn.go
// Role: DTxn — the server-side execution shell for a transaction on
// one shard: the piece results a scheduler has collected so far, plus
// the status the scheduler drives as the owning SCC commits.
package txn

import (
	"sync"

	"github.com/dtxn-go/deptran/wire"
)

// DTxn is the per-shard runtime record a scheduler keeps for a
// transaction it is executing: the results of each piece that has run
// so far, keyed by piece id, and the execution status. It is guarded
// by its own mutex, separate from the TxnInfo vertex payload's mutex,
// since an RPC-handling goroutine may read a piece's result while the
// graph-owning goroutine is still executing later pieces of the same
// transaction.
type DTxn struct {
	mu sync.Mutex

	txnID   uint64
	status  Status
	results map[int32]wire.Value
}

// NewDTxn returns a fresh, Undecided execution shell for txnID.
func NewDTxn(txnID uint64) *DTxn {
	return &DTxn{
		txnID:   txnID,
		status:  Undecided,
		results: make(map[int32]wire.Value),
	}
}

// TxnID returns the transaction id this shell executes pieces for.
func (d *DTxn) TxnID() uint64 { return d.txnID }

// Status returns the current execution status.
func (d *DTxn) Status() Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.status
}

// SetStatus advances status to s if s is further along than the
// current status, matching TxnInfo's monotonicity.
func (d *DTxn) SetStatus(s Status) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if s > d.status {
		d.status = s
	}
}

// RecordResult stores the output of piece innID. A piece that has
// already recorded a result is overwritten — re-execution after a
// retried dispatch is expected to be idempotent at the caller.
func (d *DTxn) RecordResult(innID int32, v wire.Value) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.results[innID] = v
}

// Result returns the recorded output for piece innID, if any.
func (d *DTxn) Result(innID int32) (wire.Value, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	v, ok := d.results[innID]
	return v, ok
}

// Results returns a snapshot of every piece result recorded so far.
func (d *DTxn) Results() map[int32]wire.Value {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make(map[int32]wire.Value, len(d.results))
	for k, v := range d.results {
		out[k] = v
	}
	return out
}
