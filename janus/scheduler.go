// File: scheduler.go
// Role: JanusScheduler — the conflict-detection rule the generic
// scheduler.Scheduler defers to, plugged in via dependency injection
// rather than embedding-override (Go embedding resolves method calls
// statically, so a base type's own methods never see an embedder's
// shadowing override).
package janus

import (
	"sync"

	"github.com/dtxn-go/deptran/depgraph"
	"github.com/dtxn-go/deptran/scheduler"
	"github.com/dtxn-go/deptran/txn"
	"github.com/dtxn-go/deptran/wire"
)

// access records one piece's touch of a row key, kept in arrival order
// per key so later pieces can be checked against every prior one.
type access struct {
	txnID uint64
	write bool
}

// JanusScheduler supplies scheduler.ConflictDetector: cmd.Input keys
// are rows read, cmd.Output keys are rows written. Two pieces sharing
// a key conflict WW if both write it, type-2 (RW) if exactly one
// writes it; two reads of the same key never conflict.
type JanusScheduler struct {
	*scheduler.Scheduler

	mu     sync.Mutex
	byKey  map[int32][]access
}

// NewJanusScheduler constructs the embedded scheduler.Scheduler with
// this JanusScheduler as its injected ConflictDetector.
func NewJanusScheduler(shardID int32) *JanusScheduler {
	js := &JanusScheduler{
		byKey: make(map[int32][]access),
	}
	js.Scheduler = scheduler.NewScheduler(shardID, js)
	return js
}

// HandleConflicts scans cmd's Input/Output keys against every prior
// access to those keys, returning one Conflict per transaction found
// to conflict (deduplicated, carrying the OR of every relation found
// against that transaction), then records cmd's own accesses.
//
// Detection here is always synchronous: the second return is always
// true. A protocol that fans conflict checks out to a remote shard
// would return false while that round-trip is outstanding.
func (js *JanusScheduler) HandleConflicts(_ *txn.DTxn, cmd wire.SimpleCommand) ([]scheduler.Conflict, bool) {
	js.mu.Lock()
	defer js.mu.Unlock()

	relations := make(map[uint64]int8)
	record := func(key int32, write bool) {
		for _, a := range js.byKey[key] {
			if a.txnID == cmd.RootID {
				continue
			}
			if write || a.write {
				relation := depgraph.RelationRW
				if write && a.write {
					relation = depgraph.RelationWW
				}
				relations[a.txnID] |= relation
			}
		}
		js.byKey[key] = append(js.byKey[key], access{txnID: cmd.RootID, write: write})
	}

	for key := range cmd.Input {
		record(key, false)
	}
	for key := range cmd.Output {
		record(key, true)
	}

	conflicts := make([]scheduler.Conflict, 0, len(relations))
	for txnID, relation := range relations {
		conflicts = append(conflicts, scheduler.Conflict{TxnID: txnID, Relation: relation})
	}
	return conflicts, true
}
