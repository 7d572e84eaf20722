// Package txn defines the payload carried by every vertex in the
// dependency graph (TxnInfo) and the server-side execution shell that
// owns a transaction's runtime state on one shard (DTxn).
//
// TxnInfo implements depgraph.Payload; its UnionData is the concrete
// monotonic merge the dependency graph's Aggregate relies on, and its
// Trigger is how a scheduler wakes up code waiting on a vertex having
// been touched by a merge.
package txn
