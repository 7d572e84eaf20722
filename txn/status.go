// File: status.go
// Role: Status — the ordered transaction state UnionData maxes over.
package txn

// Status is a transaction's lifecycle state. The ordering matters:
// UnionData always keeps the larger of two statuses, so a transaction
// can only move forward, never back, as observations from different
// replicas are merged.
type Status int32

const (
	// Undecided means no commit/abort decision has been reached yet.
	Undecided Status = iota
	// Decided means the transaction's SCC membership is settled and a
	// commit decision has been made, but it has not executed.
	Decided
	// Executed means the transaction has run to completion on this shard.
	Executed
)

// String renders a Status for logs and test failure messages.
func (s Status) String() string {
	switch s {
	case Undecided:
		return "UNDECIDED"
	case Decided:
		return "DECIDED"
	case Executed:
		return "EXECUTED"
	default:
		return "UNKNOWN"
	}
}
