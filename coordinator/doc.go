// Package coordinator drives one transaction's client-side state
// machine: broadcast its pieces to the owning shards, merge the
// subgraphs they return, send the merged graph back out as the commit
// message, and wait for a quorum of acknowledgements.
//
// A Coordinator instance is scoped to exactly one transaction; a new
// one is constructed per transaction, the way Config-driven services
// elsewhere in this module are constructed per use rather than reused
// across unrelated work.
package coordinator
