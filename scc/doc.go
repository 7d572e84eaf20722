// Package scc implements Tarjan's strongly-connected-component
// algorithm over a depgraph.Graph, plus the deterministic intra-SCC
// linearization that the coordination protocol uses as its commit
// order.
//
// FindSCC returns the SCC containing a given vertex with no ordering
// guarantee beyond "some permutation of the component". FindSortedSCC
// returns the same set, linearized by a rule that every replica
// holding the same edges computes identically (sort by id, ignore
// write-write-only edges, BFS-like layering over the "type-2" subgraph
// restricted to the component) — this linearization is the protocol's
// actual commit order, so determinism here is not a nice-to-have, it
// is the correctness property the whole replicated system depends on.
//
// Tarjan's algorithm is implemented iteratively with an explicit stack
// (not recursion) to bound call depth on graphs with long dependency
// chains, and an on-stack boolean set rather than a linear scan of the
// DFS stack to test onStack membership — both are direct fixes for the
// two inefficiencies the reference implementation carried.
package scc
