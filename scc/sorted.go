// File: sorted.go
// Role: FindSortedSCC — the deterministic intra-SCC linearization that
// the coordination protocol uses as its commit order.
//
// Rules (see package doc and SPEC_FULL.md §4.3 for the rationale):
//  1. scc = FindSCC(start).
//  2. startVV = members of scc with no type-2 (relation >= RelationRW)
//     incoming edge from another member of scc. WW-only incoming
//     edges are ignored when computing this set.
//  3. Treat startVV as a LIFO work list whose pops yield ids in
//     descending order (highest id first).
//  4. Repeatedly pop: mark visited, append to result; find its
//     type-2 children inside scc, sort by id ascending, and push any
//     child whose every type-2 parent (inside scc) is already visited
//     (so the pushed children are also popped highest id first).
//  5. The result must be a permutation of scc — this is the single
//     place the algorithm's own precondition (every SCC has at least
//     one type-2-free root) can be violated; see ErrNoType2Root.
package scc

import (
	"sort"

	"golang.org/x/xerrors"

	"github.com/dtxn-go/deptran/depgraph"
)

// ErrNoType2Root is returned when an SCC has no member free of
// type-2 incoming edges from within the same SCC (spec.md §8,
// scenario 2 — e.g. a two-vertex RW/WR cycle). The protocol's source
// implementation asserts here; this implementation treats it as a
// deliberate decision rather than a guess — see DESIGN.md for the
// recorded rationale. Returning an error keeps a malformed conflict
// graph from silently producing a truncated, incorrect commit order.
var ErrNoType2Root = xerrors.New("scc: SCC has no type-2-free root")

// FindSortedSCC returns the SCC containing start, linearized by the
// rules above. The returned order is the protocol's commit order and
// is identical on every replica holding the same edges for this SCC.
//
// Panics with Invariant if the resulting sequence is not a permutation
// of the SCC (a violated internal precondition, not a caller error).
// Returns ErrNoType2Root if step 2 yields an empty start set on a
// non-empty SCC.
func FindSortedSCC[T depgraph.Payload](g *depgraph.Graph[T], start uint64) ([]*depgraph.Vertex[T], error) {
	component := FindSCC(g, start)
	if len(component) == 0 {
		panic(Invariant{Msg: "FindSortedSCC: empty SCC"})
	}

	inSCC := make(map[uint64]bool, len(component))
	for _, v := range component {
		inSCC[v.ID] = true
	}

	startVV := make([]uint64, 0)
	for _, v := range component {
		if !hasType2ParentInSCC(v, inSCC) {
			startVV = append(startVV, v.ID)
		}
	}
	if len(startVV) == 0 {
		return nil, xerrors.Errorf("scc: scc of size %d: %w", len(component), ErrNoType2Root)
	}

	// LIFO work list (rule 3): kept ascending by id so that popping from
	// the end takes the highest id first.
	sort.Slice(startVV, func(i, j int) bool { return startVV[i] < startVV[j] })

	visited := make(map[uint64]bool, len(component))
	order := make([]uint64, 0, len(component))

	for len(startVV) > 0 {
		n := len(startVV) - 1
		v := startVV[n]
		startVV = startVV[:n]

		visited[v] = true
		order = append(order, v)

		children := type2Children(g, v, inSCC)
		sort.Slice(children, func(i, j int) bool { return children[i] < children[j] })

		for _, w := range children {
			if allType2ParentsVisited(g, w, inSCC, visited) {
				startVV = append(startVV, w)
			}
		}
	}

	if len(order) != len(component) {
		panic(Invariant{Msg: "FindSortedSCC: result length does not match SCC size"})
	}

	out := make([]*depgraph.Vertex[T], len(order))
	for i, id := range order {
		out[i] = g.Find(id)
	}
	return out, nil
}

// hasType2ParentInSCC reports whether v has an incoming edge of
// relation >= RelationRW from another vertex that is also in scc.
func hasType2ParentInSCC[T depgraph.Payload](v *depgraph.Vertex[T], inSCC map[uint64]bool) bool {
	for parent, relation := range v.In {
		if depgraph.IsType2(relation) && inSCC[parent] {
			return true
		}
	}
	return false
}

// type2Children returns the ids w such that (v -> w, r) exists with
// r >= RelationRW and w is in scc.
func type2Children[T depgraph.Payload](g *depgraph.Graph[T], v uint64, inSCC map[uint64]bool) []uint64 {
	vv := g.Find(v)
	out := make([]uint64, 0, len(vv.Out))
	for to, relation := range vv.Out {
		if depgraph.IsType2(relation) && inSCC[to] {
			out = append(out, to)
		}
	}
	return out
}

// allType2ParentsVisited reports whether every type-2 parent of w
// inside scc has already been visited.
func allType2ParentsVisited[T depgraph.Payload](g *depgraph.Graph[T], w uint64, inSCC map[uint64]bool, visited map[uint64]bool) bool {
	ww := g.Find(w)
	for parent, relation := range ww.In {
		if depgraph.IsType2(relation) && inSCC[parent] && !visited[parent] {
			return false
		}
	}
	return true
}
