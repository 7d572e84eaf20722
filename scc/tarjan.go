// File: tarjan.go
// Role: FindSCC, AllSCC — Tarjan's algorithm, iterative.
package scc

import (
	"sort"

	"github.com/dtxn-go/deptran/depgraph"
)

// Invariant is panicked by this package when an internal precondition
// is violated — these are the "invariant violation" error kind from
// the protocol's error taxonomy (empty SCC, size mismatches), which
// the protocol specifies as fatal: callers are not meant to recover
// from it and continue with a graph that may no longer be consistent.
type Invariant struct{ Msg string }

func (i Invariant) Error() string { return "scc: invariant violation: " + i.Msg }

// tarjanState holds the bookkeeping for one run of the iterative
// Tarjan algorithm over a Graph[T]. A run may cover the whole graph
// (AllSCC) or only the vertices reachable from a single start (FindSCC).
type tarjanState[T depgraph.Payload] struct {
	g *depgraph.Graph[T]

	index   int
	indexOf map[uint64]int
	lowlink map[uint64]int
	onStack map[uint64]bool
	stack   []uint64

	sccs [][]uint64
}

type tarjanFrame struct {
	v         uint64
	neighbors []uint64
	pos       int
}

func newTarjanState[T depgraph.Payload](g *depgraph.Graph[T]) *tarjanState[T] {
	return &tarjanState[T]{
		g:       g,
		indexOf: make(map[uint64]int),
		lowlink: make(map[uint64]int),
		onStack: make(map[uint64]bool),
	}
}

// sortedOutNeighbors returns the ids reachable by a single outgoing
// edge from v, sorted ascending so two runs over the same edge set
// explore in the same order (useful for tests and for keeping
// FindSortedSCC's own ordering independent of this traversal order).
func sortedOutNeighbors[T depgraph.Payload](g *depgraph.Graph[T], v *depgraph.Vertex[T]) []uint64 {
	out := make([]uint64, 0, len(v.Out))
	for to := range v.Out {
		out = append(out, to)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// strongconnect runs Tarjan's algorithm from root using an explicit
// stack of call frames instead of recursion, so a long dependency
// chain cannot overflow the Go call stack. onStack membership is a
// boolean set, not a linear scan of the Tarjan stack.
func (t *tarjanState[T]) strongconnect(root uint64) {
	if _, seen := t.indexOf[root]; seen {
		return
	}

	call := []*tarjanFrame{t.push(root)}

	for len(call) > 0 {
		top := call[len(call)-1]

		if top.pos < len(top.neighbors) {
			w := top.neighbors[top.pos]
			top.pos++

			if _, visited := t.indexOf[w]; !visited {
				call = append(call, t.push(w))
				continue
			}
			if t.onStack[w] && t.indexOf[w] < t.lowlink[top.v] {
				t.lowlink[top.v] = t.indexOf[w]
			}
			continue
		}

		// All of top.v's neighbors are explored; pop its frame and
		// propagate lowlink to the parent frame, if any.
		call = call[:len(call)-1]
		if len(call) > 0 {
			parent := call[len(call)-1]
			if t.lowlink[top.v] < t.lowlink[parent.v] {
				t.lowlink[parent.v] = t.lowlink[top.v]
			}
		}

		if t.lowlink[top.v] == t.indexOf[top.v] {
			var component []uint64
			for {
				n := len(t.stack) - 1
				w := t.stack[n]
				t.stack = t.stack[:n]
				t.onStack[w] = false
				component = append(component, w)
				if w == top.v {
					break
				}
			}
			t.sccs = append(t.sccs, component)
		}
	}
}

func (t *tarjanState[T]) push(id uint64) *tarjanFrame {
	t.indexOf[id] = t.index
	t.lowlink[id] = t.index
	t.index++
	t.stack = append(t.stack, id)
	t.onStack[id] = true

	v := t.g.Find(id)
	return &tarjanFrame{v: id, neighbors: sortedOutNeighbors(t.g, v)}
}

func (t *tarjanState[T]) vertices(ids []uint64) []*depgraph.Vertex[T] {
	out := make([]*depgraph.Vertex[T], len(ids))
	for i, id := range ids {
		out[i] = t.g.Find(id)
	}
	return out
}

// FindSCC returns the strongly-connected component containing start,
// with no ordering guarantee beyond "some permutation of the
// component" — use FindSortedSCC for the protocol's commit order.
//
// Panics with Invariant if start is absent from g (a precondition
// violation, not a recoverable error: callers must not ask for the
// SCC of a vertex that does not exist).
func FindSCC[T depgraph.Payload](g *depgraph.Graph[T], start uint64) []*depgraph.Vertex[T] {
	if g.Find(start) == nil {
		panic(Invariant{Msg: "FindSCC: start vertex not found"})
	}

	t := newTarjanState(g)
	t.strongconnect(start)

	// start's own frame was pushed first and therefore closes last:
	// the final component recorded is the one containing start.
	last := t.sccs[len(t.sccs)-1]
	if len(last) == 0 {
		panic(Invariant{Msg: "FindSCC: empty component"})
	}
	return t.vertices(last)
}

// AllSCC decomposes every vertex in g into its strongly-connected
// component, visiting each vertex exactly once.
func AllSCC[T depgraph.Payload](g *depgraph.Graph[T]) [][]*depgraph.Vertex[T] {
	t := newTarjanState(g)
	for _, v := range g.Vertices() {
		t.strongconnect(v.ID)
	}

	out := make([][]*depgraph.Vertex[T], len(t.sccs))
	for i, comp := range t.sccs {
		out[i] = t.vertices(comp)
	}
	return out
}
