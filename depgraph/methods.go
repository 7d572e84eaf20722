// File: methods.go
// Role: Aggregate — the monotonic merge of a remote subgraph into this
// one. This is the one operation every Scheduler and Coordinator in
// this module relies on to make replicated graph state converge.
//
// Determinism & idempotence:
//   - Aggregate(other) twice in a row is equivalent to once: payload
//     merge is monotonic (UnionData) and edge merge is OR (a|b|b == a|b).
//   - Trigger fires at most once per vertex touched by a single
//     Aggregate call; firing order across vertices is unspecified.
package depgraph

// Aggregate merges other into g: for every vertex in other, ensure a
// local vertex with the same id exists (creating it from other's
// payload if absent) and merge payloads via UnionData; for every
// outgoing edge in other, ensure both endpoints exist locally and OR
// the relation into the local edge, both directions. After every edge
// is merged, Trigger is invoked exactly once on each vertex touched by
// this call.
//
// Aggregate requires other to be non-empty (ErrEmptyGraph) per the
// wire format's "zero-length graphs are not transmitted" rule; an
// empty accumulator is only a valid starting point before the first
// Aggregate.
//
// Complexity: O(V' + E') where V'/E' are other's vertex/edge counts.
func (g *Graph[T]) Aggregate(other *Graph[T], isServer bool) error {
	if other.Size() == 0 {
		return ErrEmptyGraph
	}

	touched := make(map[uint64]*Vertex[T])

	for _, ov := range other.Vertices() {
		lv := g.mergeVertex(ov, isServer)
		touched[lv.ID] = lv

		other.muEdges.RLock()
		edges := make(map[uint64]int8, len(ov.Out))
		for to, r := range ov.Out {
			edges[to] = r
		}
		other.muEdges.RUnlock()

		for to, relation := range edges {
			otv := other.Find(to)
			ltv := g.mergeVertex(otv, isServer)
			touched[ltv.ID] = ltv

			g.muEdges.Lock()
			lv.Out[ltv.ID] |= relation
			ltv.In[lv.ID] |= relation
			g.muEdges.Unlock()
		}
	}

	for _, v := range touched {
		v.Payload.Trigger()
	}
	return nil
}

// mergeVertex ensures a local vertex exists for ov's id, merging
// payloads via UnionData when it already did. It never itself OR's
// edges; callers that also need edge merges do so around this call.
func (g *Graph[T]) mergeVertex(ov *Vertex[T], isServer bool) *Vertex[T] {
	lv, created := g.FindOrCreate(ov.ID, ov.Payload)
	if !created {
		lv.Payload.UnionData(ov.Payload, false, isServer)
	}
	return lv
}
