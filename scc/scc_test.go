package scc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtxn-go/deptran/depgraph"
	"github.com/dtxn-go/deptran/scc"
)

type stubPayload struct {
	id uint64
}

func (p *stubPayload) ID() uint64                              { return p.id }
func (p *stubPayload) UnionData(_ depgraph.Payload, _, _ bool) {}
func (p *stubPayload) Trigger()                                {}

func buildGraph(t *testing.T, ids []uint64, edges [][3]any) *depgraph.Graph[*stubPayload] {
	t.Helper()
	g := depgraph.NewGraph[*stubPayload]()
	for _, id := range ids {
		require.NoError(t, g.AddVertex(id, &stubPayload{id: id}))
	}
	for _, e := range edges {
		require.NoError(t, g.AddEdge(e[0].(uint64), e[1].(uint64), e[2].(int8)))
	}
	return g
}

func idsOf(vs []*depgraph.Vertex[*stubPayload]) []uint64 {
	out := make([]uint64, len(vs))
	for i, v := range vs {
		out[i] = v.ID
	}
	return out
}

// Scenario 1: two-vertex WW cycle. SCC = {10,20}; both are roots
// (no type-2 edges at all), sorted order = [20, 10].
func TestFindSortedSCC_WWCycle(t *testing.T) {
	g := buildGraph(t,
		[]uint64{10, 20},
		[][3]any{
			{uint64(10), uint64(20), depgraph.RelationWW},
			{uint64(20), uint64(10), depgraph.RelationWW},
		})

	order, err := scc.FindSortedSCC(g, 10)
	require.NoError(t, err)
	assert.Equal(t, []uint64{20, 10}, idsOf(order))
}

// Scenario 2: two-vertex RW cycle. Both vertices have a type-2
// incoming edge from within the SCC, so there is no type-2-free root.
func TestFindSortedSCC_RWCycle_NoType2Root(t *testing.T) {
	g := buildGraph(t,
		[]uint64{10, 20},
		[][3]any{
			{uint64(10), uint64(20), depgraph.RelationRW},
			{uint64(20), uint64(10), depgraph.RelationRW},
		})

	_, err := scc.FindSortedSCC(g, 10)
	require.Error(t, err)
	assert.ErrorIs(t, err, scc.ErrNoType2Root)
}

// Scenario 3: mixed relations. 1->2 (WW), 2->3 (RW), 3->1 (RW).
// Expected order = [2, 3, 1].
func TestFindSortedSCC_Mixed(t *testing.T) {
	g := buildGraph(t,
		[]uint64{1, 2, 3},
		[][3]any{
			{uint64(1), uint64(2), depgraph.RelationWW},
			{uint64(2), uint64(3), depgraph.RelationRW},
			{uint64(3), uint64(1), depgraph.RelationRW},
		})

	order, err := scc.FindSortedSCC(g, 1)
	require.NoError(t, err)
	assert.Equal(t, []uint64{2, 3, 1}, idsOf(order))
}

// FindSortedSCC must produce identical output whether the graph was
// built by inserting edges 1->2 then 2->3 then 3->1, or in the
// opposite order — the linearization is a pure function of the edge
// set, not of insertion order.
func TestFindSortedSCC_Determinism_AcrossInsertionOrder(t *testing.T) {
	gA := buildGraph(t,
		[]uint64{1, 2, 3},
		[][3]any{
			{uint64(1), uint64(2), depgraph.RelationWW},
			{uint64(2), uint64(3), depgraph.RelationRW},
			{uint64(3), uint64(1), depgraph.RelationRW},
		})
	gB := buildGraph(t,
		[]uint64{3, 1, 2},
		[][3]any{
			{uint64(3), uint64(1), depgraph.RelationRW},
			{uint64(2), uint64(3), depgraph.RelationRW},
			{uint64(1), uint64(2), depgraph.RelationWW},
		})

	orderA, err := scc.FindSortedSCC(gA, 2)
	require.NoError(t, err)
	orderB, err := scc.FindSortedSCC(gB, 2)
	require.NoError(t, err)
	assert.Equal(t, idsOf(orderA), idsOf(orderB))
}

// FindSortedSCC's result must always be a permutation of FindSCC's.
func TestFindSortedSCC_IsPermutationOfFindSCC(t *testing.T) {
	g := buildGraph(t,
		[]uint64{1, 2, 3},
		[][3]any{
			{uint64(1), uint64(2), depgraph.RelationWW},
			{uint64(2), uint64(3), depgraph.RelationRW},
			{uint64(3), uint64(1), depgraph.RelationRW},
		})

	unsorted := scc.FindSCC(g, 1)
	sorted, err := scc.FindSortedSCC(g, 1)
	require.NoError(t, err)

	assert.ElementsMatch(t, idsOf(unsorted), idsOf(sorted))
}

func TestFindSCC_SingleVertexNoEdges(t *testing.T) {
	g := buildGraph(t, []uint64{99}, nil)
	got := scc.FindSCC(g, 99)
	assert.Equal(t, []uint64{99}, idsOf(got))
}

func TestFindSCC_PanicsOnUnknownStart(t *testing.T) {
	g := buildGraph(t, []uint64{1}, nil)
	assert.Panics(t, func() { scc.FindSCC(g, 404) })
}

// Aggregate of disjoint subgraphs from two participants yields a graph
// whose SCC decomposition equals that of the union.
func TestAllSCC_UnionOfDisjointSubgraphs(t *testing.T) {
	a := buildGraph(t, []uint64{1, 2}, [][3]any{
		{uint64(1), uint64(2), depgraph.RelationWW},
		{uint64(2), uint64(1), depgraph.RelationWW},
	})
	b := buildGraph(t, []uint64{3, 4}, [][3]any{
		{uint64(3), uint64(4), depgraph.RelationRW},
	})

	require.NoError(t, a.Aggregate(b, false))

	comps := scc.AllSCC(a)
	var sizes []int
	for _, c := range comps {
		sizes = append(sizes, len(c))
	}
	assert.ElementsMatch(t, []int{2, 1, 1}, sizes)
}
