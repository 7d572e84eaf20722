// File: codec.go
// Role: Graph Marshaler — canonical wire format for a graph or a
// selected subgraph.
//
// Wire format:
//
//	int32  vertex_count N       (N > 0; zero-length graphs are a
//	                              framing error, never transmitted)
//	repeat N times:
//	  uint64 vertex_id
//	  payload                   (delegated to PayloadCodec)
//	  int32  out_degree K
//	  repeat K times:
//	    uint64 target_id
//	    int8   relation_mask
//
// Decoding allocates vertices keyed by id and materializes payloads
// before edges (payload encoding must not reference other vertices);
// edges are re-linked by id lookup once every vertex has been read, so
// both Out[target] and target.In[self] end up populated. Duplicate
// edges in the stream OR their relations together, matching Aggregate.
package depgraph

import (
	"golang.org/x/xerrors"

	"github.com/dtxn-go/deptran/wire"
)

// PayloadCodec lets Graph[T] delegate payload (de)serialization to T
// without depgraph knowing T's shape. The txn package supplies the
// *txn.TxnInfo implementation (txn.Codec).
type PayloadCodec[T Payload] interface {
	Encode(p T, w *wire.Writer)
	// Decode reads a payload for the given vertex id. id is supplied
	// by the caller (already read from the stream header) so the
	// returned payload can satisfy Payload.ID() == id without the
	// codec needing to reach back into the stream.
	Decode(id uint64, r *wire.Reader) (T, error)
}

// ErrZeroLengthGraph is returned by Decode when the stream's
// vertex_count header is zero: per the wire format, empty graphs are
// never transmitted, so N == 0 indicates a framing error, not an
// empty-but-valid graph.
var ErrZeroLengthGraph = xerrors.New("depgraph: zero-length graph in stream")

// Encode writes g's full contents to w using codec for payloads.
// Returns ErrEmptyGraph if g has no vertices (empty graphs are not
// transmitted).
func Encode[T Payload](g *Graph[T], w *wire.Writer, codec PayloadCodec[T]) error {
	return EncodeSelection(g, g.Vertices(), w, codec)
}

// EncodeSelection writes only the vertices in selection (and their
// outgoing edges) to w — used by a scheduler returning the induced
// subgraph it observed locally rather than its whole shard graph.
func EncodeSelection[T Payload](g *Graph[T], selection []*Vertex[T], w *wire.Writer, codec PayloadCodec[T]) error {
	if len(selection) == 0 {
		return ErrEmptyGraph
	}

	w.WriteInt32(int32(len(selection)))
	for _, v := range selection {
		w.WriteUint64(v.ID)
		codec.Encode(v.Payload, w)

		g.muEdges.RLock()
		out := make(map[uint64]int8, len(v.Out))
		for to, r := range v.Out {
			out[to] = r
		}
		g.muEdges.RUnlock()

		w.WriteInt32(int32(len(out)))
		for to, relation := range out {
			w.WriteUint64(to)
			w.WriteInt8(relation)
		}
	}
	return nil
}

// Decode reads a Graph[T] from r using codec for payloads.
func Decode[T Payload](r *wire.Reader, codec PayloadCodec[T]) (*Graph[T], error) {
	n, err := r.ReadInt32()
	if err != nil {
		return nil, xerrors.Errorf("depgraph: decode vertex_count: %w", err)
	}
	if n <= 0 {
		return nil, xerrors.Errorf("depgraph: vertex_count=%d: %w", n, ErrZeroLengthGraph)
	}

	g := NewGraph[T]()
	type pending struct {
		from uint64
		to   uint64
		rel  int8
	}
	var edges []pending

	for i := int32(0); i < n; i++ {
		id, err := r.ReadUint64()
		if err != nil {
			return nil, xerrors.Errorf("depgraph: decode vertex_id[%d]: %w", i, err)
		}
		payload, err := codec.Decode(id, r)
		if err != nil {
			return nil, xerrors.Errorf("depgraph: decode payload[%d]: %w", i, err)
		}
		if err := g.AddVertex(id, payload); err != nil {
			return nil, xerrors.Errorf("depgraph: duplicate vertex id %d in stream: %w", id, err)
		}

		k, err := r.ReadInt32()
		if err != nil {
			return nil, xerrors.Errorf("depgraph: decode out_degree[%d]: %w", i, err)
		}
		for j := int32(0); j < k; j++ {
			to, err := r.ReadUint64()
			if err != nil {
				return nil, xerrors.Errorf("depgraph: decode target_id: %w", err)
			}
			rel, err := r.ReadInt8()
			if err != nil {
				return nil, xerrors.Errorf("depgraph: decode relation_mask: %w", err)
			}
			edges = append(edges, pending{from: id, to: to, rel: rel})
		}
	}

	for _, e := range edges {
		from, to := g.Find(e.from), g.Find(e.to)
		if from == nil || to == nil {
			return nil, xerrors.Errorf("depgraph: edge references unknown vertex (%d -> %d): %w", e.from, e.to, ErrVertexNotFound)
		}
		g.muEdges.Lock()
		from.Out[to.ID] |= e.rel
		to.In[from.ID] |= e.rel
		g.muEdges.Unlock()
	}

	return g, nil
}

// GraphMarshaler adapts a Graph for wire transmission. It either owns
// a graph it decoded itself (SelfCreated == true) or borrows an
// existing graph plus a selection (RetSet) to serialize only the
// vertices a participant actually observed.
type GraphMarshaler[T Payload] struct {
	Graph       *Graph[T]
	RetSet      []*Vertex[T]
	SelfCreated bool
	codec       PayloadCodec[T]
}

// NewGraphMarshaler wraps an existing graph and selection for encoding.
func NewGraphMarshaler[T Payload](g *Graph[T], retSet []*Vertex[T], codec PayloadCodec[T]) *GraphMarshaler[T] {
	return &GraphMarshaler[T]{Graph: g, RetSet: retSet, codec: codec}
}

// EncodeTo writes the marshaler's selection (or the whole graph if
// RetSet is nil) to w.
func (m *GraphMarshaler[T]) EncodeTo(w *wire.Writer) error {
	if m.RetSet != nil {
		return EncodeSelection(m.Graph, m.RetSet, w, m.codec)
	}
	return Encode(m.Graph, w, m.codec)
}

// DecodeGraphMarshaler reads a graph from r into a freshly owned
// GraphMarshaler (SelfCreated == true).
func DecodeGraphMarshaler[T Payload](r *wire.Reader, codec PayloadCodec[T]) (*GraphMarshaler[T], error) {
	g, err := Decode(r, codec)
	if err != nil {
		return nil, err
	}
	return &GraphMarshaler[T]{Graph: g, SelfCreated: true, codec: codec}, nil
}
