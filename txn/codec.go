// File: codec.go
// Role: Codec implements depgraph.PayloadCodec[*TxnInfo] — the wire
// encoding for a transaction vertex's payload.
//
// Wire form: int32 status, int32 partition_count, partition_count *
// int32 partition_id. Dependencies are not transmitted: they are a
// local scheduler bookkeeping aid, not part of the replicated state
// other replicas need to agree on commit order.
package txn

import (
	"github.com/dtxn-go/deptran/wire"
)

// Codec is the depgraph.PayloadCodec for TxnInfo.
type Codec struct{}

// Encode writes p's status and partition set to w.
func (Codec) Encode(p *TxnInfo, w *wire.Writer) {
	w.WriteInt32(int32(p.Status()))
	partitions := p.Partitions()
	w.WriteInt32(int32(len(partitions)))
	for _, part := range partitions {
		w.WriteInt32(part)
	}
}

// Decode reads a TxnInfo's status and partition set from r, tagging
// the result with id (already read from the stream header by the
// caller).
func (Codec) Decode(id uint64, r *wire.Reader) (*TxnInfo, error) {
	status, err := r.ReadInt32()
	if err != nil {
		return nil, err
	}
	n, err := r.ReadInt32()
	if err != nil {
		return nil, err
	}
	t := NewTxnInfo(id)
	t.status = Status(status)
	for i := int32(0); i < n; i++ {
		p, err := r.ReadInt32()
		if err != nil {
			return nil, err
		}
		t.partitions[p] = struct{}{}
	}
	return t, nil
}
