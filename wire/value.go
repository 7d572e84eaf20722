// File: value.go
// Role: Value is the opaque wire value carried in a SimpleCommand's
// input/output maps. The graph core never interprets a Value; the
// janus conflict rule looks only at the maps' keys.
package wire

import (
	"sort"

	"golang.org/x/xerrors"
)

// ValueKind tags the variant held by a Value.
type ValueKind int8

const (
	// KindNil marks an absent value.
	KindNil ValueKind = iota
	// KindInt64 marks a signed 64-bit integer payload.
	KindInt64
	// KindBytes marks an opaque byte-slice payload.
	KindBytes
	// KindString marks a UTF-8 string payload.
	KindString
)

// Value is a small tagged union: exactly one of Int64/Bytes/Str is
// meaningful, selected by Kind.
type Value struct {
	Kind  ValueKind
	Int64 int64
	Bytes []byte
	Str   string
}

// ErrUnknownValueKind is returned when decoding encounters a tag byte
// outside the known ValueKind range.
var ErrUnknownValueKind = xerrors.New("wire: unknown value kind")

// Encode appends v to w.
func (v Value) Encode(w *Writer) {
	w.WriteInt8(int8(v.Kind))
	switch v.Kind {
	case KindNil:
	case KindInt64:
		w.WriteInt64(v.Int64)
	case KindBytes:
		w.WriteBytes(v.Bytes)
	case KindString:
		w.WriteString(v.Str)
	}
}

// DecodeValue reads a Value from r.
func DecodeValue(r *Reader) (Value, error) {
	tag, err := r.ReadInt8()
	if err != nil {
		return Value{}, err
	}
	switch ValueKind(tag) {
	case KindNil:
		return Value{Kind: KindNil}, nil
	case KindInt64:
		n, err := r.ReadInt64()
		if err != nil {
			return Value{}, err
		}
		return Value{Kind: KindInt64, Int64: n}, nil
	case KindBytes:
		b, err := r.ReadBytes()
		if err != nil {
			return Value{}, err
		}
		return Value{Kind: KindBytes, Bytes: b}, nil
	case KindString:
		s, err := r.ReadString()
		if err != nil {
			return Value{}, err
		}
		return Value{Kind: KindString, Str: s}, nil
	default:
		return Value{}, xerrors.Errorf("wire: tag %d: %w", tag, ErrUnknownValueKind)
	}
}

// encodeValueMap writes a map[int32]Value sorted by key ascending, so
// two replicas building the same logical map always emit identical
// bytes regardless of Go map iteration order.
func encodeValueMap(w *Writer, m map[int32]Value) {
	keys := sortedInt32Keys(m)
	w.WriteInt32(int32(len(keys)))
	for _, k := range keys {
		w.WriteInt32(k)
		m[k].Encode(w)
	}
}

func decodeValueMap(r *Reader) (map[int32]Value, error) {
	n, err := r.ReadInt32()
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, xerrors.Errorf("wire: negative map size %d: %w", n, ErrShortRead)
	}
	m := make(map[int32]Value, n)
	for i := int32(0); i < n; i++ {
		k, err := r.ReadInt32()
		if err != nil {
			return nil, err
		}
		v, err := DecodeValue(r)
		if err != nil {
			return nil, err
		}
		m[k] = v
	}
	return m, nil
}

func sortedInt32Keys(m map[int32]Value) []int32 {
	keys := make([]int32, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
