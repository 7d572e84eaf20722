// File: marshal.go
// Role: Writer/Reader primitives over a byte stream.
//
// Determinism:
//   - All multi-byte integers are big-endian; encode output is bit-exact
//     across platforms and runs.
//
// Errors:
//   - ErrShortRead is returned by every Read* method when the underlying
//     stream does not have enough bytes left.
package wire

import (
	"bytes"
	"encoding/binary"
	"io"

	"golang.org/x/xerrors"
)

// ErrShortRead indicates the stream ended before a full value could be read.
var ErrShortRead = xerrors.New("wire: short read")

// Writer accumulates encoded primitives into an in-memory buffer.
//
// Complexity: every Write* method is O(1) amortized (bytes.Buffer growth).
type Writer struct {
	buf bytes.Buffer
}

// NewWriter returns an empty Writer ready for use.
func NewWriter() *Writer { return &Writer{} }

// Bytes returns the accumulated encoded bytes.
func (w *Writer) Bytes() []byte { return w.buf.Bytes() }

// Len reports the number of bytes written so far.
func (w *Writer) Len() int { return w.buf.Len() }

// WriteUint64 appends a big-endian uint64.
func (w *Writer) WriteUint64(v uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	w.buf.Write(b[:])
}

// WriteInt64 appends a big-endian int64.
func (w *Writer) WriteInt64(v int64) { w.WriteUint64(uint64(v)) }

// WriteInt32 appends a big-endian int32.
func (w *Writer) WriteInt32(v int32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(v))
	w.buf.Write(b[:])
}

// WriteInt8 appends a single signed byte.
func (w *Writer) WriteInt8(v int8) { w.buf.WriteByte(byte(v)) }

// WriteBytes appends a length-prefixed (int32) byte slice.
func (w *Writer) WriteBytes(b []byte) {
	w.WriteInt32(int32(len(b)))
	w.buf.Write(b)
}

// WriteString appends a length-prefixed (int32) UTF-8 string.
func (w *Writer) WriteString(s string) { w.WriteBytes([]byte(s)) }

// Reader consumes encoded primitives from a byte slice in sequence.
type Reader struct {
	r *bytes.Reader
}

// NewReader wraps b for sequential decoding.
func NewReader(b []byte) *Reader { return &Reader{r: bytes.NewReader(b)} }

// Remaining reports how many bytes are left to read.
func (r *Reader) Remaining() int { return r.r.Len() }

// ReadUint64 reads a big-endian uint64.
func (r *Reader) ReadUint64() (uint64, error) {
	var b [8]byte
	if _, err := io.ReadFull(r.r, b[:]); err != nil {
		return 0, xerrors.Errorf("wire: read uint64: %w: %v", ErrShortRead, err)
	}
	return binary.BigEndian.Uint64(b[:]), nil
}

// ReadInt64 reads a big-endian int64.
func (r *Reader) ReadInt64() (int64, error) {
	v, err := r.ReadUint64()
	return int64(v), err
}

// ReadInt32 reads a big-endian int32.
func (r *Reader) ReadInt32() (int32, error) {
	var b [4]byte
	if _, err := io.ReadFull(r.r, b[:]); err != nil {
		return 0, xerrors.Errorf("wire: read int32: %w: %v", ErrShortRead, err)
	}
	return int32(binary.BigEndian.Uint32(b[:])), nil
}

// ReadInt8 reads a single signed byte.
func (r *Reader) ReadInt8() (int8, error) {
	b, err := r.r.ReadByte()
	if err != nil {
		return 0, xerrors.Errorf("wire: read int8: %w: %v", ErrShortRead, err)
	}
	return int8(b), nil
}

// ReadBytes reads a length-prefixed (int32) byte slice.
func (r *Reader) ReadBytes() ([]byte, error) {
	n, err := r.ReadInt32()
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, xerrors.Errorf("wire: negative length %d: %w", n, ErrShortRead)
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r.r, b); err != nil {
		return nil, xerrors.Errorf("wire: read bytes(%d): %w: %v", n, ErrShortRead, err)
	}
	return b, nil
}

// ReadString reads a length-prefixed (int32) UTF-8 string.
func (r *Reader) ReadString() (string, error) {
	b, err := r.ReadBytes()
	if err != nil {
		return "", err
	}
	return string(b), nil
}
