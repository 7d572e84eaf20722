// Package wire implements the binary encoding of commands and primitive
// values used across the dependency-graph coordination protocol.
//
// Encoding is fixed-width, big-endian, and bit-exact: two replicas that
// encode the same logical command produce identical bytes, and decoding
// a truncated or malformed stream always fails with a wrapped error
// rather than panicking. Every multi-byte integer is written with
// encoding/binary.BigEndian; there is no varint or compact framing here,
// since the protocol's correctness depends on replicas agreeing on
// commit order from a graph built out of these bytes, not on wire size.
package wire
