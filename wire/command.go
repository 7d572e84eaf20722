// File: command.go
// Role: ContainerCommand and SimpleCommand — the wire-level command
// hierarchy dispatched from a Coordinator to a Scheduler.
//
// Wire order is normative and must not be reordered without bumping a
// protocol version: ContainerCommand fields, then (for SimpleCommand)
// input, output, output_size, partition_id, timestamp.
package wire

import "golang.org/x/xerrors"

// maxInputEntries bounds SimpleCommand.Input at encode time: it guards
// against a pathologically large command reaching the wire, per the
// protocol's framing-error classification (not a fatal invariant).
const maxInputEntries = 10000

// ErrCommandTooLarge is returned by SimpleCommand.Encode when Input has
// maxInputEntries or more entries.
var ErrCommandTooLarge = xerrors.New("wire: command input exceeds size guard")

// ContainerCommand identifies a piece within a transaction.
type ContainerCommand struct {
	ID       uint64
	Type     int32
	InnID    int32
	RootID   uint64
	RootType int32
}

// Encode appends c's fields to w in the normative order.
func (c ContainerCommand) Encode(w *Writer) {
	w.WriteUint64(c.ID)
	w.WriteInt32(c.Type)
	w.WriteInt32(c.InnID)
	w.WriteUint64(c.RootID)
	w.WriteInt32(c.RootType)
}

// DecodeContainerCommand reads a ContainerCommand from r.
func DecodeContainerCommand(r *Reader) (ContainerCommand, error) {
	var c ContainerCommand
	var err error
	if c.ID, err = r.ReadUint64(); err != nil {
		return ContainerCommand{}, xerrors.Errorf("wire: container.id: %w", err)
	}
	if c.Type, err = r.ReadInt32(); err != nil {
		return ContainerCommand{}, xerrors.Errorf("wire: container.type: %w", err)
	}
	if c.InnID, err = r.ReadInt32(); err != nil {
		return ContainerCommand{}, xerrors.Errorf("wire: container.inn_id: %w", err)
	}
	if c.RootID, err = r.ReadUint64(); err != nil {
		return ContainerCommand{}, xerrors.Errorf("wire: container.root_id: %w", err)
	}
	if c.RootType, err = r.ReadInt32(); err != nil {
		return ContainerCommand{}, xerrors.Errorf("wire: container.root_type: %w", err)
	}
	return c, nil
}

// SimpleCommand is a ContainerCommand plus the piece's input/output
// payload and scheduling metadata.
type SimpleCommand struct {
	ContainerCommand
	Input       map[int32]Value
	Output      map[int32]Value
	OutputSize  int32
	PartitionID int32
	Timestamp   int64
}

// Encode appends c's fields to w in the normative order. It returns
// ErrCommandTooLarge (without writing anything) if len(c.Input) would
// violate the protocol's size guard.
func (c SimpleCommand) Encode(w *Writer) error {
	if len(c.Input) >= maxInputEntries {
		return xerrors.Errorf("wire: input has %d entries: %w", len(c.Input), ErrCommandTooLarge)
	}
	c.ContainerCommand.Encode(w)
	encodeValueMap(w, c.Input)
	encodeValueMap(w, c.Output)
	w.WriteInt32(c.OutputSize)
	w.WriteInt32(c.PartitionID)
	w.WriteInt64(c.Timestamp)
	return nil
}

// DecodeSimpleCommand reads a SimpleCommand from r.
func DecodeSimpleCommand(r *Reader) (SimpleCommand, error) {
	var c SimpleCommand
	cc, err := DecodeContainerCommand(r)
	if err != nil {
		return SimpleCommand{}, err
	}
	c.ContainerCommand = cc

	if c.Input, err = decodeValueMap(r); err != nil {
		return SimpleCommand{}, xerrors.Errorf("wire: simple.input: %w", err)
	}
	if c.Output, err = decodeValueMap(r); err != nil {
		return SimpleCommand{}, xerrors.Errorf("wire: simple.output: %w", err)
	}
	if c.OutputSize, err = r.ReadInt32(); err != nil {
		return SimpleCommand{}, xerrors.Errorf("wire: simple.output_size: %w", err)
	}
	if c.PartitionID, err = r.ReadInt32(); err != nil {
		return SimpleCommand{}, xerrors.Errorf("wire: simple.partition_id: %w", err)
	}
	if c.Timestamp, err = r.ReadInt64(); err != nil {
		return SimpleCommand{}, xerrors.Errorf("wire: simple.timestamp: %w", err)
	}
	return c, nil
}
