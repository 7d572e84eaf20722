// File: frame.go
// Role: JanusFrame — wires JanusScheduler/JanusCoord/RowFactory
// together behind frame.Frame. Registration is the caller's job
// (registry.Register(frame.ModeJanus, NewJanusFrame(), ...)); this
// package never touches a package-level registry itself.
package janus

import (
	"context"

	"golang.org/x/xerrors"
	"google.golang.org/grpc"

	"github.com/dtxn-go/deptran/coordinator"
	"github.com/dtxn-go/deptran/frame"
	"github.com/dtxn-go/deptran/scheduler"
	"github.com/dtxn-go/deptran/txn"
)

// ErrNotImplemented is returned by the collaborators this module
// deliberately does not implement (RPC transport, execution) — the
// boundary shapes exist so a caller can see where those plug in.
var ErrNotImplemented = xerrors.New("janus: not implemented in this module")

// JanusFrame implements frame.Frame for the Janus protocol.
type JanusFrame struct {
	rowFactory *RowFactory
}

// NewJanusFrame returns a JanusFrame with a fresh in-memory row
// factory shared across every row it creates.
func NewJanusFrame() *JanusFrame {
	return &JanusFrame{rowFactory: NewRowFactory()}
}

// CreateCoordinator builds a JanusCoord for txnID and returns its
// embedded *coordinator.Coordinator, the type frame.Frame requires.
func (f *JanusFrame) CreateCoordinator(txnID uint64, cfg coordinator.Config) (*coordinator.Coordinator, error) {
	c, err := NewJanusCoord(txnID, cfg)
	if err != nil {
		return nil, err
	}
	return c.Coordinator, nil
}

// CreateScheduler returns a JanusScheduler's embedded Scheduler for
// shardID, wired with the Janus WW/type-2 conflict rule.
func (f *JanusFrame) CreateScheduler(shardID int32) *scheduler.Scheduler {
	return NewJanusScheduler(shardID).Scheduler
}

// CreateDTxn returns a fresh execution shell for txnID.
func (f *JanusFrame) CreateDTxn(txnID uint64) *txn.DTxn {
	return txn.NewDTxn(txnID)
}

// CreateCommunicator is out of scope: RPC transport is not implemented
// by this module.
func (f *JanusFrame) CreateCommunicator(shardAddr string) (frame.Communicator, error) {
	return nil, xerrors.Errorf("janus: communicator for %q: %w", shardAddr, ErrNotImplemented)
}

// CreateRow delegates to the frame's shared in-memory RowFactory.
func (f *JanusFrame) CreateRow(schema, rowData any) (frame.Row, error) {
	return f.rowFactory.CreateRow(schema, rowData)
}

// CreateRPCServices returns no descriptors: no RPC server is
// implemented by this module.
func (f *JanusFrame) CreateRPCServices() []*grpc.ServiceDesc {
	return nil
}

// CreateExecutor returns a boundary-shape Executor that always
// reports ErrNotImplemented: row-store/MVCC execution is out of
// scope for this module.
func (f *JanusFrame) CreateExecutor() frame.Executor {
	return janusExecutor{}
}

type janusExecutor struct{}

func (janusExecutor) Execute(context.Context, uint64) error {
	return ErrNotImplemented
}
