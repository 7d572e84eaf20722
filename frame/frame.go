// File: frame.go
// Role: Frame — the interface a concrete protocol implements to supply
// its Coordinator/Scheduler/DTxn and its out-of-scope collaborators
// (RPC transport, row storage, execution).
package frame

import (
	"context"

	"google.golang.org/grpc"

	"github.com/dtxn-go/deptran/coordinator"
	"github.com/dtxn-go/deptran/scheduler"
	"github.com/dtxn-go/deptran/txn"
)

// Communicator is the boundary shape the out-of-scope RPC transport is
// expected to satisfy: a gRPC client connection. No implementation
// lives in this module; CreateCommunicator's signature exists so a
// Frame can describe how it would obtain one.
type Communicator interface {
	grpc.ClientConnInterface
}

// Row is an opaque row handle; the core never inspects its contents,
// only passes it between the row factory and the pieces that touch it.
type Row interface{}

// RowFactory is the only point the core touches storage: schema and
// rowData are opaque to everything except the concrete factory
// implementation (see janus.RowFactory for an in-memory one).
type RowFactory interface {
	CreateRow(schema, rowData any) (Row, error)
}

// Executor runs a transaction's pieces to completion once its SCC has
// been linearized; row-store/MVCC/execution engines are out of scope
// for this module, so Executor is a boundary shape only.
type Executor interface {
	Execute(ctx context.Context, txnID uint64) error
}

// Frame is what a concrete protocol implements to plug into the
// Coordinator/Scheduler/DTxn machinery: construct the protocol's own
// Coordinator/Scheduler/DTxn, plus whatever the out-of-scope
// RPC/storage/execution layer needs to wire itself in.
type Frame interface {
	// CreateCoordinator returns a Coordinator for txnID, configured for
	// this protocol's participants.
	CreateCoordinator(txnID uint64, cfg coordinator.Config) (*coordinator.Coordinator, error)
	// CreateScheduler returns a Scheduler for shardID, wired with this
	// protocol's ConflictDetector.
	CreateScheduler(shardID int32) *scheduler.Scheduler
	// CreateDTxn returns a fresh execution shell for txnID.
	CreateDTxn(txnID uint64) *txn.DTxn
	// CreateCommunicator returns the Communicator this protocol would
	// use to reach a given shard address; no implementation is
	// provided, since RPC transport is out of scope.
	CreateCommunicator(shardAddr string) (Communicator, error)
	// CreateRow delegates to this protocol's RowFactory.
	CreateRow(schema, rowData any) (Row, error)
	// CreateRPCServices returns the gRPC service descriptors this
	// protocol's scheduler/coordinator RPC handlers would register; no
	// server implementation is provided here.
	CreateRPCServices() []*grpc.ServiceDesc
	// CreateExecutor returns the Executor this protocol uses to run a
	// transaction's pieces; out of scope, boundary shape only.
	CreateExecutor() Executor
}
