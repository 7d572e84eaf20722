package frame_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"

	"github.com/dtxn-go/deptran/coordinator"
	"github.com/dtxn-go/deptran/frame"
	"github.com/dtxn-go/deptran/scheduler"
	"github.com/dtxn-go/deptran/txn"
)

// stubFrame is a minimal Frame used only to exercise Registry.
type stubFrame struct{}

func (stubFrame) CreateCoordinator(txnID uint64, cfg coordinator.Config) (*coordinator.Coordinator, error) {
	return coordinator.NewCoordinator(txnID, cfg)
}
func (stubFrame) CreateScheduler(shardID int32) *scheduler.Scheduler { return nil }
func (stubFrame) CreateDTxn(txnID uint64) *txn.DTxn                  { return txn.NewDTxn(txnID) }
func (stubFrame) CreateCommunicator(string) (frame.Communicator, error) {
	return nil, nil
}
func (stubFrame) CreateRow(schema, rowData any) (frame.Row, error) { return rowData, nil }
func (stubFrame) CreateRPCServices() []*grpc.ServiceDesc           { return nil }
func (stubFrame) CreateExecutor() frame.Executor                  { return stubExecutor{} }

type stubExecutor struct{}

func (stubExecutor) Execute(context.Context, uint64) error { return nil }

func TestRegistry_RegisterAndLookup(t *testing.T) {
	r := frame.NewRegistry()
	require.NoError(t, r.Register(frame.ModeJanus, stubFrame{}, frame.ModeJanusAliases...))

	f, err := r.Lookup("janus")
	require.NoError(t, err)
	assert.NotNil(t, f)

	f, err = r.Lookup("brq")
	require.NoError(t, err)
	assert.NotNil(t, f)
}

func TestRegistry_DuplicateModeIsHardError(t *testing.T) {
	r := frame.NewRegistry()
	require.NoError(t, r.Register("x", stubFrame{}))

	err := r.Register("x", stubFrame{})
	require.Error(t, err)
	assert.ErrorIs(t, err, frame.ErrDuplicateMode)
}

func TestRegistry_DuplicateAliasIsHardError(t *testing.T) {
	r := frame.NewRegistry()
	require.NoError(t, r.Register("x", stubFrame{}, "shared"))

	err := r.Register("y", stubFrame{}, "shared")
	require.Error(t, err)
	assert.ErrorIs(t, err, frame.ErrDuplicateMode)
}

func TestRegistry_LookupUnknownMode(t *testing.T) {
	r := frame.NewRegistry()
	_, err := r.Lookup("nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, frame.ErrUnknownMode)
}
