package janus_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtxn-go/deptran/depgraph"
	"github.com/dtxn-go/deptran/janus"
	"github.com/dtxn-go/deptran/wire"
)

func piece(rootID uint64, partitionID int32, input, output map[int32]wire.Value) wire.SimpleCommand {
	return wire.SimpleCommand{
		ContainerCommand: wire.ContainerCommand{RootID: rootID},
		Input:            input,
		Output:           output,
		PartitionID:      partitionID,
	}
}

func TestHandleConflicts_TwoWritersOfSameRowConflictWW(t *testing.T) {
	js := janus.NewJanusScheduler(1)
	ctx := context.Background()

	_, err := js.DispatchPiece(ctx, piece(10, 0, nil, map[int32]wire.Value{7: {}}))
	require.NoError(t, err)

	_, err = js.DispatchPiece(ctx, piece(20, 0, nil, map[int32]wire.Value{7: {}}))
	require.NoError(t, err)

	rel, ok := js.Graph().Relation(10, 20)
	require.True(t, ok)
	assert.EqualValues(t, depgraph.RelationWW, rel)
}

func TestHandleConflicts_WriteThenReadIsType2(t *testing.T) {
	js := janus.NewJanusScheduler(1)
	ctx := context.Background()

	_, err := js.DispatchPiece(ctx, piece(10, 0, nil, map[int32]wire.Value{7: {}}))
	require.NoError(t, err)

	_, err = js.DispatchPiece(ctx, piece(20, 0, map[int32]wire.Value{7: {}}, nil))
	require.NoError(t, err)

	rel, ok := js.Graph().Relation(10, 20)
	require.True(t, ok)
	assert.True(t, depgraph.IsType2(rel))
}

func TestHandleConflicts_TwoReadersOfSameRowDoNotConflict(t *testing.T) {
	js := janus.NewJanusScheduler(1)
	ctx := context.Background()

	_, err := js.DispatchPiece(ctx, piece(10, 0, map[int32]wire.Value{7: {}}, nil))
	require.NoError(t, err)

	_, err = js.DispatchPiece(ctx, piece(20, 0, map[int32]wire.Value{7: {}}, nil))
	require.NoError(t, err)

	_, ok := js.Graph().Relation(10, 20)
	assert.False(t, ok)
}

func TestHandleConflicts_DisjointRowsDoNotConflict(t *testing.T) {
	js := janus.NewJanusScheduler(1)
	ctx := context.Background()

	_, err := js.DispatchPiece(ctx, piece(10, 0, nil, map[int32]wire.Value{7: {}}))
	require.NoError(t, err)

	_, err = js.DispatchPiece(ctx, piece(20, 0, nil, map[int32]wire.Value{8: {}}))
	require.NoError(t, err)

	_, ok := js.Graph().Relation(10, 20)
	assert.False(t, ok)
}

func TestHandleConflicts_IgnoresSelfTransaction(t *testing.T) {
	js := janus.NewJanusScheduler(1)
	ctx := context.Background()

	_, err := js.DispatchPiece(ctx, piece(10, 0, nil, map[int32]wire.Value{7: {}}))
	require.NoError(t, err)

	// A second piece of the same transaction touching the same row
	// must not be reported as conflicting with itself.
	induced, err := js.DispatchPiece(ctx, piece(10, 0, nil, map[int32]wire.Value{7: {}}))
	require.NoError(t, err)
	assert.Len(t, induced.Vertices(), 1)
}
