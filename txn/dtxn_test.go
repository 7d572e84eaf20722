package txn_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dtxn-go/deptran/txn"
	"github.com/dtxn-go/deptran/wire"
)

func TestNewDTxn_Defaults(t *testing.T) {
	d := txn.NewDTxn(5)
	assert.Equal(t, uint64(5), d.TxnID())
	assert.Equal(t, txn.Undecided, d.Status())
	assert.Empty(t, d.Results())
}

func TestDTxn_RecordAndReadResult(t *testing.T) {
	d := txn.NewDTxn(1)
	d.RecordResult(0, wire.Value{Kind: wire.KindInt64, Int64: 7})

	v, ok := d.Result(0)
	assert.True(t, ok)
	assert.Equal(t, int64(7), v.Int64)

	_, ok = d.Result(1)
	assert.False(t, ok)
}

func TestDTxn_RecordResult_OverwritesOnRetry(t *testing.T) {
	d := txn.NewDTxn(1)
	d.RecordResult(0, wire.Value{Kind: wire.KindInt64, Int64: 1})
	d.RecordResult(0, wire.Value{Kind: wire.KindInt64, Int64: 2})

	v, ok := d.Result(0)
	assert.True(t, ok)
	assert.Equal(t, int64(2), v.Int64)
}

func TestDTxn_SetStatus_NeverRegresses(t *testing.T) {
	d := txn.NewDTxn(1)
	d.SetStatus(txn.Executed)
	d.SetStatus(txn.Decided)
	assert.Equal(t, txn.Executed, d.Status())
}

func TestDTxn_Results_IsSnapshot(t *testing.T) {
	d := txn.NewDTxn(1)
	d.RecordResult(0, wire.Value{Kind: wire.KindInt64, Int64: 1})

	snap := d.Results()
	d.RecordResult(1, wire.Value{Kind: wire.KindInt64, Int64: 2})

	assert.Len(t, snap, 1, "a snapshot taken before the second record must not observe it")
	assert.Len(t, d.Results(), 2)
}
