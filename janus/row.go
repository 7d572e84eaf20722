// File: row.go
// Role: Row/RowFactory — the minimal opaque-row boundary frame.Frame
// requires, satisfied in-memory since durability/recovery is out of
// scope for this module.
package janus

import (
	"sync"

	"golang.org/x/xerrors"

	"github.com/dtxn-go/deptran/frame"
)

// Row is an in-memory row: whatever schema/data the caller handed
// CreateRow, held opaque.
type Row struct {
	Schema any
	Data   any
}

// ErrRowFactoryClosed is returned by CreateRow once the factory has
// been closed.
var ErrRowFactoryClosed = xerrors.New("janus: row factory is closed")

// RowFactory is a slice-backed, in-memory frame.RowFactory.
type RowFactory struct {
	mu     sync.Mutex
	rows   []*Row
	closed bool
}

// NewRowFactory returns an empty RowFactory.
func NewRowFactory() *RowFactory {
	return &RowFactory{}
}

// CreateRow stores and returns a new Row wrapping schema/rowData.
func (f *RowFactory) CreateRow(schema, rowData any) (frame.Row, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil, ErrRowFactoryClosed
	}
	row := &Row{Schema: schema, Data: rowData}
	f.rows = append(f.rows, row)
	return row, nil
}

// Close marks the factory closed; further CreateRow calls fail.
func (f *RowFactory) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
}

// Len reports how many rows have been created, for tests.
func (f *RowFactory) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rows)
}
