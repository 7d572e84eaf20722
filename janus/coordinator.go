// File: coordinator.go
// Role: JanusCoord — the protocol's coordinator. No method overrides
// its embedded coordinator.Coordinator; the Janus-specific behavior
// lives entirely in JanusScheduler's conflict rule, not here.
package janus

import "github.com/dtxn-go/deptran/coordinator"

// JanusCoord is a coordinator.Coordinator bound to the Janus protocol.
// It adds no fields or methods beyond what it embeds;
// JanusFrame.CreateCoordinator constructs one and returns its embedded
// *coordinator.Coordinator.
type JanusCoord struct {
	*coordinator.Coordinator
}

// NewJanusCoord wraps a freshly constructed coordinator.Coordinator.
func NewJanusCoord(txnID uint64, cfg coordinator.Config) (*JanusCoord, error) {
	c, err := coordinator.NewCoordinator(txnID, cfg)
	if err != nil {
		return nil, err
	}
	return &JanusCoord{Coordinator: c}, nil
}
