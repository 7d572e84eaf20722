// Package frame defines the protocol registry: the Frame interface a
// concrete protocol (see the janus package) implements to supply its
// Coordinator/Scheduler/DTxn/row-store/RPC-service constructors, plus
// a Registry value protocols register themselves into under a mode id
// and its aliases.
//
// Frame deliberately only specifies the shapes of the out-of-scope
// collaborators (RPC transport, row storage, execution) that the core
// consumes; it does not implement any of them.
package frame
