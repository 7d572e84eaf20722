// Package scheduler owns one shard's dependency graph: it turns
// dispatched pieces into graph vertices and edges, aggregates subgraphs
// received from coordinators, and executes each strongly-connected
// component in its deterministic commit order once every member has a
// commit decision.
//
// Conflict detection itself is a protocol-specific extension point
// (HandleConflicts); Scheduler supplies everything else — the shard
// mutex, the work queue, aggregation, and SCC-driven execution — so a
// concrete protocol only has to say which pieces conflict.
package scheduler
