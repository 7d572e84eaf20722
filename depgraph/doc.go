// Package depgraph implements the in-memory dependency graph shared by
// every concurrency-control protocol in this module: a vertex-by-id
// index, labelled directed edges carrying an 8-bit conflict-relation
// bitmask, and the Aggregate operation that merges a remote subgraph
// into a local one.
//
// Graph is generic over its vertex payload (Graph[T Payload]) the way
// the protocol's reference design parameterizes Vertex<T>/Graph<T>;
// in practice only one instantiation exists outside tests —
// Graph[*txn.TxnInfo], built by the scheduler and coordinator
// packages — so the genericity
// buys type safety at this layer without reintroducing the
// runtime-polymorphic payload the design notes flag as unnecessary.
//
// Concurrency: a Graph is guarded by two locks, muIndex (the vertex-id
// index) and muEdges (edge maps on vertices), mirroring the split-lock
// convention used elsewhere for graph-shaped data in this codebase.
// Each method takes a lock only around its own index or edge access;
// no method, Aggregate included, holds either lock across a whole
// multi-step operation.
package depgraph
