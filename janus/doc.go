// Package janus is the one concrete protocol that exercises every core
// feature: a Janus-style dependency-graph commit protocol, wired
// together from the scheduler/coordinator/frame/txn packages.
//
// JanusScheduler supplies the conflict-detection rule the generic
// scheduler.Scheduler defers to: two pieces touching the same row
// conflict WW if both write, and with the weaker type-2 (RW/WR)
// relation if exactly one of them writes.
package janus
