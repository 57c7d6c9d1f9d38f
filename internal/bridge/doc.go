// Package bridge is the protocol-translation core of cwkeyd.
//
// A single event loop owns all mutable state. Each iteration polls the
// network for one datagram, parses it into keyer commands or buffered
// text units, checks the tune deadline, transmits at most one queued
// unit when the keyer is accepting input, and decodes at most one
// status byte read back from the keyer. The strict per-iteration order
// is load-bearing: a stop command must flush the queue before any
// further dequeue, and speed or tune commands must reach the keyer
// before status is sampled.
//
// The loop runs in one goroutine started by [Bridge.Start]; the queue,
// the session state, and the peer set are touched by no other
// goroutine, so they carry no locks.
package bridge
