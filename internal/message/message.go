// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Alejandro Velasco
// Source: github.com/avelasco/lzchunk

// Package message defines the three message kinds exchanged between the
// root and worker goroutines of the chunk coordinator, grounded on
// original_source/message.py's three dataclasses (ChunkAssignment,
// WorkerDone, Finalize). There only the message *contract* is specified
// (spec §1 explicitly scopes the transport primitives out); this package
// is that contract, carried over a Go channel instead of an MPI
// communicator.
package message

// Kind discriminates the three message types.
type Kind int

const (
	// ChunkAssignment is sent root -> one worker: "process this chunk."
	ChunkAssignment Kind = iota
	// WorkerDone is broadcast by a worker to all ranks right after it
	// writes its chunk to the output file.
	WorkerDone
	// Finalize is broadcast root -> all: "every chunk has been written,
	// exit now."
	Finalize
)

// Message is a single envelope carrying one of the three kinds. Only the
// field relevant to Kind is meaningful:
//
//   - ChunkAssignment: ChunkNumber
//   - WorkerDone:      WorkerRank
//   - Finalize:        neither field is used
type Message struct {
	Kind        Kind
	ChunkNumber int
	WorkerRank  int
}
