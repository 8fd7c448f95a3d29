// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Alejandro Velasco
// Source: github.com/avelasco/lzchunk

package lzchunk

// Binary token format constants, per the fixed variant this module
// implements: 3 bytes big-endian, [length:6][offset:9][next_byte:8].
const (
	TokenWidth = 3 // bytes per token

	lengthBits = 6
	offsetBits = 9 // length+offset use 15 of the first two bytes' 16 bits; the top bit is 0

	// WindowSize is the maximum backward distance a reference may encode
	// (2^offsetBits - 1); offset 0 is reserved for the literal encoding.
	WindowSize = (1 << offsetBits) - 1
	// MaxMatchLength is the largest run a single reference can cover.
	MaxMatchLength = (1 << lengthBits) - 1

	// lengthThreshold is the matcher's early-termination length: once a
	// candidate match strictly exceeds this, scanning stops and that match
	// is emitted, even if a longer one exists further back in the window.
	lengthThreshold = 2
)

// DefaultChunkSize is the chunk size used by the sequential compressor's
// internal file-reading loop and the default for the parallel variants.
const DefaultChunkSize = 65536
