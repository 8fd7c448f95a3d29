// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Alejandro Velasco
// Source: github.com/avelasco/lzchunk

/*
Package lzchunk implements an LZ77 sliding-window compressor and decompressor
with a fixed-width 3-byte binary token format, plus a chunk-parallel variant
of both directions (package parallel) that splits a file into fixed-size
chunks and drives them through a pool of goroutine workers while producing
output byte-identical to the sequential path.

# Token format

Each token is 3 bytes, big-endian: [length:6][offset:9][next_byte:8].
offset is measured backward from the current position (1 = most recent
byte); offset ∈ [1, 511]. length ∈ [0, 63]. A token with length == 0 and
offset == 0 encodes a bare literal byte (next_byte). Window size is 511,
max match length is 63.

# Sequential use

	compressed, err := lzchunk.Compress(data)
	original, err := lzchunk.Decompress(compressed)

# Parallel use

See package github.com/avelasco/lzchunk/internal/parallel for the
chunk-coordinator that drives the same codec across a pool of workers.
*/
package lzchunk
