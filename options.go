// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Alejandro Velasco
// Source: github.com/avelasco/lzchunk

package lzchunk

// ValidateChunkSize rejects a chunk size that the compressor or
// decompressor could never make progress with (spec's InvalidArgument
// kind: "chunk size <= 0").
func ValidateChunkSize(chunkSize int) error {
	if chunkSize <= 0 {
		return ErrInvalidArgument
	}
	return nil
}

// ValidateClusterSize rejects a worker-pool size that leaves no workers to
// dispatch to (spec's InvalidArgument kind: "cluster size < 2").
func ValidateClusterSize(clusterSize int) error {
	if clusterSize < 2 {
		return ErrInvalidArgument
	}
	return nil
}

// AlignChunkSize rounds chunkSize up to the next multiple of TokenWidth, as
// required for the parallel decompressor: chunks must be token-aligned.
func AlignChunkSize(chunkSize int) int {
	if r := chunkSize % TokenWidth; r != 0 {
		chunkSize += TokenWidth - r
	}
	return chunkSize
}
