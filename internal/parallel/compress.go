// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Alejandro Velasco
// Source: github.com/avelasco/lzchunk

// Package parallel implements the chunk-parallel compressor and
// decompressor adapters of spec §4.6 and §4.7, built on top of
// internal/coordinator's root/worker framework. Grounded on
// original_source/compresorp.py and descompresorp.py.
package parallel

import (
	"context"
	"math"
	"os"

	"github.com/avelasco/lzchunk"
	"github.com/avelasco/lzchunk/internal/coordinator"
)

// Options configures both the parallel compressor and decompressor.
type Options struct {
	// ChunkSize is the uncompressed (compressor) or compressed
	// (decompressor) chunk size. Must be > 0.
	ChunkSize int
	// Workers is the number of worker goroutines (ranks 1..Workers);
	// must be >= 1 (cluster size = Workers+1 >= 2, per spec §6).
	Workers int
	// Logger receives diagnostic output; nil is treated as a no-op logger.
	Logger *lzchunk.Logger
	// SharedWindow, when true, makes the decompressor hand the previous
	// chunk's window tail to the next chunk's worker directly in memory
	// instead of re-reading it from the output file (spec §5's "Optional
	// shared memory" note). Ignored by the compressor.
	SharedWindow bool
}

func (o Options) validate() error {
	if err := lzchunk.ValidateChunkSize(o.ChunkSize); err != nil {
		return err
	}
	return lzchunk.ValidateClusterSize(o.Workers + 1)
}

func totalChunks(size int64, chunkSize int) int {
	if size == 0 {
		return 0
	}
	return int(math.Ceil(float64(size) / float64(chunkSize)))
}

// Compress splits inFile into Options.ChunkSize chunks and compresses them
// across Options.Workers goroutine workers, producing output
// byte-identical to lzchunk.CompressFile given the same chunk size. No match
// extends past the end of its chunk, so the output for different chunk
// sizes, and the output of the whole-buffer lzchunk.Compress, can differ.
func Compress(ctx context.Context, inFile, outFile string, opts Options) error {
	if err := opts.validate(); err != nil {
		return err
	}

	info, err := os.Stat(inFile)
	if err != nil {
		return &lzchunk.IOError{Op: "stat", Path: inFile, Err: err}
	}

	chunks := totalChunks(info.Size(), opts.ChunkSize)

	process := func(chunkNumber int) ([]byte, error) {
		return compressChunk(inFile, chunkNumber, opts.ChunkSize)
	}

	return coordinator.Run(ctx, chunks, opts.Workers, outFile, process, nil, opts.Logger)
}

// compressChunk reads chunk n's primer (up to WindowSize bytes ending
// exactly at the chunk's start, per spec §4.6) plus its own chunkSize
// bytes, and compresses the concatenation starting right after the
// primer. Because this sees exactly the window the sequential compressor
// would see at the same absolute position, the result is byte-identical.
func compressChunk(inFile string, chunkNumber, chunkSize int) ([]byte, error) {
	f, err := os.Open(inFile)
	if err != nil {
		return nil, &lzchunk.IOError{Op: "open", Path: inFile, Err: err}
	}
	defer f.Close()

	chunkStart := int64(chunkNumber) * int64(chunkSize)
	primerStart := chunkStart - int64(lzchunk.WindowSize)
	if primerStart < 0 {
		primerStart = 0
	}

	if _, err := f.Seek(primerStart, 0); err != nil {
		return nil, &lzchunk.IOError{Op: "seek", Path: inFile, Err: err}
	}

	primerLen := int(chunkStart - primerStart)
	buf := make([]byte, primerLen+chunkSize)

	n, err := readFull(f, buf)
	if err != nil {
		return nil, &lzchunk.IOError{Op: "read", Path: inFile, Err: err}
	}

	return lzchunk.CompressChunk(buf[:n], primerLen)
}

// readFull is io.ReadFull without treating a short final read as an error:
// a chunk's trailing bytes may legitimately be shorter than chunkSize.
func readFull(f *os.File, buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := f.Read(buf[total:])
		total += n
		if err != nil {
			if total > 0 {
				return total, nil
			}
			return total, err
		}
		if n == 0 {
			break
		}
	}
	return total, nil
}
