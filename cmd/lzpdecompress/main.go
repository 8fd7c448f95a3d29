// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Alejandro Velasco
// Source: github.com/avelasco/lzchunk

// Command lzpdecompress reverses lzpcompress's token stream, sequentially
// or across a goroutine worker pool. Grounded on
// original_source/descompresor.py's and descompresorp.py's argparse CLI.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/avelasco/lzchunk"
	"github.com/avelasco/lzchunk/internal/parallel"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "lzpdecompress:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("lzpdecompress", flag.ContinueOnError)
	outfile := fs.String("outfile", "descomprimido-elmejorprofesor.txt", "decompressed output path")
	fs.StringVar(outfile, "o", "descomprimido-elmejorprofesor.txt", "decompressed output path (shorthand)")
	chunkSize := fs.Int("chunk-size", lzchunk.DefaultChunkSize, "bytes of compressed input per chunk")
	fs.IntVar(chunkSize, "c", lzchunk.DefaultChunkSize, "bytes of compressed input per chunk (shorthand)")
	procs := fs.Int("parallel", 1, "process count; 0 or 1 = sequential, N>=2 = parallel with N-1 workers")
	fs.IntVar(procs, "p", 1, "process count (shorthand)")
	shared := fs.Bool("shared-window", false, "hand each chunk's trailing window to the next in memory instead of re-reading the output file (parallel only)")
	verbose := fs.Bool("v", false, "verbose logging")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: lzpdecompress [flags] input_file")
	}
	input := fs.Arg(0)

	logger := lzchunk.NewLogger(os.Stderr, "lzpdecompress", *verbose)

	if *procs <= 1 {
		logger.Debugf("decompressing %s sequentially, chunk size %d", input, *chunkSize)
		return lzchunk.DecompressFile(input, *outfile, *chunkSize)
	}

	aligned := lzchunk.AlignChunkSize(*chunkSize)
	logger.Debugf("decompressing %s with %d workers, chunk size %d (aligned from %d)", input, *procs-1, aligned, *chunkSize)
	return parallel.Decompress(context.Background(), input, *outfile, parallel.Options{
		ChunkSize:    aligned,
		Workers:      *procs - 1,
		Logger:       logger,
		SharedWindow: *shared,
	})
}
