// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Alejandro Velasco
// Source: github.com/avelasco/lzchunk

// Command lzpcompress compresses a file with the lzchunk token codec,
// sequentially or across a goroutine worker pool. Grounded on
// original_source/compresor.py's and compresorp.py's argparse-driven CLI.
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
		fmt.Fprintln(os.Stderr, "lzpcompress:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("lzpcompress", flag.ContinueOnError)
	outfile := fs.String("outfile", "comprimido.elmejorprofesor", "compressed output path")
	fs.StringVar(outfile, "o", "comprimido.elmejorprofesor", "compressed output path (shorthand)")
	chunkSize := fs.Int("chunk-size", lzchunk.DefaultChunkSize, "bytes of input per chunk")
	fs.IntVar(chunkSize, "c", lzchunk.DefaultChunkSize, "bytes of input per chunk (shorthand)")
	procs := fs.Int("parallel", 1, "process count; 0 or 1 = sequential, N>=2 = parallel with N-1 workers")
	fs.IntVar(procs, "p", 1, "process count (shorthand)")
	verbose := fs.Bool("v", false, "verbose logging")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: lzpcompress [flags] input_file")
	}
	input := fs.Arg(0)

	logger := lzchunk.NewLogger(os.Stderr, "lzpcompress", *verbose)

	if *procs <= 1 {
		logger.Debugf("compressing %s sequentially, chunk size %d", input, *chunkSize)
		return lzchunk.CompressFile(input, *outfile, *chunkSize)
	}

	logger.Debugf("compressing %s with %d workers, chunk size %d", input, *procs-1, *chunkSize)
	return parallel.Compress(context.Background(), input, *outfile, parallel.Options{
		ChunkSize: *chunkSize,
		Workers:   *procs - 1,
		Logger:    logger,
	})
}
