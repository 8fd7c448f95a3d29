// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Alejandro Velasco
// Source: github.com/avelasco/lzchunk

// Package coordinator implements the root/worker chunk-dispatch framework
// of spec §4.5, grounded on original_source/process.py's Root and Worker
// classes. There, ranks are separate OS processes coordinated over an MPI
// communicator; spec §1 explicitly scopes "the concrete transport
// primitives of the message-passing substrate" out, specifying only the
// message contract (package message). This package keeps that contract
// and the root/worker state machines unchanged, but realizes the
// transport as goroutines over Go channels: each rank still behaves as a
// single-threaded, cooperative state machine that reacts to one message
// at a time, but "poll the inbox, sleep, repeat" becomes a blocking
// channel receive, which is the direct idiomatic translation once real
// OS-process scheduling is no longer the constraint.
package coordinator

import (
	"context"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/avelasco/lzchunk"
	"github.com/avelasco/lzchunk/internal/message"
)

// ChunkProcessor processes one chunk and returns its result bytes. It is
// supplied by the caller (the parallel compressor or decompressor) and is
// invoked at most once per chunk, by whichever worker is assigned it.
type ChunkProcessor func(chunkNumber int) ([]byte, error)

// PreWriteCallback runs on the assigned worker immediately before it
// writes chunkNumber's result to the output file, i.e. exactly when every
// earlier chunk is guaranteed already written. The parallel decompressor
// uses this to resolve cross-chunk back-references (spec §4.7); the
// parallel compressor passes nil.
//
// Modeled as a parameter at run-construction time rather than a mutable
// field installed after the fact (spec §9 REDESIGN FLAGS): the original's
// Worker.before_write mutates a function field post-construction, which a
// systems-language port should avoid in favor of passing both the chunk
// processor and the resolution step together, up front.
type PreWriteCallback func(chunkNumber int, result []byte) ([]byte, error)

// Run dispatches totalChunks numbered chunks across numWorkers worker
// goroutines (ranks 1..numWorkers; one more goroutine plays root, rank 0,
// while the caller waits for the group) and writes each chunk's result to outFile in strictly ascending
// chunk-number order, per spec §4.5's ordering invariant. It blocks until
// every chunk has been written or an error occurs.
func Run(ctx context.Context, totalChunks, numWorkers int, outFile string, process ChunkProcessor, preWrite PreWriteCallback, logger *lzchunk.Logger) error {
	if numWorkers < 1 {
		return lzchunk.ErrInvalidArgument
	}
	if logger == nil {
		logger = lzchunk.NopLogger()
	}

	if err := truncateFile(outFile); err != nil {
		return err
	}

	// Rank 0 is root and has no inbox of its own workload messages beyond
	// WorkerDone broadcasts; ranks 1..numWorkers are workers.
	inboxes := make([]chan message.Message, numWorkers+1)
	for i := range inboxes {
		inboxes[i] = make(chan message.Message, 2*totalChunks+numWorkers+4)
	}

	broadcast := func(from int, msg message.Message) {
		for rank, inbox := range inboxes {
			if rank == from {
				continue
			}
			inbox <- msg
		}
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return runRoot(gctx, totalChunks, numWorkers, inboxes[0], inboxes, broadcast, logger)
	})

	for rank := 1; rank <= numWorkers; rank++ {
		rank := rank
		g.Go(func() error {
			return runWorker(gctx, rank, outFile, inboxes[rank], broadcast, process, preWrite, logger)
		})
	}

	return g.Wait()
}

func truncateFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return &lzchunk.IOError{Op: "create", Path: path, Err: err}
	}
	return f.Close()
}

// runRoot implements spec §4.5's root loop: dispatch while free workers and
// chunks remain, drain WorkerDone messages back into the free-worker queue,
// and finalize once every chunk has been written.
func runRoot(ctx context.Context, totalChunks, numWorkers int, inbox <-chan message.Message, inboxes []chan message.Message, broadcast func(from int, msg message.Message), logger *lzchunk.Logger) error {
	free := make([]int, 0, numWorkers)
	for r := 1; r <= numWorkers; r++ {
		free = append(free, r)
	}

	nextChunk := 0

	dispatch := func() {
		for len(free) > 0 && nextChunk < totalChunks {
			worker := free[0]
			free = free[1:]
			logger.Debugf("dispatching chunk %d to worker %d", nextChunk, worker)
			inboxes[worker] <- message.Message{Kind: message.ChunkAssignment, ChunkNumber: nextChunk, WorkerRank: worker}
			nextChunk++
		}
	}

	for {
		dispatch()

		if len(free) == numWorkers && nextChunk == totalChunks {
			logger.Debugf("all %d chunks written, broadcasting finalize", totalChunks)
			broadcast(0, message.Message{Kind: message.Finalize})
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg := <-inbox:
			if msg.Kind == message.WorkerDone {
				free = append(free, msg.WorkerRank)
				logger.Debugf("worker %d is free (%d free of %d)", msg.WorkerRank, len(free), numWorkers)
			}
		}
	}
}

type workload struct {
	chunkNumber int
	result      []byte
}

// runWorker implements spec §4.5's worker loop: drain the inbox one
// message at a time, process an assignment into a pending workload, track
// current_chunk via WorkerDone broadcasts from other ranks, and write the
// pending workload (running the pre-write callback first) the instant its
// turn arrives.
func runWorker(ctx context.Context, rank int, outFile string, inbox <-chan message.Message, broadcast func(from int, msg message.Message), process ChunkProcessor, preWrite PreWriteCallback, logger *lzchunk.Logger) error {
	currentChunk := 0
	var pending *workload

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg := <-inbox:
			switch msg.Kind {
			case message.ChunkAssignment:
				logger.Debugf("received assignment for chunk %d", msg.ChunkNumber)
				result, err := process(msg.ChunkNumber)
				if err != nil {
					return err
				}
				pending = &workload{chunkNumber: msg.ChunkNumber, result: result}

			case message.WorkerDone:
				currentChunk++
				logger.Debugf("observed worker %d done, current chunk now %d", msg.WorkerRank, currentChunk)

			case message.Finalize:
				logger.Debugf("finalize received, exiting")
				return nil
			}
		}

		if pending != nil && pending.chunkNumber == currentChunk {
			result := pending.result
			if preWrite != nil {
				resolved, err := preWrite(pending.chunkNumber, result)
				if err != nil {
					return err
				}
				result = resolved
			}

			if err := appendToFile(outFile, result); err != nil {
				return err
			}

			logger.Debugf("wrote chunk %d (%d bytes)", pending.chunkNumber, len(result))
			pending = nil
			broadcast(rank, message.Message{Kind: message.WorkerDone, WorkerRank: rank})
			currentChunk++
		}
	}
}

func appendToFile(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return &lzchunk.IOError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return &lzchunk.IOError{Op: "write", Path: path, Err: err}
	}

	return nil
}
