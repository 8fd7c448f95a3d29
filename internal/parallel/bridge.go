// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Alejandro Velasco
// Source: github.com/avelasco/lzchunk

package parallel

import "sync"

// resultBridge lets Decompress's process/preWrite adapter pass a
// *localResult (decoded bytes plus its unresolved-reference list) through
// coordinator.Run's []byte-only ChunkProcessor/PreWriteCallback contract.
// Each chunk is processed by exactly one worker and resolved at most once
// by that same worker, so a plain mutex-guarded map is sufficient: there is
// never more than one writer or reader per key.
type resultBridge struct {
	mu      sync.Mutex
	results map[int]*localResult
}

func newResultBridge() *resultBridge {
	return &resultBridge{results: make(map[int]*localResult)}
}

func (b *resultBridge) store(chunkNumber int, res *localResult) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.results[chunkNumber] = res
}

func (b *resultBridge) take(chunkNumber int) *localResult {
	b.mu.Lock()
	defer b.mu.Unlock()
	res := b.results[chunkNumber]
	delete(b.results, chunkNumber)
	return res
}

// sharedWindow is the optional in-memory handoff of spec §5's "shared
// memory" note: instead of each chunk's resolution phase re-reading the
// previous chunk's trailing WindowSize bytes from the output file, the
// chunk that just finished posts its own tail directly, and the next
// chunk's resolution phase blocks on it. Grounded on
// original_source/descompresorp.py's MPI shared-memory window, adapted to a
// per-chunk channel handoff since Go has no analogous shared-memory segment
// primitive.
type sharedWindow struct {
	slots []chan []byte
}

func newSharedWindow(totalChunks int) *sharedWindow {
	sw := &sharedWindow{slots: make([]chan []byte, totalChunks)}
	for i := range sw.slots {
		sw.slots[i] = make(chan []byte, 1)
	}
	return sw
}

// get blocks until chunkNumber's tail has been posted and returns it.
// chunkNumber == -1 (there is no chunk before chunk 0) returns nil
// immediately; callers never actually invoke resolution for chunk 0, but
// this keeps the method total.
func (sw *sharedWindow) get(chunkNumber int) []byte {
	if chunkNumber < 0 || chunkNumber >= len(sw.slots) {
		return nil
	}
	return <-sw.slots[chunkNumber]
}

func (sw *sharedWindow) post(chunkNumber int, tail []byte) {
	if chunkNumber < 0 || chunkNumber >= len(sw.slots) {
		return
	}
	sw.slots[chunkNumber] <- tail
}
