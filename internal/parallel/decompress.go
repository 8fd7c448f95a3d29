// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Alejandro Velasco
// Source: github.com/avelasco/lzchunk

package parallel

import (
	"context"
	"os"
	"sort"

	"github.com/avelasco/lzchunk"
	"github.com/avelasco/lzchunk/internal/coordinator"
)

// Decompress splits inFile's token stream into Options.ChunkSize-aligned
// chunks (rounded up to a multiple of lzchunk.TokenWidth) and reconstructs
// outFile using Options.Workers goroutine workers, per spec §4.7's two-phase
// scheme: each worker locally decodes its chunk with placeholders standing
// in for any back-reference it cannot yet resolve, then resolves those
// placeholders against the real output immediately before writing, at which
// point every earlier chunk is guaranteed already on disk.
func Decompress(ctx context.Context, inFile, outFile string, opts Options) error {
	if err := opts.validate(); err != nil {
		return err
	}

	chunkSize := lzchunk.AlignChunkSize(opts.ChunkSize)

	info, err := os.Stat(inFile)
	if err != nil {
		return &lzchunk.IOError{Op: "stat", Path: inFile, Err: err}
	}

	chunks := totalChunks(info.Size(), chunkSize)

	var sw *sharedWindow
	if opts.SharedWindow {
		sw = newSharedWindow(chunks)
	}

	// coordinator.PreWriteCallback deals in plain []byte results; bridge it
	// to our richer *localResult via a small adapter stored out-of-band,
	// keyed by chunk number (each chunk is processed by exactly one worker
	// and resolved at most once; the map itself is shared by all workers,
	// so resultBridge guards it with a mutex).
	bridge := newResultBridge()

	process := func(chunkNumber int) ([]byte, error) {
		res, err := localDecode(inFile, chunkNumber, chunkSize)
		if err != nil {
			return nil, err
		}
		bridge.store(chunkNumber, res)
		return res.decoded, nil
	}

	preWrite := func(chunkNumber int, _ []byte) ([]byte, error) {
		res := bridge.take(chunkNumber)
		out, tail, err := resolveChunk(chunkNumber, res, outFile, sw)
		if err != nil {
			return nil, err
		}
		if sw != nil {
			sw.post(chunkNumber, tail)
		}
		return out, nil
	}

	return coordinator.Run(ctx, chunks, opts.Workers, outFile, process, preWrite, opts.Logger)
}

// unresolvedRef records a back-reference a chunk's local decode could not
// satisfy from its own already-decoded bytes: the filler bytes written at
// [position, position+token.Length) within the local buffer are placeholders
// until resolveChunk patches them in.
type unresolvedRef struct {
	position int
	token    lzchunk.Token
}

// localResult is the outcome of decoding one chunk's tokens against an
// empty window: decoded bytes with placeholder filler standing in for any
// reference that couldn't be resolved purely from within the chunk, plus
// the list of those references, in ascending position order.
type localResult struct {
	decoded    []byte
	unresolved []unresolvedRef
}

// placeholderByte fills the as-yet-unknown bytes of an unresolved reference.
// Any fixed value works since every placeholder byte is unconditionally
// overwritten in resolveChunk before the chunk is written out.
const placeholderByte = 0xFF

// localDecode performs spec §4.7 phase 1 for one chunk: it decodes the
// chunk's tokens starting from an empty local buffer (rather than the real
// cross-chunk window, which may not exist yet on another worker), recording
// a placeholder for any reference whose source range is not entirely local
// or overlaps a still-unresolved region.
func localDecode(inFile string, chunkNumber, chunkSize int) (*localResult, error) {
	f, err := os.Open(inFile)
	if err != nil {
		return nil, &lzchunk.IOError{Op: "open", Path: inFile, Err: err}
	}
	defer f.Close()

	if _, err := f.Seek(int64(chunkNumber)*int64(chunkSize), 0); err != nil {
		return nil, &lzchunk.IOError{Op: "seek", Path: inFile, Err: err}
	}

	buf := make([]byte, chunkSize)
	n, err := readFull(f, buf)
	if err != nil {
		return nil, &lzchunk.IOError{Op: "read", Path: inFile, Err: err}
	}
	tokens := buf[:n]
	if len(tokens)%lzchunk.TokenWidth != 0 {
		return nil, lzchunk.ErrCorruptedStream
	}

	res := &localResult{decoded: make([]byte, 0, n)}

	for i := 0; i+lzchunk.TokenWidth <= len(tokens); i += lzchunk.TokenWidth {
		var raw [lzchunk.TokenWidth]byte
		copy(raw[:], tokens[i:i+lzchunk.TokenWidth])
		tok := lzchunk.UnpackToken(raw)

		if tok.Length > 0 {
			pos := len(res.decoded)
			matchStart := pos - tok.Offset

			if matchStart >= 0 && !intersectsUnresolved(res.unresolved, matchStart, tok.Length) {
				var err error
				res.decoded, err = lzchunk.AppendBackRef(res.decoded, tok.Offset, tok.Length)
				if err != nil {
					return nil, err
				}
			} else {
				res.unresolved = append(res.unresolved, unresolvedRef{position: pos, token: tok})
				for k := 0; k < tok.Length; k++ {
					res.decoded = append(res.decoded, placeholderByte)
				}
			}
		}

		res.decoded = append(res.decoded, tok.NextByte)
	}

	return res, nil
}

// intersectsUnresolved reports whether the candidate copy range
// [matchStart, matchStart+length) overlaps or abuts an already-recorded
// unresolved region. unresolved is sorted by position since positions
// strictly increase as decoding proceeds, so a binary search locates the
// one candidate entry on each side that could possibly conflict.
func intersectsUnresolved(unresolved []unresolvedRef, matchStart, length int) bool {
	idx := sort.Search(len(unresolved), func(i int) bool {
		return unresolved[i].position > matchStart
	})

	if idx > 0 {
		prev := unresolved[idx-1]
		if prev.position+prev.token.Length >= matchStart {
			return true
		}
	}

	if idx < len(unresolved) {
		next := unresolved[idx]
		if next.position < matchStart+length {
			return true
		}
	}

	return false
}

// resolveChunk performs spec §4.7 phase 2: it is invoked exactly when
// chunkNumber's turn to write has arrived, so every earlier chunk is
// already present in outFile. For chunk 0 there is never anything to
// resolve (a correctly-encoded first chunk cannot reference bytes before
// the start of the stream). For later chunks, it reads the last WindowSize
// bytes already written, builds a single buffer of [prior window][local
// decode], and patches each unresolved reference into that buffer in order
// — patching in place so a later reference that lands on an earlier
// reference's just-patched bytes sees the correct, final value.
//
// It also returns the WindowSize-bounded tail of [prior window][resolved
// chunk], for the caller to hand to the shared-memory fast path as the next
// chunk's prior window; when that path isn't in use the value is ignored,
// and it is nil for a chunk with nothing to resolve.
func resolveChunk(chunkNumber int, res *localResult, outFile string, sw *sharedWindow) (output, tail []byte, err error) {
	if chunkNumber == 0 {
		return res.decoded, tailOf(res.decoded, lzchunk.WindowSize), nil
	}

	// The shared-memory path needs the prior window regardless of whether
	// this chunk has any unresolved references, since it must forward an
	// accurate tail to the next chunk; the disk-read path only pays for a
	// read when there's actually something to resolve.
	if len(res.unresolved) == 0 && sw == nil {
		return res.decoded, nil, nil
	}

	priorWindow, err := priorWindowFor(chunkNumber, outFile, sw)
	if err != nil {
		return nil, nil, err
	}

	pw := len(priorWindow)
	buf := make([]byte, 0, pw+len(res.decoded))
	buf = append(buf, priorWindow...)
	buf = append(buf, res.decoded...)

	for _, u := range res.unresolved {
		dst := pw + u.position
		src := dst - u.token.Offset
		if src < 0 {
			return nil, nil, lzchunk.ErrCorruptedStream
		}
		for k := 0; k < u.token.Length; k++ {
			buf[dst+k] = buf[src+k]
		}
	}

	return buf[pw:], tailOf(buf, lzchunk.WindowSize), nil
}

// priorWindowFor returns the last (up to) WindowSize bytes already written
// to outFile before chunkNumber's turn, which is exactly the cross-chunk
// window a sequential decompressor would have in hand at this point. When a
// shared-memory handoff is configured it is consulted first, avoiding the
// extra file read.
func priorWindowFor(chunkNumber int, outFile string, sw *sharedWindow) ([]byte, error) {
	if sw != nil {
		return sw.get(chunkNumber - 1), nil
	}

	f, err := os.Open(outFile)
	if err != nil {
		return nil, &lzchunk.IOError{Op: "open", Path: outFile, Err: err}
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, &lzchunk.IOError{Op: "stat", Path: outFile, Err: err}
	}

	readLen := int64(lzchunk.WindowSize)
	if readLen > info.Size() {
		readLen = info.Size()
	}

	if _, err := f.Seek(info.Size()-readLen, 0); err != nil {
		return nil, &lzchunk.IOError{Op: "seek", Path: outFile, Err: err}
	}

	buf := make([]byte, readLen)
	if _, err := readFull(f, buf); err != nil {
		return nil, &lzchunk.IOError{Op: "read", Path: outFile, Err: err}
	}

	return buf, nil
}

func tailOf(b []byte, window int) []byte {
	if len(b) <= window {
		return append([]byte(nil), b...)
	}
	return append([]byte(nil), b[len(b)-window:]...)
}
