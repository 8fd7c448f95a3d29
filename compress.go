// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Alejandro Velasco
// Source: github.com/avelasco/lzchunk

package lzchunk

import (
	"os"

	"github.com/avelasco/lzchunk/internal/chunkio"
)

// CompressChunk runs the LZ77 matcher across chunk starting at encodeFrom,
// using chunk[:encodeFrom] (capped at WindowSize by the caller) as the
// initial window. It is the shared core behind both the whole-buffer
// Compress and the per-worker chunk processor in package parallel: both
// call this with a buffer that already has the right amount of window
// prepended, so the two paths see identical windows at identical positions.
//
// Each emitted token consumes Length+1 bytes of input: Length bytes copied
// from the back-reference (zero for a literal) plus the trailing NextByte,
// which the decompressor appends once, immediately after the back-reference
// copy. The cursor must advance by that same Length+1 or the encoder and
// decoder disagree on where the next token starts.
func CompressChunk(chunk []byte, encodeFrom int) ([]byte, error) {
	out := make([]byte, 0, len(chunk)-encodeFrom)

	for p := encodeFrom; p < len(chunk); {
		windowStart := max(p-WindowSize, 0)
		window := chunk[windowStart:p]
		lookahead := chunk[p:]

		tok := findMatch(window, lookahead)

		var err error
		out, err = appendToken(out, tok.Offset, tok.Length, tok.NextByte)
		if err != nil {
			return nil, err
		}

		if tok.Length > 0 {
			p += tok.Length + 1
		} else {
			p++
		}
	}

	return out, nil
}

// Compress runs the sequential compressor over an in-memory buffer and
// returns the concatenated token stream.
func Compress(data []byte) ([]byte, error) {
	return CompressChunk(data, 0)
}

// CompressFile streams in, compressing it chunkSize bytes at a time while
// maintaining a sliding window across chunk boundaries, and writes the
// token stream to out. chunkSize <= 0 is rejected with ErrInvalidArgument.
func CompressFile(in, out string, chunkSize int) error {
	if chunkSize <= 0 {
		return ErrInvalidArgument
	}

	src, err := os.Open(in)
	if err != nil {
		return ioFailure("open", in, err)
	}
	defer src.Close()

	dst, err := os.Create(out)
	if err != nil {
		return ioFailure("create", out, err)
	}
	defer dst.Close()

	reader := chunkio.NewReader(src, chunkSize, WindowSize)

	for {
		combined, encodeFrom, ok, err := reader.Next()
		if err != nil {
			return ioFailure("read", in, err)
		}
		if !ok {
			break
		}

		tokens, err := CompressChunk(combined, encodeFrom)
		if err != nil {
			return err
		}

		if _, err := dst.Write(tokens); err != nil {
			return ioFailure("write", out, err)
		}
	}

	return nil
}
