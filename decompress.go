// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Alejandro Velasco
// Source: github.com/avelasco/lzchunk

package lzchunk

import (
	"io"
	"os"

	"github.com/avelasco/lzchunk/internal/chunkio"
)

// DecompressChunk decodes a token stream (its length must be a multiple of
// TokenWidth) against an already-primed output buffer and returns the
// fully materialized bytes (primer included). Used directly by Decompress
// and, with a non-empty primer, by DecompressFile's chunked streaming loop.
func DecompressChunk(tokens []byte, primer []byte) ([]byte, error) {
	if len(tokens)%TokenWidth != 0 {
		return nil, corrupted("token stream length is not a multiple of the token width")
	}

	out := make([]byte, len(primer), len(primer)+len(tokens))
	copy(out, primer)

	for i := 0; i+TokenWidth <= len(tokens); i += TokenWidth {
		var raw [TokenWidth]byte
		copy(raw[:], tokens[i:i+TokenWidth])
		tok := unpackToken(raw)

		if tok.Length > 0 {
			var err error
			out, err = appendBackRef(out, tok.Offset, tok.Length)
			if err != nil {
				return nil, err
			}
		}

		out = append(out, tok.NextByte)
	}

	return out, nil
}

// Decompress decodes a complete in-memory token stream, starting from an
// empty window.
func Decompress(tokens []byte) ([]byte, error) {
	return DecompressChunk(tokens, nil)
}

// DecompressFile streams the compressed file in, chunkSize bytes at a time
// (rounded down to the nearest multiple of TokenWidth, since a partial
// token can never be decoded), and writes the reconstructed bytes to out.
// After each block is decoded, all but the last WindowSize bytes are
// flushed to out and the in-memory tail is trimmed, so memory use stays
// bounded regardless of input size.
func DecompressFile(in, out string, chunkSize int) error {
	if chunkSize <= 0 {
		return ErrInvalidArgument
	}
	chunkSize -= chunkSize % TokenWidth
	if chunkSize == 0 {
		chunkSize = TokenWidth
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

	writer := chunkio.NewWriter(dst, WindowSize)
	buf := make([]byte, chunkSize)

	for {
		n, readErr := io.ReadFull(src, buf)
		if readErr != nil && readErr != io.EOF && readErr != io.ErrUnexpectedEOF {
			return ioFailure("read", in, readErr)
		}
		if n == 0 {
			break
		}
		if n%TokenWidth != 0 {
			return corrupted("compressed file length is not a multiple of the token width")
		}

		decoded, err := DecompressChunk(buf[:n], writer.Tail())
		if err != nil {
			return err
		}

		if err := writer.Write(decoded); err != nil {
			return ioFailure("write", out, err)
		}

		if readErr == io.EOF || readErr == io.ErrUnexpectedEOF {
			break
		}
	}

	if err := writer.Flush(); err != nil {
		return ioFailure("write", out, err)
	}

	return nil
}
