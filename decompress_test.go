// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Alejandro Velasco
// Source: github.com/avelasco/lzchunk

package lzchunk

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDecompress_RejectsNonMultipleOfTokenWidth(t *testing.T) {
	_, err := Decompress([]byte{0x11, 0x00})
	if !errors.Is(err, ErrCorruptedStream) {
		t.Fatalf("expected ErrCorruptedStream, got %v", err)
	}
}

func TestDecompress_EmptyStreamIsEmptyOutput(t *testing.T) {
	out, err := Decompress(nil)
	if err != nil {
		t.Fatalf("Decompress failed: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected empty output, got %d bytes", len(out))
	}
}

func TestDecompress_RejectsReferenceBeyondOutputLength(t *testing.T) {
	tokens, err := appendToken(nil, 5, 3, 'x')
	if err != nil {
		t.Fatalf("appendToken failed: %v", err)
	}

	_, err = Decompress(tokens)
	if !errors.Is(err, ErrCorruptedStream) {
		t.Fatalf("expected ErrCorruptedStream for an out-of-range reference, got %v", err)
	}
}

func TestDecompressChunk_PrimerSuppliesCrossChunkWindow(t *testing.T) {
	full := bytes.Repeat([]byte("cross-chunk-window-data"), 50)
	cmp, err := Compress(full)
	if err != nil {
		t.Fatalf("Compress failed: %v", err)
	}

	split := len(full) / 2
	firstTokens, err := CompressChunk(full[:split], 0)
	if err != nil {
		t.Fatalf("CompressChunk(first half) failed: %v", err)
	}

	firstDecoded, err := DecompressChunk(firstTokens, nil)
	if err != nil {
		t.Fatalf("DecompressChunk(first half) failed: %v", err)
	}
	if !bytes.Equal(firstDecoded, full[:split]) {
		t.Fatalf("first half mismatch")
	}

	primerStart := max(0, len(firstDecoded)-WindowSize)
	primer := firstDecoded[primerStart:]
	secondTokens, err := CompressChunk(append(append([]byte{}, primer...), full[split:]...), len(primer))
	if err != nil {
		t.Fatalf("CompressChunk(second half) failed: %v", err)
	}

	secondDecoded, err := DecompressChunk(secondTokens, primer)
	if err != nil {
		t.Fatalf("DecompressChunk(second half) failed: %v", err)
	}

	got := append(append([]byte{}, firstDecoded...), secondDecoded[len(primer):]...)
	if !bytes.Equal(got, full) {
		t.Fatalf("cross-chunk round-trip mismatch")
	}

	direct, err := Decompress(cmp)
	if err != nil {
		t.Fatalf("Decompress failed: %v", err)
	}
	if !bytes.Equal(direct, full) {
		t.Fatalf("direct decompress mismatch")
	}
}

func TestDecompressFile_MatchesInMemoryDecompress(t *testing.T) {
	data := bytes.Repeat([]byte("streamed-decompress-chunk-boundary"), 400)
	cmp, err := Compress(data)
	if err != nil {
		t.Fatalf("Compress failed: %v", err)
	}

	dir := t.TempDir()
	in := filepath.Join(dir, "in.bin")
	out := filepath.Join(dir, "out.txt")
	if err := os.WriteFile(in, cmp, 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if err := DecompressFile(in, out, 300); err != nil {
		t.Fatalf("DecompressFile failed: %v", err)
	}

	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}

	if !bytes.Equal(got, data) {
		t.Fatalf("DecompressFile output mismatch: got %d bytes, want %d bytes", len(got), len(data))
	}
}

func TestDecompressFile_RejectsNonPositiveChunkSize(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.bin")
	if err := os.WriteFile(in, []byte{0, 0, 0}, 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if err := DecompressFile(in, filepath.Join(dir, "out.txt"), 0); err == nil {
		t.Fatal("expected an error for chunkSize=0")
	}
}

func TestAppendBackRef(t *testing.T) {
	t.Run("non-overlapping", func(t *testing.T) {
		dst := []byte("abcdefgh")
		got, err := appendBackRef(dst, 8, 4)
		if err != nil {
			t.Fatalf("appendBackRef failed: %v", err)
		}
		if want := "abcdefghabcd"; string(got) != want {
			t.Fatalf("got %q, want %q", got, want)
		}
	})

	t.Run("overlapping-run-extension", func(t *testing.T) {
		dst := []byte("ABC")
		got, err := appendBackRef(dst, 3, 5)
		if err != nil {
			t.Fatalf("appendBackRef failed: %v", err)
		}
		if want := "ABCABCAB"; string(got) != want {
			t.Fatalf("got %q, want %q", got, want)
		}
	})

	t.Run("single-byte-run", func(t *testing.T) {
		dst := []byte("A")
		got, err := appendBackRef(dst, 1, 6)
		if err != nil {
			t.Fatalf("appendBackRef failed: %v", err)
		}
		if want := "AAAAAAA"; string(got) != want {
			t.Fatalf("got %q, want %q", got, want)
		}
	})

	t.Run("offset-exceeds-output-length", func(t *testing.T) {
		dst := []byte("AB")
		_, err := appendBackRef(dst, 5, 2)
		if !errors.Is(err, ErrCorruptedStream) {
			t.Fatalf("expected ErrCorruptedStream, got %v", err)
		}
	})
}
