// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Alejandro Velasco
// Source: github.com/avelasco/lzchunk

package lzchunk

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func roundTripInputSet() []struct {
	name string
	data []byte
} {
	return []struct {
		name string
		data []byte
	}{
		{name: "nil", data: nil},
		{name: "empty", data: []byte{}},
		{name: "single-byte", data: []byte{0xAB}},
		{name: "short-text", data: []byte("hello world, lzchunk test")},
		{name: "repeated-pattern", data: bytes.Repeat([]byte("abc123"), 2000)},
		{name: "long-run", data: bytes.Repeat([]byte{0xFF}, 12000)},
		{name: "byte-cycle", data: bytes.Repeat([]byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, 1200)},
		{name: "all-literals", data: []byte("abcdefghijklmnopqrstuvwxyz")},
		{name: "overlapping-run", data: []byte("AAAAAAAAAAAAAAAAAAAA")},
	}
}

// TestCompressDecompress_RoundTrip exercises Testable Property 1: for any
// input, Decompress(Compress(data)) == data.
func TestCompressDecompress_RoundTrip(t *testing.T) {
	for _, in := range roundTripInputSet() {
		t.Run(in.name, func(t *testing.T) {
			cmp, err := Compress(in.data)
			if err != nil {
				t.Fatalf("Compress failed: %v", err)
			}
			if len(cmp)%TokenWidth != 0 {
				t.Fatalf("compressed length %d is not a multiple of %d", len(cmp), TokenWidth)
			}

			out, err := Decompress(cmp)
			if err != nil {
				t.Fatalf("Decompress failed: %v", err)
			}
			if !bytes.Equal(out, in.data) {
				t.Fatalf("round-trip mismatch: got=%q want=%q", out, in.data)
			}
		})
	}
}

// TestCompressChunk_S5RepeatedByteRun is Scenario S5 from spec §8:
// "AAAAA" round-trips and its first token is a literal 'A'. The matcher
// caps a match at its offset, so the references that follow ((1,1,'A'),
// then (3,1,'A')) never overlap their own source range.
func TestCompressChunk_S5RepeatedByteRun(t *testing.T) {
	data := []byte("AAAAA")
	cmp, err := Compress(data)
	if err != nil {
		t.Fatalf("Compress failed: %v", err)
	}

	out, err := Decompress(cmp)
	if err != nil {
		t.Fatalf("Decompress failed: %v", err)
	}
	if !bytes.Equal(out, data) {
		t.Fatalf("round-trip mismatch: got=%q want=%q", out, data)
	}

	var raw [TokenWidth]byte
	copy(raw[:], cmp[:TokenWidth])
	first := unpackToken(raw)
	if !first.IsLiteral() || first.NextByte != 'A' {
		t.Fatalf("expected first token to be a literal 'A', got %+v", first)
	}
}

// TestCompressFile_MatchesInMemoryCompress verifies the streaming file path
// produces the same token stream as the in-memory Compress across a chunk
// boundary falling in the middle of a repeating run.
func TestCompressFile_MatchesInMemoryCompress(t *testing.T) {
	data := bytes.Repeat([]byte("streamed-chunk-boundary-data"), 500)

	want, err := Compress(data)
	if err != nil {
		t.Fatalf("Compress failed: %v", err)
	}

	dir := t.TempDir()
	in := filepath.Join(dir, "in.txt")
	out := filepath.Join(dir, "out.bin")
	if err := os.WriteFile(in, data, 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if err := CompressFile(in, out, 777); err != nil {
		t.Fatalf("CompressFile failed: %v", err)
	}

	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}

	if !bytes.Equal(got, want) {
		t.Fatalf("CompressFile output diverges from Compress: got %d bytes, want %d bytes", len(got), len(want))
	}
}

func TestCompressFile_RejectsNonPositiveChunkSize(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.txt")
	if err := os.WriteFile(in, []byte("data"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if err := CompressFile(in, filepath.Join(dir, "out.bin"), 0); err == nil {
		t.Fatal("expected an error for chunkSize=0")
	}
}

func FuzzCompressDecompressRoundTrip(f *testing.F) {
	f.Add([]byte(""))
	f.Add([]byte("hello world"))
	f.Add(bytes.Repeat([]byte{0x00}, 1024))
	f.Add(bytes.Repeat([]byte("abc"), 500))
	f.Add([]byte("AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"))

	f.Fuzz(func(t *testing.T, data []byte) {
		if len(data) > 1<<16 {
			data = data[:1<<16]
		}

		cmp, err := Compress(data)
		if err != nil {
			t.Fatalf("Compress failed: %v", err)
		}

		out, err := Decompress(cmp)
		if err != nil {
			t.Fatalf("Decompress failed: %v", err)
		}

		if !bytes.Equal(out, data) {
			t.Fatalf("round-trip mismatch: got=%d bytes want=%d bytes", len(out), len(data))
		}
	})
}
