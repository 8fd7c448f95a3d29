// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Alejandro Velasco
// Source: github.com/avelasco/lzchunk

package lzchunk

import "testing"

func TestFindMatch_EmptyWindowIsLiteral(t *testing.T) {
	// findMatch is only ever called with a non-empty lookahead (the
	// compressor's loop condition guarantees p < len(chunk)), so only the
	// empty-window side of the guard is exercised here.
	tok := findMatch(nil, []byte("x"))
	if !tok.IsLiteral() || tok.NextByte != 'x' {
		t.Fatalf("expected literal 'x', got %+v", tok)
	}
}

func TestFindMatch_SingleByteLookaheadIsAlwaysLiteral(t *testing.T) {
	// maxLen is capped at len(lookahead)-1 == 0, so no candidate can ever
	// beat the starting best.Length of 0: a one-byte lookahead can never
	// encode a reference regardless of window contents.
	tok := findMatch([]byte("aaaa"), []byte("a"))
	if !tok.IsLiteral() || tok.NextByte != 'a' {
		t.Fatalf("expected literal, got %+v", tok)
	}
}

func TestFindMatch_NoOccurrenceIsLiteral(t *testing.T) {
	tok := findMatch([]byte("xyz"), []byte("abc"))
	if !tok.IsLiteral() || tok.NextByte != 'a' {
		t.Fatalf("expected literal 'a', got %+v", tok)
	}
}

func TestFindMatch_PicksMostDistantOccurrenceOnTie(t *testing.T) {
	// Both the 'a' at offset 8 ("aXb") and the one at offset 4 ("aXb"
	// again) would match "aX" for length 2, which is below the early-termination
	// threshold, so the whole window is scanned and the leftmost (most
	// distant) tied occurrence must win for byte-identical sequential vs
	// chunked-parallel output.
	window := []byte("aXb.aXb.")
	lookahead := []byte("aXc")

	tok := findMatch(window, lookahead)
	if tok.Length != 2 {
		t.Fatalf("expected a length-2 match, got %+v", tok)
	}
	if tok.Offset != len(window) {
		t.Fatalf("expected the most distant occurrence (offset=%d), got offset=%d", len(window), tok.Offset)
	}
}

func TestFindMatch_StopsEarlyPastLengthThreshold(t *testing.T) {
	// A later, longer run exists ("aaaaaaaa" near the end) but the first
	// occurrence already exceeds lengthThreshold, so the scan must return
	// immediately rather than finding the longer one.
	window := append([]byte("aaa"), append(make([]byte, 10), []byte("aaaaaaaa")...)...)
	lookahead := []byte("aaaaZ")

	tok := findMatch(window, lookahead)
	if tok.Offset != len(window) {
		t.Fatalf("expected the first (most distant) match to win via early termination, got offset=%d", tok.Offset)
	}
	if tok.Length <= lengthThreshold {
		t.Fatalf("expected a match exceeding lengthThreshold, got length=%d", tok.Length)
	}
}

func TestFindMatch_MatchLengthCappedByLookahead(t *testing.T) {
	window := []byte("abcdefgh")
	lookahead := []byte("abc")

	tok := findMatch(window, lookahead)
	if tok.Length != 2 {
		t.Fatalf("match length should be capped at len(lookahead)-1=2, got %d", tok.Length)
	}
}

func TestFindMatch_MatchLengthCappedByMaxMatchLength(t *testing.T) {
	window := make([]byte, WindowSize)
	for i := range window {
		window[i] = 'a'
	}
	lookahead := make([]byte, MaxMatchLength+10)
	for i := range lookahead {
		lookahead[i] = 'a'
	}
	lookahead[len(lookahead)-1] = 'Z'

	tok := findMatch(window, lookahead)
	if tok.Length != MaxMatchLength {
		t.Fatalf("match length should be capped at MaxMatchLength=%d, got %d", MaxMatchLength, tok.Length)
	}
}
