// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Alejandro Velasco
// Source: github.com/avelasco/lzchunk

package lzchunk

// findMatch scans window left to right for occurrences of lookahead[0] and
// returns the token to emit for the current position.
//
// Tie-break: only a strict improvement over the current best replaces it,
// and the scan proceeds left to right, so among candidates tied on length
// the first (most distant) occurrence wins. This is load-bearing: the
// chunk-parallel compressor depends on byte-identical output from this
// exact tie-break, not merely an equally-good one.
//
// Early termination: once a candidate's length exceeds lengthThreshold the
// scan stops and that match is returned, even if a longer one exists
// further along in the window. This is a deliberate speed/ratio tradeoff,
// not a bug — see spec §4.2.
func findMatch(window, lookahead []byte) Token {
	if len(window) == 0 || len(lookahead) == 0 {
		return literalToken(lookahead)
	}

	c := lookahead[0]
	windowLen := len(window)

	var best Token
	found := false

	for f := 0; f < windowLen; f++ {
		if window[f] != c {
			continue
		}

		offset := windowLen - f
		maxLen := min(offset, len(lookahead)-1, MaxMatchLength)

		if maxLen <= best.Length {
			continue
		}

		matched := 0
		for matched < maxLen && window[f+matched] == lookahead[matched] {
			matched++
		}

		if matched > best.Length {
			best = Token{Offset: offset, Length: matched, NextByte: lookahead[matched]}
			found = true

			if best.Length > lengthThreshold {
				return best
			}
		}
	}

	if !found {
		return literalToken(lookahead)
	}

	return best
}

// literalToken builds the length=0 literal encoding of lookahead[0].
func literalToken(lookahead []byte) Token {
	return Token{Offset: 0, Length: 0, NextByte: lookahead[0]}
}
