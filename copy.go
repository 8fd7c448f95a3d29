// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Alejandro Velasco
// Source: github.com/avelasco/lzchunk

package lzchunk

// appendBackRef appends length bytes copied from dst[len(dst)-offset:] to
// the end of dst and returns the grown slice.
//
// When offset >= length the source range is entirely already-written and a
// single copy suffices. When offset < length the match run overlaps its own
// source (the classic LZ77 run-length-extension trick, spec §4.4 / S5): the
// bytes being written are themselves part of the source range, so this
// copies one offset-sized chunk at a time, doubling the copied region each
// round, which is equivalent to the textbook byte-by-byte copy but avoids
// looping a byte at a time in the common case.
func appendBackRef(dst []byte, offset, length int) ([]byte, error) {
	matchStart := len(dst) - offset
	if matchStart < 0 {
		return dst, corrupted("reference offset exceeds output length")
	}

	if offset >= length {
		dst = append(dst, dst[matchStart:matchStart+length]...)
		return dst, nil
	}

	base := len(dst)
	dst = append(dst, dst[matchStart:matchStart+offset]...)
	copied := offset

	for copied < length {
		n := min(copied, length-copied)
		dst = append(dst, dst[base:base+n]...)
		copied += n
	}

	return dst, nil
}

// AppendBackRef exports appendBackRef for package parallel's local-decode
// phase, which performs the same in-chunk copy for references it can
// resolve without cross-chunk context.
func AppendBackRef(dst []byte, offset, length int) ([]byte, error) {
	return appendBackRef(dst, offset, length)
}
