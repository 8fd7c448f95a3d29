// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Alejandro Velasco
// Source: github.com/avelasco/lzchunk

package lzchunk

// Token is a decoded 3-byte reference/literal unit. Length == 0 and
// Offset == 0 encodes a bare literal byte (NextByte); any other Length
// encodes a back-reference of (Offset, Length) immediately followed by the
// literal byte NextByte.
type Token struct {
	Offset   int
	Length   int
	NextByte byte
}

// IsLiteral reports whether t encodes a bare literal rather than a reference.
func (t Token) IsLiteral() bool { return t.Length == 0 }

// packToken serializes a token to its 3-byte big-endian on-disk form:
// bits laid out as [length:6][offset:9][next_byte:8].
//
// Preconditions: offset in [0, WindowSize], length in [0, MaxMatchLength],
// nextByte always fits a byte. A violation here is a programmer error (the
// matcher must never produce an out-of-range field) and is reported as
// ErrInvariantViolated rather than panicking, so callers running as a
// library can still recover cleanly.
func packToken(offset, length int, nextByte byte) ([TokenWidth]byte, error) {
	var buf [TokenWidth]byte

	if offset < 0 || offset > WindowSize {
		return buf, ErrInvariantViolated
	}
	if length < 0 || length > MaxMatchLength {
		return buf, ErrInvariantViolated
	}

	packed := uint32(length)<<offsetBits | uint32(offset)
	buf[0] = byte(packed >> 8)
	buf[1] = byte(packed)
	buf[2] = nextByte

	return buf, nil
}

// unpackToken is the inverse of packToken.
func unpackToken(buf [TokenWidth]byte) Token {
	packed := uint32(buf[0])<<8 | uint32(buf[1])
	return Token{
		Offset:   int(packed & WindowSize),
		Length:   int(packed >> offsetBits),
		NextByte: buf[2],
	}
}

// UnpackToken exports unpackToken for package parallel's local-decode phase,
// which must inspect token fields directly rather than through DecompressChunk.
func UnpackToken(buf [TokenWidth]byte) Token { return unpackToken(buf) }

// appendToken packs (offset, length, nextByte) and appends the 3 resulting
// bytes to dst.
func appendToken(dst []byte, offset, length int, nextByte byte) ([]byte, error) {
	buf, err := packToken(offset, length, nextByte)
	if err != nil {
		return dst, err
	}
	return append(dst, buf[:]...), nil
}
