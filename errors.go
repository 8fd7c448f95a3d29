// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Alejandro Velasco
// Source: github.com/avelasco/lzchunk

package lzchunk

import (
	"errors"
	"fmt"
)

// Sentinel errors. Callers should compare against these with errors.Is;
// wrapped forms (IOError, CorruptError) carry a path or position for
// diagnostics but still satisfy errors.Is against the sentinel.
var (
	// ErrCorruptedStream is returned when a reference's offset exceeds the
	// reachable window at its position, the compressed length is not a
	// multiple of the token width, or a token is otherwise malformed.
	ErrCorruptedStream = errors.New("corrupted stream")
	// ErrInvalidArgument is returned for caller-supplied configuration that
	// can never succeed: chunk size <= 0, cluster size < 2, and so on.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvariantViolated marks an internal assertion failure (e.g. an
	// attempt to pack an out-of-range token field). It denotes programmer
	// error in this package or its caller, not bad input data, and is not
	// meant to be handled by normal control flow.
	ErrInvariantViolated = errors.New("invariant violated")
)

// IOError wraps an underlying file or channel error with the operation and
// path that were being attempted, per spec's "name the offending path"
// requirement for IOFailure.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

func ioFailure(op, path string, err error) error {
	return &IOError{Op: op, Path: path, Err: err}
}

// CorruptError wraps ErrCorruptedStream with a human-readable reason.
type CorruptError struct {
	Reason string
}

func (e *CorruptError) Error() string { return "corrupted stream: " + e.Reason }

func (e *CorruptError) Unwrap() error { return ErrCorruptedStream }

func corrupted(reason string) error {
	return &CorruptError{Reason: reason}
}
