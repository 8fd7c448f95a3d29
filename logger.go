// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Alejandro Velasco
// Source: github.com/avelasco/lzchunk

package lzchunk

import (
	"io"
	"log"
)

// Logger is an explicit logging handle passed into the root and worker
// constructors, rather than a process-wide mutable debug flag (the
// original implementation's logger.py had a single global `debug` bool
// flipped by set_debug). coordinator.Run hands the same Logger to the root
// and every worker goroutine; its label names the caller (the CLIs pass the
// command name), not the rank.
type Logger struct {
	label   string
	verbose bool
	out     *log.Logger
}

// NewLogger builds a Logger that writes to w, prefixed with label
// (e.g. "lzpcompress"). When verbose is false, Debugf is a no-op.
func NewLogger(w io.Writer, label string, verbose bool) *Logger {
	return &Logger{
		label:   label,
		verbose: verbose,
		out:     log.New(w, "", log.LstdFlags),
	}
}

// Debugf logs a formatted line if the logger was constructed with
// verbose = true; otherwise it does nothing.
func (l *Logger) Debugf(format string, args ...any) {
	if l == nil || !l.verbose {
		return
	}
	l.out.Printf("[%s] "+format, append([]any{l.label}, args...)...)
}

// NopLogger returns a Logger that discards everything, for callers that
// don't want diagnostic output.
func NopLogger() *Logger {
	return NewLogger(io.Discard, "", false)
}
