// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Alejandro Velasco
// Source: github.com/avelasco/lzchunk

// Package chunkio provides the explicit, stateful chunk iterators that
// replace the original implementation's generator-based chunked file
// reader (original_source/compresor.py's `file_read` context manager,
// whose `reader()` closure yields `text[-WINDOW_SIZE:] + read` on each
// call). spec §9 REDESIGN FLAGS calls this out by name: a systems-language
// port can't rely on a lazy coroutine-style generator closing over a file
// handle, so this package models the same behavior as an object with a
// single Next/Write operation and explicit state (the retained window
// tail).
package chunkio

import "io"

// Reader turns a byte stream into successive (window-primed) chunks,
// tracking the trailing windowSize bytes of the previous chunk so the
// encoder always sees the same window it would in a single unchunked pass.
type Reader struct {
	src        io.Reader
	chunkSize  int
	windowSize int
	buf        []byte
	tail       []byte
}

// NewReader builds a chunked reader over src. chunkSize is the number of
// fresh bytes read per call to Next; windowSize is how much trailing
// context is retained and prepended to the next chunk.
func NewReader(src io.Reader, chunkSize, windowSize int) *Reader {
	return &Reader{
		src:        src,
		chunkSize:  chunkSize,
		windowSize: windowSize,
		buf:        make([]byte, chunkSize),
	}
}

// Next reads the next chunk and returns it prefixed with up to windowSize
// bytes of trailing context from the previous chunk, along with the offset
// at which the fresh (non-context) bytes begin. ok is false once the
// underlying reader is exhausted.
func (r *Reader) Next() (combined []byte, encodeFrom int, ok bool, err error) {
	n, readErr := io.ReadFull(r.src, r.buf)
	if readErr != nil && readErr != io.EOF && readErr != io.ErrUnexpectedEOF {
		return nil, 0, false, readErr
	}
	if n == 0 {
		return nil, 0, false, nil
	}

	combined = make([]byte, 0, len(r.tail)+n)
	combined = append(combined, r.tail...)
	combined = append(combined, r.buf[:n]...)
	encodeFrom = len(r.tail)

	tailStart := max(0, len(combined)-r.windowSize)
	r.tail = append([]byte(nil), combined[tailStart:]...)

	return combined, encodeFrom, true, nil
}

// Writer accumulates decoded bytes and flushes everything except the
// trailing windowSize bytes to dst after each chunk, mirroring
// original_source/descompresor.py's chunked-streaming flush/trim rule
// (spec §4.4): references may reach back windowSize bytes, so exactly that
// much must be retained in memory across chunk boundaries.
type Writer struct {
	dst        io.Writer
	windowSize int
	tail       []byte
}

// NewWriter builds a chunked writer over dst.
func NewWriter(dst io.Writer, windowSize int) *Writer {
	return &Writer{dst: dst, windowSize: windowSize}
}

// Write accepts a fully-materialized decode result that already begins
// with the previous call's retained tail (i.e. produced by decoding a
// token chunk against that tail as its window), flushes everything but the
// new trailing windowSize bytes, and retains the rest as the new tail.
//
// decoded always starts with bytes that have never yet been flushed (the
// previous tail, by construction), so the write range starts at index 0,
// not at len(w.tail): indexing from len(w.tail) would skip straight over
// those still-unflushed bytes and silently drop them whenever this chunk
// still isn't long enough to push the window past them.
func (w *Writer) Write(decoded []byte) error {
	flushEnd := max(0, len(decoded)-w.windowSize)
	if _, err := w.dst.Write(decoded[:flushEnd]); err != nil {
		return err
	}
	w.tail = append([]byte(nil), decoded[flushEnd:]...)
	return nil
}

// Tail returns the currently retained window tail, for constructing the
// next chunk's decode primer.
func (w *Writer) Tail() []byte { return w.tail }

// Flush writes out whatever tail remains (called once, after the last
// chunk).
func (w *Writer) Flush() error {
	if len(w.tail) == 0 {
		return nil
	}
	_, err := w.dst.Write(w.tail)
	w.tail = nil
	return err
}
