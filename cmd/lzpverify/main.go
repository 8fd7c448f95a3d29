// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Alejandro Velasco
// Source: github.com/avelasco/lzchunk

// Command lzpverify byte-compares two files and prints "ok" or "nok",
// exiting 0 in both cases (spec §6): it's a round-trip sanity check meant
// to be eyeballed, not scripted against a nonzero exit code.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
)

func main() {
	fs := flag.NewFlagSet("lzpverify", flag.ContinueOnError)
	if err := fs.Parse(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "lzpverify:", err)
		os.Exit(1)
	}
	if fs.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "usage: lzpverify original_file reconstructed_file")
		os.Exit(1)
	}

	ok, err := filesEqual(fs.Arg(0), fs.Arg(1))
	if err != nil {
		fmt.Fprintln(os.Stderr, "lzpverify:", err)
		fmt.Println("nok")
		return
	}

	if ok {
		fmt.Println("ok")
	} else {
		fmt.Println("nok")
	}
}

func filesEqual(a, b string) (bool, error) {
	dataA, err := os.ReadFile(a)
	if err != nil {
		return false, err
	}
	dataB, err := os.ReadFile(b)
	if err != nil {
		return false, err
	}
	return bytes.Equal(dataA, dataB), nil
}
