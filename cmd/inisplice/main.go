// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

// inisplice reads and edits INI files in place, keeping their comments,
// spacing and line breaks intact.
//
// Usage:
//
//	inisplice [flags] get FILE SECTION KEY [DEFAULT...]
//	inisplice [flags] set FILE SECTION KEY VALUE
//	inisplice [flags] serve FILE
//
// A SECTION of "-" names the entries before the first section header. A FILE
// of "-" reads standard input; set then writes the result to standard output.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCommand().ExecuteContext(ctx)
	cancel()
	if err != nil {
		fmt.Fprintln(os.Stderr, "inisplice:", err)
		os.Exit(1)
	}
}
