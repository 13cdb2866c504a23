// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"context"
	"fmt"
	"io"
	stdlog "log"

	"github.com/spf13/cobra"
	"github.com/yourbase/inisplice/ini"
	"github.com/yourbase/inisplice/inifile"
)

func newRootCommand() *cobra.Command {
	g := new(globalConfig)
	c := &cobra.Command{
		Use:           "inisplice",
		Short:         "Read and edit INI files without reformatting them",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// zombiezen.com/go/log writes through the standard logger by default.
			if g.verbose {
				stdlog.SetOutput(cmd.ErrOrStderr())
			} else {
				stdlog.SetOutput(io.Discard)
			}
		},
	}
	g.register(c.PersistentFlags())
	c.AddCommand(
		newGetCommand(g),
		newSetCommand(g),
		newKeysCommand(g),
		newValuesCommand(g),
		newDumpCommand(g),
		newSectionsCommand(g),
		newTokensCommand(g),
		newServeCommand(g),
	)
	return c
}

// open loads the document named on the command line. "-" reads standard
// input.
func open(ctx context.Context, cmd *cobra.Command, g *globalConfig, path string) (*inifile.Document, error) {
	opts, err := g.options()
	if err != nil {
		return nil, err
	}
	if path == "-" {
		return inifile.Parse(ctx, cmd.InOrStdin(), opts)
	}
	return inifile.Open(ctx, path, opts)
}

func printLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func printPairs(w io.Writer, pairs []ini.KeyValue) error {
	for _, kv := range pairs {
		if _, err := fmt.Fprintf(w, "%s=%s\n", kv.Key, kv.Value); err != nil {
			return err
		}
	}
	return nil
}
