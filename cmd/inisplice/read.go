// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yourbase/inisplice/ini"
	"github.com/yourbase/inisplice/inifile"
)

func newGetCommand(g *globalConfig) *cobra.Command {
	var (
		all       bool
		fallbacks []string
	)
	c := &cobra.Command{
		Use:   "get [options] FILE SECTION KEY [DEFAULT [...]]",
		Short: "Print the value of a key",
		Long: "Print the value of the first entry named KEY in SECTION. " +
			"DEFAULT replaces an empty value. With --all, every matching entry " +
			"is printed and multiple defaults fill empty values in order.",
		Args:                  cobra.MinimumNArgs(3),
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			section, key, defaults := sectionArg(args[1]), args[2], args[3:]
			if len(fallbacks) > 0 {
				opts, err := g.options()
				if err != nil {
					return err
				}
				fset, err := inifile.OpenFiles(ctx, opts, append([]string{args[0]}, fallbacks...)...)
				if err != nil {
					return err
				}
				if all {
					return printLines(cmd.OutOrStdout(), fset.ReadValuesByKey(section, key, defaults...))
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), fset.ReadValue(section, key, defaults...))
				return err
			}
			doc, err := open(ctx, cmd, g, args[0])
			if err != nil {
				return err
			}
			if all {
				return printLines(cmd.OutOrStdout(), doc.ReadValuesByKey(section, key, defaults...))
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), doc.ReadValue(section, key, defaults...))
			return err
		},
	}
	c.Flags().BoolVarP(&all, "all", "a", false, "print the values of every entry named KEY")
	c.Flags().StringArrayVar(&fallbacks, "fallback", nil, "consult this `file` when FILE lacks the key (may be repeated)")
	return c
}

func newKeysCommand(g *globalConfig) *cobra.Command {
	var value string
	c := &cobra.Command{
		Use:                   "keys [options] FILE SECTION",
		Short:                 "Print the keys of a section",
		Args:                  cobra.ExactArgs(2),
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := open(cmd.Context(), cmd, g, args[0])
			if err != nil {
				return err
			}
			section := sectionArg(args[1])
			if cmd.Flags().Changed("value") {
				return printLines(cmd.OutOrStdout(), doc.ReadKeysByValue(section, value))
			}
			return printLines(cmd.OutOrStdout(), doc.ReadKeys(section))
		},
	}
	c.Flags().StringVar(&value, "value", "", "only print keys whose value matches")
	return c
}

func newValuesCommand(g *globalConfig) *cobra.Command {
	return &cobra.Command{
		Use:                   "values [options] FILE SECTION [DEFAULT [...]]",
		Short:                 "Print the values of a section",
		Args:                  cobra.MinimumNArgs(2),
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := open(cmd.Context(), cmd, g, args[0])
			if err != nil {
				return err
			}
			return printLines(cmd.OutOrStdout(), doc.ReadValues(sectionArg(args[1]), args[2:]...))
		},
	}
}

func newDumpCommand(g *globalConfig) *cobra.Command {
	return &cobra.Command{
		Use:                   "dump [options] FILE [SECTION]",
		Short:                 "Print key=value pairs",
		Long:                  "Print the entries of SECTION, or of the whole file if SECTION is omitted, one key=value pair per line.",
		Args:                  cobra.RangeArgs(1, 2),
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := open(cmd.Context(), cmd, g, args[0])
			if err != nil {
				return err
			}
			var pairs []ini.KeyValue
			if len(args) == 2 {
				pairs = doc.ReadKeysValues(sectionArg(args[1]))
			} else {
				pairs = doc.ReadAllKeysValues()
			}
			return printPairs(cmd.OutOrStdout(), pairs)
		},
	}
}

func newSectionsCommand(g *globalConfig) *cobra.Command {
	return &cobra.Command{
		Use:                   "sections [options] FILE",
		Short:                 "Print section names",
		Args:                  cobra.ExactArgs(1),
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := open(cmd.Context(), cmd, g, args[0])
			if err != nil {
				return err
			}
			return printLines(cmd.OutOrStdout(), doc.ReadSections())
		},
	}
}

func newTokensCommand(g *globalConfig) *cobra.Command {
	return &cobra.Command{
		Use:                   "tokens [options] FILE",
		Short:                 "List the tokens of a file",
		Args:                  cobra.ExactArgs(1),
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := open(cmd.Context(), cmd, g, args[0])
			if err != nil {
				return err
			}
			text := doc.Text()
			for tok := range doc.Tokens() {
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "%d:%d\t%v\t%q\n", tok.Start, tok.End, tok.Kind, tok.In(text))
				if err != nil {
					return err
				}
			}
			return nil
		},
	}
}
