// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"github.com/yourbase/inisplice/ini"
	"golang.org/x/text/language"
)

// envPrefix is prepended to the upper-cased flag name to find the
// environment variable that provides a flag's default.
const envPrefix = "INISPLICE_"

type globalConfig struct {
	ignoreCase      bool
	locale          string
	quote           bool
	escape          bool
	allowDuplicates bool
	pad             bool
	lenientSections bool
	lineBreak       string
	verbose         bool
}

func (g *globalConfig) register(flags *pflag.FlagSet) {
	boolFlag(flags, &g.ignoreCase, "ignore-case", "i", "match sections, keys and values without regard to case")
	stringFlag(flags, &g.locale, "locale", "", "lowercase names with the rules of this BCP 47 `language` before matching")
	boolFlag(flags, &g.quote, "quote", "", "strip surrounding quotes on read and add them on write")
	boolFlag(flags, &g.escape, "escape", "", "interpret backslash escapes on read and write them on write")
	boolFlag(flags, &g.allowDuplicates, "allow-duplicates", "", "keep repeated keys in dumps under generated names")
	boolFlag(flags, &g.pad, "pad", "", `write new entries as "key = value"`)
	boolFlag(flags, &g.lenientSections, "lenient-sections", "", "accept section headers without a closing bracket")
	stringFlag(flags, &g.lineBreak, "line-break", "", "`style` of inserted line breaks: lf, crlf or cr (default detected)")
	boolFlag(flags, &g.verbose, "verbose", "v", "log progress to stderr")
}

func boolFlag(flags *pflag.FlagSet, p *bool, name, shorthand, usage string) {
	flags.BoolVarP(p, name, shorthand, envBool(name), usage)
}

func stringFlag(flags *pflag.FlagSet, p *string, name, defaultValue, usage string) {
	flags.StringVar(p, name, envString(name, defaultValue), usage)
}

// envName returns the environment variable consulted for a flag.
func envName(flag string) string {
	return envPrefix + strings.ToUpper(strings.ReplaceAll(flag, "-", "_"))
}

// envString returns the value of the flag's environment variable. If it is
// empty or unset, it returns the default value.
func envString(flag string, defaultValue string) string {
	v := os.Getenv(envName(flag))
	if v == "" {
		return defaultValue
	}
	return v
}

// envBool returns the value of the flag's boolean environment variable. If it
// is unset or not one of the strings accepted by strconv.ParseBool, then it
// returns false.
func envBool(flag string) bool {
	v := os.Getenv(envName(flag))
	if v == "" {
		return false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false
	}
	return b
}

// options converts the flags into document options.
func (g *globalConfig) options() (*ini.Options, error) {
	opts := &ini.Options{
		Quote:           g.quote,
		Escape:          g.escape,
		AllowDuplicates: g.allowDuplicates,
		PadDelimiter:    g.pad,
		LenientSections: g.lenientSections,
	}
	switch {
	case g.locale != "":
		tag, err := language.Parse(g.locale)
		if err != nil {
			return nil, fmt.Errorf("--locale: %w", err)
		}
		opts.Comparison = ini.Locale
		opts.Language = tag
	case g.ignoreCase:
		opts.Comparison = ini.IgnoreCase
	}
	switch strings.ToLower(g.lineBreak) {
	case "":
	case "lf":
		opts.LineBreak = "\n"
	case "crlf":
		opts.LineBreak = "\r\n"
	case "cr":
		opts.LineBreak = "\r"
	default:
		return nil, fmt.Errorf("--line-break: unknown style %q", g.lineBreak)
	}
	return opts, nil
}

// sectionArg maps the command-line spelling of a section to its name.
func sectionArg(arg string) string {
	if arg == "-" {
		return ""
	}
	return arg
}
