// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import (
	"runtime"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Comparison selects how section names, keys and values are matched.
type Comparison int

// Comparison rules.
const (
	// Ordinal compares strings byte for byte.
	Ordinal Comparison = iota
	// IgnoreCase compares strings after Unicode case folding.
	IgnoreCase
	// Locale compares strings after lowercasing them with the rules of
	// Options.Language.
	Locale
)

// Options holds the settings of a File. Nil options are treated identically
// as passing the zero value.
type Options struct {
	Comparison Comparison
	// Language is used by the Locale comparison. The zero value is
	// language.Und.
	Language language.Tag

	// LenientSections accepts section headers without a closing bracket.
	LenientSections bool

	// Quote strips one surrounding double quote from each side of values
	// that are read and surrounds values that are written with quotes.
	Quote bool
	// Escape unescapes backslash sequences in values that are read and
	// escapes control characters in values that are written.
	Escape bool
	// AllowDuplicates renames repeated keys in ReadKeysValues and
	// ReadAllKeysValues instead of dropping them.
	AllowDuplicates bool
	// PadDelimiter writes new entries as "key = value" instead of
	// "key=value".
	PadDelimiter bool

	// LineBreak forces the line break used for inserted lines.
	// If empty, it is detected from the text.
	LineBreak string
}

// folder returns a function that maps a string to the form in which two
// strings compare equal under opts.
func (opts *Options) folder() func(string) string {
	if opts == nil {
		return identity
	}
	switch opts.Comparison {
	case IgnoreCase:
		c := cases.Fold()
		return c.String
	case Locale:
		c := cases.Lower(opts.Language)
		return c.String
	default:
		return identity
	}
}

func identity(s string) string { return s }

// Fold returns s in the form used to compare names and values under opts:
// two strings match if their folded forms are equal.
func (opts *Options) Fold(s string) string {
	return opts.folder()(s)
}

// DetectLineBreak returns the line break style of text: "\r\n" if text
// contains both a carriage return and a line feed, "\n" or "\r" if it
// contains only one of them, and the host's line break otherwise.
func DetectLineBreak(text string) string {
	var cr, lf bool
	for i := 0; i < len(text) && !(cr && lf); i++ {
		switch text[i] {
		case '\r':
			cr = true
		case '\n':
			lf = true
		}
	}
	switch {
	case cr && lf:
		return "\r\n"
	case lf:
		return "\n"
	case cr:
		return "\r"
	default:
		return hostLineBreak()
	}
}

func hostLineBreak() string {
	if runtime.GOOS == "windows" {
		return "\r\n"
	}
	return "\n"
}
