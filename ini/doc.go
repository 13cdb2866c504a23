// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

/*
Package ini reads and edits INI text without building a document tree.
See https://en.wikipedia.org/wiki/INI_file.

This package is specifically designed for read-modify-write scenarios: every
operation tokenizes the current text, and a write replaces only the bytes of
the value it changes. Comments, indentation, blank lines and line endings are
left alone. Malformed lines never cause an error; they are skipped by reads.

Syntax

The text is split into tokens, each of which is one of:

	comment     one or more '#' or ';', then the rest of the line
	section     '[' name ']'
	entry       key ('=' | ':') value
	undefined   any other run of non-whitespace characters
	line break  "\r\n" or "\n"
	whitespace  any other run of whitespace

A comment only starts where a token may start, so a value ends at the first
'#' or ';' on its line:

	[server]
	host = example.com ; the public name
	port: 8080

Keys may not contain '=', '[' or ']'. Whitespace around section names, keys
and values is not part of them. If Options.Quote is set, one double quote is
trimmed from each end of a value. If Options.Escape is set, backslash escapes
in values are interpreted (see Unescape).

Entries before the first section header are part of the global section,
identified by the empty string ("").

Repeated names

Multiple entries in the same section may have the same key. Single-value
reads such as File.ReadValue use the first one, and File.WriteKeyValue
changes the first one. Multiple sections may have the same name; their
entries are read as if they were presented contiguously.
*/
package ini
