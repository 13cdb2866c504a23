// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import (
	"strings"
)

// WriteKeyValue sets the value of the first entry with the given key in the
// given section. Passing an empty section name targets entries before the
// first section header.
//
// Only the existing value's text is replaced: indentation, delimiter spacing
// and a trailing comment on the same line are kept. If there is no such
// entry, a new line is inserted after the section's last entry (or after its
// header). If the section does not exist, a header and the entry are
// appended at the end of the file. Writing an empty key does nothing.
func (f *File) WriteKeyValue(section, key, value string) {
	if key == "" {
		return
	}
	f.text = f.splice(section, key, value)
}

// WriteKeysValues writes each pair to section in order, as if by
// WriteKeyValue. Each pair sees the lines inserted by the pairs before it.
func (f *File) WriteKeysValues(section string, pairs ...KeyValue) {
	for _, kv := range pairs {
		f.WriteKeyValue(section, kv.Key, kv.Value)
	}
}

func (f *File) splice(section, key, value string) string {
	text := f.text
	fold := f.opts.folder()
	want := fold(key)
	sc := newScope(fold, section)

	anchor := -1      // end of the last token in scope (entry or header)
	firstHeader := -1 // start of the first section header
	for tok := range Tokenize(text, &f.opts) {
		in := sc.visit(text, tok)
		switch tok.Kind {
		case Section:
			if firstHeader < 0 {
				firstHeader = tok.Start
			}
			if sc.in {
				anchor = tok.End
			}
		case Entry:
			if !in {
				continue
			}
			if fold(tok.Key.In(text)) == want {
				return text[:tok.Value.Start] + f.valueText(tok, value) + text[tok.Value.End:]
			}
			anchor = tok.End
		}
	}

	lb := f.LineBreak()
	line := f.formatEntry(key, value)
	switch {
	case anchor >= 0:
		at := contentEnd(text, anchor)
		return text[:at] + lb + line + text[at:]
	case section == "" && firstHeader >= 0:
		// Keep the entry ahead of the first header so it stays global.
		at := strings.LastIndexByte(text[:firstHeader], '\n') + 1
		return text[:at] + line + lb + text[at:]
	case section == "":
		return text + lb + line
	default:
		return text + lb + "[" + section + "]" + lb + line + lb
	}
}

// valueText returns the text that replaces tok's value. A value written
// where there was none is kept apart from a comment that follows it.
func (f *File) valueText(tok Token, value string) string {
	v := f.opts.encode(value)
	end := tok.Value.End
	if tok.Value.Len() == 0 && v != "" && end < len(f.text) && isCommentMarker(f.text[end]) {
		v += " "
	}
	return v
}

func (f *File) formatEntry(key, value string) string {
	delim := "="
	if f.opts.PadDelimiter {
		delim = " = "
	}
	return key + delim + f.opts.encode(value)
}

// contentEnd returns the offset of the line break ending the line that
// holds pos, or len(text).
func contentEnd(text string, pos int) int {
	end := lineEnd(text, pos)
	if end < len(text) && end > pos && text[end-1] == '\r' {
		end--
	}
	return end
}
