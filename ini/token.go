// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import (
	"fmt"
	"iter"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Kind is the classification of a Token.
type Kind uint8

// Token kinds.
const (
	Undefined Kind = iota
	Comment
	Section
	Entry
	LineBreak
	Whitespace
)

var kindNames = [...]string{
	Undefined:  "undefined",
	Comment:    "comment",
	Section:    "section",
	Entry:      "entry",
	LineBreak:  "line-break",
	Whitespace: "whitespace",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// A Span is a half-open byte range [Start, End) of a buffer.
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes in the span.
func (s Span) Len() int { return s.End - s.Start }

// In returns the text of the span.
func (s Span) In(text string) string { return text[s.Start:s.End] }

// A Token is a classified span of an INI buffer. Which sub-spans are set
// depends on Kind:
//
//	Entry:   Key, Delim, Value
//	Section: Open, Name, Close (Close is empty for an unclosed lenient header)
//	Comment: Marker, Text
//
// An empty Value sits after the blanks that follow the delimiter, so it may
// start past the end of the entry's own span.
type Token struct {
	Kind Kind
	Span

	Key   Span
	Delim Span
	Value Span

	Open  Span
	Name  Span
	Close Span

	Marker Span
	Text   Span
}

// Tokenize returns the token sequence of text. The tokens partition text:
// concatenating every token's span in order reproduces text exactly. Each
// range over the sequence starts again from the beginning of text.
// Tokenize never fails; lines that are neither comments, sections nor entries
// are reported as Undefined runs.
func Tokenize(text string, opts *Options) iter.Seq[Token] {
	lenient := opts != nil && opts.LenientSections
	return func(yield func(Token) bool) {
		for pos := 0; pos < len(text); {
			tok := next(text, pos, lenient)
			if !yield(tok) {
				return
			}
			pos = tok.End
		}
	}
}

// next classifies the token starting at pos. pos < len(text).
func next(text string, pos int, lenient bool) Token {
	switch {
	case text[pos] == '\n':
		return Token{Kind: LineBreak, Span: Span{pos, pos + 1}}
	case strings.HasPrefix(text[pos:], "\r\n"):
		return Token{Kind: LineBreak, Span: Span{pos, pos + 2}}
	}
	if r, _ := utf8.DecodeRuneInString(text[pos:]); isBlank(r) {
		end := pos
		for end < len(text) && !strings.HasPrefix(text[end:], "\r\n") {
			r, n := utf8.DecodeRuneInString(text[end:])
			if !isBlank(r) {
				break
			}
			end += n
		}
		return Token{Kind: Whitespace, Span: Span{pos, end}}
	}

	eol := lineEnd(text, pos)
	if tok, ok := scanComment(text, pos, eol); ok {
		return tok
	}
	if tok, ok := scanSection(text, pos, eol, lenient); ok {
		return tok
	}
	if tok, ok := scanEntry(text, pos, eol); ok {
		return tok
	}
	end := pos
	for end < len(text) {
		r, n := utf8.DecodeRuneInString(text[end:])
		if unicode.IsSpace(r) {
			break
		}
		end += n
	}
	return Token{Kind: Undefined, Span: Span{pos, end}}
}

func scanComment(text string, pos, eol int) (Token, bool) {
	if !isCommentMarker(text[pos]) {
		return Token{}, false
	}
	marker := pos
	for marker < eol && isCommentMarker(text[marker]) {
		marker++
	}
	start := skipBlanks(text, marker, eol)
	end := trimBlanksRight(text, start, eol)
	if end == start {
		start, end = marker, marker
	}
	return Token{
		Kind:   Comment,
		Span:   Span{pos, end},
		Marker: Span{pos, marker},
		Text:   Span{start, end},
	}, true
}

func scanSection(text string, pos, eol int, lenient bool) (Token, bool) {
	if text[pos] != '[' {
		return Token{}, false
	}
	closing := strings.IndexByte(text[pos+1:eol], ']')
	contentEnd := eol
	if closing >= 0 {
		contentEnd = pos + 1 + closing
	} else if !lenient {
		return Token{}, false
	}
	nameStart := skipBlanks(text, pos+1, contentEnd)
	nameEnd := trimBlanksRight(text, nameStart, contentEnd)
	if nameEnd <= nameStart {
		return Token{}, false
	}
	tok := Token{
		Kind: Section,
		Open: Span{pos, pos + 1},
		Name: Span{nameStart, nameEnd},
	}
	if closing >= 0 {
		tok.Close = Span{contentEnd, contentEnd + 1}
		tok.Span = Span{pos, contentEnd + 1}
	} else {
		tok.Close = Span{nameEnd, nameEnd}
		tok.Span = Span{pos, nameEnd}
	}
	return tok, true
}

func scanEntry(text string, pos, eol int) (Token, bool) {
	// The key may not cross '=', '[' or ']'. If '=' ends that run it is the
	// delimiter, otherwise the last ':' inside the run is.
	run := pos
	for run < eol && !strings.ContainsRune("=[]", rune(text[run])) {
		run++
	}
	delim := -1
	if run < eol && text[run] == '=' {
		delim = run
	} else if i := strings.LastIndexByte(text[pos:run], ':'); i >= 0 {
		delim = pos + i
	}
	if delim < 0 {
		return Token{}, false
	}
	keyEnd := trimBlanksRight(text, pos, delim)
	if keyEnd <= pos {
		return Token{}, false
	}
	contentEnd := eol
	if contentEnd > delim+1 && text[contentEnd-1] == '\r' && contentEnd < len(text) {
		contentEnd--
	}
	valueStart := skipBlanks(text, delim+1, contentEnd)
	valueEnd := valueStart
	for valueEnd < contentEnd && !isCommentMarker(text[valueEnd]) {
		valueEnd++
	}
	valueEnd = trimBlanksRight(text, valueStart, valueEnd)
	tok := Token{
		Kind:  Entry,
		Key:   Span{pos, keyEnd},
		Delim: Span{delim, delim + 1},
		Value: Span{valueStart, valueEnd},
	}
	if valueEnd > valueStart {
		tok.Span = Span{pos, valueEnd}
	} else {
		// The blanks after the delimiter stay a Whitespace token.
		tok.Span = Span{pos, delim + 1}
	}
	return tok, true
}

func isCommentMarker(c byte) bool {
	return c == '#' || c == ';'
}

// isBlank reports whether r is whitespace that does not end a line.
func isBlank(r rune) bool {
	return r != '\n' && unicode.IsSpace(r)
}

// lineEnd returns the offset of the '\n' ending the line holding pos, or
// len(text).
func lineEnd(text string, pos int) int {
	if i := strings.IndexByte(text[pos:], '\n'); i >= 0 {
		return pos + i
	}
	return len(text)
}

func skipBlanks(text string, start, end int) int {
	for start < end {
		r, n := utf8.DecodeRuneInString(text[start:end])
		if !isBlank(r) {
			break
		}
		start += n
	}
	return start
}

func trimBlanksRight(text string, start, end int) int {
	for end > start {
		r, n := utf8.DecodeLastRuneInString(text[start:end])
		if !isBlank(r) {
			break
		}
		end -= n
	}
	return end
}
