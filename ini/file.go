// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import (
	"iter"
)

// A File is an INI buffer together with the options used to read and edit
// it. The zero value is an empty file with default options.
//
// Every read or write tokenizes the current text from the start, so a File
// holds no state besides its text. A File must not be used by multiple
// goroutines at once.
type File struct {
	text      string
	opts      Options
	lineBreak string
}

// New returns a File holding text. Nil options are treated identically as
// passing the zero value.
func New(text string, opts *Options) *File {
	f := new(File)
	if opts != nil {
		f.opts = *opts
	}
	f.SetText(text)
	return f
}

// Text returns the current buffer.
func (f *File) Text() string {
	if f == nil {
		return ""
	}
	return f.text
}

// SetText replaces the buffer and detects its line break style again.
func (f *File) SetText(text string) {
	f.text = text
	f.lineBreak = DetectLineBreak(text)
}

// Options returns a copy of the file's options.
func (f *File) Options() Options {
	if f == nil {
		return Options{}
	}
	return f.opts
}

// LineBreak returns the line break inserted by writes.
func (f *File) LineBreak() string {
	switch {
	case f.opts.LineBreak != "":
		return f.opts.LineBreak
	case f.lineBreak != "":
		return f.lineBreak
	default:
		return hostLineBreak()
	}
}

// Tokens returns the token sequence of the current buffer.
func (f *File) Tokens() iter.Seq[Token] {
	opts := f.Options()
	return Tokenize(f.Text(), &opts)
}

// MarshalText returns the buffer.
func (f *File) MarshalText() ([]byte, error) {
	return []byte(f.Text()), nil
}

// UnmarshalText replaces the buffer with data, keeping the options.
func (f *File) UnmarshalText(data []byte) error {
	f.SetText(string(data))
	return nil
}

// scope tracks whether the token walk is inside the requested section.
type scope struct {
	fold    func(string) string
	section string // folded
	global  bool
	in      bool
	seen    bool // a section header has been passed
}

func newScope(fold func(string) string, section string) *scope {
	return &scope{
		fold:    fold,
		section: fold(section),
		global:  section == "",
	}
}

// visit updates the scope with tok and reports whether tok is an entry in
// the requested section.
func (s *scope) visit(text string, tok Token) bool {
	switch tok.Kind {
	case Section:
		s.seen = true
		s.in = !s.global && s.fold(tok.Name.In(text)) == s.section
	case Entry:
		if s.global {
			return !s.seen
		}
		return s.in
	}
	return false
}

// exhausted reports whether no later token can be in scope.
func (s *scope) exhausted() bool {
	return s.global && s.seen
}
