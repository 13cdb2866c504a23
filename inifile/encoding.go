// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package inifile

import (
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Encoding is the character encoding of a file on disk.
type Encoding int

// Supported encodings.
const (
	UTF8 Encoding = iota
	UTF8BOM
	UTF16LE
	UTF16BE
	Windows1252
)

func (e Encoding) String() string {
	switch e {
	case UTF8:
		return "utf-8"
	case UTF8BOM:
		return "utf-8-bom"
	case UTF16LE:
		return "utf-16le"
	case UTF16BE:
		return "utf-16be"
	case Windows1252:
		return "windows-1252"
	default:
		return fmt.Sprintf("Encoding(%d)", int(e))
	}
}

var (
	bomUTF8    = []byte{0xef, 0xbb, 0xbf}
	bomUTF16LE = []byte{0xff, 0xfe}
	bomUTF16BE = []byte{0xfe, 0xff}
)

// DetectEncoding guesses the encoding of data from its byte order mark.
// Data without a byte order mark is UTF-8 if it is valid UTF-8 and
// Windows-1252 otherwise.
func DetectEncoding(data []byte) Encoding {
	switch {
	case bytes.HasPrefix(data, bomUTF8):
		return UTF8BOM
	case bytes.HasPrefix(data, bomUTF16LE):
		return UTF16LE
	case bytes.HasPrefix(data, bomUTF16BE):
		return UTF16BE
	case utf8.Valid(data):
		return UTF8
	default:
		return Windows1252
	}
}

// textEncoding returns the x/text encoding for e. Decoders strip the byte
// order mark and encoders write it.
func (e Encoding) textEncoding() encoding.Encoding {
	switch e {
	case UTF8BOM:
		return unicode.UTF8BOM
	case UTF16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM)
	case UTF16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM)
	case Windows1252:
		return charmap.Windows1252
	default:
		return encoding.Nop
	}
}

// Decode detects the encoding of data and converts it to a UTF-8 string.
func Decode(data []byte) (string, Encoding, error) {
	enc := DetectEncoding(data)
	if enc == UTF8 {
		return string(data), enc, nil
	}
	text, _, err := transform.Bytes(enc.textEncoding().NewDecoder(), data)
	if err != nil {
		return "", enc, fmt.Errorf("decode %v: %w", enc, err)
	}
	return string(text), enc, nil
}

// Encode converts text to enc, including a byte order mark if enc has one.
func Encode(w io.Writer, text string, enc Encoding) (int64, error) {
	cw := &countWriter{w: w}
	tw := transform.NewWriter(cw, enc.textEncoding().NewEncoder())
	if _, err := io.WriteString(tw, text); err != nil {
		return cw.n, fmt.Errorf("encode %v: %w", enc, err)
	}
	if err := tw.Close(); err != nil {
		return cw.n, fmt.Errorf("encode %v: %w", enc, err)
	}
	return cw.n, nil
}

type countWriter struct {
	w io.Writer
	n int64
}

func (cw *countWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}
