// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import (
	"strings"
	"unicode/utf8"
)

// Escape replaces backslashes and the control characters NUL, BEL, BS, LF,
// CR, FF, HT and VT with their two-character backslash forms. All other
// characters are unchanged.
func Escape(v string) string {
	if !strings.ContainsAny(v, "\\\x00\a\b\n\r\f\t\v") {
		return v
	}
	sb := new(strings.Builder)
	sb.Grow(len(v) + 2)
	for i := 0; i < len(v); i++ {
		if e := escapeByte(v[i]); e != 0 {
			sb.WriteByte('\\')
			sb.WriteByte(e)
		} else {
			sb.WriteByte(v[i])
		}
	}
	return sb.String()
}

// escapeByte returns the escape letter for c or 0 if c is written verbatim.
func escapeByte(c byte) byte {
	switch c {
	case '\\':
		return '\\'
	case 0:
		return '0'
	case '\a':
		return 'a'
	case '\b':
		return 'b'
	case '\n':
		return 'n'
	case '\r':
		return 'r'
	case '\f':
		return 'f'
	case '\t':
		return 't'
	case '\v':
		return 'v'
	default:
		return 0
	}
}

// Unescape interprets the backslash sequences produced by Escape along with
// \uXXXX, \xXX and \cL (control-L). Malformed hex digits and \c sequences that
// do not name a control character produce '?'. Hex digits end at the first
// non-ASCII byte, so valid UTF-8 input yields valid UTF-8. Unknown escapes are
// kept verbatim. Unescape never fails.
func Unescape(v string) string {
	i := strings.IndexByte(v, '\\')
	if i < 0 {
		return v
	}
	sb := new(strings.Builder)
	sb.Grow(len(v))
	sb.WriteString(v[:i])
	for ; i < len(v); i++ {
		c := v[i]
		if c != '\\' || i+1 >= len(v) {
			sb.WriteByte(c)
			continue
		}
		i++
		switch e := v[i]; e {
		case '\\':
			sb.WriteByte('\\')
		case '0':
			sb.WriteByte(0)
		case 'a':
			sb.WriteByte('\a')
		case 'b':
			sb.WriteByte('\b')
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 'f':
			sb.WriteByte('\f')
		case 't':
			sb.WriteByte('\t')
		case 'v':
			sb.WriteByte('\v')
		case 'u', 'x':
			width := 4
			if e == 'x' {
				width = 2
			}
			n := 0
			for n < width && i+1+n < len(v) && v[i+1+n] < utf8.RuneSelf {
				n++
			}
			digits := v[i+1 : i+1+n]
			i += n
			if r, ok := parseHex(digits, width); ok {
				sb.WriteRune(r)
			} else {
				sb.WriteByte('?')
			}
		case 'c':
			if i+1 >= len(v) {
				sb.WriteString(`\c`)
				continue
			}
			r, n := utf8.DecodeRuneInString(v[i+1:])
			i += n
			if r >= utf8.RuneSelf {
				sb.WriteByte('?')
				continue
			}
			ctl := upper(byte(r)) ^ 0x40
			if ctl < 0x20 {
				sb.WriteByte(ctl)
			} else {
				sb.WriteByte('?')
			}
		default:
			sb.WriteByte('\\')
			sb.WriteByte(e)
		}
	}
	return sb.String()
}

func parseHex(digits string, width int) (rune, bool) {
	if len(digits) != width {
		return 0, false
	}
	var r rune
	for i := 0; i < len(digits); i++ {
		if !isHexDigit(digits[i]) {
			return 0, false
		}
		r = r<<4 | rune(fromHex(digits[i]))
	}
	return r, true
}

func isHexDigit(c byte) bool {
	return '0' <= c && c <= '9' ||
		'a' <= c && c <= 'f' ||
		'A' <= c && c <= 'F'
}

func fromHex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 0xa
	case 'A' <= c && c <= 'F':
		return c - 'A' + 0xa
	default:
		panic("invalid hex digit")
	}
}

func upper(c byte) byte {
	if 'a' <= c && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}

// TrimQuotes removes at most one leading and one trailing double quote from v.
// The quotes need not be paired.
func TrimQuotes(v string) string {
	v = strings.TrimPrefix(v, `"`)
	return strings.TrimSuffix(v, `"`)
}

// Quote surrounds v with double quotes.
func Quote(v string) string {
	return `"` + v + `"`
}
