// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import (
	"testing"
	"unicode/utf8"
)

func TestEscape(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{"", ""},
		{"plain text", "plain text"},
		{`C:\dir`, `C:\\dir`},
		{"a\x00b", `a\0b`},
		{"\a\b\f\v", `\a\b\f\v`},
		{"line1\r\nline2\tend", `line1\r\nline2\tend`},
		{"\"quoted\" ünïcode", "\"quoted\" ünïcode"},
	}
	for _, test := range tests {
		if got := Escape(test.value); got != test.want {
			t.Errorf("Escape(%q) = %q; want %q", test.value, got, test.want)
		}
	}
}

func TestUnescape(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{"", ""},
		{"no escapes", "no escapes"},
		{`C:\\dir`, `C:\dir`},
		{`a\0b`, "a\x00b"},
		{`\a\b\f\v\n\r\t`, "\a\b\f\v\n\r\t"},
		{`\u00e9t\u00C9`, "étÉ"},
		{`\x41\x7a`, "Az"},
		{`\xZZ!`, "?!"},
		{`\u12G4.`, "?."},
		{`\x4`, "?"},
		{`\cA\cz\c[`, "\x01\x1a\x1b"},
		{`\c1`, "?"},
		{`\c`, `\c`},
		{`\cé!`, "?!"},
		{`\x1é`, "?é"},
		{`\u00é1`, "?é1"},
		{`\q\"`, `\q\"`},
		{`trailing\`, `trailing\`},
	}
	for _, test := range tests {
		got := Unescape(test.value)
		if got != test.want {
			t.Errorf("Unescape(%q) = %q; want %q", test.value, got, test.want)
		}
		if utf8.ValidString(test.value) && !utf8.ValidString(got) {
			t.Errorf("Unescape(%q) = %q; not valid UTF-8", test.value, got)
		}
	}
}

func TestEscapeRoundTrip(t *testing.T) {
	values := []string{
		"",
		`\`,
		"\x00\a\b\n\r\f\t\v\\",
		`already \n escaped`,
		"mixed\tvalue with ünïcode\r\n",
	}
	for _, v := range values {
		if got := Unescape(Escape(v)); got != v {
			t.Errorf("Unescape(Escape(%q)) = %q", v, got)
		}
	}
}

func TestTrimQuotes(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{`"quoted"`, "quoted"},
		{`"leading`, "leading"},
		{`trailing"`, "trailing"},
		{`""double""`, `"double"`},
		{`"`, ""},
		{`unquoted`, "unquoted"},
		{` "spaced" `, ` "spaced" `},
	}
	for _, test := range tests {
		if got := TrimQuotes(test.value); got != test.want {
			t.Errorf("TrimQuotes(%q) = %q; want %q", test.value, got, test.want)
		}
	}
}
