// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import (
	"strings"
	"testing"
)

func TestWriteKeyValue(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		options *Options
		section string
		key     string
		value   string
		want    string
	}{
		{
			name:    "KeepsInlineComment",
			source:  "[A]\nx=1 ; note\n[B]\ny=2\n",
			section: "A",
			key:     "x",
			value:   "9",
			want:    "[A]\nx=9 ; note\n[B]\ny=2\n",
		},
		{
			name:    "KeepsSpacing",
			source:  "[S]\n  key  =  old  # c\n",
			section: "S",
			key:     "key",
			value:   "new value",
			want:    "[S]\n  key  =  new value  # c\n",
		},
		{
			name:    "EmptyValue",
			source:  "[S]\nk= ; c\n",
			section: "S",
			key:     "k",
			value:   "v",
			want:    "[S]\nk= v ; c\n",
		},
		{
			name:    "EmptyValueKeepsPadding",
			source:  "[S]\nk = ; c\n",
			section: "S",
			key:     "k",
			value:   "v",
			want:    "[S]\nk = v ; c\n",
		},
		{
			name:    "EmptyValueBeforeComment",
			source:  "[S]\nk=;c\n",
			section: "S",
			key:     "k",
			value:   "v",
			want:    "[S]\nk=v ;c\n",
		},
		{
			name:    "EmptyValueCRLF",
			source:  "[S]\r\nk = \r\nx=1\r\n",
			section: "S",
			key:     "k",
			value:   "v",
			want:    "[S]\r\nk = v\r\nx=1\r\n",
		},
		{
			name:    "ClearValue",
			source:  "[S]\nk = old\n",
			section: "S",
			key:     "k",
			value:   "",
			want:    "[S]\nk = \n",
		},
		{
			name:    "FirstOfDuplicates",
			source:  "[S]\nk=1\nk=2\n",
			section: "S",
			key:     "k",
			value:   "9",
			want:    "[S]\nk=9\nk=2\n",
		},
		{
			name:    "Global",
			source:  "k=v\n[S]\nk=v2\n",
			section: "",
			key:     "k",
			value:   "x",
			want:    "k=x\n[S]\nk=v2\n",
		},
		{
			name:    "SectionNotGlobal",
			source:  "k=v\n[S]\nk=v2\n",
			section: "S",
			key:     "k",
			value:   "y",
			want:    "k=v\n[S]\nk=y\n",
		},
		{
			name:    "IgnoreCase",
			source:  "[Srv]\nHOST=a\n",
			options: &Options{Comparison: IgnoreCase},
			section: "srv",
			key:     "host",
			value:   "b",
			want:    "[Srv]\nHOST=b\n",
		},
		{
			name:    "AppendToSection",
			source:  "[A]\nx=1 ; c\n[B]\ny=2\n",
			section: "A",
			key:     "z",
			value:   "3",
			want:    "[A]\nx=1 ; c\nz=3\n[B]\ny=2\n",
		},
		{
			name:    "AppendToLastSection",
			source:  "[A]\nx=1",
			section: "A",
			key:     "z",
			value:   "3",
			want:    "[A]\nx=1\nz=3",
		},
		{
			name:    "AppendToRepeatedSection",
			source:  "[A]\na=1\n[B]\n[A]\nb=2\n\n; end\n",
			section: "A",
			key:     "c",
			value:   "3",
			want:    "[A]\na=1\n[B]\n[A]\nb=2\nc=3\n\n; end\n",
		},
		{
			name:    "AppendToEmptySection",
			source:  "[A] ; first\n[B]\n",
			section: "A",
			key:     "k",
			value:   "v",
			want:    "[A] ; first\nk=v\n[B]\n",
		},
		{
			name:    "AppendCRLF",
			source:  "[A]\r\nx=1\r\n",
			section: "A",
			key:     "y",
			value:   "2",
			want:    "[A]\r\nx=1\r\ny=2\r\n",
		},
		{
			name:    "NewSection",
			source:  "[A]\nx=1\n",
			section: "B",
			key:     "y",
			value:   "2",
			want:    "[A]\nx=1\n\n[B]\ny=2\n",
		},
		{
			name:    "NewSectionPadded",
			source:  "[A]\r\nx=1",
			options: &Options{PadDelimiter: true},
			section: "B",
			key:     "y",
			value:   "2",
			want:    "[A]\r\nx=1\r\n[B]\r\ny = 2\r\n",
		},
		{
			name:    "NewSectionForcedLineBreak",
			source:  "",
			options: &Options{LineBreak: "\r\n"},
			section: "Sec",
			key:     "K",
			value:   "V",
			want:    "\r\n[Sec]\r\nK=V\r\n",
		},
		{
			name:    "AppendGlobal",
			source:  "a=1\n; comment\n",
			section: "",
			key:     "b",
			value:   "2",
			want:    "a=1\nb=2\n; comment\n",
		},
		{
			name:    "NewGlobal",
			source:  "; comment\n",
			section: "",
			key:     "k",
			value:   "v",
			want:    "; comment\n\nk=v",
		},
		{
			name:    "NewGlobalBeforeSections",
			source:  "; top\n  [S]\nk=v\n",
			section: "",
			key:     "g",
			value:   "1",
			want:    "; top\ng=1\n  [S]\nk=v\n",
		},
		{
			name:    "QuoteAndEscape",
			source:  "[S]\nk=old\n",
			options: &Options{Quote: true, Escape: true},
			section: "S",
			key:     "k",
			value:   "a\tb",
			want:    "[S]\nk=\"a\\tb\"\n",
		},
		{
			name:    "QuoteNewEntry",
			source:  "[S]\n",
			options: &Options{Quote: true, PadDelimiter: true},
			section: "S",
			key:     "k",
			value:   "v",
			want:    "[S]\nk = \"v\"\n",
		},
		{
			name:    "EmptyKey",
			source:  "[S]\n",
			section: "S",
			key:     "",
			value:   "v",
			want:    "[S]\n",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			f := New(test.source, test.options)
			f.WriteKeyValue(test.section, test.key, test.value)
			if got := f.Text(); got != test.want {
				t.Errorf("after WriteKeyValue(%q, %q, %q), Text() = %q; want %q",
					test.section, test.key, test.value, got, test.want)
			}
		})
	}
}

func TestWriteEmptyFile(t *testing.T) {
	lb := hostLineBreak()
	f := new(File)
	f.WriteKeyValue("Sec", "K", "V")
	want := lb + "[Sec]" + lb + "K=V" + lb
	if got := f.Text(); got != want {
		t.Errorf("Text() = %q; want %q", got, want)
	}
}

func TestWriteKeysValues(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		section string
		pairs   []KeyValue
		want    string
	}{
		{
			name:    "ExistingSection",
			source:  "[S]\na=1\n",
			section: "S",
			pairs:   []KeyValue{{"b", "2"}, {"a", "3"}, {"c", "4"}},
			want:    "[S]\na=3\nb=2\nc=4\n",
		},
		{
			name:    "NewSection",
			source:  "x=0\n",
			section: "N",
			pairs:   []KeyValue{{"a", "1"}, {"b", "2"}, {"a", "3"}},
			want:    "x=0\n\n[N]\na=3\nb=2\n",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			f := New(test.source, nil)
			f.WriteKeysValues(test.section, test.pairs...)
			if got := f.Text(); got != test.want {
				t.Errorf("Text() = %q; want %q", got, test.want)
			}
		})
	}
}

func TestWriteRoundTrip(t *testing.T) {
	const source = "; settings\n" +
		"global = 1\n" +
		"[server]\n" +
		"\thost = example.com ; public\n" +
		"[client]\n" +
		"retries: 3\n"
	values := []string{
		"",
		"plain",
		"with spaces",
		" padded ",
		"tab\there",
		`back\slash`,
		"new\nline",
	}
	for _, section := range []string{"", "server", "client", "fresh"} {
		for _, key := range []string{"host", "global", "retries", "added"} {
			for _, v := range values {
				f := New(source, &Options{Quote: true, Escape: true})
				f.WriteKeyValue(section, key, v)
				if got := f.ReadValue(section, key); got != v {
					t.Errorf("after WriteKeyValue(%q, %q, %q), ReadValue = %q\ntext:\n%s", section, key, v, got, f.Text())
				}
			}
		}
	}
}

func TestWritePreservesOtherBytes(t *testing.T) {
	const source = "# header\r\n" +
		"[S]\r\n" +
		"  name  :  before   ;; trailing\r\n" +
		"\r\n" +
		"other=value\r\n"
	f := New(source, nil)
	f.WriteKeyValue("S", "name", "after")
	got := f.Text()

	i := strings.Index(source, "before")
	prefix, suffix := source[:i], source[i+len("before"):]
	if !strings.HasPrefix(got, prefix) || !strings.HasSuffix(got, suffix) {
		t.Errorf("Text() = %q; want %q + value + %q", got, prefix, suffix)
	}
	if want := prefix + "after" + suffix; got != want {
		t.Errorf("Text() = %q; want %q", got, want)
	}
}

func TestDetectLineBreak(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"a\r\nb", "\r\n"},
		{"a\nb\r", "\r\n"},
		{"a\nb", "\n"},
		{"a\rb", "\r"},
		{"ab", hostLineBreak()},
		{"", hostLineBreak()},
	}
	for _, test := range tests {
		if got := DetectLineBreak(test.text); got != test.want {
			t.Errorf("DetectLineBreak(%q) = %q; want %q", test.text, got, test.want)
		}
	}
}

func TestWriteClearThenSet(t *testing.T) {
	f := New("[S]\nk = old ; c\nj = old\n", nil)
	f.WriteKeyValue("S", "k", "")
	f.WriteKeyValue("S", "j", "")
	if got, want := f.Text(), "[S]\nk =  ; c\nj = \n"; got != want {
		t.Fatalf("after clearing, Text() = %q; want %q", got, want)
	}
	f.WriteKeyValue("S", "k", "new")
	f.WriteKeyValue("S", "j", "new")
	if got, want := f.Text(), "[S]\nk =  new ; c\nj = new\n"; got != want {
		t.Errorf("after setting, Text() = %q; want %q", got, want)
	}
	if got := f.ReadValue("S", "j"); got != "new" {
		t.Errorf(`ReadValue("S", "j") = %q; want "new"`, got)
	}
}
