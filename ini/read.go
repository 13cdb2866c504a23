// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import (
	"fmt"
	"hash/maphash"
	"iter"
	"strconv"
)

// A KeyValue is a single entry's key and value.
type KeyValue struct {
	Key   string
	Value string
}

type entry struct {
	Token
	key   string
	value string // after quote trimming and unescaping
}

// entries returns the entries of section in document order. If all is true,
// the entries of every section are returned.
func (f *File) entries(section string, all bool) iter.Seq[entry] {
	text := f.Text()
	opts := f.Options()
	return func(yield func(entry) bool) {
		sc := newScope(opts.folder(), section)
		for tok := range Tokenize(text, &opts) {
			in := sc.visit(text, tok)
			if tok.Kind != Entry {
				if !all && sc.exhausted() {
					return
				}
				continue
			}
			if !in && !all {
				continue
			}
			e := entry{
				Token: tok,
				key:   tok.Key.In(text),
				value: opts.decode(tok.Value.In(text)),
			}
			if !yield(e) {
				return
			}
		}
	}
}

func (opts *Options) decode(v string) string {
	if opts.Quote {
		v = TrimQuotes(v)
	}
	if opts.Escape {
		v = Unescape(v)
	}
	return v
}

func (opts *Options) encode(v string) string {
	if opts.Escape {
		v = Escape(v)
	}
	if opts.Quote {
		v = Quote(v)
	}
	return v
}

// defaults substitutes default values for empty values. A single default
// replaces every empty value; otherwise defaults are consumed in order, one
// per empty value.
type defaults struct {
	list []string
	used int
}

func (d *defaults) apply(v string) string {
	if v != "" || len(d.list) == 0 {
		return v
	}
	if len(d.list) == 1 {
		return d.list[0]
	}
	if d.used < len(d.list) {
		v = d.list[d.used]
	}
	d.used++
	return v
}

// ReadValue returns the value of the first entry with the given key in the
// given section. Passing an empty section name searches for entries before
// the first section header. If the key is missing or its value is empty,
// ReadValue returns the first default, or the empty string if none was given.
func (f *File) ReadValue(section, key string, defaultValues ...string) string {
	v, _ := f.LookupValue(section, key)
	d := &defaults{list: defaultValues}
	return d.apply(v)
}

// LookupValue returns the value of the first entry with the given key in the
// given section and whether such an entry exists.
func (f *File) LookupValue(section, key string) (_ string, ok bool) {
	opts := f.Options()
	fold := opts.folder()
	want := fold(key)
	for e := range f.entries(section, false) {
		if fold(e.key) == want {
			return e.value, true
		}
	}
	return "", false
}

// ReadKey returns the key of the first entry in section whose value equals
// value, or the empty string if there is none.
func (f *File) ReadKey(section, value string) string {
	opts := f.Options()
	fold := opts.folder()
	want := fold(value)
	for e := range f.entries(section, false) {
		if fold(e.value) == want {
			return e.key
		}
	}
	return ""
}

// ReadValuesByKey returns the values of every entry with the given key in
// section, in document order.
func (f *File) ReadValuesByKey(section, key string, defaultValues ...string) []string {
	opts := f.Options()
	fold := opts.folder()
	want := fold(key)
	d := &defaults{list: defaultValues}
	var values []string
	for e := range f.entries(section, false) {
		if fold(e.key) == want {
			values = append(values, d.apply(e.value))
		}
	}
	return values
}

// ReadKeysByValue returns the keys of every entry in section whose value
// equals value, in document order.
func (f *File) ReadKeysByValue(section, value string) []string {
	opts := f.Options()
	fold := opts.folder()
	want := fold(value)
	var keys []string
	for e := range f.entries(section, false) {
		if fold(e.value) == want {
			keys = append(keys, e.key)
		}
	}
	return keys
}

// ReadValues returns the values of every entry in section.
func (f *File) ReadValues(section string, defaultValues ...string) []string {
	d := &defaults{list: defaultValues}
	var values []string
	for e := range f.entries(section, false) {
		values = append(values, d.apply(e.value))
	}
	return values
}

// ReadKeys returns the keys of every entry in section.
func (f *File) ReadKeys(section string) []string {
	var keys []string
	for e := range f.entries(section, false) {
		keys = append(keys, e.key)
	}
	return keys
}

// ReadKeysValues returns the entries of section with unique keys, in
// document order. A repeated key is dropped, or renamed with a generated
// suffix if the file allows duplicates. Suffixes differ between calls.
func (f *File) ReadKeysValues(section string, defaultValues ...string) []KeyValue {
	return f.collect(f.entries(section, false), defaultValues)
}

// ReadAllKeysValues is like ReadKeysValues but includes the entries of
// every section.
func (f *File) ReadAllKeysValues(defaultValues ...string) []KeyValue {
	return f.collect(f.entries("", true), defaultValues)
}

func (f *File) collect(seq iter.Seq[entry], defaultValues []string) []KeyValue {
	opts := f.Options()
	uk := newUniqueKeys(opts.folder(), opts.AllowDuplicates)
	d := &defaults{list: defaultValues}
	var kvs []KeyValue
	for e := range seq {
		key, ok := uk.add(e.key)
		if !ok {
			continue
		}
		kvs = append(kvs, KeyValue{Key: key, Value: d.apply(e.value)})
	}
	return kvs
}

// ReadSections returns the distinct section names in document order.
func (f *File) ReadSections() []string {
	text := f.Text()
	opts := f.Options()
	fold := opts.folder()
	seen := make(map[string]struct{})
	var names []string
	for tok := range f.Tokens() {
		if tok.Kind != Section {
			continue
		}
		name := tok.Name.In(text)
		if _, dup := seen[fold(name)]; dup {
			continue
		}
		seen[fold(name)] = struct{}{}
		names = append(names, name)
	}
	return names
}

// HasSection reports whether the file has a header for section. For the
// empty section name, it reports whether any entry precedes the first
// section header.
func (f *File) HasSection(section string) bool {
	if section == "" {
		for range f.entries("", false) {
			return true
		}
		return false
	}
	text := f.Text()
	opts := f.Options()
	fold := opts.folder()
	want := fold(section)
	for tok := range f.Tokens() {
		if tok.Kind == Section && fold(tok.Name.In(text)) == want {
			return true
		}
	}
	return false
}

// uniqueKeys assigns each key of an aggregate read a distinct name.
type uniqueKeys struct {
	fold  func(string) string
	allow bool
	seen  map[string]struct{}
	seed  maphash.Seed
	n     int
}

func newUniqueKeys(fold func(string) string, allowDuplicates bool) *uniqueKeys {
	return &uniqueKeys{
		fold:  fold,
		allow: allowDuplicates,
		seen:  make(map[string]struct{}),
		seed:  maphash.MakeSeed(),
	}
}

// add returns the name to use for key, or false if key is a duplicate that
// should be skipped.
func (uk *uniqueKeys) add(key string) (string, bool) {
	if uk.claim(key) {
		return key, true
	}
	if !uk.allow {
		return "", false
	}
	for {
		uk.n++
		h := maphash.String(uk.seed, strconv.Itoa(uk.n))
		if name := fmt.Sprintf("%s~%06x", key, h&0xffffff); uk.claim(name) {
			return name, true
		}
	}
}

func (uk *uniqueKeys) claim(name string) bool {
	k := uk.fold(name)
	if _, dup := uk.seen[k]; dup {
		return false
	}
	uk.seen[k] = struct{}{}
	return true
}
