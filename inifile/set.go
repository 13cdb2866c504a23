// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package inifile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/yourbase/inisplice/ini"
	"zombiezen.com/go/log"
)

// FileSet is a list of documents to obtain configuration from in descending
// order of precedence. Nil elements are skipped by reads.
type FileSet []*Document

// OpenFiles opens the files at the given paths and returns a FileSet.
// If the returned error is nil, the returned file set's length will be the same
// as the number of arguments. OpenFiles will stop on the first error, but
// ignores missing file errors, instead filling the corresponding element of the
// set with a nil *Document.
func OpenFiles(ctx context.Context, opts *ini.Options, paths ...string) (FileSet, error) {
	fset := make(FileSet, 0, len(paths))
	for _, p := range paths {
		doc, err := Open(ctx, p, opts)
		if errors.Is(err, fs.ErrNotExist) {
			log.Debugf(ctx, "Skipping missing %s", p)
			fset = append(fset, nil)
			continue
		}
		if err != nil {
			return fset, fmt.Errorf("open ini files: %w", err)
		}
		fset = append(fset, doc)
	}
	return fset, nil
}

// LookupValue returns the value of key in section from the first document
// that has it.
func (fset FileSet) LookupValue(section, key string) (_ string, ok bool) {
	for _, d := range fset {
		if d == nil {
			continue
		}
		if v, ok := d.LookupValue(section, key); ok {
			return v, true
		}
	}
	return "", false
}

// ReadValue returns the value of key in section from the first document that
// has it. If no document has it or the value is empty, ReadValue returns the
// first default, or the empty string if none was given.
func (fset FileSet) ReadValue(section, key string, defaultValues ...string) string {
	v, _ := fset.LookupValue(section, key)
	if v == "" && len(defaultValues) > 0 {
		return defaultValues[0]
	}
	return v
}

// ReadValuesByKey returns all the values of key in section, starting with the
// document of lowest precedence. Defaults fill empty values as in
// ini.File.ReadValuesByKey, counted across the whole set.
func (fset FileSet) ReadValuesByKey(section, key string, defaultValues ...string) []string {
	var values []string
	for i := len(fset) - 1; i >= 0; i-- {
		if fset[i] == nil {
			continue
		}
		values = append(values, fset[i].ReadValuesByKey(section, key)...)
	}
	used := 0
	for i, v := range values {
		if v != "" || len(defaultValues) == 0 {
			continue
		}
		switch {
		case len(defaultValues) == 1:
			values[i] = defaultValues[0]
		case used < len(defaultValues):
			values[i] = defaultValues[used]
		}
		used++
	}
	return values
}

// ReadKeysValues merges the entries of section across the set. A key takes
// its spelling and value from the document of highest precedence that has
// it. Keys are matched with the set's comparison rule.
func (fset FileSet) ReadKeysValues(section string) []ini.KeyValue {
	opts := fset.options()
	var merged []ini.KeyValue
	index := make(map[string]int)
	for i := len(fset) - 1; i >= 0; i-- {
		if fset[i] == nil {
			continue
		}
		for _, kv := range fset[i].ReadKeysValues(section) {
			k := opts.Fold(kv.Key)
			if j, ok := index[k]; ok {
				merged[j] = kv
				continue
			}
			index[k] = len(merged)
			merged = append(merged, kv)
		}
	}
	return merged
}

// ReadSections returns the names of sections in any document, in the order
// they first appear starting with the document of highest precedence. Names
// are matched with the set's comparison rule.
func (fset FileSet) ReadSections() []string {
	opts := fset.options()
	var names []string
	seen := make(map[string]struct{})
	for _, d := range fset {
		if d == nil {
			continue
		}
		for _, name := range d.ReadSections() {
			k := opts.Fold(name)
			if _, dup := seen[k]; !dup {
				seen[k] = struct{}{}
				names = append(names, name)
			}
		}
	}
	return names
}

// options returns the options of the first non-nil document.
func (fset FileSet) options() *ini.Options {
	for _, d := range fset {
		if d != nil {
			opts := d.Options()
			return &opts
		}
	}
	return new(ini.Options)
}

// WriteKeyValue sets the value on the first document. WriteKeyValue will
// panic if len(fset) == 0. If fset[0] == nil, WriteKeyValue allocates a new
// Document using the options of the first non-nil document.
func (fset FileSet) WriteKeyValue(section, key, value string) {
	if fset[0] == nil {
		fset[0] = NewDocument("", fset.options())
	}
	fset[0].WriteKeyValue(section, key, value)
}
