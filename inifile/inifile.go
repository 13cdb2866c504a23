// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

// Package inifile loads INI files from disk, edits them with package ini and
// writes them back in their original encoding.
package inifile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/yourbase/inisplice/ini"
	"zombiezen.com/go/log"
)

// ErrIsDirectory is returned when a path names a directory.
var ErrIsDirectory = errors.New("is a directory")

// A Document is an INI file together with where it came from.
type Document struct {
	*ini.File

	// Path is the file's location on disk. It is empty for documents that
	// were not read from disk.
	Path string
	// Encoding is used when the document is written.
	Encoding Encoding
}

// NewDocument returns a UTF-8 document holding text. Nil options are treated
// identically as passing the zero value.
func NewDocument(text string, opts *ini.Options) *Document {
	return &Document{File: ini.New(text, opts)}
}

// Open reads the INI file at path. Missing files are reported with an error
// for which errors.Is(err, fs.ErrNotExist) reports true.
func Open(ctx context.Context, path string, opts *ini.Options) (*Document, error) {
	if err := validatePath(path); err != nil {
		return nil, fmt.Errorf("open ini file: %w", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open ini file: %w", err)
	}
	doc, err := decode(ctx, data, opts)
	if err != nil {
		return nil, fmt.Errorf("open ini file %s: %w", path, err)
	}
	doc.Path = path
	return doc, nil
}

// Parse reads an INI file from r.
func Parse(ctx context.Context, r io.Reader, opts *ini.Options) (*Document, error) {
	if r == nil {
		panic("inifile.Parse(ctx, nil, ...)")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("parse ini file: %w", err)
	}
	doc, err := decode(ctx, data, opts)
	if err != nil {
		return nil, fmt.Errorf("parse ini file: %w", err)
	}
	return doc, nil
}

func decode(ctx context.Context, data []byte, opts *ini.Options) (*Document, error) {
	text, enc, err := Decode(data)
	if err != nil {
		return nil, err
	}
	log.Debugf(ctx, "Decoded %d bytes of %v INI text", len(data), enc)
	return &Document{
		File:     ini.New(text, opts),
		Encoding: enc,
	}, nil
}

func validatePath(path string) error {
	if path == "" {
		return errors.New("empty path")
	}
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s: %w", path, ErrIsDirectory)
	}
	return nil
}

// WriteTo writes the document's text to w in the document's encoding.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	return Encode(w, d.Text(), d.Encoding)
}

// Save writes the document back to its Path.
func (d *Document) Save(ctx context.Context) error {
	if d.Path == "" {
		return errors.New("save ini file: document has no path")
	}
	return d.SaveAs(ctx, d.Path)
}

// SaveAs writes the document to path and makes path the document's Path.
// The file is replaced atomically: readers observe either the old or the
// new content.
func (d *Document) SaveAs(ctx context.Context, path string) (err error) {
	if path == "" {
		return errors.New("save ini file: empty path")
	}
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		if info.IsDir() {
			return fmt.Errorf("save ini file: %s: %w", path, ErrIsDirectory)
		}
		mode = info.Mode().Perm()
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("save ini file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()
	n, err := d.WriteTo(tmp)
	if err != nil {
		return fmt.Errorf("save ini file %s: %w", path, err)
	}
	if err := tmp.Chmod(mode); err != nil {
		return fmt.Errorf("save ini file %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save ini file %s: %w", path, err)
	}
	if err := replaceFile(ctx, tmp.Name(), path); err != nil {
		return fmt.Errorf("save ini file: %w", err)
	}
	d.Path = path
	log.Infof(ctx, "Wrote %s (%d bytes, %v)", path, n, d.Encoding)
	return nil
}
