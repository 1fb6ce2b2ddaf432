// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render serializes a paginated Document to a concrete file format.
// WriteFile owns the output file for the duration of one write: the document
// goes to a temporary file next to the destination and is renamed into place
// only after it was written and closed, so a failed write never leaves a
// partial artifact at the destination path.
package render

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Sneha-B6/P-1/pkg/types"
)

// Writer serializes a Document to w.
type Writer interface {
	Write(w io.Writer, doc types.Document) error
}

// WriteError reports a failure to produce the output file.
type WriteError struct {
	Path string
	Op   string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing %s: %s: %v", e.Path, e.Op, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// ForFormat returns the Writer for format.
func ForFormat(format types.OutputFormat) (Writer, error) {
	switch format {
	case types.FormatPDF, "":
		return &PDFWriter{}, nil
	case types.FormatText:
		return &TextWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format %q: use pdf or text", format)
	}
}

// WriteFile writes doc to path with w. On any failure the temporary file is
// closed and removed and a *WriteError is returned; the destination is left
// untouched.
func WriteFile(path string, w Writer, doc types.Document) (err error) {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return &WriteError{Path: path, Op: "create", Err: err}
	}
	tmp := f.Name()
	closed := false
	defer func() {
		if err == nil {
			return
		}
		if !closed {
			f.Close()
		}
		os.Remove(tmp)
	}()

	if err := w.Write(f, doc); err != nil {
		return &WriteError{Path: path, Op: "render", Err: err}
	}
	if err := f.Chmod(0o644); err != nil {
		return &WriteError{Path: path, Op: "chmod", Err: err}
	}
	if err := f.Sync(); err != nil {
		return &WriteError{Path: path, Op: "sync", Err: err}
	}
	closed = true
	if err := f.Close(); err != nil {
		return &WriteError{Path: path, Op: "close", Err: err}
	}
	if err := os.Rename(tmp, path); err != nil {
		return &WriteError{Path: path, Op: "rename", Err: err}
	}
	return nil
}
