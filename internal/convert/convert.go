// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert decodes business-requirements documents (plain text, DOCX,
// PDF) into plain text for the generation stage. Decoding is best effort:
// layout, tables and images are dropped.
package convert

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Sneha-B6/P-1/pkg/types"
)

var (
	// ErrUnsupportedFormat is returned for files whose extension has no converter.
	ErrUnsupportedFormat = errors.New("unsupported BRD format")

	// ErrEmptyText is returned when a file decodes to no text at all.
	ErrEmptyText = errors.New("no text decoded")
)

// Converter turns one BRD file into plain text.
type Converter interface {
	Convert(path string) (string, error)
}

// ExternalConverter is a converter for formats outside the built-in set,
// such as the markitdown container.
type ExternalConverter interface {
	Converter
	Handles(path string) bool
}

// Decoder selects converters by extension. External, when set, handles the
// extensions it claims that no built-in converter reads.
type Decoder struct {
	External ExternalConverter
}

// ForPath selects the built-in converter for path by its extension.
func ForPath(path string) (Converter, types.BRDFormat, error) {
	return Decoder{}.ForPath(path)
}

// ConvertFile decodes the BRD at path with the built-in converters.
func ConvertFile(path string) (types.BRD, error) {
	return Decoder{}.ConvertFile(path)
}

// ConvertBatch decodes paths with the built-in converters; see
// Decoder.ConvertBatch.
func ConvertBatch(paths []string, outDir string, w io.Writer) BatchResult {
	return Decoder{}.ConvertBatch(paths, outDir, w)
}

// ForPath selects the converter for path by its extension.
func (d Decoder) ForPath(path string) (Converter, types.BRDFormat, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".txt", ".md", ".text":
		return TextConverter{}, types.BRDText, nil
	case ".docx":
		return DocxConverter{}, types.BRDDocx, nil
	case ".pdf":
		return PDFConverter{}, types.BRDPDF, nil
	}
	if d.External != nil && d.External.Handles(path) {
		return d.External, types.BRDFormat(strings.TrimPrefix(ext, ".")), nil
	}
	return nil, "", fmt.Errorf("%w: %s (use .txt, .docx or .pdf)", ErrUnsupportedFormat, filepath.Base(path))
}

// ConvertFile decodes the BRD at path.
func (d Decoder) ConvertFile(path string) (types.BRD, error) {
	c, format, err := d.ForPath(path)
	if err != nil {
		return types.BRD{}, err
	}
	brd := types.BRD{Path: path, Format: format}

	text, err := c.Convert(path)
	if err != nil {
		brd.Status = types.ConversionFailed
		return brd, fmt.Errorf("converting %s: %w", path, err)
	}
	if strings.TrimSpace(text) == "" {
		brd.Status = types.ConversionFailed
		return brd, fmt.Errorf("converting %s: %w", path, ErrEmptyText)
	}

	brd.Text = text
	brd.Status = types.ConversionDone
	return brd, nil
}

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int
}

// Total returns the total number of files processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any file failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// ConvertBatch decodes each path and writes outDir/<name>.txt, printing
// per-file status to w. Files whose text output already exists are skipped.
func (d Decoder) ConvertBatch(paths []string, outDir string, w io.Writer) BatchResult {
	var result BatchResult

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", outDir, err)
		result.Failed = len(paths)
		return result
	}

	for _, p := range paths {
		base := strings.TrimSuffix(filepath.Base(p), filepath.Ext(p))
		txtPath := filepath.Join(outDir, base+".txt")

		if _, err := os.Stat(txtPath); err == nil {
			fmt.Fprintf(w, "skipped: %s (already exists)\n", base)
			result.Skipped++
			continue
		}

		brd, err := d.ConvertFile(p)
		if err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
			result.Failed++
			continue
		}

		if err := os.WriteFile(txtPath, []byte(brd.Text), 0o644); err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
			result.Failed++
			continue
		}

		fmt.Fprintf(w, "converted: %s (%s)\n", base, brd.Format)
		result.Converted++
	}

	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())
	return result
}

// TextConverter reads UTF-8 text files.
type TextConverter struct{}

// Convert returns the file contents with a leading BOM removed and invalid
// UTF-8 replaced.
func (TextConverter) Convert(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	return strings.ToValidUTF8(string(data), "�"), nil
}
