// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sneha-B6/P-1/internal/container"
	"github.com/Sneha-B6/P-1/internal/layout"
	"github.com/Sneha-B6/P-1/internal/render"
	"github.com/Sneha-B6/P-1/pkg/types"
)

const documentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:pPr><w:pStyle w:val="Heading1"/></w:pPr><w:r><w:t>Cargo Booking BRD</w:t></w:r></w:p>
    <w:p><w:r><w:t xml:space="preserve">Shippers book </w:t></w:r><w:r><w:t>cargo slots.</w:t></w:r></w:p>
    <w:p></w:p>
    <w:p><w:r><w:t>Step</w:t><w:tab/><w:t>one</w:t></w:r></w:p>
  </w:body>
</w:document>`

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func writeDocx(t *testing.T, dir, name, body string) string {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("[Content_Types].xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(`<Types/>`))
	require.NoError(t, err)
	if body != "" {
		w, err = zw.Create(docxBody)
		require.NoError(t, err)
		_, err = w.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return writeFile(t, dir, name, buf.Bytes())
}

func TestForPath(t *testing.T) {
	tests := []struct {
		path   string
		format types.BRDFormat
		ok     bool
	}{
		{"brd.txt", types.BRDText, true},
		{"BRD.TXT", types.BRDText, true},
		{"notes.md", types.BRDText, true},
		{"brd.docx", types.BRDDocx, true},
		{"brd.pdf", types.BRDPDF, true},
		{"brd.doc", "", false},
		{"brd", "", false},
	}
	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			c, format, err := ForPath(tc.path)
			if !tc.ok {
				require.ErrorIs(t, err, ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, c)
			assert.Equal(t, tc.format, format)
		})
	}
}

func TestTextConverter(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "brd.txt", []byte("\xef\xbb\xbfCargo BRD\nbad \xff byte"))

	text, err := TextConverter{}.Convert(path)
	require.NoError(t, err)
	assert.Equal(t, "Cargo BRD\nbad � byte", text)
}

func TestDocxConverter(t *testing.T) {
	dir := t.TempDir()
	path := writeDocx(t, dir, "brd.docx", documentXML)

	text, err := DocxConverter{}.Convert(path)
	require.NoError(t, err)
	assert.Equal(t, "Cargo Booking BRD\nShippers book cargo slots.\nStep\tone", text)
}

func TestDocxConverterMissingBody(t *testing.T) {
	path := writeDocx(t, t.TempDir(), "brd.docx", "")

	_, err := DocxConverter{}.Convert(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), docxBody)
}

func TestDocxConverterNotAZip(t *testing.T) {
	path := writeFile(t, t.TempDir(), "brd.docx", []byte("plain text"))

	_, err := DocxConverter{}.Convert(path)
	require.Error(t, err)
}

func TestPDFConverterReadsRenderedDocument(t *testing.T) {
	fs := types.FieldSet{
		{Label: types.LabelActors, Content: "Shipper, Carrier", Found: true},
		{Label: types.LabelPreconditions, Content: "Valid manifest exists", Found: true},
	}
	doc, err := layout.Paginate(fs, types.DefaultPageGeometry())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "brd.pdf")
	require.NoError(t, render.WriteFile(path, &render.PDFWriter{}, doc))

	text, err := PDFConverter{}.Convert(path)
	require.NoError(t, err)
	for _, want := range []string{"Use Case Document", "Actors:", "Shipper, Carrier", "Preconditions:", "Valid manifest exists"} {
		assert.Contains(t, text, want)
	}
}

func TestContentText(t *testing.T) {
	stream := []byte(`BT /F1 12 Tf 28.35 800 Td (Main Flow:) Tj ET
% comment (ignored) Tj
BT 28.35 780 Td [(Book) -250 (ing)] TJ 0 -14 Td (escaped \(x\) \101) Tj T* <48692E> Tj ET
<< /Type /XObject >>`)

	assert.Equal(t, "Main Flow:\nBooking\nescaped (x) A\nHi.", contentText(stream))
}

func TestConvertFileEmpty(t *testing.T) {
	path := writeFile(t, t.TempDir(), "empty.txt", []byte("  \n\t"))

	brd, err := ConvertFile(path)
	require.ErrorIs(t, err, ErrEmptyText)
	assert.Equal(t, types.ConversionFailed, brd.Status)
}

func TestConvertFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "brd.txt", []byte("Shippers book cargo."))

	brd, err := ConvertFile(path)
	require.NoError(t, err)
	assert.Equal(t, types.BRD{
		Path:   path,
		Format: types.BRDText,
		Text:   "Shippers book cargo.",
		Status: types.ConversionDone,
	}, brd)
}

func TestConvertBatch(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "text")

	good := writeFile(t, dir, "a.txt", []byte("alpha"))
	docx := writeDocx(t, dir, "b.docx", documentXML)
	bad := writeFile(t, dir, "c.rtf", []byte("{\\rtf1}"))

	var out strings.Builder
	result := ConvertBatch([]string{good, docx, bad}, outDir, &out)
	assert.Equal(t, BatchResult{Converted: 2, Failed: 1}, result)
	assert.True(t, result.HasFailures())
	assert.Contains(t, out.String(), "converted: a (txt)")
	assert.Contains(t, out.String(), "failed:  c")

	data, err := os.ReadFile(filepath.Join(outDir, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "alpha", string(data))

	out.Reset()
	result = ConvertBatch([]string{good}, outDir, &out)
	assert.Equal(t, BatchResult{Skipped: 1}, result)
	assert.Equal(t, 1, result.Total())
	assert.Contains(t, out.String(), "skipped: a")
}

// fakeRuntime stands in for docker or podman.
type fakeRuntime struct {
	images  map[string]bool
	gotArgs []string
	output  string
}

var _ container.Runtime = (*fakeRuntime)(nil)

func (f *fakeRuntime) Name() string    { return "fake" }
func (f *fakeRuntime) Available() bool { return true }

func (f *fakeRuntime) ImageExists(image string) error {
	if f.images[image] {
		return nil
	}
	return errors.New("no such image")
}

func (f *fakeRuntime) Run(_ context.Context, _ string, args []string, stdin io.Reader, stdout io.Writer) error {
	f.gotArgs = args
	io.Copy(io.Discard, stdin)
	_, err := io.WriteString(stdout, f.output)
	return err
}

func TestMarkitdownConverter(t *testing.T) {
	rt := &fakeRuntime{
		images: map[string]bool{DefaultMarkitdownImage: true},
		output: "# Cargo BRD\n\nShippers book slots.",
	}
	m, err := NewMarkitdownConverter(rt, "")
	require.NoError(t, err)

	assert.True(t, m.Handles("legacy.DOC"))
	assert.False(t, m.Handles("brd.docx"))

	path := writeFile(t, t.TempDir(), "legacy.doc", []byte("binary"))
	brd, err := Decoder{External: m}.ConvertFile(path)
	require.NoError(t, err)
	assert.Equal(t, types.BRDFormat("doc"), brd.Format)
	assert.Equal(t, "# Cargo BRD\n\nShippers book slots.", brd.Text)
	assert.Equal(t, []string{"-x", "doc"}, rt.gotArgs)

	// Without the external converter the format stays unsupported.
	_, err = ConvertFile(path)
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestMarkitdownConverterMissingImage(t *testing.T) {
	_, err := NewMarkitdownConverter(&fakeRuntime{}, "custom:1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "markitdown image not available")
}

func TestMarkitdownConverterEmptyOutput(t *testing.T) {
	rt := &fakeRuntime{images: map[string]bool{DefaultMarkitdownImage: true}}
	m, err := NewMarkitdownConverter(rt, "")
	require.NoError(t, err)

	path := writeFile(t, t.TempDir(), "deck.pptx", []byte("binary"))
	_, err = m.Convert(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty output")
}
