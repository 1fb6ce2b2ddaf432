// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

const docxBody = "word/document.xml"

// DocxConverter reads the paragraphs of a .docx file.
type DocxConverter struct{}

// Convert returns the text of every non-empty paragraph of word/document.xml,
// one paragraph per line.
func (DocxConverter) Convert(path string) (string, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("opening docx archive: %w", err)
	}
	defer r.Close()

	var body *zip.File
	for _, f := range r.File {
		if f.Name == docxBody {
			body = f
			break
		}
	}
	if body == nil {
		return "", fmt.Errorf("%s not found in archive", docxBody)
	}

	rc, err := body.Open()
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", docxBody, err)
	}
	defer rc.Close()

	return docxParagraphs(rc)
}

// docxParagraphs walks WordprocessingML and collects w:t runs per w:p.
// Tabs and explicit breaks inside a paragraph are kept.
func docxParagraphs(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)

	var paragraphs []string
	var cur strings.Builder
	inText := false

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parsing %s: %w", docxBody, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				cur.Reset()
			case "t":
				inText = true
			case "tab":
				cur.WriteByte('\t')
			case "br", "cr":
				cur.WriteByte('\n')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				if text := strings.TrimSpace(cur.String()); text != "" {
					paragraphs = append(paragraphs, text)
				}
				cur.Reset()
			}
		case xml.CharData:
			if inText {
				cur.Write(t)
			}
		}
	}

	return strings.Join(paragraphs, "\n"), nil
}
