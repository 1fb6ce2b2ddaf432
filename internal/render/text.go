// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"io"
	"strings"

	"github.com/Sneha-B6/P-1/pkg/types"
)

// pageBreak separates pages in text output.
const pageBreak = "\f\n"

// TextWriter renders a Document as plain text: one output line per rendered
// line, spacers as blank lines, pages separated by a form feed.
type TextWriter struct{}

// Write writes doc to w in a single call.
func (TextWriter) Write(w io.Writer, doc types.Document) error {
	var b strings.Builder
	for i, page := range doc.Pages {
		if i > 0 {
			b.WriteString(pageBreak)
		}
		for _, line := range page.Lines {
			if line.Kind == types.LineTitle {
				b.WriteString(center(line.Text, doc.Geometry.MaxLineChars))
			} else {
				b.WriteString(line.Text)
			}
			b.WriteByte('\n')
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func center(s string, width int) string {
	pad := (width - len([]rune(s))) / 2
	if pad <= 0 {
		return s
	}
	return strings.Repeat(" ", pad) + s
}
