// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/Sneha-B6/P-1/pkg/types"
)

// PDFWriter renders a Document as a PDF, one PDF page per Document page.
// Page breaks come from the Document; fpdf's automatic page break is off.
type PDFWriter struct {
	// CreatedAt, when set, is recorded as the PDF creation date.
	CreatedAt time.Time
}

// Write draws every page of doc and writes the PDF to w.
func (p *PDFWriter) Write(w io.Writer, doc types.Document) error {
	g := doc.Geometry

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: g.PageWidth, Ht: g.PageHeight},
	})
	pdf.SetMargins(g.MarginLeft, g.MarginTop, g.MarginLeft)
	pdf.SetAutoPageBreak(false, g.MarginBottom)
	pdf.SetTitle(doc.Title, true)
	pdf.SetCreator("usecase-engine", false)
	pdf.SetCatalogSort(true)
	if !p.CreatedAt.IsZero() {
		pdf.SetCreationDate(p.CreatedAt)
	}

	// Core fonts are cp1252; translate UTF-8 text before drawing.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, page := range doc.Pages {
		pdf.AddPage()
		pdf.SetDrawColor(0, 0, 0)
		pdf.SetLineWidth(g.BorderWidth)
		pdf.Rect(page.Border.X, page.Border.Y, page.Border.W, page.Border.H, "D")

		for _, line := range page.Lines {
			if line.Kind == types.LineSpacer {
				continue
			}
			align := "L"
			switch line.Kind {
			case types.LineTitle:
				pdf.SetFont(g.FontFamily, g.TitleStyle, g.TitleFontSize)
				align = "C"
			case types.LineHeading:
				pdf.SetFont(g.FontFamily, g.HeadingStyle, g.HeadingFontSize)
			default:
				pdf.SetFont(g.FontFamily, "", g.BodyFontSize)
			}
			pdf.SetXY(g.MarginLeft, line.Y)
			pdf.CellFormat(0, line.Height, tr(line.Text), "", 0, align, false, 0, "")
		}
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("drawing PDF: %w", err)
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("encoding PDF: %w", err)
	}
	return nil
}
