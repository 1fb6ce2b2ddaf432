// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "strings"

// PageGeometry controls how a FieldSet is wrapped and split across pages.
// All lengths are in millimetres. A PageGeometry is never mutated during
// rendering.
type PageGeometry struct {
	PageWidth  float64 `json:"page_width" yaml:"page_width" mapstructure:"page_width"`
	PageHeight float64 `json:"page_height" yaml:"page_height" mapstructure:"page_height"`

	MarginLeft   float64 `json:"margin_left" yaml:"margin_left" mapstructure:"margin_left"`
	MarginTop    float64 `json:"margin_top" yaml:"margin_top" mapstructure:"margin_top"`
	MarginBottom float64 `json:"margin_bottom" yaml:"margin_bottom" mapstructure:"margin_bottom"`

	// BorderInset is the distance of the page border from every page edge.
	BorderInset float64 `json:"border_inset" yaml:"border_inset" mapstructure:"border_inset"`
	BorderWidth float64 `json:"border_width" yaml:"border_width" mapstructure:"border_width"`

	LineHeight   float64 `json:"line_height" yaml:"line_height" mapstructure:"line_height"`
	SpacerHeight float64 `json:"spacer_height" yaml:"spacer_height" mapstructure:"spacer_height"`

	// TitleHeight is the height of the title line on the first page;
	// TitleGap is the blank space below it.
	TitleHeight float64 `json:"title_height" yaml:"title_height" mapstructure:"title_height"`
	TitleGap    float64 `json:"title_gap" yaml:"title_gap" mapstructure:"title_gap"`

	// MaxLineChars is the maximum number of characters of a wrapped body line.
	MaxLineChars int `json:"max_line_chars" yaml:"max_line_chars" mapstructure:"max_line_chars"`

	Title           string  `json:"title" yaml:"title" mapstructure:"title"`
	FontFamily      string  `json:"font_family" yaml:"font_family" mapstructure:"font_family"`
	TitleFontSize   float64 `json:"title_font_size" yaml:"title_font_size" mapstructure:"title_font_size"`
	HeadingFontSize float64 `json:"heading_font_size" yaml:"heading_font_size" mapstructure:"heading_font_size"`
	BodyFontSize    float64 `json:"body_font_size" yaml:"body_font_size" mapstructure:"body_font_size"`

	// TitleStyle and HeadingStyle are font style markers ("B", "I", "BI" or "").
	TitleStyle   string `json:"title_style" yaml:"title_style" mapstructure:"title_style"`
	HeadingStyle string `json:"heading_style" yaml:"heading_style" mapstructure:"heading_style"`
}

// DefaultPageGeometry returns the geometry of a standard single-column A4 page.
func DefaultPageGeometry() PageGeometry {
	return PageGeometry{
		PageWidth:       210,
		PageHeight:      297,
		MarginLeft:      10,
		MarginTop:       10,
		MarginBottom:    20,
		BorderInset:     5,
		BorderWidth:     0.5,
		LineHeight:      10,
		SpacerHeight:    5,
		TitleHeight:     10,
		TitleGap:        10,
		MaxLineChars:    50,
		Title:           "Use Case Document",
		FontFamily:      "Times",
		TitleFontSize:   16,
		HeadingFontSize: 12,
		BodyFontSize:    12,
		TitleStyle:      "B",
		HeadingStyle:    "B",
	}
}

// WritableBottom is the lowest y a line may reach on a page.
func (g PageGeometry) WritableBottom() float64 {
	return g.PageHeight - g.MarginBottom
}

// Border returns the border rectangle drawn on every page.
func (g PageGeometry) Border() Rect {
	return Rect{
		X: g.BorderInset,
		Y: g.BorderInset,
		W: g.PageWidth - 2*g.BorderInset,
		H: g.PageHeight - 2*g.BorderInset,
	}
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X, Y, W, H float64
}

// LineKind classifies a rendered line.
type LineKind string

const (
	LineTitle   LineKind = "title"
	LineHeading LineKind = "heading"
	LineBody    LineKind = "body"
	LineSpacer  LineKind = "spacer"
)

// Line is one rendered line. Y is the top edge of the line on its page.
type Line struct {
	Kind   LineKind `json:"kind" yaml:"kind"`
	Text   string   `json:"text,omitempty" yaml:"text,omitempty"`
	Y      float64  `json:"y" yaml:"y"`
	Height float64  `json:"height" yaml:"height"`
}

// Bottom returns the bottom edge of the line.
func (l Line) Bottom() float64 {
	return l.Y + l.Height
}

// Page is one finished page of a Document.
type Page struct {
	Number int    `json:"number" yaml:"number"`
	Border Rect   `json:"border" yaml:"border"`
	Lines  []Line `json:"lines" yaml:"lines"`
}

// Document is the paginated rendering of a FieldSet.
type Document struct {
	Title    string       `json:"title" yaml:"title"`
	Geometry PageGeometry `json:"geometry" yaml:"geometry"`
	Pages    []Page       `json:"pages" yaml:"pages"`
}

// Lines returns every line of kind across all pages, in document order.
func (d Document) Lines(kind LineKind) []Line {
	var out []Line
	for _, p := range d.Pages {
		for _, l := range p.Lines {
			if l.Kind == kind {
				out = append(out, l)
			}
		}
	}
	return out
}

// BodyText joins all body-line text across all pages with single spaces.
func (d Document) BodyText() string {
	lines := d.Lines(LineBody)
	parts := make([]string, len(lines))
	for i, l := range lines {
		parts[i] = l.Text
	}
	return strings.Join(parts, " ")
}
