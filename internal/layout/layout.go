// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package layout word-wraps a FieldSet and splits it across fixed-size pages.
// Pagination is deterministic: the same FieldSet and PageGeometry always
// produce the same Document.
package layout

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Sneha-B6/P-1/pkg/types"
)

// ErrInvalidGeometry is returned (wrapped) when a PageGeometry cannot hold a
// single line of content.
var ErrInvalidGeometry = errors.New("invalid page geometry")

// Validate reports whether g can be used for pagination.
func Validate(g types.PageGeometry) error {
	positive := []struct {
		name  string
		value float64
	}{
		{"page_width", g.PageWidth},
		{"page_height", g.PageHeight},
		{"line_height", g.LineHeight},
	}
	for _, p := range positive {
		if p.value <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %g", ErrInvalidGeometry, p.name, p.value)
		}
	}

	nonNegative := []struct {
		name  string
		value float64
	}{
		{"margin_left", g.MarginLeft},
		{"margin_top", g.MarginTop},
		{"margin_bottom", g.MarginBottom},
		{"border_inset", g.BorderInset},
		{"spacer_height", g.SpacerHeight},
		{"title_height", g.TitleHeight},
		{"title_gap", g.TitleGap},
	}
	for _, p := range nonNegative {
		if p.value < 0 {
			return fmt.Errorf("%w: %s must not be negative, got %g", ErrInvalidGeometry, p.name, p.value)
		}
	}

	if g.MaxLineChars < 1 {
		return fmt.Errorf("%w: max_line_chars must be at least 1, got %d", ErrInvalidGeometry, g.MaxLineChars)
	}
	if 2*g.BorderInset >= g.PageWidth || 2*g.BorderInset >= g.PageHeight {
		return fmt.Errorf("%w: border_inset %g leaves no page area", ErrInvalidGeometry, g.BorderInset)
	}

	tallest := max(g.LineHeight, g.SpacerHeight)
	if g.MarginTop+tallest > g.WritableBottom() {
		return fmt.Errorf("%w: a %g line does not fit between margin_top %g and writable bottom %g",
			ErrInvalidGeometry, tallest, g.MarginTop, g.WritableBottom())
	}
	if g.MarginTop+g.TitleHeight+g.TitleGap > g.WritableBottom() {
		return fmt.Errorf("%w: title does not fit on the first page", ErrInvalidGeometry)
	}
	return nil
}

// Wrap splits content into lines of at most maxChars characters, greedily,
// at whitespace. A word longer than maxChars is placed alone on its own line
// without splitting. Empty content yields no lines.
func Wrap(content string, maxChars int) []string {
	var lines []string
	var buf strings.Builder
	bufLen := 0

	for _, word := range strings.Fields(content) {
		n := utf8.RuneCountInString(word)
		if bufLen > 0 && bufLen+n+1 > maxChars {
			lines = append(lines, buf.String())
			buf.Reset()
			bufLen = 0
		}
		if bufLen > 0 {
			buf.WriteByte(' ')
			bufLen++
		}
		buf.WriteString(word)
		bufLen += n
	}
	if bufLen > 0 {
		lines = append(lines, buf.String())
	}
	return lines
}

// group is one field ready for placement: its heading and wrapped body.
type group struct {
	heading string
	body    []string
}

// Paginate lays fs out on pages of geometry g. The first page opens with the
// title; each field then contributes a heading line, its wrapped body lines
// and a spacer. A line that would cross the writable bottom of the current
// page starts a new page instead. Headings may be separated from their first
// body line by a page break.
func Paginate(fs types.FieldSet, g types.PageGeometry) (types.Document, error) {
	if err := Validate(g); err != nil {
		return types.Document{}, err
	}

	groups := make([]group, len(fs))
	for i, f := range fs {
		groups[i] = group{heading: string(f.Label) + ":"}
		// Absent sections render as a bare heading.
		if f.Found && f.Content != types.MissingContent {
			groups[i].body = Wrap(f.Content, g.MaxLineChars)
		}
	}

	st := open(nil, g)
	st = st.place(types.LineTitle, g.Title, g.TitleHeight)
	st.y += g.TitleGap

	for _, grp := range groups {
		st = st.place(types.LineHeading, grp.heading, g.LineHeight)
		for _, text := range grp.body {
			st = st.place(types.LineBody, text, g.LineHeight)
		}
		st = st.place(types.LineSpacer, "", g.SpacerHeight)
	}

	return types.Document{
		Title:    g.Title,
		Geometry: g,
		Pages:    append(st.done, st.page),
	}, nil
}

// state is the value threaded through the pagination fold: the finished
// pages, the page being filled and its cursor.
type state struct {
	g    types.PageGeometry
	done []types.Page
	page types.Page
	y    float64
}

// open starts a new page after the finished pages done.
func open(done []types.Page, g types.PageGeometry) state {
	return state{
		g:    g,
		done: done,
		page: types.Page{Number: len(done) + 1, Border: g.Border()},
		y:    g.MarginTop,
	}
}

// fits reports whether a line of height h can be placed at the cursor.
func (s state) fits(h float64) bool {
	return s.y+h <= s.g.WritableBottom()
}

// place returns the state after emitting one line, breaking the page first
// when the line would overflow it. A page that is still empty never breaks,
// which Validate guarantees is only possible for lines that fit.
func (s state) place(kind types.LineKind, text string, h float64) state {
	if !s.fits(h) && len(s.page.Lines) > 0 {
		s = open(append(s.done, s.page), s.g)
	}
	line := types.Line{Kind: kind, Text: text, Y: s.y, Height: h}
	s.page.Lines = append(s.page.Lines, line)
	s.y += h
	return s
}
