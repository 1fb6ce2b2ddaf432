// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract carves the labelled use-case sections out of a freeform
// narrative. Extraction is a pure function of its input: a missing section
// yields the MissingContent sentinel, never an error.
package extract

import (
	"strings"

	"github.com/Sneha-B6/P-1/pkg/types"
)

// ExtractUseCase extracts the five use-case sections in their fixed order.
func ExtractUseCase(text string) types.FieldSet {
	return Extract(text, types.DefaultLabels)
}

// Extract returns one Field per label, in label order. The content of label i
// starts after its first "label:" occurrence (case-insensitive, whitespace
// allowed before the colon) and ends at the first occurrence of label i+1
// after that point, or at end of text. Content is trimmed.
//
// Only the first occurrence of a label counts. Labels that appear out of
// order truncate or merge neighbouring sections; callers see that as-is.
func Extract(text string, labels []types.SectionLabel) types.FieldSet {
	fields := make(types.FieldSet, len(labels))
	for i, label := range labels {
		fields[i] = types.Field{Label: label, Content: types.MissingContent}

		start := findLabel(text, string(label))
		if start < 0 {
			continue
		}

		end := len(text)
		if i+1 < len(labels) {
			if next := indexFold(text, string(labels[i+1]), start); next >= 0 {
				end = next
			}
		}

		content := strings.TrimSpace(text[start:end])
		if content == types.MissingContent {
			// A serialized FieldSet carries the sentinel for absent sections.
			continue
		}
		fields[i].Content = content
		fields[i].Found = true
	}
	return fields
}

// findLabel returns the offset just past the separator of the first
// "label<spaces>:" occurrence, or -1.
func findLabel(text, label string) int {
	for from := 0; ; {
		at := indexFold(text, label, from)
		if at < 0 {
			return -1
		}
		if sep := separatorEnd(text, at+len(label)); sep >= 0 {
			return sep
		}
		from = at + 1
	}
}

// separatorEnd skips whitespace from pos and returns the offset after a
// colon, or -1 if the next non-space byte is not a colon.
func separatorEnd(text string, pos int) int {
	for pos < len(text) && isSpace(text[pos]) {
		pos++
	}
	if pos < len(text) && text[pos] == ':' {
		return pos + 1
	}
	return -1
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

// indexFold is an ASCII case-insensitive strings.Index starting at from.
// Labels are ASCII, so byte offsets stay valid in the original text.
func indexFold(s, substr string, from int) int {
	n := len(substr)
	for i := from; i+n <= len(s); i++ {
		if equalFoldASCII(s[i:i+n], substr) {
			return i
		}
	}
	return -1
}

func equalFoldASCII(a, b string) bool {
	for i := 0; i < len(a); i++ {
		if lower(a[i]) != lower(b[i]) {
			return false
		}
	}
	return true
}

func lower(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + 'a' - 'A'
	}
	return c
}
