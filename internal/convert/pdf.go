// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PDFConverter pulls text out of PDF page content streams with pdfcpu. Only
// literal and hex strings shown by text operators are kept; fonts with custom
// encodings come out garbled.
type PDFConverter struct{}

// Convert returns the text of every page, pages separated by a newline.
func (PDFConverter) Convert(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening PDF %s: %w", path, err)
	}
	defer f.Close()

	ctx, err := api.ReadValidateAndOptimize(f, model.NewDefaultConfiguration())
	if err != nil {
		return "", fmt.Errorf("pdfcpu read: %w", err)
	}

	var pages []string
	for nr := 1; nr <= ctx.PageCount; nr++ {
		r, err := pdfcpu.ExtractPageContent(ctx, nr)
		if err != nil || r == nil {
			continue
		}
		data, err := io.ReadAll(r)
		if err != nil {
			return "", fmt.Errorf("reading page %d content: %w", nr, err)
		}
		if text := contentText(data); text != "" {
			pages = append(pages, text)
		}
	}
	return strings.Join(pages, "\n"), nil
}

// contentText interprets the text-showing operators of a content stream.
// Strings are collected until the operator that consumes them; operators that
// move to a new text line (T*, ', ", Td/TD with a vertical offset, ET) end
// the current output line.
func contentText(data []byte) string {
	var lines []string
	var line strings.Builder
	var pending []string
	var operands []string

	newline := func() {
		if s := strings.TrimSpace(line.String()); s != "" {
			lines = append(lines, s)
		}
		line.Reset()
	}

	for i := 0; i < len(data); {
		c := data[i]
		switch {
		case c == '(':
			s, next := literalString(data, i)
			pending = append(pending, s)
			i = next
		case c == '<':
			if i+1 < len(data) && data[i+1] == '<' {
				i += 2
				continue
			}
			s, next := hexString(data, i)
			pending = append(pending, s)
			i = next
		case c == '%':
			for i < len(data) && data[i] != '\n' && data[i] != '\r' {
				i++
			}
		case isDelimiter(c):
			i++
		default:
			start := i
			for i < len(data) && !isDelimiter(data[i]) && data[i] != '(' && data[i] != '<' && data[i] != '%' {
				i++
			}
			tok := string(data[start:i])
			switch tok {
			case "Tj", "TJ":
				line.WriteString(strings.Join(pending, ""))
			case "'", "\"":
				newline()
				line.WriteString(strings.Join(pending, ""))
			case "T*", "ET":
				newline()
			case "Td", "TD":
				if len(operands) >= 1 {
					if ty, err := strconv.ParseFloat(operands[len(operands)-1], 64); err == nil && ty != 0 {
						newline()
					}
				}
			default:
				operands = append(operands, tok)
				continue
			}
			pending = pending[:0]
			operands = operands[:0]
		}
	}
	newline()
	return strings.Join(lines, "\n")
}

func isDelimiter(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f', 0, '[', ']', '/', '>', '{', '}':
		return true
	}
	return false
}

// literalString decodes a (...) string starting at data[i] and returns the
// offset after its closing parenthesis. Bytes are read as Latin-1, which
// matches WinAnsi for the characters core fonts print.
func literalString(data []byte, i int) (string, int) {
	var b strings.Builder
	depth := 0
	for i < len(data) {
		c := data[i]
		switch {
		case c == '\\' && i+1 < len(data):
			i++
			switch e := data[i]; e {
			case 'n':
				b.WriteByte('\n')
			case 'r', 'b', 'f':
			case 't':
				b.WriteByte('\t')
			case '0', '1', '2', '3', '4', '5', '6', '7':
				v := 0
				for k := 0; k < 3 && i < len(data) && data[i] >= '0' && data[i] <= '7'; k++ {
					v = v*8 + int(data[i]-'0')
					i++
				}
				b.WriteRune(rune(v))
				continue
			case '\n', '\r':
			default:
				b.WriteByte(e)
			}
		case c == '(':
			if depth > 0 {
				b.WriteByte(c)
			}
			depth++
		case c == ')':
			depth--
			if depth == 0 {
				return b.String(), i + 1
			}
			b.WriteByte(c)
		default:
			b.WriteRune(rune(c))
		}
		i++
	}
	return b.String(), i
}

// hexString decodes a <...> string starting at data[i].
func hexString(data []byte, i int) (string, int) {
	var b strings.Builder
	hi := -1
	for i++; i < len(data) && data[i] != '>'; i++ {
		v := unhex(data[i])
		if v < 0 {
			continue
		}
		if hi < 0 {
			hi = v
			continue
		}
		b.WriteRune(rune(hi<<4 | v))
		hi = -1
	}
	if hi >= 0 {
		b.WriteRune(rune(hi << 4))
	}
	return b.String(), i + 1
}

func unhex(c byte) int {
	switch {
	case '0' <= c && c <= '9':
		return int(c - '0')
	case 'a' <= c && c <= 'f':
		return int(c-'a') + 10
	case 'A' <= c && c <= 'F':
		return int(c-'A') + 10
	}
	return -1
}
