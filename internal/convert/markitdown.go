// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Sneha-B6/P-1/internal/container"
)

// DefaultMarkitdownImage is the container image used for formats the
// in-process converters do not read.
const DefaultMarkitdownImage = "markitdown:latest"

// ContainerExtensions lists the extensions handed to the markitdown
// container when it is enabled.
var ContainerExtensions = []string{".doc", ".rtf", ".odt", ".pptx", ".xlsx", ".html", ".htm", ".epub"}

// MarkitdownConverter converts documents by piping them through the
// markitdown container image with the file extension as a type hint.
type MarkitdownConverter struct {
	runtime container.Runtime
	image   string
}

// NewMarkitdownConverter returns a converter that runs image (empty means
// DefaultMarkitdownImage) with rt. It fails when the image is not present
// locally.
func NewMarkitdownConverter(rt container.Runtime, image string) (*MarkitdownConverter, error) {
	if image == "" {
		image = DefaultMarkitdownImage
	}
	if err := rt.ImageExists(image); err != nil {
		return nil, fmt.Errorf("markitdown image not available in %s: %w", rt.Name(), err)
	}
	return &MarkitdownConverter{runtime: rt, image: image}, nil
}

// Handles reports whether path has one of ContainerExtensions.
func (m *MarkitdownConverter) Handles(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range ContainerExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Convert pipes the file at path through the container and returns the
// Markdown it prints.
func (m *MarkitdownConverter) Convert(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var args []string
	if ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."); ext != "" {
		args = []string{"-x", ext}
	}

	var out bytes.Buffer
	if err := m.runtime.Run(context.Background(), m.image, args, f, &out); err != nil {
		return "", fmt.Errorf("converting %s with markitdown: %w", path, err)
	}
	if out.Len() == 0 {
		return "", fmt.Errorf("markitdown produced empty output for %s", path)
	}
	return out.String(), nil
}
