// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/Sneha-B6/P-1/pkg/types"
)

// Default export file names inside the store directory.
const (
	ExportYAMLFile = "export.yaml"
	ExportJSONFile = "export.json"
)

// ExportYAML writes every stored use case, newest first, to path. An empty
// path means export.yaml in the store directory. Fields are written as an
// ordered label-to-content mapping.
func (s *Store) ExportYAML(ctx context.Context, path string) (string, error) {
	all, err := s.List(ctx, 0)
	if err != nil {
		return "", fmt.Errorf("querying for export: %w", err)
	}
	if path == "" {
		path = filepath.Join(s.dir, ExportYAMLFile)
	}

	data, err := yaml.Marshal(all)
	if err != nil {
		return "", fmt.Errorf("marshaling YAML: %w", err)
	}
	return path, os.WriteFile(path, data, 0o644)
}

// ExportJSON writes every stored use case, newest first, to path. An empty
// path means export.json in the store directory.
func (s *Store) ExportJSON(ctx context.Context, path string) (string, error) {
	all, err := s.List(ctx, 0)
	if err != nil {
		return "", fmt.Errorf("querying for export: %w", err)
	}
	if path == "" {
		path = filepath.Join(s.dir, ExportJSONFile)
	}
	if all == nil {
		all = []types.UseCase{}
	}

	data, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling JSON: %w", err)
	}
	return path, os.WriteFile(path, data, 0o644)
}
