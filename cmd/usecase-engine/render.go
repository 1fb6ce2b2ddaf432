// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/Sneha-B6/P-1/internal/extract"
	"github.com/Sneha-B6/P-1/internal/layout"
	"github.com/Sneha-B6/P-1/internal/render"
	"github.com/Sneha-B6/P-1/pkg/types"
)

var renderCmd = &cobra.Command{
	Use:   "render <fields.yaml | narrative.txt>",
	Short: "Paginate use-case fields into a PDF or text document",
	Long: `Render reads extracted fields (the YAML written by extract) or a labelled
narrative, word-wraps every section, lays the lines out on pages with the
configured geometry, and writes the document.

A failed write leaves no partial file behind.`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func runRender(cmd *cobra.Command, args []string) error {
	if err := bindFlags(cmd, renderFlagKeys); err != nil {
		return err
	}
	cfg, err := pipelineConfig()
	if err != nil {
		return err
	}

	fs, err := readFieldSet(args[0])
	if err != nil {
		return err
	}
	_, err = writeDocument(cfg, fs, os.Stderr)
	return err
}

// renderFlagKeys maps configuration keys to the output flags shared by
// render, generate, and store render.
var renderFlagKeys = map[string]string{
	"output.path":             "out",
	"output.format":           "format",
	"geometry.title":          "title",
	"geometry.max_line_chars": "max-line-chars",
}

func addRenderFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("out", "o", "", "output file (default from config: use_case.pdf)")
	cmd.Flags().String("format", "", "output format: pdf or text")
	cmd.Flags().String("title", "", "document title")
	cmd.Flags().Int("max-line-chars", 0, "wrap width in characters")
}

// readFieldSet loads fields from a YAML mapping, or extracts them from a
// labelled narrative for any other extension. "-" reads a narrative from stdin.
func readFieldSet(path string) (types.FieldSet, error) {
	data, err := readInput(path)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var fs types.FieldSet
		if err := yaml.Unmarshal(data, &fs); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		return fs, nil
	default:
		return extract.ExtractUseCase(string(data)), nil
	}
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

// writeDocument paginates fs and writes it to the configured output,
// reporting the result on progress.
func writeDocument(cfg types.PipelineConfig, fs types.FieldSet, progress io.Writer) (types.Document, error) {
	doc, err := layout.Paginate(fs, cfg.Geometry)
	if err != nil {
		return types.Document{}, err
	}

	w, err := render.ForFormat(cfg.Output.Format)
	if err != nil {
		return types.Document{}, err
	}
	if err := render.WriteFile(cfg.Output.Path, w, doc); err != nil {
		return types.Document{}, err
	}

	fmt.Fprintf(progress, "wrote %s (%s, %d page(s))\n", cfg.Output.Path, cfg.Output.Format, len(doc.Pages))
	return doc, nil
}

func init() {
	addRenderFlags(renderCmd)
	rootCmd.AddCommand(renderCmd)
}
