// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sneha-B6/P-1/internal/container"
	"github.com/Sneha-B6/P-1/internal/convert"
	"github.com/Sneha-B6/P-1/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert <brd> [brd...]",
	Short: "Decode BRD files (.txt, .docx, .pdf) to plain text",
	Long: `Convert extracts the text of a business requirement document. A single
file is printed to stdout or written to --out. With --out-dir every file is
converted to <out-dir>/<name>.txt; files already converted are skipped.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	if err := bindFlags(cmd, containerFlagKeys); err != nil {
		return err
	}
	cfg, err := pipelineConfig()
	if err != nil {
		return err
	}
	dec, err := newDecoder(cfg.Convert)
	if err != nil {
		return err
	}

	out, _ := cmd.Flags().GetString("out")
	outDir, _ := cmd.Flags().GetString("out-dir")

	if outDir != "" {
		result := dec.ConvertBatch(args, outDir, os.Stderr)
		if result.HasFailures() {
			return fmt.Errorf("%d file(s) failed conversion", result.Failed)
		}
		return nil
	}

	if len(args) > 1 {
		return fmt.Errorf("converting several files requires --out-dir")
	}

	brd, err := dec.ConvertFile(args[0])
	if err != nil {
		return err
	}
	if out == "" {
		fmt.Println(brd.Text)
		return nil
	}
	if err := os.WriteFile(out, []byte(brd.Text), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}
	fmt.Fprintf(os.Stderr, "converted: %s (%s) -> %s\n", args[0], brd.Format, out)
	return nil
}

var containerFlagKeys = map[string]string{
	"convert.container": "container",
	"convert.image":     "image",
}

func addContainerFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("container", false, "use the markitdown container (docker or podman) for .doc, .pptx, .rtf and similar")
	cmd.Flags().String("image", "", "markitdown container image (default markitdown:latest)")
}

// newDecoder returns the BRD decoder, with the markitdown container
// attached when enabled.
func newDecoder(cfg types.ConvertConfig) (convert.Decoder, error) {
	if !cfg.Container {
		return convert.Decoder{}, nil
	}
	rt, err := container.DetectRuntime()
	if err != nil {
		return convert.Decoder{}, err
	}
	m, err := convert.NewMarkitdownConverter(rt, cfg.Image)
	if err != nil {
		return convert.Decoder{}, err
	}
	slog.Debug("markitdown container enabled", "runtime", rt.Name(), "image", cfg.Image)
	return convert.Decoder{External: m}, nil
}

func init() {
	convertCmd.Flags().StringP("out", "o", "", "write text to this file instead of stdout")
	convertCmd.Flags().String("out-dir", "", "convert every file into this directory")
	addContainerFlags(convertCmd)

	rootCmd.AddCommand(convertCmd)
}
