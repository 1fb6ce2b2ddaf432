// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/Sneha-B6/P-1/internal/extract"
)

var extractCmd = &cobra.Command{
	Use:   "extract <narrative>",
	Short: "Extract the labelled use-case sections from a narrative",
	Long: `Extract scans a narrative for the labels Actors, Preconditions, Main Flow,
Postconditions and Exceptions (case-insensitive, each followed by a colon)
and prints the sections as YAML. Missing sections hold
"No information available." Use "-" to read from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func runExtract(cmd *cobra.Command, args []string) error {
	out, _ := cmd.Flags().GetString("out")
	asJSON, _ := cmd.Flags().GetBool("json")

	data, err := readInput(args[0])
	if err != nil {
		return err
	}
	fs := extract.ExtractUseCase(string(data))
	for _, label := range fs.Missing() {
		fmt.Fprintf(os.Stderr, "missing: %s\n", label)
	}

	var encoded []byte
	if asJSON {
		encoded, err = json.MarshalIndent(fs, "", "  ")
		encoded = append(encoded, '\n')
	} else {
		encoded, err = yaml.Marshal(fs)
	}
	if err != nil {
		return fmt.Errorf("encoding fields: %w", err)
	}

	if out == "" {
		_, err = os.Stdout.Write(encoded)
		return err
	}
	if err := os.WriteFile(out, encoded, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}
	fmt.Fprintf(os.Stderr, "extracted %d of %d sections -> %s\n", len(fs)-len(fs.Missing()), len(fs), out)
	return nil
}

func init() {
	extractCmd.Flags().StringP("out", "o", "", "write fields to this file instead of stdout")
	extractCmd.Flags().Bool("json", false, "encode fields as JSON (with found flags) instead of YAML")

	rootCmd.AddCommand(extractCmd)
}
