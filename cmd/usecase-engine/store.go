// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/Sneha-B6/P-1/internal/store"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "List, show, re-render, export, and delete saved use cases",
	Long: `Store manages the SQLite database of generated use cases
(<store-dir>/usecases.db). Use subcommands to inspect or export it.`,
}

// --- list subcommand ---

var storeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved use cases, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		limit, _ := cmd.Flags().GetInt("limit")
		all, err := s.List(cmd.Context(), limit)
		if err != nil {
			return err
		}

		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(all)
		}

		if len(all) == 0 {
			fmt.Println("No use cases stored.")
			return nil
		}

		fmt.Fprintf(os.Stdout, "%-12s  %-20s  %-30s  %s\n", "ID", "Created", "Source", "Missing")
		fmt.Fprintln(os.Stdout, strings.Repeat("-", 80))
		for _, uc := range all {
			source := uc.Source
			if len(source) > 30 {
				source = source[:27] + "..."
			}
			fmt.Fprintf(os.Stdout, "%-12s  %-20s  %-30s  %d\n",
				uc.ID, uc.CreatedAt.Local().Format("2006-01-02 15:04:05"), source, len(uc.Fields.Missing()))
		}
		fmt.Fprintf(os.Stdout, "\n%d use case(s)\n", len(all))
		return nil
	},
}

// --- show subcommand ---

var storeShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a saved use case as YAML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		uc, err := s.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		data, err := yaml.Marshal(uc)
		if err != nil {
			return fmt.Errorf("encoding use case: %w", err)
		}
		_, err = os.Stdout.Write(data)
		return err
	},
}

// --- render subcommand ---

var storeRenderCmd = &cobra.Command{
	Use:   "render <id>",
	Short: "Write the document of a saved use case again",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bindFlags(cmd, renderFlagKeys); err != nil {
			return err
		}
		cfg, err := pipelineConfig()
		if err != nil {
			return err
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		uc, err := s.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		_, err = writeDocument(cfg, uc.Fields, os.Stderr)
		return err
	},
}

// --- export subcommand ---

var storeExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all saved use cases to YAML or JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		out, _ := cmd.Flags().GetString("out")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		var path string
		switch format {
		case "yaml", "":
			path, err = s.ExportYAML(cmd.Context(), out)
		case "json":
			path, err = s.ExportJSON(cmd.Context(), out)
		default:
			return fmt.Errorf("unsupported format %q: use yaml or json", format)
		}
		if err != nil {
			return err
		}
		fmt.Println("Exported to", path)
		return nil
	},
}

// --- delete subcommand ---

var storeDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved use case",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Println("Deleted", args[0])
		return nil
	},
}

// --- shared helpers ---

func openStore(cmd *cobra.Command) (*store.Store, error) {
	if err := bindFlags(cmd, map[string]string{"store.dir": "store-dir"}); err != nil {
		return nil, err
	}
	cfg, err := pipelineConfig()
	if err != nil {
		return nil, err
	}
	return store.Open(cfg.Store, slog.Default())
}

func init() {
	// Shared flag on the parent command, inherited by subcommands.
	storeCmd.PersistentFlags().String("store-dir", "", "directory holding usecases.db (default from config: usecases)")

	storeListCmd.Flags().Int("limit", 0, "maximum use cases to list (0 = all)")
	storeListCmd.Flags().Bool("json", false, "output as JSON")

	addRenderFlags(storeRenderCmd)

	storeExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	storeExportCmd.Flags().StringP("out", "o", "", "export file (default: <store-dir>/export.<format>)")

	storeCmd.AddCommand(storeListCmd)
	storeCmd.AddCommand(storeShowCmd)
	storeCmd.AddCommand(storeRenderCmd)
	storeCmd.AddCommand(storeExportCmd)
	storeCmd.AddCommand(storeDeleteCmd)

	rootCmd.AddCommand(storeCmd)
}
