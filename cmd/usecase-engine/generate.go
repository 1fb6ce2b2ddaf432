// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Sneha-B6/P-1/internal/generate"
	"github.com/Sneha-B6/P-1/internal/store"
	"github.com/Sneha-B6/P-1/pkg/types"
)

var generateCmd = &cobra.Command{
	Use:   "generate <brd>",
	Short: "Generate a use-case document from a BRD",
	Long: `Generate runs the full pipeline: decode the BRD, ask the model for a
structured user story (steered by --prompt when given), ask it to restate the
story as a use case, extract the five sections, and write the paginated
document. The user story and use case are printed to stdout; progress goes
to stderr. The result is saved in the use-case store unless --no-store.`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func runGenerate(cmd *cobra.Command, args []string) error {
	keys := map[string]string{
		"generation.backend": "backend",
		"generation.model":   "model",
		"generation.host":    "host",
		"store.disabled":     "no-store",
	}
	for _, m := range []map[string]string{renderFlagKeys, containerFlagKeys} {
		for k, v := range m {
			keys[k] = v
		}
	}
	if err := bindFlags(cmd, keys); err != nil {
		return err
	}
	cfg, err := pipelineConfig()
	if err != nil {
		return err
	}
	focus, _ := cmd.Flags().GetString("prompt")
	ctx := cmd.Context()

	dec, err := newDecoder(cfg.Convert)
	if err != nil {
		return err
	}
	brd, err := dec.ConvertFile(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "converted: %s (%s, %d chars)\n", filepath.Base(brd.Path), brd.Format, len(brd.Text))

	backend, err := generate.NewBackend(cfg.Generation)
	if err != nil {
		return err
	}
	gen := generate.New(backend, slog.Default())

	fmt.Fprintf(os.Stderr, "generating user story (%s %s)\n", cfg.Generation.Backend, cfg.Generation.Model)
	story, err := gen.UserStory(ctx, brd.Text, focus)
	if err != nil {
		return err
	}
	fmt.Printf("User Story:\n%s\n\n", story)

	fmt.Fprintln(os.Stderr, "generating use case")
	fields, narrative, err := gen.UseCase(ctx, story)
	if err != nil {
		return err
	}
	fmt.Printf("Use Case:\n%s\n", narrative)

	if _, err := writeDocument(cfg, fields, os.Stderr); err != nil {
		return err
	}

	if cfg.Store.Disabled {
		return nil
	}
	return saveUseCase(cmd, cfg.Store, types.UseCase{
		Source:    filepath.Base(brd.Path),
		Focus:     focus,
		UserStory: story,
		Narrative: narrative,
		Fields:    fields,
	})
}

func saveUseCase(cmd *cobra.Command, cfg types.StoreConfig, uc types.UseCase) error {
	s, err := store.Open(cfg, slog.Default())
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.Save(cmd.Context(), &uc); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "saved: %s (store %s)\n", uc.ID, s.Dir())
	return nil
}

func init() {
	generateCmd.Flags().StringP("prompt", "p", "", "optional instruction applied to the user story (e.g. a region)")
	generateCmd.Flags().String("backend", "", "model backend: ollama or claude")
	generateCmd.Flags().String("model", "", "model identifier (default llama3.2)")
	generateCmd.Flags().String("host", "", "Ollama server URL")
	generateCmd.Flags().Bool("no-store", false, "do not save the use case in the store")
	addRenderFlags(generateCmd)
	addContainerFlags(generateCmd)

	rootCmd.AddCommand(generateCmd)
}
