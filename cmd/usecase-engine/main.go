// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the usecase-engine CLI. Each pipeline
// stage is a subcommand: convert, extract, render, and generate, plus store
// for previously generated use cases.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Sneha-B6/P-1/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the usecase-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "usecase-engine",
	Short: "Turn business requirement documents into paginated use-case documents",
	Long: `usecase-engine reads a business requirement document (BRD), asks a
language model for a structured user story and use case, extracts the
Actors, Preconditions, Main Flow, Postconditions and Exceptions sections,
and lays them out as a paginated PDF or text document.

The stages are also available on their own: convert decodes a BRD to text,
extract parses a labelled narrative, and render paginates extracted fields.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			slog.Debug("loaded secrets", "keys", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./usecase-engine.yaml or ~/.config/usecase-engine/usecase-engine.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log debug diagnostics to stderr")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}
