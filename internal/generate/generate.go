// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package generate turns BRD text into a labelled use-case narrative with a
// language model. The two prompts run in sequence: BRD to user story, then
// user story to use case. The narrative is parsed with the extract package.
package generate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Sneha-B6/P-1/internal/extract"
	"github.com/Sneha-B6/P-1/pkg/types"
)

// ErrEmptyResponse is returned when the model replies with blank text.
var ErrEmptyResponse = errors.New("model returned an empty response")

// Generator runs the generation prompts against a Backend.
type Generator struct {
	Backend Backend
	Logger  *slog.Logger
}

// New returns a Generator for b. A nil logger means slog.Default().
func New(b Backend, logger *slog.Logger) *Generator {
	return &Generator{Backend: b, Logger: logger}
}

func (g *Generator) logger() *slog.Logger {
	if g.Logger != nil {
		return g.Logger
	}
	return slog.Default()
}

// UserStory asks the model for a structured user story built from brd. focus
// is an optional instruction (for example a region) applied on top of the
// BRD; empty means none.
func (g *Generator) UserStory(ctx context.Context, brd, focus string) (string, error) {
	prompt, err := renderUserStoryPrompt(brd, focus)
	if err != nil {
		return "", fmt.Errorf("rendering user story prompt: %w", err)
	}
	return g.complete(ctx, "user story", prompt)
}

// UseCaseNarrative asks the model to restate story as the labelled sections.
func (g *Generator) UseCaseNarrative(ctx context.Context, story string) (string, error) {
	prompt, err := renderUseCasePrompt(story)
	if err != nil {
		return "", fmt.Errorf("rendering use case prompt: %w", err)
	}
	return g.complete(ctx, "use case", prompt)
}

// UseCase generates the use-case narrative for story and extracts its
// sections. The narrative is returned alongside the fields.
func (g *Generator) UseCase(ctx context.Context, story string) (types.FieldSet, string, error) {
	narrative, err := g.UseCaseNarrative(ctx, story)
	if err != nil {
		return nil, "", err
	}
	fs := extract.ExtractUseCase(narrative)
	if missing := fs.Missing(); len(missing) > 0 {
		g.logger().Warn("use case sections missing from model output", "labels", missing)
	}
	return fs, narrative, nil
}

func (g *Generator) complete(ctx context.Context, stage, prompt string) (string, error) {
	log := g.logger().With("stage", stage)
	log.Debug("sending prompt", "chars", len(prompt))
	start := time.Now()

	out, err := g.Backend.Complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("generating %s: %w", stage, err)
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return "", fmt.Errorf("generating %s: %w", stage, ErrEmptyResponse)
	}

	log.Debug("received response", "chars", len(out), "elapsed", time.Since(start).Round(time.Millisecond))
	return out, nil
}
