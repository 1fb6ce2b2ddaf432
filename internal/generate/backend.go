// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/Sneha-B6/P-1/internal/httputil"
	"github.com/Sneha-B6/P-1/pkg/types"
)

// Backend sends a single prompt to a language model and returns its text.
type Backend interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// NewBackend builds the backend named in cfg. The Claude backend needs an
// API key.
func NewBackend(cfg types.GenerationConfig) (Backend, error) {
	client := &http.Client{Timeout: cfg.Timeout}

	switch cfg.Backend {
	case "", types.BackendOllama:
		return &OllamaBackend{
			Host:     cfg.Host,
			Model:    cfg.Model,
			Client:   client,
			Attempts: cfg.MaxRetries,
		}, nil
	case types.BackendClaude:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("claude backend requires an API key (set .secrets/anthropic-api-key)")
		}
		return &ClaudeBackend{
			APIKey:   cfg.APIKey,
			Model:    cfg.Model,
			Client:   client,
			Attempts: cfg.MaxRetries,
		}, nil
	default:
		return nil, fmt.Errorf("unknown backend %q (want ollama or claude)", cfg.Backend)
	}
}

const (
	defaultOllamaHost  = "http://localhost:11434"
	defaultOllamaModel = "llama3.2"
)

// OllamaBackend calls the generate endpoint of a local Ollama server.
type OllamaBackend struct {
	Host     string
	Model    string
	Client   *http.Client
	Attempts int
}

type ollamaRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type ollamaResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// Complete posts prompt with streaming disabled and returns the response text.
func (o *OllamaBackend) Complete(ctx context.Context, prompt string) (string, error) {
	host := o.Host
	if host == "" {
		host = defaultOllamaHost
	}
	model := o.Model
	if model == "" {
		model = defaultOllamaModel
	}

	var resp ollamaResponse
	url := strings.TrimRight(host, "/") + "/api/generate"
	err := httputil.PostJSON(ctx, o.Client, url, nil,
		ollamaRequest{Model: model, Prompt: prompt}, &resp, o.Attempts)
	if err != nil {
		return "", fmt.Errorf("calling Ollama: %w", err)
	}
	return resp.Response, nil
}
