// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Sneha-B6/P-1/internal/httputil"
)

// claudeAPIURL is the Claude API endpoint. Package-level var for test substitution.
var claudeAPIURL = "https://api.anthropic.com/v1/messages"

const (
	defaultClaudeModel = "claude-sonnet-4-20250514"
	claudeMaxTokens    = 4096
)

// ClaudeBackend calls the Claude Messages API.
type ClaudeBackend struct {
	APIKey   string
	Model    string
	Client   *http.Client
	Attempts int
}

// claudeRequest is the request body for the Claude Messages API.
type claudeRequest struct {
	Model     string          `json:"model"`
	MaxTokens int             `json:"max_tokens"`
	Messages  []claudeMessage `json:"messages"`
}

type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type claudeResponse struct {
	Content []claudeContent `json:"content"`
}

type claudeContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Complete sends prompt as a single user message and joins the text blocks
// of the reply.
func (c *ClaudeBackend) Complete(ctx context.Context, prompt string) (string, error) {
	model := c.Model
	if model == "" || model == defaultOllamaModel {
		model = defaultClaudeModel
	}

	reqBody := claudeRequest{
		Model:     model,
		MaxTokens: claudeMaxTokens,
		Messages: []claudeMessage{
			{Role: "user", Content: prompt},
		},
	}
	headers := map[string]string{
		"x-api-key":         c.APIKey,
		"anthropic-version": "2023-06-01",
	}

	var cResp claudeResponse
	if err := httputil.PostJSON(ctx, c.Client, claudeAPIURL, headers, reqBody, &cResp, c.Attempts); err != nil {
		return "", fmt.Errorf("calling Claude API: %w", err)
	}

	var b strings.Builder
	for _, block := range cResp.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	if b.Len() == 0 {
		return "", errors.New("no text content in Claude API response")
	}
	return b.String(), nil
}
