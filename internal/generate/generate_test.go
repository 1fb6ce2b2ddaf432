// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sneha-B6/P-1/internal/httputil"
	"github.com/Sneha-B6/P-1/pkg/types"
)

func init() {
	httputil.RetryBaseDelay = 1 * time.Millisecond
}

// fakeBackend replays canned replies and records the prompts it received.
type fakeBackend struct {
	replies []string
	err     error
	prompts []string
}

func (f *fakeBackend) Complete(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	reply := f.replies[0]
	f.replies = f.replies[1:]
	return reply, nil
}

const narrative = `Actors: Shipper, Carrier
Preconditions: Booking exists
Main Flow: 1. Shipper submits manifest. 2. Carrier confirms.
Postconditions: Cargo is scheduled
Exceptions: Manifest rejected`

func TestUserStoryPrompt(t *testing.T) {
	tests := []struct {
		name    string
		focus   string
		want    []string
		notWant []string
	}{
		{
			name:    "without focus",
			want:    []string{"Content:\nCargo BRD\n", "Actors: (List of all actors)", "Exceptions: (Potential deviations)"},
			notWant: []string{"User prompt", "Restructure"},
		},
		{
			name:  "with focus",
			focus: "Region: EMEA",
			want:  []string{"Content:\nCargo BRD\nUser prompt:\nRegion: EMEA\n", "Restructure the user story"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := &fakeBackend{replies: []string{"story"}}
			g := New(fb, nil)

			_, err := g.UserStory(context.Background(), "Cargo BRD", tt.focus)
			require.NoError(t, err)
			require.Len(t, fb.prompts, 1)
			for _, w := range tt.want {
				assert.Contains(t, fb.prompts[0], w)
			}
			for _, w := range tt.notWant {
				assert.NotContains(t, fb.prompts[0], w)
			}
		})
	}
}

func TestUseCase(t *testing.T) {
	fb := &fakeBackend{replies: []string{"  " + narrative + "\n\n"}}
	g := New(fb, nil)

	fs, got, err := g.UseCase(context.Background(), "the story")
	require.NoError(t, err)

	assert.Equal(t, narrative, got)
	assert.Contains(t, fb.prompts[0], "User Story:\nthe story")
	require.Len(t, fs, len(types.DefaultLabels))
	assert.Empty(t, fs.Missing())

	actors, _ := fs.Get(types.LabelActors)
	assert.Equal(t, "Shipper, Carrier", actors)
	exceptions, _ := fs.Get(types.LabelExceptions)
	assert.Equal(t, "Manifest rejected", exceptions)
}

func TestUseCaseMissingSections(t *testing.T) {
	fb := &fakeBackend{replies: []string{"Actors: Shipper"}}

	fs, _, err := New(fb, nil).UseCase(context.Background(), "story")
	require.NoError(t, err)
	assert.Equal(t, []types.SectionLabel{
		types.LabelPreconditions, types.LabelMainFlow, types.LabelPostconditions, types.LabelExceptions,
	}, fs.Missing())
}

func TestEmptyResponse(t *testing.T) {
	fb := &fakeBackend{replies: []string{" \n\t"}}

	_, err := New(fb, nil).UserStory(context.Background(), "brd", "")
	require.ErrorIs(t, err, ErrEmptyResponse)
}

func TestBackendError(t *testing.T) {
	boom := errors.New("connection refused")
	fb := &fakeBackend{err: boom}

	_, _, err := New(fb, nil).UseCase(context.Background(), "story")
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "generating use case")
}

func TestOllamaBackend(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)

		var req ollamaRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "llama3.2", req.Model)
		assert.False(t, req.Stream)
		assert.Equal(t, "hello", req.Prompt)

		json.NewEncoder(w).Encode(ollamaResponse{Response: narrative, Done: true})
	}))
	defer ts.Close()

	b := &OllamaBackend{Host: ts.URL + "/", Client: ts.Client()}
	got, err := b.Complete(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, narrative, got)
}

func TestOllamaBackendModelNotFound(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"model 'nope' not found"}`))
	}))
	defer ts.Close()

	b := &OllamaBackend{Host: ts.URL, Model: "nope", Client: ts.Client()}
	_, err := b.Complete(context.Background(), "hello")

	var se *httputil.StatusError
	require.True(t, errors.As(err, &se), "got %v", err)
	assert.Equal(t, http.StatusNotFound, se.StatusCode)
}

func TestClaudeBackend(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))

		var req claudeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, defaultClaudeModel, req.Model)
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "user", req.Messages[0].Role)

		json.NewEncoder(w).Encode(claudeResponse{Content: []claudeContent{
			{Type: "text", Text: "Actors: Shipper\n"},
			{Type: "tool_use"},
			{Type: "text", Text: "Exceptions: None"},
		}})
	}))
	defer ts.Close()

	orig := claudeAPIURL
	claudeAPIURL = ts.URL
	t.Cleanup(func() { claudeAPIURL = orig })

	b := &ClaudeBackend{APIKey: "test-key", Client: ts.Client()}
	got, err := b.Complete(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "Actors: Shipper\nExceptions: None", got)
}

func TestClaudeBackendNoText(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"content":[]}`))
	}))
	defer ts.Close()

	orig := claudeAPIURL
	claudeAPIURL = ts.URL
	t.Cleanup(func() { claudeAPIURL = orig })

	_, err := (&ClaudeBackend{APIKey: "k", Client: ts.Client()}).Complete(context.Background(), "p")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "no text content"))
}

func TestNewBackend(t *testing.T) {
	cfg := types.DefaultPipelineConfig().Generation

	b, err := NewBackend(cfg)
	require.NoError(t, err)
	assert.IsType(t, &OllamaBackend{}, b)

	cfg.Backend = types.BackendClaude
	_, err = NewBackend(cfg)
	require.Error(t, err, "claude without key")

	cfg.APIKey = "k"
	b, err = NewBackend(cfg)
	require.NoError(t, err)
	assert.IsType(t, &ClaudeBackend{}, b)

	cfg.Backend = "gpt"
	_, err = NewBackend(cfg)
	require.Error(t, err)
}
