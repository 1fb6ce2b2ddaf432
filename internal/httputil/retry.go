// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the JSON-over-HTTP helper shared by the model
// backends.
package httputil

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/avast/retry-go/v4"
)

// RetryBaseDelay controls the base duration for exponential backoff between
// attempts. Tests override this to avoid real sleeps.
var RetryBaseDelay = 2 * time.Second

const defaultAttempts = 3

// maxErrorBody bounds how much of a failed response body is kept.
const maxErrorBody = 2048

// StatusError reports a non-2xx response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
}

// Retryable reports whether the status is worth another attempt: 429 and
// any 5xx.
func (e *StatusError) Retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// PostJSON marshals in, POSTs it to url with headers, and decodes a 2xx JSON
// response into out. Transport errors, 429 and 5xx responses are retried up
// to attempts times (0 means the default of 3) with exponential backoff
// starting at RetryBaseDelay. Other 4xx responses fail immediately with a
// *StatusError.
func PostJSON(ctx context.Context, client *http.Client, url string, headers map[string]string, in, out any, attempts int) error {
	if attempts <= 0 {
		attempts = defaultAttempts
	}
	if client == nil {
		client = http.DefaultClient
	}

	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	return retry.Do(
		func() error {
			return postOnce(ctx, client, url, headers, body, out)
		},
		retry.Context(ctx),
		retry.Attempts(uint(attempts)),
		retry.Delay(RetryBaseDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			var se *StatusError
			if errors.As(err, &se) {
				return se.Retryable()
			}
			var de *decodeError
			return !errors.As(err, &de)
		}),
	)
}

// decodeError marks a response that arrived but could not be decoded;
// retrying would not change it.
type decodeError struct{ err error }

func (e *decodeError) Error() string { return "decoding response: " + e.err.Error() }
func (e *decodeError) Unwrap() error { return e.err }

func postOnce(ctx context.Context, client *http.Client, url string, headers map[string]string, body []byte, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return retry.Unrecoverable(fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{StatusCode: resp.StatusCode, Body: string(bytes.TrimSpace(msg))}
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &decodeError{err: err}
	}
	return nil
}
