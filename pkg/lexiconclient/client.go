// Package lexiconclient is the HTTP client for the lexicon API. It is the
// one place that knows the wire format of words, so editors (including
// autosave sessions) go through it for every read and mutation.
package lexiconclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	defaultTimeout    = 10 * time.Second
	defaultRetryDelay = 500 * time.Millisecond
	maxResponseBytes  = 8 << 20
)

// Client calls the lexicon REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
	retryDelay time.Duration
	log        *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithToken sends token as a bearer credential, which unlocks editorial
// search and the word endpoints.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithRetryDelay sets the pause before the single retry of a failed read.
func WithRetryDelay(d time.Duration) Option {
	return func(c *Client) { c.retryDelay = d }
}

// New creates a Client for the API rooted at baseURL.
func New(baseURL string, logger *slog.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		retryDelay: defaultRetryDelay,
		log:        logger.With("client", "lexicon"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Fields  []FieldError    `json:"fields"`
}

// do sends a request and decodes the envelope's data into out (if non-nil).
// Reads are retried once on a network error or 5xx; writes never are, so
// a failed save surfaces to the caller exactly once.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return fmt.Errorf("lexicon: encode request: %w", err)
		}
	}

	resp, err := c.send(ctx, method, path, payload)
	if err != nil && method == http.MethodGet && ctx.Err() == nil {
		c.log.WarnContext(ctx, "lexicon retry", slog.String("path", path), slog.String("reason", err.Error()))
		select {
		case <-ctx.Done():
			return fmt.Errorf("lexicon: %s %s: %w", method, path, ctx.Err())
		case <-time.After(c.retryDelay):
		}
		resp, err = c.send(ctx, method, path, payload)
	}
	if err != nil {
		return fmt.Errorf("lexicon: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("lexicon: read body: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		if resp.StatusCode >= 400 {
			return &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(raw))}
		}
		return fmt.Errorf("lexicon: decode response: %w", err)
	}
	if resp.StatusCode >= 400 || !env.Success {
		return &APIError{StatusCode: resp.StatusCode, Message: env.Error, Fields: env.Fields}
	}

	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("lexicon: decode data: %w", err)
	}
	return nil
}

// send performs one attempt. A 5xx response is returned as an error so
// that do can retry reads.
func (c *Client) send(ctx context.Context, method, path string, payload []byte) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	c.log.DebugContext(ctx, "lexicon request",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("took", time.Since(start)),
	)

	if resp.StatusCode >= 500 && method == http.MethodGet {
		resp.Body.Close()
		return nil, &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}
	return resp, nil
}
