// Package rest is a thin HTTP client for the notes API. Every request is
// JSON over HTTPS with a bearer token; failures are classified into the
// core error taxonomy so the repository can route around them.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"notably/pkg/core"
)

// DefaultTimeout bounds every outbound call.
const DefaultTimeout = 15 * time.Second

// maxErrorBody caps how much of an error response is kept for messages.
const maxErrorBody = 4 << 10

// Client talks to the notes API. Safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures the client.
type Option func(*Client)

// WithTimeout overrides the request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithHTTPClient replaces the underlying HTTP client entirely.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// NewClient creates a client for the API at baseURL (scheme and host, no
// trailing slash).
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// doRequest performs an HTTP request with JSON and bearer headers.
// Transport failures come back as KindNetwork.
func (c *Client) doRequest(ctx context.Context, method, path, token string, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.logger.Debug("api request", "method", method, "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &core.RemoteError{Kind: core.KindNetwork, Err: err}
	}
	return resp, nil
}

// decodeResponse classifies non-2xx statuses and decodes the body into
// target when one is expected. Error bodies are read as best-effort text,
// never assumed well-formed.
func decodeResponse(resp *http.Response, target any) error {
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusError(resp)
	}

	if target != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// statusError maps a non-2xx response to the error taxonomy: 401/403 mean
// the stored token is stale, everything else is a server fault. The body
// is read as best-effort text.
func statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	kind := core.KindServer
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		kind = core.KindAuth
	}
	return &core.RemoteError{
		Kind:   kind,
		Status: resp.StatusCode,
		Body:   strings.TrimSpace(string(body)),
	}
}

// List fetches all notes of the authenticated user.
func (c *Client) List(ctx context.Context, token string) ([]core.Note, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/Notes", token, nil)
	if err != nil {
		return nil, err
	}

	var notes []core.Note
	if err := decodeResponse(resp, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// Get fetches a single note by id.
func (c *Client) Get(ctx context.Context, token, id string) (core.Note, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/Notes/"+url.PathEscape(id), token, nil)
	if err != nil {
		return core.Note{}, err
	}

	var note core.Note
	if err := decodeResponse(resp, &note); err != nil {
		return core.Note{}, err
	}
	return note, nil
}

// noteRequest is the write payload. The id travels in the URL, never the
// body.
type noteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Create posts a new note; the server assigns the id and echoes the note.
func (c *Client) Create(ctx context.Context, token, title, content string) (core.Note, error) {
	payload := noteRequest{Title: title, Content: content}
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/Notes", token, payload)
	if err != nil {
		return core.Note{}, err
	}

	var note core.Note
	if err := decodeResponse(resp, &note); err != nil {
		return core.Note{}, err
	}
	return note, nil
}

// Update replaces a note's fields. Some server responses carry no body;
// that is success without echo and Update returns nil, nil.
func (c *Client) Update(ctx context.Context, token, id, title, content string) (*core.Note, error) {
	payload := noteRequest{Title: title, Content: content}
	resp, err := c.doRequest(ctx, http.MethodPut, "/api/Notes/"+url.PathEscape(id), token, payload)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, statusError(resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}

	var note core.Note
	if err := json.Unmarshal(body, &note); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &note, nil
}

// Delete removes a note. No response body is expected.
func (c *Client) Delete(ctx context.Context, token, id string) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, "/api/Notes/"+url.PathEscape(id), token, nil)
	if err != nil {
		return err
	}
	return decodeResponse(resp, nil)
}
