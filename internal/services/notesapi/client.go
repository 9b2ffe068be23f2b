package notesapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"notesift/internal/notes"
)

const defaultHTTPTimeout = 120 * time.Second

// Client wraps the customer-notes backend HTTP API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option customizes the backend client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout overrides the default request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// NewClient constructs a backend client for the given base URL.
func NewClient(baseURL string, opts ...Option) *Client {
	client := &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return client
}

// FetchRequest is the body of POST /notes/fetch.
type FetchRequest struct {
	Names              []string        `json:"names"`
	DateRange          notes.DateRange `json:"dateRange"`
	ProjectDescription string          `json:"projectDescription"`
}

type relevanceRequest struct {
	Notes              []notes.CustomerNote `json:"notes"`
	ProjectDescription string               `json:"projectDescription"`
}

type qaRequest struct {
	Notes     []notes.CustomerNote `json:"notes"`
	Questions []string             `json:"questions"`
}

// FetchNotes retrieves customer notes matching the query. An empty result is
// not an error.
func (c *Client) FetchNotes(ctx context.Context, req FetchRequest) ([]notes.CustomerNote, error) {
	var fetched []notes.CustomerNote
	if err := c.post(ctx, "/notes/fetch", req, &fetched); err != nil {
		return nil, fmt.Errorf("notes fetch: %w", err)
	}
	return fetched, nil
}

// ProductManagerNames returns the name directory used to scope fetches.
func (c *Client) ProductManagerNames(ctx context.Context) ([]string, error) {
	var names []string
	if err := c.get(ctx, "/notes/pm-names", &names); err != nil {
		return nil, fmt.Errorf("pm names: %w", err)
	}
	return names, nil
}

// TransformNotes sends the full batch for HTML cleanup and enforces the
// contract that the response preserves input order and cardinality: the note
// at index i of the output corresponds to the note at index i of the input.
func (c *Client) TransformNotes(ctx context.Context, batch []notes.CustomerNote) ([]notes.CustomerNote, error) {
	var cleaned []notes.CustomerNote
	if err := c.post(ctx, "/notes/transform", batch, &cleaned); err != nil {
		return nil, fmt.Errorf("notes transform: %w", err)
	}
	if len(cleaned) != len(batch) {
		return nil, fmt.Errorf("notes transform: cardinality mismatch: sent %d notes, received %d", len(batch), len(cleaned))
	}
	for i := range cleaned {
		if cleaned[i].NoteID != batch[i].NoteID {
			return nil, fmt.Errorf("notes transform: order violation at index %d: sent %q, received %q", i, batch[i].NoteID, cleaned[i].NoteID)
		}
	}
	return cleaned, nil
}

// FilterRelevance returns the order-preserving subset of notes the backend
// judges relevant to the project description.
func (c *Client) FilterRelevance(ctx context.Context, batch []notes.CustomerNote, projectDescription string) ([]notes.CustomerNote, error) {
	var kept []notes.CustomerNote
	req := relevanceRequest{Notes: batch, ProjectDescription: projectDescription}
	if err := c.post(ctx, "/notes/filter-relevance", req, &kept); err != nil {
		return nil, fmt.Errorf("relevance filter: %w", err)
	}
	return kept, nil
}

// AnswerQuestions poses the question batch against the note batch and returns
// one result row per note.
func (c *Client) AnswerQuestions(ctx context.Context, batch []notes.CustomerNote, questions []string) ([]notes.QAResult, error) {
	var results []notes.QAResult
	req := qaRequest{Notes: batch, Questions: questions}
	if err := c.post(ctx, "/notes/answer-questions", req, &results); err != nil {
		return nil, fmt.Errorf("answer questions: %w", err)
	}
	return results, nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	encoded, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, bytes.NewReader(encoded), out)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, out any) error {
	if c.baseURL == "" {
		return errors.New("base url not configured")
	}
	endpoint, err := url.JoinPath(c.baseURL, path)
	if err != nil {
		return fmt.Errorf("build url: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode == http.StatusUnprocessableEntity {
		return decodeValidationError(payload)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("http %d: %s", resp.StatusCode, strings.TrimSpace(string(payload)))
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
