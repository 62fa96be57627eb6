package executor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"time"
)

// HTTP executes operations against a remote GraphQL endpoint with a
// standard POST application/json request.
type HTTP struct {
	endpoint string
	client   *http.Client
	headers  http.Header
}

type HTTPOption func(*HTTP)

// WithClient overrides the underlying http.Client.
func WithClient(c *http.Client) HTTPOption { return func(h *HTTP) { h.client = c } }

// WithHeader adds a header to every request, e.g. an Authorization token.
func WithHeader(key, value string) HTTPOption {
	return func(h *HTTP) { h.headers.Add(key, value) }
}

// WithTimeout sets the per-request timeout on the default client.
func WithTimeout(d time.Duration) HTTPOption {
	return func(h *HTTP) { h.client.Timeout = d }
}

// NewHTTP creates an HTTP executor for the given endpoint URL.
func NewHTTP(endpoint string, opts ...HTTPOption) *HTTP {
	h := &HTTP{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 30 * time.Second},
		headers:  http.Header{},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

type httpRequest struct {
	Query string `json:"query"`
}

// Execute posts the operation text and decodes the response body as a
// GraphQL execution result. Network failures, non-success statuses
// without a GraphQL body, and undecodable bodies are transport errors;
// everything else lands in the result.
func (h *HTTP) Execute(ctx context.Context, query string) (*ExecutionResult, error) {
	body, err := json.Marshal(httpRequest{Query: query})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for k, vs := range h.headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if mt, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type")); mt != "application/json" && mt != "application/graphql-response+json" {
		return nil, fmt.Errorf("unexpected response status %d with content type %q", resp.StatusCode, mt)
	}

	var result ExecutionResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &result, nil
}
