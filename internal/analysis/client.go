package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	analyzeTimeout   = 10 * time.Second
	standardsTimeout = 5 * time.Second
)

// UpstreamError carries whatever the ML service said when it refused or
// failed a call. Body is empty for transport-level failures.
type UpstreamError struct {
	Body string
	Err  error
}

func (e *UpstreamError) Error() string {
	if e.Body != "" {
		return e.Body
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "ML service error"
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Client talks to the external ML analysis service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
}

// Analyze forwards the raw request body to the ML service. One attempt,
// bounded at 10s, no retry.
func (c *Client) Analyze(ctx context.Context, body []byte) (json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, analyzeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/analyze", bytes.NewReader(body))
	if err != nil {
		return nil, &UpstreamError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req)
}

// Standards fetches the reference ranges the ML service analyzes against.
func (c *Client) Standards(ctx context.Context) (json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, standardsTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/standards", nil)
	if err != nil {
		return nil, &UpstreamError{Err: err}
	}

	return c.do(req)
}

func (c *Client) do(req *http.Request) (json.RawMessage, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &UpstreamError{Err: err}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UpstreamError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &UpstreamError{
			Body: string(payload),
			Err:  fmt.Errorf("ML service returned HTTP %d", resp.StatusCode),
		}
	}
	return payload, nil
}
