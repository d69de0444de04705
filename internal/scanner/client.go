// Where: internal/scanner/client.go
// What: Security-scanner API client.
// Why: Dispatch scans and fetch status/issues, passing responses through verbatim.
package scanner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// DefaultBaseURL is the public scanner endpoint.
const DefaultBaseURL = "https://api.pensar.dev"

const (
	dispatchPath   = "/ci/scan/dispatch"
	statusPath     = "/ci/scan/status"
	issuesPath     = "/ci/scan/issues"
	requestTimeout = 30 * time.Second
	maxBody        = 4 << 20
)

// UpstreamError reports a non-2xx response from the scanner.
// Body holds the response when it was valid JSON.
type UpstreamError struct {
	Status int
	Body   json.RawMessage
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("scanner api returned status %d", e.Status)
}

// DispatchRequest describes one pull-request scan.
type DispatchRequest struct {
	RepoID       int64
	TargetBranch string
	PullRequest  string
}

// Options configures a Client.
type Options struct {
	BaseURL string
	APIKey  string
	// RequestsPerSecond throttles outbound calls; zero or less disables throttling.
	RequestsPerSecond float64
	HTTPClient        *http.Client
}

// Client calls the scanner API. It is safe for concurrent use.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient builds a Client from opts.
func NewClient(opts Options) *Client {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: requestTimeout}
	}
	limiter := rate.NewLimiter(rate.Inf, 1)
	if opts.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     opts.APIKey,
		httpClient: httpClient,
		limiter:    limiter,
	}
}

// Dispatch starts a scan for a pull request.
func (c *Client) Dispatch(ctx context.Context, req DispatchRequest) (json.RawMessage, error) {
	return c.post(ctx, dispatchPath, map[string]any{
		"repoId":       req.RepoID,
		"apiKey":       c.apiKey,
		"targetBranch": req.TargetBranch,
		"actionRunId":  1,
		"pullRequest":  req.PullRequest,
		"eventType":    "pull-request",
	})
}

// Status returns the scanner's status payload for scanID.
func (c *Client) Status(ctx context.Context, scanID string) (json.RawMessage, error) {
	return c.post(ctx, statusPath, map[string]any{"scanId": scanID, "apiKey": c.apiKey})
}

// Issues returns the scanner's issue payload for scanID.
func (c *Client) Issues(ctx context.Context, scanID string) (json.RawMessage, error) {
	return c.post(ctx, issuesPath, map[string]any{"scanId": scanID, "apiKey": c.apiKey})
}

func (c *Client) post(ctx context.Context, path string, payload map[string]any) (json.RawMessage, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("scanner rate limit: %w", err)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode scanner request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build scanner request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("scanner request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("read scanner response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		upstream := &UpstreamError{Status: resp.StatusCode}
		if json.Valid(data) {
			upstream.Body = data
		}
		return nil, upstream
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("scanner returned invalid JSON")
	}
	return data, nil
}
