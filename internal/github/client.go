// Where: internal/github/client.go
// What: GitHub repository metadata client.
// Why: Scans are dispatched by numeric repository ID, not owner/name.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

// DefaultBaseURL is the public GitHub REST endpoint.
const DefaultBaseURL = "https://api.github.com"

const (
	acceptHeader   = "application/vnd.github.v3+json"
	requestTimeout = 15 * time.Second
	maxErrorBody   = 64 << 10
)

// APIError reports a non-2xx response from GitHub.
type APIError struct {
	Status int
	Body   json.RawMessage
}

func (e *APIError) Error() string {
	return fmt.Sprintf("github api returned status %d", e.Status)
}

// Client looks up repositories. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient returns a client for baseURL. When token is set, requests carry
// "Authorization: token <token>".
func NewClient(baseURL, token string) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	httpClient := &http.Client{}
	if token != "" {
		httpClient = oauth2.NewClient(context.Background(), oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: token,
			TokenType:   "token",
		}))
	}
	httpClient.Timeout = requestTimeout
	return &Client{httpClient: httpClient, baseURL: strings.TrimRight(baseURL, "/")}
}

// Repository is the subset of GitHub's repository payload we use.
type Repository struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
}

// RepoID returns the numeric ID of owner/repo.
func (c *Client) RepoID(ctx context.Context, owner, repo string) (int64, error) {
	repository, err := c.Repository(ctx, owner, repo)
	if err != nil {
		return 0, err
	}
	return repository.ID, nil
}

// Repository fetches repository metadata.
func (c *Client) Repository(ctx context.Context, owner, repo string) (Repository, error) {
	endpoint := fmt.Sprintf("%s/repos/%s/%s", c.baseURL, url.PathEscape(owner), url.PathEscape(repo))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Repository{}, fmt.Errorf("build github request: %w", err)
	}
	req.Header.Set("Accept", acceptHeader)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Repository{}, fmt.Errorf("github request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return Repository{}, &APIError{Status: resp.StatusCode, Body: rawOrNull(body)}
	}

	var repository Repository
	if err := json.NewDecoder(resp.Body).Decode(&repository); err != nil {
		return Repository{}, fmt.Errorf("decode github response: %w", err)
	}
	return repository, nil
}

func rawOrNull(body []byte) json.RawMessage {
	if json.Valid(body) {
		return json.RawMessage(body)
	}
	return nil
}
