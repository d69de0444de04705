package github

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepoIDSendsHeaders(t *testing.T) {
	var gotAuth, gotAccept, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": 123456, "full_name": "octo/hello"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret")
	id, err := client.RepoID(context.Background(), "octo", "hello")

	require.NoError(t, err)
	assert.Equal(t, int64(123456), id)
	assert.Equal(t, "token secret", gotAuth)
	assert.Equal(t, "application/vnd.github.v3+json", gotAccept)
	assert.Equal(t, "/repos/octo/hello", gotPath)
}

func TestRepoIDWithoutToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"id": 1}`))
	}))
	defer server.Close()

	id, err := NewClient(server.URL, "").RepoID(context.Background(), "a", "b")
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
}

func TestRepoIDUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message": "Not Found"}`))
	}))
	defer server.Close()

	_, err := NewClient(server.URL, "").RepoID(context.Background(), "a", "missing")

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.JSONEq(t, `{"message": "Not Found"}`, string(apiErr.Body))
}

func TestParseRepoURL(t *testing.T) {
	cases := []struct {
		in    string
		owner string
		repo  string
	}{
		{"https://github.com/octo/hello", "octo", "hello"},
		{"https://github.com/octo/hello.git", "octo", "hello"},
		{"https://github.com/octo/hello/pull/7", "octo", "hello"},
		{"http://github.com/octo/hello/", "octo", "hello"},
		{"git@github.com:octo/hello.git", "octo", "hello"},
		{"ssh://git@github.com/octo/hello.git", "octo", "hello"},
		{"github.com/octo/hello", "octo", "hello"},
		{"octo/hello", "octo", "hello"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			owner, repo, err := ParseRepoURL(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.owner, owner)
			assert.Equal(t, tc.repo, repo)
		})
	}
}

func TestParseRepoURLRejectsInvalid(t *testing.T) {
	for _, in := range []string{"", "https://github.com/octo", "octo", "git@github.com", "https://github.com/octo/.git"} {
		_, _, err := ParseRepoURL(in)
		assert.ErrorIs(t, err, ErrInvalidRepoURL, in)
	}
}

func TestPullRequestURL(t *testing.T) {
	assert.Equal(t, "https://github.com/octo/hello/pull/7", PullRequestURL("octo", "hello", 7))
}
