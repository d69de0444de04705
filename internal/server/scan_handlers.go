package server

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/vessel-dev/vessel/internal/github"
	"github.com/vessel-dev/vessel/internal/scanner"
)

type repoIDRequest struct {
	URL string `json:"url"`
}

type triggerScanRequest struct {
	URL          string `json:"url"`
	Owner        string `json:"owner"`
	Repo         string `json:"repo"`
	PRNumber     *int   `json:"prNumber"`
	TargetBranch string `json:"targetBranch"`
}

type scanIDRequest struct {
	ScanID string `json:"scanId"`
}

func (s *Server) handleRepoID(w http.ResponseWriter, r *http.Request) {
	var req repoIDRequest
	if err := decodeBody(w, r, &req); err != nil && !errors.Is(err, errEmptyBody) {
		s.writeError(w, http.StatusBadRequest, "Invalid JSON body", nil)
		return
	}
	if strings.TrimSpace(req.URL) == "" {
		s.writeError(w, http.StatusBadRequest, "Missing url", nil)
		return
	}
	owner, repo, err := github.ParseRepoURL(req.URL)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid GitHub repository URL", nil)
		return
	}

	repoID, err := s.repos.RepoID(r.Context(), owner, repo)
	if err != nil {
		s.writeUpstreamError(w, "github lookup failed", err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"owner":   owner,
		"repo":    repo,
		"repoId":  repoID,
	})
}

func (s *Server) handleTriggerScan(w http.ResponseWriter, r *http.Request) {
	var req triggerScanRequest
	if err := decodeBody(w, r, &req); err != nil && !errors.Is(err, errEmptyBody) {
		s.writeError(w, http.StatusBadRequest, "Invalid JSON body", nil)
		return
	}
	owner, repo := strings.TrimSpace(req.Owner), strings.TrimSpace(req.Repo)
	if strings.TrimSpace(req.URL) != "" {
		var err error
		owner, repo, err = github.ParseRepoURL(req.URL)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "Invalid GitHub repository URL", nil)
			return
		}
	}
	if owner == "" || repo == "" || req.PRNumber == nil || strings.TrimSpace(req.TargetBranch) == "" {
		s.writeError(w, http.StatusBadRequest, "Missing required fields", nil)
		return
	}

	ctx := r.Context()
	repoID, err := s.repos.RepoID(ctx, owner, repo)
	if err != nil {
		s.writeUpstreamError(w, "github lookup failed", err)
		return
	}
	pullRequest := github.PullRequestURL(owner, repo, *req.PRNumber)
	resp, err := s.scanner.Dispatch(ctx, scanner.DispatchRequest{
		RepoID:       repoID,
		TargetBranch: req.TargetBranch,
		PullRequest:  pullRequest,
	})
	if err != nil {
		s.writeUpstreamError(w, "scan dispatch failed", err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"success":        true,
		"repoId":         repoID,
		"pullRequest":    pullRequest,
		"pensarResponse": resp,
	})
}

func (s *Server) handleScanStatus(w http.ResponseWriter, r *http.Request) {
	scanID, ok := s.scanIDFrom(w, r)
	if !ok {
		return
	}
	resp, err := s.scanner.Status(r.Context(), scanID)
	if err != nil {
		s.writeUpstreamError(w, "scan status failed", err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"success":        true,
		"scanId":         scanID,
		"statusResponse": resp,
	})
}

func (s *Server) handleScanIssues(w http.ResponseWriter, r *http.Request) {
	scanID, ok := s.scanIDFrom(w, r)
	if !ok {
		return
	}
	resp, err := s.scanner.Issues(r.Context(), scanID)
	if err != nil {
		s.writeUpstreamError(w, "scan issues failed", err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"success":        true,
		"scanId":         scanID,
		"issuesResponse": resp,
	})
}

func (s *Server) scanIDFrom(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req scanIDRequest
	if err := decodeBody(w, r, &req); err != nil && !errors.Is(err, errEmptyBody) {
		s.writeError(w, http.StatusBadRequest, "Invalid JSON body", nil)
		return "", false
	}
	if strings.TrimSpace(req.ScanID) == "" {
		s.writeError(w, http.StatusBadRequest, "Missing scanId", nil)
		return "", false
	}
	return req.ScanID, true
}

// writeUpstreamError maps a GitHub or scanner failure to 502 when the upstream
// answered, or 500 when it could not be reached.
func (s *Server) writeUpstreamError(w http.ResponseWriter, msg string, err error) {
	s.logger.Error(msg, zap.Error(err))

	var apiErr *github.APIError
	if errors.As(err, &apiErr) {
		s.writeError(w, http.StatusBadGateway, err.Error(), apiErr.Body)
		return
	}
	var upstream *scanner.UpstreamError
	if errors.As(err, &upstream) {
		s.writeError(w, http.StatusBadGateway, err.Error(), upstream.Body)
		return
	}
	s.writeError(w, http.StatusInternalServerError, err.Error(), nil)
}
