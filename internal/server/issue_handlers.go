package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/vessel-dev/vessel/internal/issues"
)

type snapshotRequest struct {
	FilePath string `json:"filepath"`
}

func (s *Server) handleListIssues(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	var list []issues.Issue
	switch {
	case query.Get("severity") != "":
		list = s.issues.BySeverity(issues.Severity(query.Get("severity")))
	case query.Get("category") != "":
		list = s.issues.ByCategory(query.Get("category"))
	default:
		list = s.issues.All()
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"issues": list})
}

func (s *Server) handleIssueReport(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.issues.Report())
}

func (s *Server) handleAddIssue(w http.ResponseWriter, r *http.Request) {
	data, err := readBody(w, r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Missing issue body", nil)
		return
	}
	issue, err := issues.Decode(data)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}
	issue = s.issues.Add(issue)
	s.writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Issue added successfully",
		"issue":   issue,
	})
}

func (s *Server) handleBulkIssues(w http.ResponseWriter, r *http.Request) {
	data, err := readBody(w, r)
	if err != nil || !bytes.HasPrefix(bytes.TrimSpace(data), []byte("[")) {
		s.writeError(w, http.StatusBadRequest, "Expected a list of issues", nil)
		return
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		s.writeError(w, http.StatusBadRequest, "Expected a list of issues", nil)
		return
	}
	added := s.issues.AddMany(raw)
	s.writeJSON(w, http.StatusCreated, map[string]any{
		"message": fmt.Sprintf("Added %d issues", added),
		"added":   added,
		"skipped": len(raw) - added,
	})
}

func (s *Server) handleClearIssues(w http.ResponseWriter, _ *http.Request) {
	s.issues.Clear()
	s.writeJSON(w, http.StatusOK, map[string]string{"message": "All issues cleared"})
}

func (s *Server) handleSaveIssues(w http.ResponseWriter, r *http.Request) {
	name, ok := s.snapshotName(w, r)
	if !ok {
		return
	}
	data, err := s.issues.Snapshot()
	if err == nil {
		err = s.snapshots.Save(r.Context(), name, data)
	}
	if err != nil {
		s.logger.Error("failed to save issues", zap.String("location", s.snapshots.Location(name)), zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "Failed to save issues", nil)
		return
	}
	s.logger.Info("saved issues", zap.String("location", s.snapshots.Location(name)), zap.Int("count", s.issues.Len()))
	s.writeJSON(w, http.StatusOK, map[string]any{
		"message": fmt.Sprintf("Saved issues to %s", name),
		"count":   s.issues.Len(),
	})
}

func (s *Server) handleLoadIssues(w http.ResponseWriter, r *http.Request) {
	name, ok := s.snapshotName(w, r)
	if !ok {
		return
	}
	data, err := s.snapshots.Load(r.Context(), name)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, issues.ErrSnapshotNotFound) {
			status = http.StatusNotFound
			s.logger.Warn("snapshot does not exist", zap.String("location", s.snapshots.Location(name)))
		} else {
			s.logger.Error("failed to load issues", zap.String("location", s.snapshots.Location(name)), zap.Error(err))
		}
		s.writeError(w, status, fmt.Sprintf("Failed to load issues from %s", name), nil)
		return
	}
	count, err := s.issues.Restore(data)
	if err != nil {
		s.logger.Error("failed to decode snapshot", zap.String("location", s.snapshots.Location(name)), zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to load issues from %s", name), nil)
		return
	}
	s.logger.Info("loaded issues", zap.String("location", s.snapshots.Location(name)), zap.Int("count", count))
	s.writeJSON(w, http.StatusOK, map[string]any{
		"message": fmt.Sprintf("Loaded issues from %s", name),
		"count":   count,
	})
}

// snapshotName reads and validates the requested file name before any
// storage access. A blank name means the default snapshot.
func (s *Server) snapshotName(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req snapshotRequest
	if err := decodeBody(w, r, &req); err != nil && !errors.Is(err, errEmptyBody) {
		s.writeError(w, http.StatusBadRequest, "Invalid JSON body", nil)
		return "", false
	}
	name := strings.TrimSpace(req.FilePath)
	if name == "" {
		name = issues.DefaultSnapshotName
	}
	if err := issues.ValidateName(name); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid file name", nil)
		return "", false
	}
	return name, true
}
