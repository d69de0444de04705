// Where: internal/issues/store.go
// What: In-memory issue store.
// Why: Handlers run concurrently, so the list is guarded by a RWMutex.
package issues

import (
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Store keeps issues in insertion order.
type Store struct {
	mu     sync.RWMutex
	items  []Issue
	logger *zap.Logger
}

// NewStore returns an empty store. A nil logger is replaced by a no-op logger.
func NewStore(logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{logger: logger}
}

// Add appends one issue.
func (s *Store) Add(issue Issue) Issue {
	issue = withDefaults(issue)
	s.mu.Lock()
	s.items = append(s.items, issue)
	s.mu.Unlock()
	s.logger.Info("added issue",
		zap.String("id", issue.ID),
		zap.String("title", issue.Title),
		zap.String("severity", string(issue.Severity)),
	)
	return issue
}

// AddMany decodes and appends each entry. Invalid entries are logged and
// skipped; the number of added issues is returned.
func (s *Store) AddMany(raw []json.RawMessage) int {
	decoded := s.decodeAll(raw)
	s.mu.Lock()
	s.items = append(s.items, decoded...)
	s.mu.Unlock()
	return len(decoded)
}

// All returns a copy of every issue.
func (s *Store) All() []Issue {
	return s.filter(func(Issue) bool { return true })
}

// BySeverity returns issues with the given severity.
func (s *Store) BySeverity(severity Severity) []Issue {
	return s.filter(func(issue Issue) bool { return issue.Severity == severity })
}

// ByCategory returns issues in the given category.
func (s *Store) ByCategory(category string) []Issue {
	return s.filter(func(issue Issue) bool { return issue.Category == category })
}

// Len reports how many issues are stored.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Clear removes every issue.
func (s *Store) Clear() {
	s.mu.Lock()
	s.items = nil
	s.mu.Unlock()
	s.logger.Info("cleared all issues")
}

// Report summarizes the current issues.
func (s *Store) Report() Report {
	return buildReport(s.All())
}

// Snapshot serializes every issue as an indented JSON array.
func (s *Store) Snapshot() ([]byte, error) {
	items := s.All()
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode issues: %w", err)
	}
	return data, nil
}

// Restore replaces the store contents with the valid entries of a snapshot.
func (s *Store) Restore(data []byte) (int, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return 0, fmt.Errorf("decode snapshot: %w", err)
	}
	decoded := s.decodeAll(raw)
	s.mu.Lock()
	s.items = decoded
	s.mu.Unlock()
	return len(decoded), nil
}

func (s *Store) decodeAll(raw []json.RawMessage) []Issue {
	decoded := make([]Issue, 0, len(raw))
	for i, entry := range raw {
		issue, err := Decode(entry)
		if err != nil {
			s.logger.Error("failed to add issue", zap.Int("index", i), zap.Error(err))
			continue
		}
		decoded = append(decoded, issue)
	}
	return decoded
}

func (s *Store) filter(keep func(Issue) bool) []Issue {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Issue, 0, len(s.items))
	for _, issue := range s.items {
		if keep(issue) {
			out = append(out, issue)
		}
	}
	return out
}
