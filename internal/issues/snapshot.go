// Where: internal/issues/snapshot.go
// What: Snapshot persistence for the issue store.
// Why: Save/load must stay inside one directory and never follow caller paths.
package issues

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

// DefaultSnapshotName is used when a save or load request names no file.
const DefaultSnapshotName = "issues.json"

var (
	// ErrInvalidName rejects snapshot names outside ^[\w\-\.]+\.json$.
	ErrInvalidName = errors.New("invalid snapshot name")
	// ErrSnapshotNotFound reports a load of a snapshot that does not exist.
	ErrSnapshotNotFound = errors.New("snapshot not found")
)

var safeName = regexp.MustCompile(`^[\w\-\.]+\.json$`)

// ValidateName checks name against the safe filename pattern. Separators
// cannot match, so a valid name always stays inside the store directory.
func ValidateName(name string) error {
	if !safeName.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// SnapshotStore persists serialized issue lists by name.
type SnapshotStore interface {
	Save(ctx context.Context, name string, data []byte) error
	Load(ctx context.Context, name string) ([]byte, error)
	Location(name string) string
}

// FileStore keeps snapshots in a fixed directory.
type FileStore struct {
	Dir string
}

// NewFileStore returns a FileStore rooted at dir.
func NewFileStore(dir string) FileStore {
	return FileStore{Dir: dir}
}

// Location returns the file path a snapshot name maps to.
func (f FileStore) Location(name string) string {
	return filepath.Join(f.Dir, name)
}

// Save writes data to name inside the store directory.
func (f FileStore) Save(_ context.Context, name string, data []byte) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if err := os.MkdirAll(f.Dir, 0o755); err != nil {
		return fmt.Errorf("create snapshot directory: %w", err)
	}
	if err := os.WriteFile(f.Location(name), data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// Load reads name from the store directory.
func (f FileStore) Load(_ context.Context, name string) ([]byte, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.Location(name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrSnapshotNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	return data, nil
}
