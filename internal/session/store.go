package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNotFound is returned when a named snapshot does not exist.
var ErrNotFound = errors.New("session not found")

const snapshotExt = ".json"

// Store persists session snapshots as JSON files under a single
// directory. It only serializes and deserializes copies; the live
// transcript stays owned by the caller.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir. The directory is created on
// first save.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (st *Store) path(name string) string {
	return filepath.Join(st.dir, name+snapshotExt)
}

// Save writes a snapshot of the session under the given name, atomically.
func (st *Store) Save(name string, s *Session) error {
	if err := os.MkdirAll(st.dir, 0o755); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	data = append(data, '\n')

	// Atomic write: temp file then rename.
	target := st.path(name)
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	if err := os.Rename(tmp, target); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename session: %w", err)
	}
	return nil
}

// Load reads the named snapshot into a fresh Session.
func (st *Store) Load(name string) (*Session, error) {
	data, err := os.ReadFile(st.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read session: %w", err)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &s, nil
}

// Delete removes the named snapshot. Deleting a snapshot that does not
// exist returns ErrNotFound and leaves the stored set unmodified.
func (st *Store) Delete(name string) error {
	target := st.path(name)
	if _, err := os.Stat(target); err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("stat session: %w", err)
	}
	if err := os.Remove(target); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// List returns the saved snapshot names, sorted. A missing store
// directory is an empty list, not an error.
func (st *Store) List() ([]string, error) {
	entries, err := os.ReadDir(st.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read session dir: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), snapshotExt) {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), snapshotExt))
	}
	sort.Strings(names)
	return names, nil
}
