// Package recent maintains the recent-files list: an ordered set of absolute
// paths persisted to a plain text file, one path per line.
package recent

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// DefaultMaxEntries bounds the list when no limit is configured.
const DefaultMaxEntries = 20

// Store is a mutex-guarded recent-files list backed by a text file.
// The mutex exists for the file watcher, which reloads from another
// goroutine; all other access happens on the host's event thread.
type Store struct {
	mu         sync.Mutex
	path       string
	maxEntries int
	entries    []string
}

// NewStore creates a store backed by the given file. The file is loaded
// immediately; a missing file yields an empty list, not an error.
func NewStore(path string, maxEntries int) (*Store, error) {
	if maxEntries < 1 {
		maxEntries = DefaultMaxEntries
	}
	s := &Store{path: path, maxEntries: maxEntries}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Reload replaces the in-memory list with the backing file's content.
func (s *Store) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.entries = nil
			return nil
		}
		return fmt.Errorf("recent: reading %s: %w", s.path, err)
	}

	var entries []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		entries = append(entries, filepath.Clean(line))
	}
	s.entries = entries
	return nil
}

// Add inserts the path at the front of the list. A path already present is
// left in place unless reorder is true, in which case it moves to the front.
// The list is truncated to the entry limit and saved.
func (s *Store) Add(path string, reorder bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path = filepath.Clean(path)
	for i, existing := range s.entries {
		if existing != path {
			continue
		}
		if !reorder {
			return nil
		}
		s.entries = append(s.entries[:i], s.entries[i+1:]...)
		break
	}

	s.entries = append([]string{path}, s.entries...)
	if len(s.entries) > s.maxEntries {
		s.entries = s.entries[:s.maxEntries]
	}
	return s.save()
}

// Remove deletes the path from the list and saves.
func (s *Store) Remove(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path = filepath.Clean(path)
	kept := s.entries[:0]
	for _, existing := range s.entries {
		if existing != path {
			kept = append(kept, existing)
		}
	}
	s.entries = kept
	return s.save()
}

// Clear empties the list and saves.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
	return s.save()
}

// All returns the entries in order, most recent first.
func (s *Store) All() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the number of entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Partition splits the list into paths that still exist on disk and paths
// that no longer do, preserving order.
func (s *Store) Partition() (existing, missing []string) {
	for _, path := range s.All() {
		if _, err := os.Stat(path); err == nil {
			existing = append(existing, path)
		} else {
			missing = append(missing, path)
		}
	}
	return existing, missing
}

// save writes the list to the backing file. Caller holds the mutex.
func (s *Store) save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("recent: creating directory: %w", err)
	}
	content := strings.Join(s.entries, "\n")
	if len(s.entries) > 0 {
		content += "\n"
	}
	if err := os.WriteFile(s.path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("recent: writing %s: %w", s.path, err)
	}
	return nil
}
