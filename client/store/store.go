// Package store persists the client's session state between runs.
package store

import (
	"encoding/json"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"
)

// The only keys the client ever stores.
const (
	KeyToken = "token"
	KeyUser  = "user"
)

const stateFile = "session.json"

// Store is a small durable key-value store backed by a JSON file. When the
// state directory is unusable it degrades to memory-only: callers never see
// an error, the session just does not survive a restart.
type Store struct {
	mu     sync.Mutex
	fs     afero.Fs
	dir    string // empty means memory-only
	values map[string]string
}

// New opens the store rooted at dir, loading any previously saved state.
func New(fs afero.Fs, dir string) *Store {
	s := &Store{fs: fs, dir: dir, values: make(map[string]string)}
	if err := fs.MkdirAll(dir, 0o700); err != nil {
		s.dir = ""
		return s
	}
	s.load()
	return s
}

// Set saves value under key, overwriting any previous value.
func (s *Store) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	s.save()
}

// Get returns the value for key and whether it was present.
func (s *Store) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

// Clear removes all stored state, both in memory and on disk.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = make(map[string]string)
	s.save()
}

func (s *Store) load() {
	data, err := afero.ReadFile(s.fs, s.path())
	if err != nil {
		return
	}
	var values map[string]string
	if err := json.Unmarshal(data, &values); err != nil {
		// Corrupt state file, start over.
		return
	}
	s.values = values
}

// save writes the state via a temp file and rename so a crash mid-write
// never leaves a truncated file. Caller holds the lock.
func (s *Store) save() {
	if s.dir == "" {
		return
	}
	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return
	}
	tmp := s.path() + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, data, 0o600); err != nil {
		return
	}
	if err := s.fs.Rename(tmp, s.path()); err != nil {
		s.fs.Remove(tmp)
	}
}

func (s *Store) path() string {
	return filepath.Join(s.dir, stateFile)
}
