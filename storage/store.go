package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStore persists each collection as a whole-file JSON array under dir.
// There is no indexing and no partial write: callers load a collection,
// modify it, and save it back in full. A per-collection mutex is exposed so
// that load-modify-save sequences from concurrent requests do not drop
// writes.
type FileStore struct {
	dir string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{
		dir:   dir,
		locks: make(map[string]*sync.Mutex),
	}
}

// Locker returns the mutex guarding a collection. Hold it for the whole
// load-modify-save sequence, not just the individual calls.
func (s *FileStore) Locker(collection string) sync.Locker {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[collection]
	if !ok {
		l = &sync.Mutex{}
		s.locks[collection] = l
	}
	return l
}

// Load reads a collection into out. A missing backing file means the
// collection is empty, not an error; out is left untouched in that case.
// A file that exists but does not parse is corrupted persisted state and
// is returned as an error.
func (s *FileStore) Load(collection string, out any) error {
	data, err := os.ReadFile(s.path(collection))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read %s: %w", collection, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse %s: %w", collection, err)
	}
	return nil
}

// Save rewrites the collection file with the full record set,
// pretty-printed for human readability.
func (s *FileStore) Save(collection string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", collection, err)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	if err := os.WriteFile(s.path(collection), data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", collection, err)
	}
	return nil
}

func (s *FileStore) path(collection string) string {
	return filepath.Join(s.dir, collection+".json")
}
