package casefile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"advisor/internal/intake"
	"advisor/internal/recommend"
	"advisor/pkg/platform/sentinel"
)

// schemaVersion is the current persisted collection shape. Version 0 (the
// early intake form) persisted a bare array of records with a flat
// medication list; see migrate.go.
const schemaVersion = 1

// document is the persisted collection envelope.
type document struct {
	Version int    `json:"version"`
	Cases   []Case `json:"cases"`
}

// FileStore persists the whole case collection as one JSON document. Every
// mutation is a whole-collection read-modify-write; a mutex serializes
// writers within this process, but two processes sharing the file can still
// lose an update to each other.
type FileStore struct {
	path string
	log  *log.Logger
	mu   sync.Mutex
}

// NewFileStore builds a store over path. The file and its directory are
// created on first save. logger may be nil.
func NewFileStore(path string, logger *log.Logger) *FileStore {
	return &FileStore{path: path, log: logger}
}

func (s *FileStore) Save(_ context.Context, profile intake.ClientProfile, results []recommend.Item) (Case, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cases := s.readAll()
	c := NewCase(profile, results, time.Now())
	cases = append(cases, c)
	if err := s.writeAll(cases); err != nil {
		return Case{}, err
	}
	return c, nil
}

func (s *FileStore) List(_ context.Context) ([]Case, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readAll(), nil
}

func (s *FileStore) Load(_ context.Context, id string) (Case, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.readAll() {
		if c.ID == id {
			return c, nil
		}
	}
	return Case{}, fmt.Errorf("case %s: %w", id, sentinel.ErrNotFound)
}

func (s *FileStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cases := s.readAll()
	kept := cases[:0]
	found := false
	for _, c := range cases {
		if c.ID == id {
			found = true
			continue
		}
		kept = append(kept, c)
	}
	if !found {
		return fmt.Errorf("case %s: %w", id, sentinel.ErrNotFound)
	}
	return s.writeAll(kept)
}

// readAll loads the full collection, applying the legacy migration when the
// file predates the versioned envelope. Missing or corrupt storage degrades
// to an empty collection rather than failing.
func (s *FileStore) readAll() []Case {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logf("case store: read %s: %v; starting empty", s.path, err)
		}
		return nil
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err == nil && doc.Version >= 1 {
		return doc.Cases
	}

	if cases, ok := migrateLegacy(data); ok {
		s.logf("case store: migrated %d legacy records from %s", len(cases), s.path)
		return cases
	}

	s.logf("case store: %s is not a recognized case collection; starting empty", s.path)
	return nil
}

// writeAll replaces the collection with an atomic rename so readers never
// observe a half-written document.
func (s *FileStore) writeAll(cases []Case) error {
	data, err := json.MarshalIndent(document{Version: schemaVersion, Cases: cases}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode case collection: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create case store directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-")
	if err != nil {
		return fmt.Errorf("stage case collection: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("stage case collection: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("stage case collection: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace case collection: %w", err)
	}
	return nil
}

func (s *FileStore) logf(format string, args ...any) {
	if s.log != nil {
		s.log.Printf(format, args...)
	}
}
