// Package local persists the guest note collection as a single JSON blob
// on the device. All mutations read-modify-write the entire collection;
// there is no partial-update primitive.
package local

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"notably/pkg/core"
)

// Store is a file-backed ordered collection of notes. Insertion order is
// preserved. Mutations within one process are serialized by an internal
// mutex; concurrent writers from other processes are last-write-wins.
type Store struct {
	path   string
	logger *slog.Logger

	mu            sync.Mutex
	watcherActive bool
}

// NewStore creates a store persisting to path. The file is created lazily
// on the first write.
func NewStore(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{path: path, logger: logger}
}

// Path returns the location of the collection blob.
func (s *Store) Path() string { return s.path }

// load reads the whole collection. A missing file is an empty collection;
// a corrupted file self-heals to empty rather than wedging the store.
func (s *Store) load() ([]core.Note, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read note collection: %w", err)
	}

	var notes []core.Note
	if err := json.Unmarshal(data, &notes); err != nil {
		s.logger.Warn("note collection corrupted, starting fresh", "path", s.path, "error", err)
		return nil, nil
	}
	return notes, nil
}

func (s *Store) persist(notes []core.Note) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	data, err := json.MarshalIndent(notes, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write note collection: %w", err)
	}
	return nil
}

// List returns all notes in insertion order.
func (s *Store) List(ctx context.Context) ([]core.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Add mints a local id, appends the note, and persists the collection.
func (s *Store) Add(ctx context.Context, title, content string) (core.Note, error) {
	return s.AddNote(ctx, core.Note{ID: core.NewLocalID(), Title: title, Content: content})
}

// AddNote appends a note keeping its id. If the id already exists the
// entry is replaced in place, preserving id uniqueness and position.
func (s *Store) AddNote(ctx context.Context, n core.Note) (core.Note, error) {
	if n.ID == "" {
		n.ID = core.NewLocalID()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	notes, err := s.load()
	if err != nil {
		return core.Note{}, err
	}

	replaced := false
	for i := range notes {
		if notes[i].ID == n.ID {
			notes[i] = n
			replaced = true
			break
		}
	}
	if !replaced {
		notes = append(notes, n)
	}

	if err := s.persist(notes); err != nil {
		return core.Note{}, err
	}
	return n, nil
}

// Update replaces title and content in place, keeping the note's position.
// An absent id is a no-op and returns a zero Note: callers may race with a
// concurrent delete, so this must not fail.
func (s *Store) Update(ctx context.Context, id, title, content string) (core.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	notes, err := s.load()
	if err != nil {
		return core.Note{}, err
	}

	for i := range notes {
		if notes[i].ID == id {
			notes[i].Title = title
			notes[i].Content = content
			if err := s.persist(notes); err != nil {
				return core.Note{}, err
			}
			return notes[i], nil
		}
	}
	return core.Note{}, nil
}

// Delete removes the note. Deleting an absent id is a no-op, so a second
// delete of the same id is idempotent.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	notes, err := s.load()
	if err != nil {
		return err
	}

	kept := notes[:0]
	for _, n := range notes {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	if len(kept) == len(notes) {
		return nil
	}
	return s.persist(kept)
}

// Find returns the note or core.ErrNotFound.
func (s *Store) Find(ctx context.Context, id string) (core.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	notes, err := s.load()
	if err != nil {
		return core.Note{}, err
	}
	for _, n := range notes {
		if n.ID == id {
			return n, nil
		}
	}
	return core.Note{}, core.ErrNotFound
}

func (s *Store) setWatcherActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watcherActive = active
}
