package mood

import (
	"encoding/json"
	"os"
	"sync"
	"time"

	"github.com/willowmind/companion-backend/internal/apperr"
)

// Store exposes mood persistence for the dispatcher and HTTP handlers.
// Entries for a user are append-only and returned oldest first.
type Store interface {
	Append(userID, moodText string) (Entry, error)
	History(userID string) ([]Entry, error)
}

// FileStore keeps the whole log as a single JSON document mapping user id
// to entries, rewritten on every append. A process-local mutex serializes
// writers; concurrent processes sharing the file remain last-writer-wins.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore returns a store backed by the JSON document at path. The
// file does not need to exist yet.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Append records moodText for userID with a fresh timestamp.
func (s *FileStore) Append(userID, moodText string) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := s.readAll()
	entry := Entry{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Mood:      moodText,
	}
	data[userID] = append(data[userID], entry)

	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return Entry{}, &apperr.StorageError{Err: err}
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return Entry{}, &apperr.StorageError{Err: err}
	}
	return entry, nil
}

// History returns the entries for userID in insertion order. An unknown
// user yields an empty slice, never an error.
func (s *FileStore) History(userID string) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readAll()[userID], nil
}

// readAll treats a missing or unparseable log file as empty rather than
// failing, so corruption never propagates to callers.
func (s *FileStore) readAll() map[string][]Entry {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return map[string][]Entry{}
	}
	var data map[string][]Entry
	if err := json.Unmarshal(raw, &data); err != nil || data == nil {
		return map[string][]Entry{}
	}
	return data
}
