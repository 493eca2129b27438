package mood

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/willowmind/companion-backend/internal/apperr"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "mood_log.json"))
}

func TestAppendPreservesOrder(t *testing.T) {
	store := newTestStore(t)

	moods := []string{"happy", "tired", "hopeful"}
	for _, m := range moods {
		if _, err := store.Append("alice", m); err != nil {
			t.Fatalf("append failed: %v", err)
		}
	}

	entries, err := store.History("alice")
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(entries) != len(moods) {
		t.Fatalf("expected %d entries, got %d", len(moods), len(entries))
	}
	for i, m := range moods {
		if entries[i].Mood != m {
			t.Fatalf("entry %d: expected mood %q, got %q", i, m, entries[i].Mood)
		}
	}
}

func TestAppendStampsRFC3339(t *testing.T) {
	store := newTestStore(t)

	entry, err := store.Append("alice", "calm")
	if err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if _, err := time.Parse(time.RFC3339, entry.Timestamp); err != nil {
		t.Fatalf("timestamp %q is not RFC 3339: %v", entry.Timestamp, err)
	}
}

func TestAppendIsolatesUsers(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.Append("alice", "happy"); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if _, err := store.Append("bob", "sad"); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	entries, err := store.History("alice")
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Mood != "happy" {
		t.Fatalf("expected alice's single entry, got %+v", entries)
	}
}

func TestHistoryMissingFile(t *testing.T) {
	store := newTestStore(t)

	entries, err := store.History("alice")
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty history, got %d entries", len(entries))
	}
}

func TestAppendRecoversFromCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mood_log.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("failed to seed corrupt file: %v", err)
	}
	store := NewFileStore(path)

	if _, err := store.Append("alice", "better"); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	entries, err := store.History("alice")
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Mood != "better" {
		t.Fatalf("expected the fresh entry only, got %+v", entries)
	}
}

func TestEntriesSurviveReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mood_log.json")

	first := NewFileStore(path)
	if _, err := first.Append("alice", "grateful"); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	second := NewFileStore(path)
	entries, err := second.History("alice")
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Mood != "grateful" {
		t.Fatalf("expected persisted entry, got %+v", entries)
	}
}

func TestAppendWrapsWriteFailure(t *testing.T) {
	dir := t.TempDir()
	// The store path is a directory, so the write must fail.
	store := NewFileStore(dir)

	_, err := store.Append("alice", "happy")
	if err == nil {
		t.Fatal("expected a storage error")
	}
	var storageErr *apperr.StorageError
	if !errors.As(err, &storageErr) {
		t.Fatalf("expected StorageError, got %T: %v", err, err)
	}
}
