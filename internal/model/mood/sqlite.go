package mood

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/willowmind/companion-backend/internal/apperr"
)

// schemaV1 covers the mood log table. Insertion order is preserved by the
// autoincrement key, so History can return entries oldest first.
const schemaV1 = `
CREATE TABLE IF NOT EXISTS mood_versions (
    component TEXT PRIMARY KEY,
    version INTEGER NOT NULL,
    created_at REAL DEFAULT (unixepoch())
);

CREATE TABLE IF NOT EXISTS mood_entries (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id TEXT NOT NULL,
    mood TEXT NOT NULL,
    created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_mood_entries_user ON mood_entries(user_id);

INSERT INTO mood_versions (component, version) VALUES ('moodlog', 1)
    ON CONFLICT (component) DO NOTHING;
`

// SQLiteStore implements Store on a SQLite database. It honors the same
// contract as FileStore but keeps appends transactional, so concurrent
// writers no longer overwrite each other.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLiteStore opens (creating if needed) the database at path and
// applies the schema.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open mood database %q: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping mood database %q: %w", path, err)
	}
	if _, err := db.Exec(schemaV1); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply mood schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Append records moodText for userID with a fresh timestamp.
func (s *SQLiteStore) Append(userID, moodText string) (Entry, error) {
	entry := Entry{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Mood:      moodText,
	}
	_, err := s.db.Exec(
		`INSERT INTO mood_entries (user_id, mood, created_at) VALUES (?, ?, ?)`,
		userID, moodText, entry.Timestamp,
	)
	if err != nil {
		return Entry{}, &apperr.StorageError{Err: err}
	}
	return entry, nil
}

// History returns the entries for userID oldest first. Read failures are
// logged and reported as an empty history, matching the FileStore contract
// that history reads never fail their caller.
func (s *SQLiteStore) History(userID string) ([]Entry, error) {
	rows, err := s.db.Query(
		`SELECT created_at, mood FROM mood_entries WHERE user_id = ? ORDER BY id`,
		userID,
	)
	if err != nil {
		log.Printf("[mood] history query failed for user=%s: %v", userID, err)
		return nil, nil
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Timestamp, &e.Mood); err != nil {
			log.Printf("[mood] history scan failed for user=%s: %v", userID, err)
			return nil, nil
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		log.Printf("[mood] history iteration failed for user=%s: %v", userID, err)
		return nil, nil
	}
	return entries, nil
}
