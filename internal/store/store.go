// Package store persists contacts, messages and user settings in SQLite.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("store: not found")

const schema = `
CREATE TABLE IF NOT EXISTS contacts (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	phone        TEXT NOT NULL,
	name         TEXT NOT NULL,
	created_at   INTEGER NOT NULL,
	last_visited INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_contacts_phone ON contacts(phone);

CREATE TABLE IF NOT EXISTS messages (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	contact_id INTEGER NOT NULL REFERENCES contacts(id) ON DELETE CASCADE,
	content    TEXT NOT NULL,
	direction  TEXT NOT NULL,
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_messages_contact ON messages(contact_id, id);

CREATE TABLE IF NOT EXISTS settings (
	id                      INTEGER PRIMARY KEY,
	name                    TEXT NOT NULL DEFAULT '',
	theme                   TEXT NOT NULL DEFAULT 'dark',
	language                TEXT NOT NULL DEFAULT 'no',
	development_mode        INTEGER NOT NULL DEFAULT 0,
	enable_sms              INTEGER NOT NULL DEFAULT 1,
	notifications_enabled   INTEGER NOT NULL DEFAULT 1,
	enable_virtual_keyboard INTEGER NOT NULL DEFAULT 1,
	size_multiplier         REAL NOT NULL DEFAULT 1,
	navigation_mode         TEXT NOT NULL DEFAULT 'ARROW_KEYS',
	last_selected_contact   INTEGER,
	created_at              INTEGER NOT NULL
);
`

// Store wraps the SQLite connection.
type Store struct {
	conn *sql.DB
	path string
	now  func() time.Time
}

// Open opens or creates the database at path and applies the schema.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	conn.SetMaxOpenConns(1)

	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}
	if _, err := conn.Exec("PRAGMA busy_timeout=5000"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}
	conn.Exec("PRAGMA synchronous=NORMAL")
	conn.Exec("PRAGMA foreign_keys=ON")

	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{conn: conn, path: path, now: time.Now}, nil
}

// Path returns the database file.
func (s *Store) Path() string {
	return s.path
}

// Ping checks the connection is alive.
func (s *Store) Ping() error {
	return s.conn.Ping()
}

// Close checkpoints the WAL and closes the connection.
func (s *Store) Close() error {
	s.conn.Exec("PRAGMA wal_checkpoint(TRUNCATE)")
	return s.conn.Close()
}

func toUnix(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixNano()
}

func fromUnix(v int64) time.Time {
	if v == 0 {
		return time.Time{}
	}
	return time.Unix(0, v)
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
