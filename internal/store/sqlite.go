package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists all per-user records in a single local SQLite
// database. It implements Storage.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at dbPath and ensures
// the schema exists.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0750); err != nil {
		return nil, fmt.Errorf("failed to create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// WAL keeps readers (state inspection) from blocking the turn writer.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS profiles (
			user_id TEXT PRIMARY KEY,
			created_at TEXT,
			updated_at TEXT,
			scores TEXT,
			goals TEXT,
			sessions INTEGER
		);`,
		// Trait cells are TEXT on purpose: reads tolerate malformed
		// cells by substituting 0.0 instead of failing the whole row.
		`CREATE TABLE IF NOT EXISTS session_ledger (
			user_id TEXT,
			session_idx INTEGER,
			created_at TEXT,
			discipline TEXT,
			consistency TEXT,
			execution TEXT,
			adaptability TEXT,
			ego_strength TEXT,
			clarity TEXT
		);`,
		`CREATE INDEX IF NOT EXISTS idx_ledger_user ON session_ledger(user_id);`,
		`CREATE TABLE IF NOT EXISTS apex_states (
			user_id TEXT PRIMARY KEY,
			state TEXT,
			updated_at TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS interactions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id TEXT,
			created_at TEXT,
			user_text TEXT,
			agent_text TEXT,
			scores TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS memories (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			content TEXT,
			source TEXT,
			vector BLOB
		);`,
		`CREATE TABLE IF NOT EXISTS configuration (
			key TEXT PRIMARY KEY,
			value TEXT
		);`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("failed to init schema: %w", err)
		}
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Configuration Implementation

func (s *SQLiteStore) SetConfig(key, value string) error {
	query := `INSERT INTO configuration (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`
	_, err := s.db.Exec(query, key, value)
	return err
}

func (s *SQLiteStore) GetConfig(key string) (string, error) {
	query := `SELECT value FROM configuration WHERE key = ?`
	row := s.db.QueryRow(query, key)
	var value string
	if err := row.Scan(&value); err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", err
	}
	return value, nil
}

// Timestamps are stored as RFC3339 text; unparseable values decode to
// the zero time rather than failing the read.

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTimeOrZero(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
