package storage

import (
	"database/sql"
	_ "embed"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schema string

// SQLite stores every collection as a row in a single key/value table.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) studydesk.db in dir and initializes the
// schema.
func OpenSQLite(dir string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", filepath.Join(dir, "studydesk.db"))
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (s *SQLite) Load(key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRow("SELECT value FROM collections WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return value, err
}

func (s *SQLite) Store(key string, value []byte) error {
	_, err := s.db.Exec(`
		INSERT INTO collections (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
