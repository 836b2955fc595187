// Package sqlite implements the repository contract on an embedded SQLite
// database using the pure Go driver, so builds need no cgo.
package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/emzola/bookshelf/repository"
	_ "modernc.org/sqlite"
)

var _ repository.Repository = (*Repository)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS books (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	author TEXT NOT NULL,
	year INTEGER NOT NULL DEFAULT 0,
	isbn TEXT NOT NULL,
	available INTEGER NOT NULL DEFAULT 0
);`

// Repository persists book records in a SQLite database file.
type Repository struct {
	db *sql.DB
}

// New opens the SQLite database at path, creating the file and the schema
// when they do not exist yet. Pass ":memory:" for a throwaway database.
func New(path string) (*Repository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// The driver serializes access through a single connection. More than
	// one open connection causes SQLITE_BUSY errors under concurrent writes.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply pragma: %w", err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Repository{db: db}, nil
}

// Close releases the underlying database handle.
func (r *Repository) Close() error {
	return r.db.Close()
}
