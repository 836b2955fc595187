// Package postgres implements the repository contract on PostgreSQL for
// deployments that already run one.
package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/emzola/bookshelf/config"
	"github.com/emzola/bookshelf/repository"
	_ "github.com/lib/pq"
)

var _ repository.Repository = (*Repository)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS books (
	id BIGSERIAL PRIMARY KEY,
	title TEXT NOT NULL,
	author TEXT NOT NULL,
	year INTEGER NOT NULL DEFAULT 0,
	isbn TEXT NOT NULL,
	available BOOLEAN NOT NULL DEFAULT FALSE
);`

// Repository persists book records in a PostgreSQL database.
type Repository struct {
	db *sql.DB
}

// New creates a PostgreSQL connection pool from the database settings in
// cfg, verifies it with a ping and makes sure the books table exists.
func New(cfg config.Config) (*Repository, error) {
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		return nil, err
	}
	duration, err := time.ParseDuration(cfg.Database.MaxIdleTime)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxIdleTime(duration)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err = db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	if _, err = db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, err
	}
	return &Repository{db: db}, nil
}

// Close releases the underlying connection pool.
func (r *Repository) Close() error {
	return r.db.Close()
}
