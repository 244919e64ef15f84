// Package duckdb persists jobs and shifts in an embedded DuckDB file
// behind database/sql. Mutations go through versioned updates so that
// concurrent writers lose with domain.ErrVersionConflict instead of
// silently overwriting each other.
package duckdb

import (
	"database/sql"
	"fmt"

	_ "github.com/marcboeker/go-duckdb"

	"github.com/rgallego/shiftwise/internal/core/ports"
)

type Repository struct {
	db *sql.DB
}

var (
	_ ports.JobRepository   = (*Repository)(nil)
	_ ports.ShiftRepository = (*Repository)(nil)
)

func NewRepository(path string) (*Repository, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb at %q: %w", path, err)
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("bootstrap schema: %w", err)
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

func migrate(db *sql.DB) error {
	_, err := db.Exec(`
	CREATE TABLE IF NOT EXISTS jobs (
		id         TEXT PRIMARY KEY,
		company_id TEXT NOT NULL,
		start_time TIMESTAMP NOT NULL,
		end_time   TIMESTAMP NOT NULL,
		status     TEXT NOT NULL,
		version    BIGINT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	);

	CREATE TABLE IF NOT EXISTS shifts (
		id         TEXT PRIMARY KEY,
		job_id     TEXT NOT NULL,
		talent_id  TEXT,
		start_time TIMESTAMP NOT NULL,
		end_time   TIMESTAMP NOT NULL,
		status     TEXT NOT NULL,
		version    BIGINT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	);
	`)
	return err
}
