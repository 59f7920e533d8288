// Package sql implements db.Database against a database/sql connection pool.
package sql

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	"github.com/jacobpatterson1549/selene-bananas/db"
)

// Database runs queries against a database/sql connection pool.
type Database struct {
	*sql.DB
	db.Config
}

// NewDatabase wraps a database/sql connection pool as a db.Database.
func NewDatabase(cfg db.Config, sqlDB *sql.DB) (db.Database, error) {
	if err := validate(cfg, sqlDB); err != nil {
		return nil, fmt.Errorf("creating database: validation: %w", err)
	}
	d := Database{
		DB:     sqlDB,
		Config: cfg,
	}
	return d, nil
}

func validate(cfg db.Config, sqlDB *sql.DB) error {
	switch {
	case sqlDB == nil:
		return fmt.Errorf("database required")
	case cfg.QueryPeriod <= 0:
		return fmt.Errorf("positive query period required")
	}
	return nil
}

// Setup initializes the database by reading the files and executing their contents as raw queries.
func (d Database) Setup(ctx context.Context, files []io.Reader) error {
	ctx, cancelFunc := context.WithTimeout(ctx, d.QueryPeriod)
	defer cancelFunc()
	queries := make([]db.Query, len(files))
	for i, f := range files {
		b, err := io.ReadAll(f)
		if err != nil {
			return fmt.Errorf("reading sql setup query %v: %w", i, err)
		}
		queries[i] = db.RawQuery(string(b))
	}
	if err := d.Exec(ctx, queries...); err != nil {
		return fmt.Errorf("running setup queries: %w", err)
	}
	return nil
}

// Query returns the row referenced by the query.
func (d Database) Query(ctx context.Context, q db.Query) db.Scanner {
	ctx, cancelFunc := context.WithTimeout(ctx, d.QueryPeriod)
	defer cancelFunc()
	return d.DB.QueryRowContext(ctx, q.Cmd(), q.Args()...)
}

// Exec evaluates multiple queries in a transaction, ensuring each ExecFunction only updates one row.
func (d Database) Exec(ctx context.Context, queries ...db.Query) error {
	ctx, cancelFunc := context.WithTimeout(ctx, d.QueryPeriod)
	defer cancelFunc()
	tx, err := d.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	for i, q := range queries {
		result, err := tx.ExecContext(ctx, q.Cmd(), q.Args()...)
		if f, ok := q.(db.ExecFunction); err == nil && ok {
			var n int64
			n, err = result.RowsAffected()
			if err == nil && n != 1 {
				err = fmt.Errorf("wanted to update 1 row, but updated %d when calling %s", n, f.Name())
			}
		}
		if err != nil {
			err = fmt.Errorf("executing query %v: %w", i, err)
			if err2 := tx.Rollback(); err2 != nil {
				return fmt.Errorf("rolling back transaction due to %v: %w", err, err2)
			}
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}
