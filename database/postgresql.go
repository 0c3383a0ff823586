package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver for database/sql
)

// Connect opens a PostgreSQL connection, verifies it, and bootstraps
// the schema. The returned handle is the caller's to inject and to
// close at shutdown; no package-level state is kept.
func Connect(ctx context.Context, uri string) (*sql.DB, error) {
	if uri == "" {
		return nil, errors.New("you must set your 'POSTGRESQL_URI' environmental variable")
	}

	db, err := sql.Open("pgx", uri)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("cannot connect to PostgreSQL: %w", err)
	}

	if err := createTables(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	fmt.Println("Connected to PostgreSQL successfully")
	return db, nil
}

// createTables bootstraps the schema. The UNIQUE constraint on
// username is the authoritative guard against the register race; the
// handler pre-check only produces the friendlier message.
func createTables(ctx context.Context, db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		username TEXT UNIQUE NOT NULL,
		password TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS tasks (
		id SERIAL PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT,
		status TEXT NOT NULL DEFAULT 'pending',
		user_id INTEGER NOT NULL REFERENCES users(id),
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)
	`
	_, err := db.ExecContext(ctx, query)
	return err
}
