// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB, dbType string) error {
	stmts, err := schemaFor(dbType)
	if err != nil {
		return err
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	return nil
}

func schemaFor(dbType string) ([]string, error) {
	var serial string
	switch dbType {
	case TypePostgres:
		serial = "SERIAL PRIMARY KEY"
	case TypeSQLite:
		serial = "INTEGER PRIMARY KEY AUTOINCREMENT"
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, dbType)
	}

	stmts := make([]string, len(schema))
	for i, s := range schema {
		stmts[i] = strings.ReplaceAll(s, "{{serial}}", serial)
	}
	return stmts, nil
}

// timestamp is Unix seconds; BIGINT so it outlives 2038
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
    id {{serial}},
    username VARCHAR NOT NULL UNIQUE,
    password VARCHAR NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS reviews (
    id {{serial}},
    isbn VARCHAR NOT NULL,
    review VARCHAR NOT NULL,
    rating INTEGER NOT NULL CHECK (rating >= 1 AND rating <= 5),
    username VARCHAR NOT NULL,
    timestamp BIGINT NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS idx_reviews_isbn_username ON reviews(isbn, username)`,
	`CREATE TABLE IF NOT EXISTS books (
    isbn VARCHAR PRIMARY KEY,
    title VARCHAR NOT NULL,
    author VARCHAR NOT NULL,
    year VARCHAR NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS quotes (
    id {{serial}},
    quote VARCHAR NOT NULL,
    source VARCHAR NOT NULL
)`,
}
