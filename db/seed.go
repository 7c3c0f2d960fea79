// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/danielhkuo/readwell/models"
)

// Header values that mark a CSV row to skip. Matched on value, not position.
const (
	booksHeader  = "isbn"
	quotesHeader = "quote"
)

// DemoUser is a fixed account inserted by the seed utility
type DemoUser struct {
	Username string
	Password string
}

var DemoUsers = []DemoUser{
	{"Joel", "7"},
	{"Michelle", "14"},
	{"Molina", "165"},
	{"Ellie", "3"},
	{"Izzy", "1"},
}

var DemoReviews = []models.Review{
	{ISBN: "030734813X", Review: "Best book ever!", Rating: 5, Username: "Joel", Timestamp: 1568316549},
	{ISBN: "0316015849", Review: "This book got me into reading!", Rating: 5, Username: "Michelle", Timestamp: 1568316549},
}

// ImportBooks loads isbn,title,author,year rows from r in one transaction
func (s *Store) ImportBooks(ctx context.Context, r io.Reader) (int, error) {
	return s.importCSV(ctx, r, 4, booksHeader, `
		INSERT INTO books (isbn, title, author, year) VALUES ($1, $2, $3, $4)
	`)
}

// ImportQuotes loads quote,source rows from r in one transaction
func (s *Store) ImportQuotes(ctx context.Context, r io.Reader) (int, error) {
	return s.importCSV(ctx, r, 2, quotesHeader, `
		INSERT INTO quotes (quote, source) VALUES ($1, $2)
	`)
}

func (s *Store) importCSV(ctx context.Context, r io.Reader, fields int, header, insert string) (int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = fields

	count := 0
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, insert)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for {
			record, err := reader.Read()
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("read csv: %w", err)
			}
			if record[0] == header {
				continue
			}

			args := make([]any, len(record))
			for i, v := range record {
				args[i] = v
			}
			if _, err := stmt.ExecContext(ctx, args...); err != nil {
				return fmt.Errorf("insert row %d: %w", count+1, err)
			}
			count++
		}
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// SeedDemoUsers inserts DemoUsers, storing each password through hash
func (s *Store) SeedDemoUsers(ctx context.Context, hash func(string) (string, error)) (int, error) {
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		for _, u := range DemoUsers {
			h, err := hash(u.Password)
			if err != nil {
				return fmt.Errorf("hash password for %s: %w", u.Username, err)
			}
			_, err = tx.ExecContext(ctx, `
				INSERT INTO users (username, password) VALUES ($1, $2)
			`, u.Username, h)
			if isUniqueViolation(err) {
				return fmt.Errorf("demo user %s: %w", u.Username, ErrUsernameTaken)
			}
			if err != nil {
				return fmt.Errorf("insert demo user %s: %w", u.Username, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(DemoUsers), nil
}

// SeedDemoReviews inserts DemoReviews
func (s *Store) SeedDemoReviews(ctx context.Context) (int, error) {
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		for _, r := range DemoReviews {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO reviews (isbn, review, rating, username, timestamp)
				VALUES ($1, $2, $3, $4, $5)
			`, r.ISBN, r.Review, r.Rating, r.Username, r.Timestamp)
			if err != nil {
				return fmt.Errorf("insert demo review for %s: %w", r.ISBN, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(DemoReviews), nil
}

// inTx commits fn's work as one unit, rolling back if fn fails
func (s *Store) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
