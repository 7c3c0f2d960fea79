// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/danielhkuo/readwell/models"
)

// Store runs the application's parameterized statements against the pool.
// It holds no state besides the pool itself.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// RandomQuote returns one quote picked by the database, or ErrNotFound when
// the quotes table is empty
func (s *Store) RandomQuote(ctx context.Context) (*models.Quote, error) {
	var q models.Quote
	err := s.db.QueryRowContext(ctx, `
		SELECT id, quote, source FROM quotes ORDER BY RANDOM() LIMIT 1
	`).Scan(&q.ID, &q.Quote, &q.Source)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query quote: %w", err)
	}
	return &q, nil
}

// UsernameExists checks for an existing user row with this username
func (s *Store) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)
	`, username).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check username: %w", err)
	}
	return exists, nil
}

// CreateUser inserts a user. The UNIQUE constraint on username is the
// authoritative check; a violation returns ErrUsernameTaken.
func (s *Store) CreateUser(ctx context.Context, username, passwordHash string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (username, password) VALUES ($1, $2)
	`, username, passwordHash)
	if isUniqueViolation(err) {
		return ErrUsernameTaken
	}
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (s *Store) GetUser(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := s.db.QueryRowContext(ctx, `
		SELECT id, username, password FROM users WHERE username = $1
	`, username).Scan(&u.ID, &u.Username, &u.Password)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return &u, nil
}

// SearchBooks does a case-insensitive substring match on isbn, title and
// author. Result order is whatever the database returns.
func (s *Store) SearchBooks(ctx context.Context, query string, limit int) ([]models.Book, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT isbn, title, author, year
		FROM books
		WHERE LOWER(isbn) LIKE LOWER($1)
		   OR LOWER(title) LIKE LOWER($1)
		   OR LOWER(author) LIKE LOWER($1)
		LIMIT $2
	`, "%"+query+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search books: %w", err)
	}
	defer rows.Close()

	books := []models.Book{}
	for rows.Next() {
		var b models.Book
		if err := rows.Scan(&b.ISBN, &b.Title, &b.Author, &b.Year); err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

func (s *Store) GetBook(ctx context.Context, isbn string) (*models.Book, error) {
	var b models.Book
	err := s.db.QueryRowContext(ctx, `
		SELECT isbn, title, author, year FROM books WHERE isbn = $1
	`, isbn).Scan(&b.ISBN, &b.Title, &b.Author, &b.Year)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query book: %w", err)
	}
	return &b, nil
}

// AddReview inserts r and sets r.ID
func (s *Store) AddReview(ctx context.Context, r *models.Review) error {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO reviews (isbn, review, rating, username, timestamp)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, r.ISBN, r.Review, r.Rating, r.Username, r.Timestamp).Scan(&r.ID)
	if err != nil {
		return fmt.Errorf("failed to insert review: %w", err)
	}
	return nil
}

// UserReview returns the first review username left on isbn, or nil if there
// is none. Duplicates are possible; the oldest wins.
func (s *Store) UserReview(ctx context.Context, isbn, username string) (*models.Review, error) {
	var r models.Review
	err := s.db.QueryRowContext(ctx, `
		SELECT id, isbn, review, rating, username, timestamp
		FROM reviews
		WHERE isbn = $1 AND username = $2
		ORDER BY id
		LIMIT 1
	`, isbn, username).Scan(&r.ID, &r.ISBN, &r.Review, &r.Rating, &r.Username, &r.Timestamp)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user review: %w", err)
	}
	return &r, nil
}

// BookReviews returns every review for isbn
func (s *Store) BookReviews(ctx context.Context, isbn string) ([]models.Review, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, isbn, review, rating, username, timestamp
		FROM reviews
		WHERE isbn = $1
	`, isbn)
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	reviews := []models.Review{}
	for rows.Next() {
		var r models.Review
		if err := rows.Scan(&r.ID, &r.ISBN, &r.Review, &r.Rating, &r.Username, &r.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}

// ReviewStats counts the reviews for isbn and averages their ratings
func (s *Store) ReviewStats(ctx context.Context, isbn string) (models.ReviewStats, error) {
	var stats models.ReviewStats
	var avg sql.NullFloat64
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(id), AVG(rating) FROM reviews WHERE isbn = $1
	`, isbn).Scan(&stats.Count, &avg)
	if err != nil {
		return models.ReviewStats{}, fmt.Errorf("failed to aggregate reviews: %w", err)
	}
	if avg.Valid {
		stats.Average = avg.Float64
	}
	return stats, nil
}
