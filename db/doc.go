// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles connections, schema creation, queries, and seeding.

# Connections

Open picks the driver from the database type and pings once:

	conn, err := db.Open(db.TypePostgres, cfg.DatabaseURL)

PostgreSQL goes through lib/pq; SQLite goes through modernc.org/sqlite.
Every statement uses $N placeholders, which both drivers accept.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn, db.TypePostgres); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - users: username (UNIQUE), bcrypt password hash
  - books: isbn (primary key), title, author, year
  - reviews: isbn, review, rating 1-5, username, timestamp (Unix seconds)
  - quotes: quote, source

reviews.isbn and reviews.username refer to books and users by value only.
A user may hold more than one review per book.

# Store

Store wraps the pool with one method per statement:

	store := db.NewStore(conn)
	book, err := store.GetBook(ctx, isbn)
	if errors.Is(err, db.ErrNotFound) {
		// ...
	}

CreateUser returns ErrUsernameTaken when the UNIQUE constraint rejects the
insert, which covers two registrations racing the existence check.

# Seeding

ImportBooks, ImportQuotes, SeedDemoUsers and SeedDemoReviews each run in
their own transaction. A failed phase is rolled back; phases committed before
it stay in place.
*/
package db
