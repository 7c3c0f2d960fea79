// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Readwell server.

Readwell is a small book review site: users register, sign in, search a
catalog of books, read and post star-rated reviews, and see each book's
Goodreads rating next to the local ones. A JSON endpoint reports the
local review count and average per ISBN.

# Starting the Server

The server reads environment variables (optionally from .env) or CLI flags:

	DATABASE_URL=postgres://... GOODREADS_API_KEY=... go run main.go

Or with flags:

	go run main.go -p 3318 -d "postgres://..." -goodreads-key ...

Load the catalog first with the seed command:

	go run ./cmd/seed --books books.csv --quotes quotes_on_books.csv

# Configuration

Required settings:

  - DATABASE_URL (-d): database connection string
  - GOODREADS_API_KEY (-goodreads-key): Goodreads developer key

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): postgres or sqlite (default: postgres)
  - SESSION_SECRET (-session-secret): cookie signing key; random per process if unset
  - SESSION_DIR (-session-dir): where session files live (default: os.TempDir())
  - GOODREADS_URL, GOODREADS_TIMEOUT: Goodreads base URL and request timeout

# Architecture

  - handlers: HTTP handlers and embedded page templates
  - router: Route definitions using Go 1.22+ routing
  - middleware: logging, login guard, JSON helpers
  - models: form, row, page and response types
  - auth: password hashing and server-side sessions
  - db: schema, queries and CSV import
  - goodreads: rating client behind a circuit breaker
  - format: star glyphs, dates and counts
  - metrics: Prometheus instruments
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
