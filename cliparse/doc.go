// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: Database connection string (required)
  - DatabaseType: postgres (default) or sqlite
  - GoodreadsKey: Goodreads API key (required)
  - GoodreadsURL: Goodreads API base URL (default: https://www.goodreads.com)
  - GoodreadsTimeout: Per-request timeout (default: 5s)
  - SessionDir: Directory for session files (default: OS temp dir)
  - SessionSecret: Cookie signing secret (random per process if empty)

# CLI Flags

	-p                  Server port
	-d                  Database URL
	-t                  Database type
	-goodreads-key      Goodreads API key
	-goodreads-url      Goodreads API base URL
	-goodreads-timeout  Goodreads request timeout
	-session-dir        Session file directory
	-session-secret     Session signing secret

# Environment Variables

Flags fall back to environment variables:

	PORT              → -p
	DATABASE_URL      → -d
	DATABASE_TYPE     → -t
	GOODREADS_API_KEY → -goodreads-key
	GOODREADS_URL     → -goodreads-url
	GOODREADS_TIMEOUT → -goodreads-timeout
	SESSION_DIR       → -session-dir
	SESSION_SECRET    → -session-secret

CLI flags take precedence over environment variables. main loads a .env
file into the environment before parsing, when one exists.

# Validation

ParseFlags returns an error if required values are missing:

  - DATABASE_URL must be provided
  - GOODREADS_API_KEY must be provided
*/
package cliparse
