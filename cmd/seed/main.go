// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Command seed creates the schema and loads books, quotes and demo data
// from CSV files.
//
//	DATABASE_URL=postgres://... go run ./cmd/seed --books books.csv --quotes quotes_on_books.csv
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/danielhkuo/readwell/auth"
	"github.com/danielhkuo/readwell/db"
)

type options struct {
	databaseURL  string
	databaseType string
	books        string
	quotes       string
	demo         bool
}

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("could not read .env", "error", err)
	}

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := options{}

	cmd := &cobra.Command{
		Use:           "seed",
		Short:         "Create the schema and load books, quotes and demo data",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.databaseURL == "" {
				return fmt.Errorf("--database-url or DATABASE_URL is required")
			}
			err := run(cmd.Context(), opts)
			if err != nil {
				slog.Error("seed failed", "error", err)
			}
			return err
		},
	}

	dbType := os.Getenv("DATABASE_TYPE")
	if dbType == "" {
		dbType = db.TypePostgres
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.databaseURL, "database-url", os.Getenv("DATABASE_URL"), "database connection string")
	flags.StringVar(&opts.databaseType, "database-type", dbType, "database type (postgres or sqlite)")
	flags.StringVar(&opts.books, "books", "books.csv", "CSV of isbn,title,author,year")
	flags.StringVar(&opts.quotes, "quotes", "quotes_on_books.csv", "CSV of quote,source")
	flags.BoolVar(&opts.demo, "demo", true, "insert the demo users and reviews")

	return cmd
}

func run(ctx context.Context, opts options) error {
	conn, err := db.Open(opts.databaseType, opts.databaseURL)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := db.CreateSchema(conn, opts.databaseType); err != nil {
		return err
	}
	slog.Info("schema ready", "type", opts.databaseType)

	store := db.NewStore(conn)

	n, err := importFile(opts.books, func(f *os.File) (int, error) { return store.ImportBooks(ctx, f) })
	if err != nil {
		return fmt.Errorf("books: %w", err)
	}
	slog.Info("imported books", "count", n, "file", opts.books)

	n, err = importFile(opts.quotes, func(f *os.File) (int, error) { return store.ImportQuotes(ctx, f) })
	if err != nil {
		return fmt.Errorf("quotes: %w", err)
	}
	slog.Info("imported quotes", "count", n, "file", opts.quotes)

	if !opts.demo {
		return nil
	}

	n, err = store.SeedDemoUsers(ctx, auth.HashPassword)
	if err != nil {
		return err
	}
	slog.Info("inserted demo users", "count", n)

	n, err = store.SeedDemoReviews(ctx)
	if err != nil {
		return err
	}
	slog.Info("inserted demo reviews", "count", n)

	return nil
}

func importFile(path string, load func(*os.File) (int, error)) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return load(f)
}
