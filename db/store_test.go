// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db_test

import (
	"context"
	"errors"
	"testing"

	"github.com/danielhkuo/readwell/db"
	"github.com/danielhkuo/readwell/models"
	"github.com/danielhkuo/readwell/testutil"
)

func TestOpen_UnsupportedType(t *testing.T) {
	_, err := db.Open("mysql", "whatever")
	if !errors.Is(err, db.ErrUnsupportedType) {
		t.Errorf("Expected ErrUnsupportedType, got %v", err)
	}
}

func TestCreateSchema_Idempotent(t *testing.T) {
	conn := testutil.SetupTestDB(t)

	// SetupTestDB already ran it once
	if err := db.CreateSchema(conn, db.TypeSQLite); err != nil {
		t.Fatalf("Second CreateSchema failed: %v", err)
	}
	if err := db.CreateSchema(conn, "oracle"); !errors.Is(err, db.ErrUnsupportedType) {
		t.Errorf("Expected ErrUnsupportedType, got %v", err)
	}
}

func TestUsers(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	store := db.NewStore(conn)
	ctx := context.Background()

	exists, err := store.UsernameExists(ctx, "alice")
	if err != nil || exists {
		t.Fatalf("Expected no alice yet, got exists=%v err=%v", exists, err)
	}

	if err := store.CreateUser(ctx, "alice", "hash"); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	exists, err = store.UsernameExists(ctx, "alice")
	if err != nil || !exists {
		t.Errorf("Expected alice to exist, got exists=%v err=%v", exists, err)
	}

	if err := store.CreateUser(ctx, "alice", "other"); !errors.Is(err, db.ErrUsernameTaken) {
		t.Errorf("Expected ErrUsernameTaken, got %v", err)
	}

	user, err := store.GetUser(ctx, "alice")
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if user.Username != "alice" || user.Password != "hash" {
		t.Errorf("Unexpected user: %+v", user)
	}

	if _, err := store.GetUser(ctx, "ALICE"); !errors.Is(err, db.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for different case, got %v", err)
	}
}

func TestRandomQuote(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	store := db.NewStore(conn)
	ctx := context.Background()

	if _, err := store.RandomQuote(ctx); !errors.Is(err, db.ErrNotFound) {
		t.Errorf("Expected ErrNotFound on empty table, got %v", err)
	}

	if _, err := conn.Exec(`INSERT INTO quotes (quote, source) VALUES ($1, $2)`, "Q", "S"); err != nil {
		t.Fatalf("Failed to insert quote: %v", err)
	}

	q, err := store.RandomQuote(ctx)
	if err != nil {
		t.Fatalf("RandomQuote failed: %v", err)
	}
	if q.Quote != "Q" || q.Source != "S" {
		t.Errorf("Unexpected quote: %+v", q)
	}
}

func TestSearchBooks(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	store := db.NewStore(conn)
	ctx := context.Background()

	testutil.CreateTestBook(t, conn, models.Book{ISBN: "0441172717", Title: "Dune", Author: "Frank Herbert", Year: "1965"})
	testutil.CreateTestBook(t, conn, models.Book{ISBN: "0441013597", Title: "Dune Messiah", Author: "Frank Herbert", Year: "1969"})
	testutil.CreateTestBook(t, conn, models.Book{ISBN: "0547928220", Title: "The Hobbit", Author: "J.R.R. Tolkien", Year: "1937"})

	testCases := []struct {
		query string
		limit int
		want  int
	}{
		{"dune", 10, 2},
		{"DUNE MESS", 10, 1},
		{"herbert", 1, 1},
		{"0441", 10, 2},
		{"tolkien", 10, 1},
		{"nothing here", 10, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.query, func(t *testing.T) {
			books, err := store.SearchBooks(ctx, tc.query, tc.limit)
			if err != nil {
				t.Fatalf("SearchBooks failed: %v", err)
			}
			if len(books) != tc.want {
				t.Errorf("Expected %d books, got %d", tc.want, len(books))
			}
		})
	}
}

func TestGetBook(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	store := db.NewStore(conn)
	want := models.Book{ISBN: "0441172717", Title: "Dune", Author: "Frank Herbert", Year: "1965"}
	testutil.CreateTestBook(t, conn, want)

	got, err := store.GetBook(context.Background(), want.ISBN)
	if err != nil {
		t.Fatalf("GetBook failed: %v", err)
	}
	if *got != want {
		t.Errorf("Expected %+v, got %+v", want, *got)
	}

	if _, err := store.GetBook(context.Background(), "missing"); !errors.Is(err, db.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestReviews(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	store := db.NewStore(conn)
	ctx := context.Background()

	first := models.Review{ISBN: "0441172717", Review: "first", Rating: 4, Username: "alice", Timestamp: 100}
	if err := store.AddReview(ctx, &first); err != nil {
		t.Fatalf("AddReview failed: %v", err)
	}
	if first.ID == 0 {
		t.Error("Expected AddReview to set the ID")
	}

	second := models.Review{ISBN: "0441172717", Review: "second", Rating: 2, Username: "alice", Timestamp: 200}
	if err := store.AddReview(ctx, &second); err != nil {
		t.Fatalf("AddReview failed: %v", err)
	}
	other := models.Review{ISBN: "0441172717", Review: "bob's", Rating: 5, Username: "bob", Timestamp: 300}
	if err := store.AddReview(ctx, &other); err != nil {
		t.Fatalf("AddReview failed: %v", err)
	}

	own, err := store.UserReview(ctx, "0441172717", "alice")
	if err != nil {
		t.Fatalf("UserReview failed: %v", err)
	}
	if own == nil || own.Review != "first" {
		t.Errorf("Expected the oldest review to be alice's, got %+v", own)
	}

	none, err := store.UserReview(ctx, "0441172717", "carol")
	if err != nil || none != nil {
		t.Errorf("Expected no review for carol, got %+v err=%v", none, err)
	}

	all, err := store.BookReviews(ctx, "0441172717")
	if err != nil {
		t.Fatalf("BookReviews failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("Expected 3 reviews, got %d", len(all))
	}

	stats, err := store.ReviewStats(ctx, "0441172717")
	if err != nil {
		t.Fatalf("ReviewStats failed: %v", err)
	}
	if stats.Count != 3 {
		t.Errorf("Expected count 3, got %d", stats.Count)
	}
	if want := 11.0 / 3.0; stats.Average < want-1e-9 || stats.Average > want+1e-9 {
		t.Errorf("Expected average %f, got %f", want, stats.Average)
	}

	empty, err := store.ReviewStats(ctx, "nothing")
	if err != nil {
		t.Fatalf("ReviewStats failed: %v", err)
	}
	if empty.Count != 0 || empty.Average != 0 {
		t.Errorf("Expected zero stats, got %+v", empty)
	}
}

func TestAddReview_RatingOutOfRange(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	store := db.NewStore(conn)

	for _, rating := range []int{0, 6} {
		r := models.Review{ISBN: "x", Review: "r", Rating: rating, Username: "u", Timestamp: 1}
		if err := store.AddReview(context.Background(), &r); err == nil {
			t.Errorf("Expected rating %d to be rejected", rating)
		}
	}
}
