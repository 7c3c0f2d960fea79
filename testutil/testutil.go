// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"database/sql"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/danielhkuo/readwell/auth"
	"github.com/danielhkuo/readwell/cliparse"
	"github.com/danielhkuo/readwell/db"
	"github.com/danielhkuo/readwell/models"
)

// SetupTestDB creates a fresh SQLite database file with the full schema.
// A file is used rather than :memory: so every pooled connection sees the
// same data.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "readwell.db") + "?_pragma=busy_timeout(5000)"
	conn, err := db.Open(db.TypeSQLite, path)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn, db.TypeSQLite); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig(t *testing.T) cliparse.Config {
	t.Helper()
	return cliparse.Config{
		Port:             3318,
		DatabaseURL:      filepath.Join(t.TempDir(), "unused.db"),
		DatabaseType:     db.TypeSQLite,
		GoodreadsKey:     "test-key",
		GoodreadsURL:     "http://127.0.0.1:1",
		GoodreadsTimeout: 2 * time.Second,
		SessionDir:       t.TempDir(),
		SessionSecret:    "test-session-secret",
	}
}

// NewSessions returns a filesystem session store rooted in a temp dir
func NewSessions(t *testing.T) *auth.Sessions {
	t.Helper()
	return auth.NewFilesystemSessions(t.TempDir(), []byte("test-session-secret"))
}

// NewGoodreadsServer serves a review_counts response for any ISBN
func NewGoodreadsServer(t *testing.T, average string, count int64) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/book/review_counts.json" {
			http.NotFound(w, r)
			return
		}
		isbn := r.URL.Query().Get("isbns")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"books":[{"id":1,"isbn":%q,"work_ratings_count":%d,"average_rating":%q}]}`, isbn, count, average)
	}))
	t.Cleanup(srv.Close)
	return srv
}

// NewStatusServer answers every request with status and an empty body
func NewStatusServer(t *testing.T, status int) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)
	return srv
}

// CreateTestUser inserts a user with a bcrypt-hashed password
func CreateTestUser(t *testing.T, conn *sql.DB, username, password string) {
	t.Helper()

	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	_, err = conn.Exec(`INSERT INTO users (username, password) VALUES ($1, $2)`, username, hash)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
}

// CreateTestBook inserts a book row
func CreateTestBook(t *testing.T, conn *sql.DB, book models.Book) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO books (isbn, title, author, year) VALUES ($1, $2, $3, $4)
	`, book.ISBN, book.Title, book.Author, book.Year)
	if err != nil {
		t.Fatalf("Failed to create test book: %v", err)
	}
}

// CreateTestReview inserts a review row
func CreateTestReview(t *testing.T, conn *sql.DB, isbn, username string, rating int, text string) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO reviews (isbn, review, rating, username, timestamp)
		VALUES ($1, $2, $3, $4, $5)
	`, isbn, text, rating, username, time.Now().Unix())
	if err != nil {
		t.Fatalf("Failed to create test review: %v", err)
	}
}

// CountRows returns the number of rows in table
func CountRows(t *testing.T, conn *sql.DB, table string) int {
	t.Helper()

	var n int
	if err := conn.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("Failed to count %s: %v", table, err)
	}
	return n
}

// SessionCookies logs username in and returns the resulting cookies
func SessionCookies(t *testing.T, sessions *auth.Sessions, username string) []*http.Cookie {
	t.Helper()

	w := httptest.NewRecorder()
	if err := sessions.Login(w, httptest.NewRequest("POST", "/login", nil), username); err != nil {
		t.Fatalf("Failed to log in %s: %v", username, err)
	}
	return w.Result().Cookies()
}

// MakeRequest creates a test request. A non-nil form is sent url-encoded.
func MakeRequest(method, path string, form url.Values, cookies []*http.Cookie) *http.Request {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for _, c := range cookies {
		req.AddCookie(c)
	}

	return req
}

// NewClient returns a client with a cookie jar that does not follow redirects
func NewClient(t *testing.T) *http.Client {
	t.Helper()

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("Failed to create cookie jar: %v", err)
	}
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertRedirect checks for a 302 to location
func AssertRedirect(t *testing.T, w *httptest.ResponseRecorder, location string) {
	t.Helper()
	if w.Code != http.StatusFound {
		t.Errorf("Expected status 302, got %d. Body: %s", w.Code, w.Body.String())
	}
	if got := w.Header().Get("Location"); got != location {
		t.Errorf("Expected redirect to '%s', got '%s'", location, got)
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
