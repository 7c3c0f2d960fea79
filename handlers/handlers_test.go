// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/readwell/auth"
	"github.com/danielhkuo/readwell/db"
	"github.com/danielhkuo/readwell/testutil"
)

type testEnv struct {
	conn     *sql.DB
	store    *db.Store
	sessions *auth.Sessions
	render   *Renderer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	conn := testutil.SetupTestDB(t)
	sessions := testutil.NewSessions(t)
	return &testEnv{
		conn:     conn,
		store:    db.NewStore(conn),
		sessions: sessions,
		render:   NewRenderer(sessions),
	}
}

// popFlashes reads the flashes queued in the session w sent back
func popFlashes(t *testing.T, sessions *auth.Sessions, w *httptest.ResponseRecorder) []auth.Flash {
	t.Helper()

	req := httptest.NewRequest("GET", "/", nil)
	for _, c := range w.Result().Cookies() {
		req.AddCookie(c)
	}
	flashes, err := sessions.Flashes(httptest.NewRecorder(), req)
	if err != nil {
		t.Fatalf("Failed to read flashes: %v", err)
	}
	return flashes
}

// sessionUser returns the user stored in the session w sent back
func sessionUser(sessions *auth.Sessions, w *httptest.ResponseRecorder) string {
	req := httptest.NewRequest("GET", "/", nil)
	for _, c := range w.Result().Cookies() {
		req.AddCookie(c)
	}
	return sessions.CurrentUser(req)
}

func assertFlash(t *testing.T, flashes []auth.Flash, category, message string) {
	t.Helper()

	if len(flashes) != 1 {
		t.Fatalf("Expected 1 flash, got %d: %+v", len(flashes), flashes)
	}
	if flashes[0].Category != category || flashes[0].Message != message {
		t.Errorf("Expected flash %s %q, got %s %q", category, message, flashes[0].Category, flashes[0].Message)
	}
}

func TestStarRow(t *testing.T) {
	row := starRow(3)
	if len(row) != 5 {
		t.Fatalf("Expected 5 positions, got %d", len(row))
	}
	for i, filled := range row {
		if filled != (i < 3) {
			t.Errorf("Position %d: expected filled=%v", i, i < 3)
		}
	}
}

func TestNormalizeQuery(t *testing.T) {
	testCases := []struct {
		in, want string
	}{
		{"dune", "dune"},
		{"  harry   potter  ", "harry potter"},
		{"\tthe\nhobbit ", "the hobbit"},
		{"   ", ""},
	}

	for _, tc := range testCases {
		if got := normalizeQuery(tc.in); got != tc.want {
			t.Errorf("normalizeQuery(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestRenderError(t *testing.T) {
	env := newTestEnv(t)

	w := httptest.NewRecorder()
	env.render.Error(w, httptest.NewRequest("GET", "/", nil), http.StatusNotFound, "No such page")

	testutil.AssertStatus(t, w, http.StatusNotFound)
	if ct := w.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Expected HTML content type, got '%s'", ct)
	}
	body := w.Body.String()
	for _, want := range []string{"404 Not Found", "No such page"} {
		if !strings.Contains(body, want) {
			t.Errorf("Expected body to contain %q", want)
		}
	}
}
