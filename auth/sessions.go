// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"encoding/gob"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/sessions"
)

const (
	sessionName = "readwell_session"
	userKey     = "user_id"
)

// Flash is a one-shot message shown on the next rendered page
type Flash struct {
	Category string
	Message  string
}

func init() {
	gob.Register(Flash{})
}

// Sessions reads and writes the per-request session. The authenticated
// identity is the username, not a numeric id.
type Sessions struct {
	store sessions.Store
}

func NewSessions(store sessions.Store) *Sessions {
	return &Sessions{store: store}
}

// NewFilesystemSessions keeps session data in files under dir; the client
// only holds the signed session id. An empty dir means os.TempDir().
// Session files are kept for the store's MaxAge; the cookie itself has no
// expiry and ends with the browser session.
func NewFilesystemSessions(dir string, keyPairs ...[]byte) *Sessions {
	store := sessions.NewFilesystemStore(dir, keyPairs...)
	store.Options.HttpOnly = true
	store.Options.SameSite = http.SameSiteLaxMode
	return NewSessions(browserSessionStore{store})
}

// browserSessionStore strips Max-Age and Expires from the cookies the
// wrapped store sets. FilesystemStore deletes the session outright when
// MaxAge <= 0, so the expiry cannot simply be configured away.
type browserSessionStore struct {
	*sessions.FilesystemStore
}

func (s browserSessionStore) Save(r *http.Request, w http.ResponseWriter, sess *sessions.Session) error {
	capture := &headerCapture{header: http.Header{}}
	if err := s.FilesystemStore.Save(r, capture, sess); err != nil {
		return err
	}

	for _, line := range capture.header.Values("Set-Cookie") {
		cookie, err := http.ParseSetCookie(line)
		if err != nil {
			return fmt.Errorf("failed to parse session cookie: %w", err)
		}
		// Negative MaxAge is a deletion; leave it alone
		if cookie.MaxAge > 0 {
			cookie.MaxAge = 0
			cookie.Expires = time.Time{}
			cookie.RawExpires = ""
		}
		http.SetCookie(w, cookie)
	}
	return nil
}

// headerCapture collects the headers a store writes without sending them
type headerCapture struct {
	header http.Header
}

func (c *headerCapture) Header() http.Header         { return c.header }
func (c *headerCapture) Write(b []byte) (int, error) { return len(b), nil }
func (c *headerCapture) WriteHeader(int)             {}

func (s *Sessions) get(r *http.Request) *sessions.Session {
	sess, err := s.store.Get(r, sessionName)
	if err != nil {
		// Unreadable or expired cookie, carry on with a fresh session
		slog.Warn("discarding unreadable session", "error", err)
	}
	return sess
}

// save goes through s.store rather than sess.Save, which would call the
// unwrapped store the session was created by
func (s *Sessions) save(w http.ResponseWriter, r *http.Request, sess *sessions.Session) error {
	if err := s.store.Save(r, w, sess); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// CurrentUser returns the logged-in username, or "" when nobody is logged in
func (s *Sessions) CurrentUser(r *http.Request) string {
	username, _ := s.get(r).Values[userKey].(string)
	return username
}

// Login forgets everything in the session and stores username as the
// authenticated identity
func (s *Sessions) Login(w http.ResponseWriter, r *http.Request, username string) error {
	sess := s.get(r)
	clear(sess.Values)
	sess.Values[userKey] = username
	return s.save(w, r, sess)
}

// Clear forgets everything in the session, including pending flashes
func (s *Sessions) Clear(w http.ResponseWriter, r *http.Request) error {
	sess := s.get(r)
	clear(sess.Values)
	return s.save(w, r, sess)
}

func (s *Sessions) AddFlash(w http.ResponseWriter, r *http.Request, category, message string) error {
	sess := s.get(r)
	sess.AddFlash(Flash{Category: category, Message: message})
	return s.save(w, r, sess)
}

// Flashes pops all pending flash messages
func (s *Sessions) Flashes(w http.ResponseWriter, r *http.Request) ([]Flash, error) {
	sess := s.get(r)
	raw := sess.Flashes()
	if len(raw) == 0 {
		return nil, nil
	}

	flashes := make([]Flash, 0, len(raw))
	for _, f := range raw {
		if flash, ok := f.(Flash); ok {
			flashes = append(flashes, flash)
		}
	}
	return flashes, s.save(w, r, sess)
}
