// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/readwell/auth"
	"github.com/danielhkuo/readwell/db"
	"github.com/danielhkuo/readwell/metrics"
	"github.com/danielhkuo/readwell/models"
)

const (
	msgFieldsRequired     = "All fields are required. Please try again."
	msgUsernameTaken      = "That username is taken! Please try again."
	msgPasswordsMismatch  = "Passwords must match."
	msgRegistered         = "Thanks for registering! You can now sign in."
	msgLoginRequired      = "Username and password are required, please try again."
	msgInvalidCredentials = "Incorrect username or password, please try again."
)

type AuthHandler struct {
	store    *db.Store
	sessions *auth.Sessions
	render   *Renderer
}

func NewAuthHandler(store *db.Store, sessions *auth.Sessions, render *Renderer) *AuthHandler {
	return &AuthHandler{store: store, sessions: sessions, render: render}
}

// Register handles POST /register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	form := models.RegisterForm{
		Username:       r.FormValue("username"),
		Password:       r.FormValue("password"),
		RepeatPassword: r.FormValue("repeat_password"),
	}

	if err := validate.Struct(form); err != nil {
		flashDanger(w, r, h.sessions, msgFieldsRequired, "/")
		return
	}

	// Checked before the password comparison so a taken name is reported
	// first; CreateUser re-checks through the UNIQUE constraint
	exists, err := h.store.UsernameExists(r.Context(), form.Username)
	if err != nil {
		slog.Error("failed to check username", "error", err)
		h.render.Error(w, r, http.StatusInternalServerError, "Database error")
		return
	}
	if exists {
		flashDanger(w, r, h.sessions, msgUsernameTaken, "/")
		return
	}

	if form.Password != form.RepeatPassword {
		flashDanger(w, r, h.sessions, msgPasswordsMismatch, "/")
		return
	}

	hash, err := auth.HashPassword(form.Password)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		h.render.Error(w, r, http.StatusInternalServerError, "Failed to register")
		return
	}

	err = h.store.CreateUser(r.Context(), form.Username, hash)
	if errors.Is(err, db.ErrUsernameTaken) {
		flashDanger(w, r, h.sessions, msgUsernameTaken, "/")
		return
	}
	if err != nil {
		slog.Error("failed to insert user", "error", err)
		h.render.Error(w, r, http.StatusInternalServerError, "Failed to register")
		return
	}

	metrics.UsersRegistered.Inc()
	slog.Info("user registered", "username", form.Username)

	redirectWithFlash(w, r, h.sessions, models.FlashSuccess, msgRegistered, "/")
}

// Login handles POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	// Forget any previous user before checking anything
	if err := h.sessions.Clear(w, r); err != nil {
		slog.Error("failed to clear session", "error", err)
	}

	form := models.LoginForm{
		Username: r.FormValue("username"),
		Password: r.FormValue("password"),
	}
	if err := validate.Struct(form); err != nil {
		flashDanger(w, r, h.sessions, msgLoginRequired, "/")
		return
	}

	user, err := h.store.GetUser(r.Context(), form.Username)
	if errors.Is(err, db.ErrNotFound) {
		flashDanger(w, r, h.sessions, msgInvalidCredentials, "/")
		return
	}
	if err != nil {
		slog.Error("failed to query user", "error", err)
		h.render.Error(w, r, http.StatusInternalServerError, "Database error")
		return
	}

	if err := auth.CheckPassword(user.Password, form.Password); err != nil {
		slog.Info("login failed", "username", form.Username)
		flashDanger(w, r, h.sessions, msgInvalidCredentials, "/")
		return
	}

	if err := h.sessions.Login(w, r, user.Username); err != nil {
		slog.Error("failed to store session", "error", err)
		h.render.Error(w, r, http.StatusInternalServerError, "Failed to sign in")
		return
	}

	slog.Info("user logged in", "username", user.Username)
	http.Redirect(w, r, "/", http.StatusFound)
}

// Logout handles GET and POST /logout. GET is the sign-out link, POST the
// "switch user" form; both just clear the session.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Clear(w, r); err != nil {
		slog.Error("failed to clear session", "error", err)
	}
	http.Redirect(w, r, "/", http.StatusFound)
}
