// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides session state and password hashing.

# Sessions

Sessions wraps a gorilla/sessions store. The server uses the filesystem
store, so session data stays on the server and the client holds only a
signed session id:

	sessions := auth.NewFilesystemSessions(cfg.SessionDir, []byte(cfg.SessionSecret))

	username := sessions.CurrentUser(r) // "" when logged out
	err := sessions.Login(w, r, "Joel")  // clears, then stores the username
	err := sessions.Clear(w, r)          // logout

# Flash Messages

Flashes survive exactly one redirect:

	sessions.AddFlash(w, r, models.FlashDanger, "Passwords must match.")
	flashes, err := sessions.Flashes(w, r) // pops them

Each Flash carries a Category that the templates use as a CSS class.

# Passwords

Passwords are stored as bcrypt hashes:

	hash, err := auth.HashPassword(password)
	err := auth.CheckPassword(hash, password) // ErrInvalidCredentials on mismatch
*/
package auth
