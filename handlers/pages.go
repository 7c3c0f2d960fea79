// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/readwell/auth"
	"github.com/danielhkuo/readwell/db"
	"github.com/danielhkuo/readwell/models"
)

const (
	searchLimit    = 10
	msgShortSearch = "Search query must be at least 4 letters long."
)

type PageHandler struct {
	store    *db.Store
	sessions *auth.Sessions
	render   *Renderer
}

func NewPageHandler(store *db.Store, sessions *auth.Sessions, render *Renderer) *PageHandler {
	return &PageHandler{store: store, sessions: sessions, render: render}
}

// Home handles GET /
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	quote, err := h.store.RandomQuote(r.Context())
	if err != nil && !errors.Is(err, db.ErrNotFound) {
		slog.Error("failed to query quote", "error", err)
		h.render.Error(w, r, http.StatusInternalServerError, "Database error")
		return
	}

	h.render.Render(w, r, http.StatusOK, "index.html", models.HomePage{Quote: quote})
}

// Search handles GET and POST /search. GET shows the empty form; POST
// carries the query field.
func (h *PageHandler) Search(w http.ResponseWriter, r *http.Request) {
	page := models.SearchPage{Books: []models.Book{}}

	if r.Method == http.MethodPost {
		page.Query = normalizeQuery(r.FormValue("query"))

		// Too short to be useful; never reaches the database
		if err := validate.Struct(models.SearchForm{Query: page.Query}); err != nil {
			if err := h.sessions.AddFlash(w, r, models.FlashDanger, msgShortSearch); err != nil {
				slog.Error("failed to add flash", "error", err)
			}
			h.render.Render(w, r, http.StatusOK, "search.html", page)
			return
		}

		books, err := h.store.SearchBooks(r.Context(), page.Query, searchLimit)
		if err != nil {
			slog.Error("failed to search books", "error", err, "query", page.Query)
			h.render.Error(w, r, http.StatusInternalServerError, "Database error")
			return
		}
		page.Books = books
	}

	h.render.Render(w, r, http.StatusOK, "search.html", page)
}
