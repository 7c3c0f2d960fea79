// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/danielhkuo/readwell/auth"
	"github.com/danielhkuo/readwell/cliparse"
	"github.com/danielhkuo/readwell/db"
	"github.com/danielhkuo/readwell/goodreads"
	"github.com/danielhkuo/readwell/handlers"
	"github.com/danielhkuo/readwell/middleware"
)

func NewRouter(conn *sql.DB, cfg cliparse.Config) *http.ServeMux {
	store := db.NewStore(conn)
	sessions := auth.NewFilesystemSessions(cfg.SessionDir, []byte(cfg.SessionSecret))
	ratings := goodreads.NewClient(cfg.GoodreadsURL, cfg.GoodreadsKey, cfg.GoodreadsTimeout)
	return newMux(store, sessions, ratings)
}

func newMux(store *db.Store, sessions *auth.Sessions, ratings handlers.RatingFetcher) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	renderer := handlers.NewRenderer(sessions)
	authHandler := handlers.NewAuthHandler(store, sessions, renderer)
	pageHandler := handlers.NewPageHandler(store, sessions, renderer)
	bookHandler := handlers.NewBookHandler(store, sessions, ratings, renderer)

	loginRequired := middleware.RequireLogin(sessions)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	mux.Handle("GET /metrics", promhttp.Handler())

	// Front page and accounts
	mux.HandleFunc("GET /{$}", middleware.WithLogging(pageHandler.Home))
	mux.HandleFunc("POST /register", middleware.WithLogging(authHandler.Register))
	mux.HandleFunc("POST /login", middleware.WithLogging(authHandler.Login))
	mux.HandleFunc("GET /logout", middleware.WithLogging(authHandler.Logout))
	mux.HandleFunc("POST /logout", middleware.WithLogging(authHandler.Logout))

	// Signed-in pages
	mux.HandleFunc("GET /search", middleware.WithLogging(loginRequired(pageHandler.Search)))
	mux.HandleFunc("POST /search", middleware.WithLogging(loginRequired(pageHandler.Search)))
	mux.HandleFunc("GET /book/{isbn}", middleware.WithLogging(loginRequired(bookHandler.Book)))
	mux.HandleFunc("POST /book/{isbn}", middleware.WithLogging(loginRequired(bookHandler.Book)))
	mux.HandleFunc("GET /api/{isbn}", middleware.WithLogging(loginRequired(bookHandler.API)))

	return mux
}
