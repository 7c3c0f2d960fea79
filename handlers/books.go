// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/danielhkuo/readwell/auth"
	"github.com/danielhkuo/readwell/db"
	"github.com/danielhkuo/readwell/format"
	"github.com/danielhkuo/readwell/goodreads"
	"github.com/danielhkuo/readwell/metrics"
	"github.com/danielhkuo/readwell/middleware"
	"github.com/danielhkuo/readwell/models"
)

const msgUnknownISBN = "Invalid URL. Did you type in a non-existent ISBN?"

// RatingFetcher returns the external crowd rating for a book
type RatingFetcher interface {
	ReviewCounts(ctx context.Context, isbn string) (*goodreads.Rating, error)
}

type BookHandler struct {
	store    *db.Store
	sessions *auth.Sessions
	ratings  RatingFetcher
	render   *Renderer
	now      func() time.Time
}

func NewBookHandler(store *db.Store, sessions *auth.Sessions, ratings RatingFetcher, render *Renderer) *BookHandler {
	return &BookHandler{
		store:    store,
		sessions: sessions,
		ratings:  ratings,
		render:   render,
		now:      time.Now,
	}
}

// Book handles GET and POST /book/{isbn}. POST carries text_review and
// star_review and stores a review before the page is built.
func (h *BookHandler) Book(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	username := h.sessions.CurrentUser(r)

	book, err := h.store.GetBook(ctx, r.PathValue("isbn"))
	if errors.Is(err, db.ErrNotFound) {
		flashDanger(w, r, h.sessions, msgUnknownISBN, "/search")
		return
	}
	if err != nil {
		slog.Error("failed to query book", "error", err)
		h.render.Error(w, r, http.StatusInternalServerError, "Database error")
		return
	}

	if r.Method == http.MethodPost {
		rating, err := format.StarsToRating(r.FormValue("star_review"))
		if err != nil {
			slog.Warn("rejected review", "isbn", book.ISBN, "username", username, "error", err)
			h.render.Error(w, r, http.StatusBadRequest, "Please pick a star rating from the list.")
			return
		}

		review := models.Review{
			ISBN:      book.ISBN,
			Review:    r.FormValue("text_review"),
			Rating:    rating,
			Username:  username,
			Timestamp: h.now().Unix(),
		}
		if err := h.store.AddReview(ctx, &review); err != nil {
			slog.Error("failed to insert review", "error", err, "isbn", book.ISBN)
			h.render.Error(w, r, http.StatusInternalServerError, "Failed to save review")
			return
		}

		metrics.ReviewsCreated.Inc()
		slog.Info("review posted", "isbn", book.ISBN, "username", username, "rating", rating)
	}

	detail, err := h.bookDetail(ctx, *book)
	if err != nil {
		slog.Error("failed to fetch goodreads rating", "error", err, "isbn", book.ISBN)
		h.render.Error(w, r, http.StatusInternalServerError, "Could not load ratings from Goodreads")
		return
	}

	page := models.BookPage{
		Book:        detail,
		Reviews:     []models.ReviewView{},
		StarChoices: format.StarChoices(),
	}

	own, err := h.store.UserReview(ctx, book.ISBN, username)
	if err != nil {
		slog.Error("failed to query user review", "error", err)
		h.render.Error(w, r, http.StatusInternalServerError, "Database error")
		return
	}
	if own != nil {
		view, err := reviewView(*own)
		if err != nil {
			slog.Error("corrupt review", "error", err, "review_id", own.ID)
			h.render.Error(w, r, http.StatusInternalServerError, "Failed to load reviews")
			return
		}
		page.UserReview = &view
	}

	reviews, err := h.store.BookReviews(ctx, book.ISBN)
	if err != nil {
		slog.Error("failed to query reviews", "error", err)
		h.render.Error(w, r, http.StatusInternalServerError, "Database error")
		return
	}
	for _, rev := range reviews {
		view, err := reviewView(rev)
		if err != nil {
			slog.Error("corrupt review", "error", err, "review_id", rev.ID)
			h.render.Error(w, r, http.StatusInternalServerError, "Failed to load reviews")
			return
		}
		page.Reviews = append(page.Reviews, view)
	}

	h.render.Render(w, r, http.StatusOK, "book.html", page)
}

// bookDetail adds the live Goodreads rating to book. A book Goodreads has
// no record of is shown without one.
func (h *BookHandler) bookDetail(ctx context.Context, book models.Book) (models.BookDetail, error) {
	detail := models.BookDetail{Book: book}

	rating, err := h.ratings.ReviewCounts(ctx, book.ISBN)
	if errors.Is(err, goodreads.ErrNoBooks) {
		return detail, nil
	}
	if err != nil {
		return detail, err
	}

	avg, err := rating.Average()
	if err != nil {
		return detail, err
	}

	detail.GoodreadsAverage = rating.AverageRating
	detail.GoodreadsCount = format.Count(rating.RatingsCount)
	detail.NumStars = int(math.RoundToEven(avg))
	return detail, nil
}

func reviewView(r models.Review) (models.ReviewView, error) {
	stars, err := format.RatingToStars(r.Rating)
	if err != nil {
		return models.ReviewView{}, fmt.Errorf("review %d: %w", r.ID, err)
	}
	return models.ReviewView{
		Review:     r.Review,
		StarRating: stars,
		Username:   r.Username,
		PrettyDate: format.PrettyDate(r.Timestamp),
	}, nil
}

// API handles GET /api/{isbn}
func (h *BookHandler) API(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	book, err := h.store.GetBook(ctx, r.PathValue("isbn"))
	if errors.Is(err, db.ErrNotFound) {
		h.render.Error(w, r, http.StatusNotFound, "No book with that ISBN.")
		return
	}
	if err != nil {
		slog.Error("failed to query book", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	year, err := strconv.Atoi(book.Year)
	if err != nil {
		slog.Error("book has non-numeric year", "isbn", book.ISBN, "year", book.Year)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Invalid book year")
		return
	}

	stats, err := h.store.ReviewStats(ctx, book.ISBN)
	if err != nil {
		slog.Error("failed to aggregate reviews", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.BookAPIResponse{
		ISBN:         book.ISBN,
		Title:        book.Title,
		Author:       book.Author,
		Year:         year,
		ReviewCount:  stats.Count,
		AverageScore: models.Score(roundScore(stats)),
	})
}

// roundScore rounds the mean to two decimals the way "%.2f" does, so exact
// ties such as 1.125 go to the even digit; no reviews scores 0
func roundScore(stats models.ReviewStats) float64 {
	if stats.Count == 0 {
		return 0
	}
	v, err := strconv.ParseFloat(strconv.FormatFloat(stats.Average, 'f', 2, 64), 64)
	if err != nil {
		return 0
	}
	return v
}
