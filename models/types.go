package models

import (
	"fmt"
	"math"
	"strconv"
)

// Flash categories, used as CSS classes by the templates
const (
	FlashDanger  = "text-danger"
	FlashSuccess = "text-success"
)

// Form types

type RegisterForm struct {
	Username       string `validate:"required"`
	Password       string `validate:"required"`
	RepeatPassword string `validate:"required"`
}

type LoginForm struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

// Query has already had its whitespace normalized
type SearchForm struct {
	Query string `validate:"min=4"`
}

// Domain types

type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"` // bcrypt hash, never exposed
}

type Book struct {
	ISBN   string `json:"isbn"`
	Title  string `json:"title"`
	Author string `json:"author"`
	Year   string `json:"year"`
}

type Review struct {
	ID        int64  `json:"id"`
	ISBN      string `json:"isbn"`
	Review    string `json:"review"`
	Rating    int    `json:"rating"`
	Username  string `json:"username"`
	Timestamp int64  `json:"timestamp"` // Unix seconds
}

type Quote struct {
	ID     int64  `json:"id"`
	Quote  string `json:"quote"`
	Source string `json:"source"`
}

// ReviewStats is the aggregate of local reviews for one book
type ReviewStats struct {
	Count   int
	Average float64 // 0 when Count is 0
}

// View types

// BookDetail is a book enriched with Goodreads data
type BookDetail struct {
	Book
	GoodreadsAverage string
	GoodreadsCount   string // humanized, e.g. "742,526"
	NumStars         int
}

type ReviewView struct {
	Review     string
	StarRating string
	Username   string
	PrettyDate string
}

type BookPage struct {
	Book        BookDetail
	UserReview  *ReviewView
	Reviews     []ReviewView
	StarChoices []string
}

type SearchPage struct {
	Query string
	Books []Book
}

type HomePage struct {
	Quote *Quote
}

// Response types

type BookAPIResponse struct {
	ISBN         string  `json:"isbn"`
	Title        string  `json:"title"`
	Author       string  `json:"author"`
	Year         int     `json:"year"`
	ReviewCount  int     `json:"review_count"`
	AverageScore Score   `json:"average_score"`
}

// Score is a float that always encodes with a decimal point, so 5 is
// written as 5.0 and clients never read it as an integer
type Score float64

func (s Score) MarshalJSON() ([]byte, error) {
	f := float64(s)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("invalid score %v", f)
	}
	b := strconv.AppendFloat(nil, f, 'f', -1, 64)
	for _, c := range b {
		if c == '.' {
			return b, nil
		}
	}
	return append(b, ".0"...), nil
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
