// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package goodreads

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/danielhkuo/readwell/metrics"
)

var (
	ErrNoBooks     = errors.New("goodreads returned no books")
	ErrUnavailable = errors.New("goodreads unavailable")
)

const reviewCountsPath = "/book/review_counts.json"

// Rating is the crowd-sourced rating Goodreads reports for one ISBN
type Rating struct {
	AverageRating string `json:"average_rating"` // a numeral in a string, e.g. "4.01"
	RatingsCount  int64  `json:"work_ratings_count"`
}

// Average parses AverageRating
func (r Rating) Average() (float64, error) {
	avg, err := strconv.ParseFloat(r.AverageRating, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid average_rating %q: %w", r.AverageRating, err)
	}
	return avg, nil
}

type reviewCountsResponse struct {
	Books []Rating `json:"books"`
}

// Client calls the review_counts endpoint, one request per call, no retry.
// A circuit breaker stops calling after repeated failures.
type Client struct {
	baseURL string
	key     string
	http    *http.Client
	cb      *gobreaker.CircuitBreaker[*Rating]
}

func NewClient(baseURL, key string, timeout time.Duration) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		key:     key,
		http:    &http.Client{Timeout: timeout},
	}

	metrics.GoodreadsBreakerState.Set(0)
	c.cb = gobreaker.NewCircuitBreaker[*Rating](gobreaker.Settings{
		Name:        "goodreads",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		// An ISBN Goodreads doesn't know is not an outage
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrNoBooks)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("circuit breaker state change", "name", name, "from", from.String(), "to", to.String())
			metrics.GoodreadsBreakerState.Set(stateValue(to))
		},
	})
	return c
}

// ReviewCounts fetches the average rating and rating count for isbn
func (c *Client) ReviewCounts(ctx context.Context, isbn string) (*Rating, error) {
	rating, err := c.cb.Execute(func() (*Rating, error) {
		return c.fetch(ctx, isbn)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		metrics.GoodreadsRequests.WithLabelValues("rejected").Inc()
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if err != nil {
		metrics.GoodreadsRequests.WithLabelValues("failure").Inc()
		return nil, err
	}
	metrics.GoodreadsRequests.WithLabelValues("success").Inc()
	return rating, nil
}

func (c *Client) fetch(ctx context.Context, isbn string) (*Rating, error) {
	q := url.Values{}
	q.Set("key", c.key)
	q.Set("isbns", isbn)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+reviewCountsPath+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build goodreads request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("goodreads request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNoBooks
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("goodreads returned status %d", resp.StatusCode)
	}

	var body reviewCountsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode goodreads response: %w", err)
	}
	if len(body.Books) == 0 {
		return nil, ErrNoBooks
	}

	rating := body.Books[0]
	if _, err := rating.Average(); err != nil {
		return nil, err
	}
	return &rating, nil
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
