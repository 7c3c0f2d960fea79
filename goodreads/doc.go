// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package goodreads fetches crowd-sourced ratings for a book.

	client := goodreads.NewClient("https://www.goodreads.com", apiKey, 5*time.Second)
	rating, err := client.ReviewCounts(ctx, "030734813X")
	avg, err := rating.Average() // 4.01

Each call is a single GET to /book/review_counts.json with the key and
ISBN as query parameters:

	{"books": [{"isbn": "030734813X", "average_rating": "4.01", "work_ratings_count": 742526, ...}]}

Only the first entry of "books" is used. An empty list or a 404 returns
ErrNoBooks. Other failures (network, timeout, non-200, bad JSON, a
non-numeric average) are returned as-is and count toward the circuit
breaker; after five in a row calls fail fast with ErrUnavailable for 30
seconds.
*/
package goodreads
