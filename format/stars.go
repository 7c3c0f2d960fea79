// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package format

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownStars     = errors.New("unrecognized star rating")
	ErrRatingOutOfRange = errors.New("rating must be between 1 and 5")
)

const (
	MinRating = 1
	MaxRating = 5
)

// starGlyphs is indexed by rating-1
var starGlyphs = [MaxRating]string{
	"★☆☆☆☆",
	"★★☆☆☆",
	"★★★☆☆",
	"★★★★☆",
	"★★★★★",
}

var glyphRatings = func() map[string]int {
	m := make(map[string]int, len(starGlyphs))
	for i, g := range starGlyphs {
		m[g] = i + 1
	}
	return m
}()

// StarsToRating converts a five-glyph star string to its integer rating
func StarsToRating(stars string) (int, error) {
	rating, ok := glyphRatings[stars]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownStars, stars)
	}
	return rating, nil
}

// RatingToStars converts an integer rating to its five-glyph star string
func RatingToStars(rating int) (string, error) {
	if rating < MinRating || rating > MaxRating {
		return "", fmt.Errorf("%w: %d", ErrRatingOutOfRange, rating)
	}
	return starGlyphs[rating-1], nil
}

// StarChoices lists every valid star string from one to five stars.
// Used to build the review form.
func StarChoices() []string {
	out := make([]string, len(starGlyphs))
	copy(out, starGlyphs[:])
	return out
}
