// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package format converts stored values to and from their display form.

# Star Ratings

Ratings are stored as integers 1-5 and shown as five glyphs:

	1 ↔ ★☆☆☆☆
	2 ↔ ★★☆☆☆
	3 ↔ ★★★☆☆
	4 ↔ ★★★★☆
	5 ↔ ★★★★★

	stars, err := format.RatingToStars(4)   // "★★★★☆"
	rating, err := format.StarsToRating(s)  // 1..5

Unknown glyph strings return ErrUnknownStars; integers outside 1-5 return
ErrRatingOutOfRange.

# Dates

Review timestamps are whole Unix seconds. PrettyDate drops the time of day:

	format.PrettyDate(1568316549) // "Sep 12, 2019" (local time)

# Counts

	format.Count(742526) // "742,526"
*/
package format
