// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines form, domain, view, and response types.

# Form Types

Types bound from submitted forms and checked with go-playground/validator:

  - RegisterForm: username, password, repeat_password (all required)
  - LoginForm: username, password (both required)
  - SearchForm: query (at least 4 characters after whitespace normalization)

# Domain Types

Rows of the four tables:

  - User: username and bcrypt password hash
  - Book: isbn, title, author, year (year is stored as text)
  - Review: isbn, review text, rating 1-5, username, Unix timestamp
  - Quote: quote text and source

ReviewStats holds the count and mean rating of a book's local reviews.

# View Types

Data handed to the HTML templates:

  - HomePage: one random quote
  - SearchPage: echoed query and up to 10 matches
  - BookPage: book with Goodreads data, the viewer's review, all reviews

# Response Types

  - BookAPIResponse: isbn, title, author, year, review_count, average_score
  - ErrorResponse: error, message

# Flash Categories

	FlashDanger  = "text-danger"
	FlashSuccess = "text-success"
*/
package models
