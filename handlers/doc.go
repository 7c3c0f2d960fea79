// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains the HTTP handlers for the Readwell site.

# Handler Types

Each handler is a struct holding the store, the session wrapper and the
page renderer:

  - AuthHandler: register, login, logout
  - PageHandler: front page quote and book search
  - BookHandler: book page, review posting and the JSON API

	authHandler := handlers.NewAuthHandler(store, sessions, renderer)

# Pages

Pages are html/template files embedded from templates/. Every page is
executed through base.html, which shows the signed-in user, pending flash
messages and the current year.

# Flash Messages

Form errors never produce an error status. The handler queues a flash with
category "text-danger" or "text-success" and redirects; the next rendered
page pops and shows it.

# Reviews

Star ratings travel as glyph strings ("★★★☆☆"). POST /book/{isbn} converts
the submitted glyph string to an integer 1..5 before storing it. A string
outside the five known choices is a 400.
*/
package handlers
