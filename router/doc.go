// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Readwell site.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

# Endpoints

Operational:

	GET /health  - Liveness
	GET /metrics - Prometheus metrics

Public:

	GET  /          - Front page and random quote
	POST /register  - Create an account
	POST /login     - Sign in
	GET  /logout    - Sign out
	POST /logout    - Sign out ("switch user")

Signed-in only (anonymous requests are redirected to /):

	GET  /search      - Search form
	POST /search      - Search results
	GET  /book/{isbn} - Book page
	POST /book/{isbn} - Post a review
	GET  /api/{isbn}  - Book JSON with review count and average

Every route except /health and /metrics is wrapped in
middleware.WithLogging.
*/
package router
