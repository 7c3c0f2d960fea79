// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (request_id, method, path, remote) and completion
(status, duration_ms), sets X-Request-ID, and records the request
duration histogram.

# Login Guard

RequireLogin composes in front of any handler that needs a logged-in user:

	loginRequired := middleware.RequireLogin(sessions)
	mux.HandleFunc("GET /search", middleware.WithLogging(loginRequired(pageHandler.Search)))

Anonymous requests are redirected to / and the handler never runs.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusInternalServerError, "message")

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)

Used in request logs.
*/
package middleware
