// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "readwell_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "status"},
	)

	// outcome is "success", "failure" or "rejected" (breaker open)
	GoodreadsRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "readwell_goodreads_requests_total",
			Help: "Total number of Goodreads review_counts calls by outcome",
		},
		[]string{"outcome"},
	)

	// 0 = closed, 1 = half-open, 2 = open
	GoodreadsBreakerState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "readwell_goodreads_circuit_breaker_state",
			Help: "State of the Goodreads circuit breaker",
		},
	)

	ReviewsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "readwell_reviews_created_total",
			Help: "Total number of reviews posted",
		},
	)

	UsersRegistered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "readwell_users_registered_total",
			Help: "Total number of successful registrations",
		},
	)
)
