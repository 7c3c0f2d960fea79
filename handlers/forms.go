// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate caches struct info; safe for concurrent use
var validate = validator.New(validator.WithRequiredStructEnabled())

// normalizeQuery trims and collapses runs of whitespace to one space
func normalizeQuery(q string) string {
	return strings.Join(strings.Fields(q), " ")
}
