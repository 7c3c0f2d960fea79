// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package format

import (
	"time"

	"github.com/dustin/go-humanize"
)

const prettyDateLayout = "Jan 02, 2006"

// PrettyDate formats Unix seconds as a calendar date in local time
func PrettyDate(timestamp int64) string {
	return PrettyDateIn(timestamp, time.Local)
}

// PrettyDateIn formats Unix seconds as a calendar date in loc
func PrettyDateIn(timestamp int64, loc *time.Location) string {
	return time.Unix(timestamp, 0).In(loc).Format(prettyDateLayout)
}

// Count renders a count with thousands separators
func Count(n int64) string {
	return humanize.Comma(n)
}
