// Package dateutil normalizes the date formats found in ADR front matter.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrUnknownDateFormat indicates a date string matching none of the
// accepted layouts.
var ErrUnknownDateFormat = errors.New("unknown date format")

// ISODate is the canonical output layout.
const ISODate = "2006-01-02"

// acceptedLayouts are tried in order. YAML parsers hand dates through as
// strings or RFC 3339 timestamps depending on quoting, and MADR templates
// in the wild use several regional layouts.
var acceptedLayouts = []string{
	ISODate,
	time.RFC3339,
	"2006-01-02 15:04:05 -0700 MST", // time.Time stringified via %v
	"2006/01/02",
	"02.01.2006",
	"02-01-2006",
	"January 2, 2006",
	"2 January 2006",
}

// Normalize parses a front matter date value and reformats it as
// YYYY-MM-DD. Returns ErrUnknownDateFormat when no accepted layout matches.
func Normalize(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", fmt.Errorf("%w: empty value", ErrUnknownDateFormat)
	}

	for _, layout := range acceptedLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t.Format(ISODate), nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDateFormat, value)
}
