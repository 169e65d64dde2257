// Package normalize holds the pure canonicalisation rules applied to event
// and booking fields before they are persisted. Every function is
// deterministic and touches no store; uniqueness is enforced solely by the
// database indexes.
package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	appErrors "github.com/eventpulse/eventpulse-api/pkg/errors"
)

var (
	slugStripRe    = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugSpaceRe    = regexp.MustCompile(`\s+`)
	slugHyphenRe   = regexp.MustCompile(`-+`)
	timeRe         = regexp.MustCompile(`(?i)^(\d{1,2}):(\d{2})(?:\s*(AM|PM))?$`)
	emailGrammarRe = regexp.MustCompile("^[a-zA-Z0-9.!#$%&'*+/=?^_`{|}~-]+@[a-zA-Z0-9-]+(?:\\.[a-zA-Z0-9-]+)*$")
)

// dateLayouts are tried in order when parsing raw date input.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006-1-2",
	"2006/1/2",
	"01/02/2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	time.RFC3339,
}

// Slug derives a URL-safe identifier from a title: lowercase, trim, strip
// everything outside [a-z0-9\s-], collapse whitespace runs to single hyphens
// and collapse repeated hyphens. Idempotent: Slug(Slug(x)) == Slug(x).
func Slug(title string) string {
	s := strings.TrimSpace(strings.ToLower(title))
	s = slugStripRe.ReplaceAllString(s, "")
	s = slugSpaceRe.ReplaceAllString(s, "-")
	return slugHyphenRe.ReplaceAllString(s, "-")
}

// Date parses a raw calendar date and emits the canonical YYYY-MM-DD form in
// UTC.
func Date(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return parsed.UTC().Format("2006-01-02"), nil
		}
	}
	return "", appErrors.Clone(appErrors.ErrInvalidFormat, fmt.Sprintf("invalid date %q (expected YYYY-MM-DD)", raw))
}

// Time accepts H:MM or HH:MM with an optional case-insensitive AM/PM suffix
// and emits the canonical 24-hour HH:MM form.
func Time(raw string) (string, error) {
	match := timeRe.FindStringSubmatch(strings.TrimSpace(raw))
	if match == nil {
		return "", appErrors.Clone(appErrors.ErrInvalidFormat, fmt.Sprintf("invalid time %q (expected HH:MM or HH:MM AM/PM)", raw))
	}

	hours, _ := strconv.Atoi(match[1])
	minutes, _ := strconv.Atoi(match[2])
	period := strings.ToUpper(match[3])

	if period == "PM" && hours < 12 {
		hours += 12
	}
	if period == "AM" && hours == 12 {
		hours = 0
	}

	if hours > 23 || minutes > 59 {
		return "", appErrors.Clone(appErrors.ErrInvalidFormat, fmt.Sprintf("invalid time values in %q", raw))
	}

	return fmt.Sprintf("%02d:%s", hours, match[2]), nil
}

// Email trims and lowercases the address, then validates it against the
// accepted address grammar.
func Email(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if !emailGrammarRe.MatchString(email) {
		return "", appErrors.Clone(appErrors.ErrInvalidFormat, "invalid email address")
	}
	return email, nil
}
