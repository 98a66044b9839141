package dates

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

const (
	// LastUpdateFormat is how the time of the last successful refresh is displayed.
	LastUpdateFormat = "15:04:05"
)

var ErrUnknownDateFormat = errors.New("unknown date format")

var pubDateLayouts = []string{
	time.RFC1123,
	time.RFC1123Z,
	time.RFC822,
	time.RFC822Z,
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// ParsePubDate parses an RSS pubDate into UTC. The feed keeps the raw text, this is for display only.
func ParsePubDate(from string) (time.Time, error) {
	from = strings.TrimSpace(from)
	if from == "" {
		return time.Time{}, fmt.Errorf("%w: empty date", ErrUnknownDateFormat)
	}

	for _, layout := range pubDateLayouts {
		if parsed, err := time.Parse(layout, from); err == nil {
			return parsed.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrUnknownDateFormat, from)
}

// FormatLastUpdate returns an empty string for the zero time.
func FormatLastUpdate(from time.Time) string {
	if from.IsZero() {
		return ""
	}
	return from.Local().Format(LastUpdateFormat)
}

// Ago renders from relative to now, e.g. "3 minutes ago"; "never" for the zero time.
func Ago(from time.Time) string {
	if from.IsZero() {
		return "never"
	}
	return humanize.Time(from)
}
