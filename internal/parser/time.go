package parser

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/starford/inkpress/internal/models"
)

// SerializeTimeFormat is the RFC 2822 layout written by Serialize.
const SerializeTimeFormat = time.RFC1123Z

// timeLayouts are tried in order before falling back to dateparse.
var timeLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"2 Jan 2006 15:04:05 -0700",
	time.RFC822Z,
	time.RFC822,
	time.RFC3339,
	models.TimeFormat,
	"2006-01-02 15:04",
	"2006-01-02",
}

// parseTime reads an RFC-2822-like timestamp. Layouts without a zone are
// interpreted in loc.
func parseTime(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if ts, err := time.ParseInLocation(layout, s, loc); err == nil {
			return ts, true
		}
	}
	if ts, err := dateparse.ParseIn(s, loc); err == nil {
		return ts, true
	}
	return time.Time{}, false
}
