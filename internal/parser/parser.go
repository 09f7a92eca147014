// Package parser reads the plain-text post header micro-format and the
// post file naming convention.
//
// A post file starts with a header block and switches to the markdown body
// after the first line consisting of exactly "===":
//
//	# Post Title
//	[tag, other tag]
//	<!-- Date: Mon, 02 Jan 2006 15:04:05 -0700 -->
//	> One line summary.
//	===
//	Body markdown...
package parser

import (
	"fmt"
	"strings"
	"time"

	"github.com/starford/inkpress/internal/apperr"
)

// Delimiter terminates the header block.
const Delimiter = "==="

// Result holds the output of parsing one post file.
type Result struct {
	Title   string
	Tags    []string
	Summary string
	// Date is the explicit timestamp; zero unless HasDate.
	Date    time.Time
	HasDate bool
	// Body is everything after the delimiter line, byte for byte.
	Body string
	// Terminated reports whether the delimiter line was found.
	Terminated bool
}

// Options tune parsing.
type Options struct {
	// Strict rejects files that never reach the delimiter line.
	Strict bool
	// Location is used for timestamps without a zone. Defaults to time.Local.
	Location *time.Location
}

// Parse extracts the header fields and body from raw post bytes.
func Parse(data []byte, opts Options) (*Result, error) {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	res := &Result{}
	var body strings.Builder

	rest := string(data)
	for rest != "" {
		var raw string
		if i := strings.IndexByte(rest, '\n'); i >= 0 {
			raw, rest = rest[:i+1], rest[i+1:]
		} else {
			raw, rest = rest, ""
		}

		if res.Terminated {
			body.WriteString(raw)
			continue
		}

		line := strings.TrimRight(raw, "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if err := classify(res, line, opts); err != nil {
			return nil, err
		}
	}

	if !res.Terminated && opts.Strict {
		return nil, apperr.Post(apperr.ErrMissingDelimiter, "parse header")
	}
	res.Body = body.String()
	return res, nil
}

// parseTags decomposes a bracketed tag line. Brackets and quote characters
// are stripped, elements are split on commas and trimmed; empty elements
// are dropped. Case and duplicates are kept as authored.
func parseTags(line string) ([]string, error) {
	if !strings.Contains(line, "]") {
		return nil, apperr.Tag(fmt.Errorf("%w: unterminated list %q", apperr.ErrTagFormat, line), "parse tags")
	}
	stripped := strings.Map(func(r rune) rune {
		switch r {
		case '[', ']', '"', '\'':
			return -1
		}
		return r
	}, line)

	tags := []string{}
	for _, part := range strings.Split(stripped, ",") {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags, nil
}
