package parser

import (
	"regexp"
	"strings"
)

// rule classifies one header line. Rules are evaluated top to bottom and
// the first match wins; lines no rule matches are ignored.
type rule struct {
	name  string
	match func(line string) bool
	apply func(res *Result, line string, opts Options) error
}

var dateRe = regexp.MustCompile(`^<!--\s*(?:Date:)?\s*(?P<ts>.*?)\s*-->\s*$`)

var rules = []rule{
	{
		name:  "delimiter",
		match: func(line string) bool { return strings.TrimSpace(line) == Delimiter },
		apply: func(res *Result, _ string, _ Options) error {
			res.Terminated = true
			return nil
		},
	},
	{
		name:  "tags",
		match: func(line string) bool { return strings.HasPrefix(line, "[") },
		apply: func(res *Result, line string, _ Options) error {
			tags, err := parseTags(line)
			if err != nil {
				return err
			}
			res.Tags = tags
			return nil
		},
	},
	{
		name: "date",
		match: func(line string) bool {
			return strings.HasPrefix(line, "<!--") && strings.Contains(line, "Date:")
		},
		apply: func(res *Result, line string, opts Options) error {
			m := dateRe.FindStringSubmatch(line)
			if m == nil {
				return nil
			}
			if ts, ok := parseTime(m[dateRe.SubexpIndex("ts")], opts.Location); ok {
				res.Date = ts
				res.HasDate = true
			}
			return nil
		},
	},
	{
		name:  "title",
		match: func(line string) bool { return strings.HasPrefix(line, "# ") },
		apply: func(res *Result, line string, _ Options) error {
			res.Title = strings.TrimSpace(strings.TrimPrefix(line, "# "))
			return nil
		},
	},
	{
		name:  "summary",
		match: func(line string) bool { return strings.HasPrefix(line, "> ") },
		apply: func(res *Result, line string, _ Options) error {
			text := strings.TrimSpace(strings.TrimPrefix(line, "> "))
			if text == "" {
				return nil
			}
			if res.Summary != "" {
				res.Summary += " "
			}
			res.Summary += text
			return nil
		},
	},
}

// classify applies the first matching rule to line.
func classify(res *Result, line string, opts Options) error {
	for _, r := range rules {
		if r.match(line) {
			return r.apply(res, line, opts)
		}
	}
	return nil
}
