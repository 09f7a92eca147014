// Package models defines the domain types for inkpress.
package models

import (
	"fmt"
	"strings"
	"time"
)

// TimeFormat is the normalized timestamp layout exposed to templates.
const TimeFormat = "2006-01-02 15:04:05"

// Post is one markdown source file in canonical form.
type Post struct {
	ID             uint64    `json:"id"`
	Slug           string    `json:"slug"`
	Title          string    `json:"title"`
	Tags           []string  `json:"tags"`
	Summary        string    `json:"summary,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
	ExplicitDate   bool      `json:"explicit_date"`
	BodyMarkdown   string    `json:"-"`
	BodyHTML       string    `json:"body"`
	Permalink      string    `json:"link"`
	ShortPermalink string    `json:"shortlink,omitempty"`
	Source         string    `json:"source"`
}

// SourceFile is a candidate post file found in the source directory.
type SourceFile struct {
	Name    string    // base name, e.g. 0001_first.md
	Path    string    // absolute path
	Created time.Time // creation (status change) time, the fallback post date
	Regular bool      // regular file after following symlinks
}

// Link joins base and the zero-padded post id: https://example.com/0042.
func Link(base string, id uint64) string {
	return fmt.Sprintf("%s/%04d", strings.TrimRight(base, "/"), id)
}

// PageName returns the rendered page file name for id, e.g. 0042.php.
func PageName(id uint64, ext string) string {
	return fmt.Sprintf("%04d.%s", id, ext)
}

// Context returns the template view of the post.
func (p *Post) Context() map[string]any {
	if p == nil {
		return nil
	}
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return map[string]any{
		"id":        p.ID,
		"num":       p.ID,
		"slug":      p.Slug,
		"name":      p.Slug,
		"title":     p.Title,
		"tags":      tags,
		"summary":   p.Summary,
		"date":      p.Timestamp.Format(TimeFormat),
		"rfc822":    p.Timestamp.Format(time.RFC1123Z),
		"iso":       p.Timestamp.Format(time.RFC3339),
		"timestamp": p.Timestamp,
		"body":      p.BodyHTML,
		"markdown":  p.BodyMarkdown,
		"link":      p.Permalink,
		"shortlink": p.ShortPermalink,
	}
}
