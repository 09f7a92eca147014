// Package newpost creates fresh post source files in the canonical header form.
package newpost

import (
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-slug"

	"github.com/starford/inkpress/internal/apperr"
	"github.com/starford/inkpress/internal/models"
	"github.com/starford/inkpress/internal/parser"
	"github.com/starford/inkpress/internal/storage"
)

// fallbackSlug is used when the title yields no usable slug.
const fallbackSlug = "post"

// Request describes the post to create.
type Request struct {
	Title   string
	Tags    []string
	Summary string
	Body    string
	// Date defaults to the current time.
	Date time.Time
}

// Create writes a new post to src with the next free id and returns its
// file name. An existing file is never overwritten.
func Create(src storage.Provider, req Request) (string, error) {
	if strings.TrimSpace(req.Title) == "" {
		return "", apperr.Post(fmt.Errorf("title is required"), "new post")
	}

	entries, err := src.Entries()
	if err != nil {
		return "", apperr.IO(err, "new post: list source")
	}
	id := NextID(entries)

	date := req.Date
	if date.IsZero() {
		date = time.Now()
	}

	post := &models.Post{
		ID:           id,
		Slug:         Slugify(req.Title),
		Title:        req.Title,
		Tags:         req.Tags,
		Summary:      req.Summary,
		Timestamp:    date.Truncate(time.Second),
		ExplicitDate: true,
		BodyMarkdown: req.Body,
	}
	data, err := parser.Serialize(post)
	if err != nil {
		return "", err
	}

	name := parser.Filename(id, post.Slug)
	exists, err := src.Exists(name)
	if err != nil {
		return "", apperr.IO(err, "new post: check "+name)
	}
	if exists {
		return "", apperr.Post(fmt.Errorf("%w: %s", apperr.ErrAlreadyExists, name), "new post")
	}
	if err := src.Write(name, data); err != nil {
		return "", apperr.IO(err, "new post: write "+name)
	}
	return name, nil
}

// NextID returns one more than the highest id among eligible entries, or 1.
func NextID(entries []models.SourceFile) uint64 {
	var highest uint64
	for _, e := range entries {
		if !parser.Eligible(e.Name) {
			continue
		}
		id, _, err := parser.ParseFilename(e.Name)
		if err != nil {
			continue
		}
		if id > highest {
			highest = id
		}
	}
	return highest + 1
}

// Slugify derives a file-name slug from a title.
func Slugify(title string) string {
	s, err := slug.Normalize(title)
	if err != nil || s == "" {
		return fallbackSlug
	}
	return s
}
