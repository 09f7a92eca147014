// Package loader turns selected source files into posts.
package loader

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/starford/inkpress/internal/apperr"
	"github.com/starford/inkpress/internal/models"
	"github.com/starford/inkpress/internal/parser"
)

// Reader reads a source file by name relative to the source directory.
type Reader interface {
	Read(path string) ([]byte, error)
}

// Converter renders a markdown body to HTML.
type Converter interface {
	Convert(src string) (string, error)
}

// Site carries the link bases used to build permalinks.
type Site struct {
	URL      string
	ShortURL string
}

// Loader maps source files to posts.
type Loader struct {
	src    Reader
	md     Converter
	site   Site
	opts   parser.Options
	logger *slog.Logger
}

// New creates a Loader.
func New(src Reader, md Converter, site Site, opts parser.Options, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{src: src, md: md, site: site, opts: opts, logger: logger}
}

// Load converts files in order. The first failing file aborts the load and
// no posts are returned.
func (l *Loader) Load(ctx context.Context, files []models.SourceFile) ([]*models.Post, error) {
	posts := make([]*models.Post, 0, len(files))
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p, err := l.LoadFile(f)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, nil
}

// LoadFile reads and parses a single source file.
func (l *Loader) LoadFile(f models.SourceFile) (*models.Post, error) {
	id, slug, err := parser.ParseFilename(f.Name)
	if err != nil {
		return nil, apperr.Post(err, "load "+f.Name)
	}

	data, err := l.src.Read(f.Name)
	if err != nil {
		return nil, apperr.IO(err, "load "+f.Name)
	}

	res, err := parser.Parse(data, l.opts)
	if err != nil {
		return nil, apperr.Post(err, "load "+f.Name)
	}
	if !res.Terminated {
		l.logger.Warn("header delimiter not found, body is empty", slog.String("file", f.Name))
	}

	p := &models.Post{
		ID:           id,
		Slug:         slug,
		Title:        res.Title,
		Tags:         res.Tags,
		Summary:      res.Summary,
		Timestamp:    f.Created,
		ExplicitDate: res.HasDate,
		BodyMarkdown: res.Body,
		Source:       f.Name,
	}
	if res.HasDate {
		p.Timestamp = res.Date
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}

	html, err := l.md.Convert(res.Body)
	if err != nil {
		return nil, apperr.Post(fmt.Errorf("convert body: %w", err), "load "+f.Name)
	}
	p.BodyHTML = html

	p.Permalink = models.Link(l.site.URL, id)
	p.ShortPermalink = p.Permalink
	if l.site.ShortURL != "" {
		p.ShortPermalink = models.Link(l.site.ShortURL, id)
	}

	l.logger.Debug("post loaded",
		slog.String("file", f.Name),
		slog.Uint64("id", id),
		slog.Int("tags", len(p.Tags)))
	return p, nil
}
