// Package publish renders post pages and keeps the derived artifacts in the
// output directory in step with the working set.
package publish

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/starford/inkpress/internal/apperr"
	"github.com/starford/inkpress/internal/models"
	"github.com/starford/inkpress/internal/storage"
)

// Renderer executes a named template. render.Renderer implements it.
type Renderer interface {
	Render(name string, data map[string]any, w io.Writer) error
}

// Site describes the blog for template contexts and links.
type Site struct {
	Name     string
	URL      string
	ShortURL string
}

// Options tune a Publisher.
type Options struct {
	// PageExt is the page file suffix without a dot, e.g. "php".
	PageExt string
	// VerifyFeed parses the rendered RSS before it is written.
	VerifyFeed bool
	// ReconcileCategories applies the category rule to every post in the
	// working set instead of only the newest one.
	ReconcileCategories bool
}

// Publisher writes artifacts into an output directory.
type Publisher struct {
	out    storage.Provider
	tpl    Renderer
	site   Site
	opts   Options
	logger *slog.Logger
}

// New creates a Publisher.
func New(out storage.Provider, tpl Renderer, site Site, opts Options, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.PageExt == "" {
		opts.PageExt = "php"
	}
	return &Publisher{out: out, tpl: tpl, site: site, opts: opts, logger: logger}
}

// Publish runs every stage over posts, which must be ordered newest first:
// chain, categories, feed, archive and the index alias. It returns the name
// of the page published for the newest post, or "" when posts is empty.
// The feed and archive are regenerated even for an empty working set.
func (p *Publisher) Publish(ctx context.Context, posts []*models.Post) (string, error) {
	page, err := p.Chain(ctx, posts)
	if err != nil {
		return "", err
	}

	stages := []struct {
		name  string
		run   func([]*models.Post) error
		empty bool
	}{
		{"categories", p.UpdateCategories, false},
		{"feed", p.UpdateFeed, true},
		{"archive", p.UpdateArchive, true},
	}
	for _, s := range stages {
		if page == "" && !s.empty {
			continue
		}
		if err := ctx.Err(); err != nil {
			return "", err
		}
		p.logger.Info("updating "+s.name, slog.Int("posts", len(posts)))
		if err := s.run(posts); err != nil {
			return "", err
		}
	}

	if page == "" {
		return "", nil
	}
	if err := p.SetIndex(page); err != nil {
		return "", err
	}
	return page, nil
}

func (p *Publisher) shortURL() string {
	if p.site.ShortURL != "" {
		return p.site.ShortURL
	}
	return p.site.URL
}

func (p *Publisher) blog() map[string]any {
	base := strings.TrimRight(p.site.URL, "/")
	return map[string]any{
		"title":    p.site.Name,
		"url":      p.site.URL,
		"rss_link": base + "/" + FeedFile,
		"cdf_link": base + "/" + CDFFile,
	}
}

func (p *Publisher) write(name string, content []byte) error {
	if err := p.out.Write(name, content); err != nil {
		return apperr.IO(err, fmt.Sprintf("write %s", name))
	}
	return nil
}
