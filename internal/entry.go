// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"

	"github.com/starford/inkpress/internal/apperr"
	"github.com/starford/inkpress/internal/loader"
	"github.com/starford/inkpress/internal/markdown"
	"github.com/starford/inkpress/internal/parser"
	"github.com/starford/inkpress/internal/publish"
	"github.com/starford/inkpress/internal/render"
	"github.com/starford/inkpress/internal/selector"
	"github.com/starford/inkpress/internal/storage"
)

// Run publishes the most recent posts once and returns the name of the page
// published for the newest post, or "" when there was nothing to publish.
func Run(ctx context.Context, opts ...Option) (string, error) {
	app, logger, err := setup(opts)
	if err != nil {
		return "", err
	}

	p, err := newPipeline(app.config, logger)
	if err != nil {
		return "", err
	}
	return p.run(ctx)
}

func setup(opts []Option) (*application, *slog.Logger, error) {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return nil, nil, apperr.Settings(fmt.Errorf("config is required"), "setup")
	}
	if err := app.config.Validate(); err != nil {
		return nil, nil, apperr.Settings(err, "invalid config")
	}

	return app, newLogger(app), nil
}

// newLogger builds the structured logger every component receives.
func newLogger(app *application) *slog.Logger {
	out := app.logOutput
	if out == nil {
		out = os.Stderr
	}
	handlerOpts := &slog.HandlerOptions{Level: app.config.App.LogLevel}
	if app.config.App.LogFormat == LogFormatText {
		return slog.New(slog.NewTextHandler(out, handlerOpts))
	}
	return slog.New(slog.NewJSONHandler(out, handlerOpts))
}

// pipeline wires one publish pass: select, load, chain and artifacts.
type pipeline struct {
	cfg       *Config
	logger    *slog.Logger
	src       *storage.FS
	loader    *loader.Loader
	publisher *publish.Publisher
}

func newPipeline(cfg *Config, logger *slog.Logger) (*pipeline, error) {
	loc, err := cfg.Site.Location()
	if err != nil {
		return nil, apperr.Settings(err, "site timezone")
	}

	logger.Info("Configuration loaded",
		slog.String("source", cfg.Paths.Source),
		slog.String("output", cfg.Paths.Output),
		slog.String("templates", cfg.Paths.Templates),
		slog.Int("recent", cfg.Publish.Recent),
		slog.String("order", cfg.Publish.Order),
		slog.String("log_level", cfg.App.LogLevel.String()))

	src, err := storage.NewFS(cfg.Paths.Source)
	if err != nil {
		return nil, apperr.IO(err, "open source dir")
	}

	md, err := markdown.New(markdown.Options{
		Extensions: cfg.Markdown.Extensions,
		HardWraps:  cfg.Markdown.HardWraps,
	})
	if err != nil {
		return nil, apperr.Settings(err, "markdown")
	}

	tpl, err := render.New(cfg.Paths.Templates, logger)
	if err != nil {
		return nil, err
	}
	logger.Debug("templates resolved", slog.String("source", tpl.Source()))

	// Ensure output directory exists.
	if err := os.MkdirAll(cfg.Paths.Output, 0o755); err != nil {
		return nil, apperr.IO(err, "create output dir")
	}
	out, err := storage.NewFS(cfg.Paths.Output)
	if err != nil {
		return nil, apperr.IO(err, "open output dir")
	}

	return &pipeline{
		cfg:    cfg,
		logger: logger,
		src:    src,
		loader: loader.New(src, md,
			loader.Site{URL: cfg.Site.URL, ShortURL: cfg.Site.ShortURL},
			parser.Options{Strict: cfg.Publish.StrictHeader, Location: loc},
			logger),
		publisher: publish.New(out, tpl,
			publish.Site{Name: cfg.Site.Name, URL: cfg.Site.URL, ShortURL: cfg.Site.ShortURL},
			publish.Options{
				PageExt:             cfg.Publish.PageExt,
				VerifyFeed:          cfg.Publish.VerifyFeed,
				ReconcileCategories: cfg.Publish.ReconcileCategories,
			},
			logger),
	}, nil
}

func (p *pipeline) run(ctx context.Context) (string, error) {
	files, err := selector.Select(p.src, p.cfg.Publish.Recent, selector.Order(p.cfg.Publish.Order))
	if err != nil {
		return "", err
	}
	p.logger.Info("posts selected", slog.Int("count", len(files)))

	posts, err := p.loader.Load(ctx, files)
	if err != nil {
		return "", err
	}

	// Newest first for chaining.
	slices.Reverse(posts)

	page, err := p.publisher.Publish(ctx, posts)
	if err != nil {
		return "", err
	}
	if page != "" {
		p.logger.Info("published", slog.String("page", page))
	}
	return page, nil
}
