package internal

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/starford/inkpress/internal/apperr"
	"github.com/starford/inkpress/internal/loader"
	"github.com/starford/inkpress/internal/markdown"
	"github.com/starford/inkpress/internal/models"
	"github.com/starford/inkpress/internal/newpost"
	"github.com/starford/inkpress/internal/parser"
	"github.com/starford/inkpress/internal/storage"
	"github.com/starford/inkpress/internal/watch"
)

// Watch publishes once, then republishes whenever a post source changes,
// until ctx is cancelled or the process receives SIGINT or SIGTERM.
func Watch(ctx context.Context, opts ...Option) error {
	app, logger, err := setup(opts)
	if err != nil {
		return err
	}

	p, err := newPipeline(app.config, logger)
	if err != nil {
		return err
	}

	if _, err := p.run(ctx); err != nil {
		logger.Error("initial publish failed", slog.String("error", err.Error()))
	}

	g, gCtx := errgroup.WithContext(ctx)
	watchCtx, stop := context.WithCancel(gCtx)

	g.Go(func() error {
		defer stop()
		publishOnce := func(ctx context.Context) error {
			_, err := p.run(ctx)
			return err
		}
		return watch.Watch(watchCtx, p.src, app.config.Paths.Source, logger, publishOnce, watch.Options{})
	})

	// Handle shutdown signals.
	g.Go(func() error {
		defer stop()
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-watchCtx.Done():
			logger.Info("Context cancelled, stopping watcher")
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Watcher stopped")
	return nil
}

// NewPost creates a post source file with the next free id in the
// configured source directory and returns its path.
func NewPost(_ context.Context, req newpost.Request, opts ...Option) (string, error) {
	app, logger, err := setup(opts)
	if err != nil {
		return "", err
	}

	src, err := storage.NewFS(app.config.Paths.Source)
	if err != nil {
		return "", apperr.IO(err, "open source dir")
	}
	if req.Date.IsZero() {
		loc, err := app.config.Site.Location()
		if err != nil {
			return "", apperr.Settings(err, "site timezone")
		}
		req.Date = nowIn(loc)
	}

	name, err := newpost.Create(src, req)
	if err != nil {
		return "", err
	}
	logger.Info("post created", slog.String("file", name))
	return filepath.Join(app.config.Paths.Source, name), nil
}

// Format loads one post file and returns its canonical serialization. When
// write is set the file is rewritten in place.
func Format(_ context.Context, path string, write bool, opts ...Option) ([]byte, error) {
	app, logger, err := setup(opts)
	if err != nil {
		return nil, err
	}
	cfg := app.config

	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	src, err := storage.NewFS(dir)
	if err != nil {
		return nil, apperr.IO(err, "open "+dir)
	}
	file, err := findEntry(src, name)
	if err != nil {
		return nil, err
	}

	loc, err := cfg.Site.Location()
	if err != nil {
		return nil, apperr.Settings(err, "site timezone")
	}
	md, err := markdown.New(markdown.Options{Extensions: cfg.Markdown.Extensions, HardWraps: cfg.Markdown.HardWraps})
	if err != nil {
		return nil, apperr.Settings(err, "markdown")
	}
	ld := loader.New(src, md,
		loader.Site{URL: cfg.Site.URL, ShortURL: cfg.Site.ShortURL},
		parser.Options{Strict: cfg.Publish.StrictHeader, Location: loc},
		logger)

	post, err := ld.LoadFile(file)
	if err != nil {
		return nil, err
	}
	data, err := parser.Serialize(post)
	if err != nil {
		return nil, err
	}

	if write {
		if err := src.Write(name, data); err != nil {
			return nil, apperr.IO(err, "rewrite "+name)
		}
		logger.Info("post rewritten", slog.String("file", path))
	}
	return data, nil
}

func findEntry(src *storage.FS, name string) (models.SourceFile, error) {
	entries, err := src.Entries()
	if err != nil {
		return models.SourceFile{}, apperr.IO(err, "list "+src.Root())
	}
	for _, e := range entries {
		if e.Name == name {
			if !e.Regular {
				return models.SourceFile{}, apperr.Post(errors.New(name+" is not a regular file"), "format")
			}
			return e, nil
		}
	}
	return models.SourceFile{}, apperr.IO(apperr.ErrNotFound, "find "+name)
}

func nowIn(loc *time.Location) time.Time {
	return time.Now().In(loc)
}
