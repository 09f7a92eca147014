package loader

import (
	"context"
	"errors"
	"io/fs"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/starford/inkpress/internal/apperr"
	"github.com/starford/inkpress/internal/markdown"
	"github.com/starford/inkpress/internal/models"
	"github.com/starford/inkpress/internal/parser"
)

type mapReader map[string]string

func (m mapReader) Read(path string) ([]byte, error) {
	s, ok := m[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return []byte(s), nil
}

func newLoader(t *testing.T, src mapReader, site Site, opts parser.Options) *Loader {
	t.Helper()
	md, err := markdown.New(markdown.Options{})
	require.NoError(t, err)
	return New(src, md, site, opts, nil)
}

func source(name string, created time.Time) models.SourceFile {
	return models.SourceFile{Name: name, Path: "/src/" + name, Created: created, Regular: true}
}

func TestLoad_BuildsPosts(t *testing.T) {
	created := time.Date(2020, 5, 6, 7, 8, 9, 0, time.UTC)
	src := mapReader{
		"0001_first.md":  "# First\n[a, b]\n<!-- Date: Tue, 05 Mar 2024 10:20:30 +0000 -->\n> Sum.\n===\nHello *world*\n",
		"0002_second.md": "# Second\n===\nBody\n",
	}
	l := newLoader(t, src, Site{URL: "https://blog.example/", ShortURL: "https://b.ex"}, parser.Options{})

	posts, err := l.Load(context.Background(), []models.SourceFile{
		source("0001_first.md", created),
		source("0002_second.md", created),
	})
	require.NoError(t, err)
	require.Len(t, posts, 2)

	first := posts[0]
	require.Equal(t, uint64(1), first.ID)
	require.Equal(t, "first", first.Slug)
	require.Equal(t, "First", first.Title)
	require.Equal(t, []string{"a", "b"}, first.Tags)
	require.Equal(t, "Sum.", first.Summary)
	require.True(t, first.ExplicitDate)
	require.True(t, first.Timestamp.Equal(time.Date(2024, 3, 5, 10, 20, 30, 0, time.UTC)))
	require.Equal(t, "Hello *world*\n", first.BodyMarkdown)
	require.Contains(t, first.BodyHTML, "<em>world</em>")
	require.Equal(t, "https://blog.example/0001", first.Permalink)
	require.Equal(t, "https://b.ex/0001", first.ShortPermalink)
	require.Equal(t, "0001_first.md", first.Source)

	second := posts[1]
	require.False(t, second.ExplicitDate)
	require.True(t, second.Timestamp.Equal(created))
	require.NotNil(t, second.Tags)
	require.Empty(t, second.Tags)
}

func TestLoad_ShortLinkFallsBackToURL(t *testing.T) {
	l := newLoader(t, mapReader{"0007_x.md": "===\n"}, Site{URL: "https://blog.example"}, parser.Options{})
	p, err := l.LoadFile(source("0007_x.md", time.Now()))
	require.NoError(t, err)
	require.Equal(t, "https://blog.example/0007", p.ShortPermalink)
}

func TestLoad_AbortsOnFirstFailure(t *testing.T) {
	src := mapReader{
		"0001_ok.md":  "# ok\n===\n",
		"0002_bad.md": "[broken\n===\n",
	}
	l := newLoader(t, src, Site{URL: "https://x"}, parser.Options{})

	posts, err := l.Load(context.Background(), []models.SourceFile{
		source("0001_ok.md", time.Now()),
		source("0002_bad.md", time.Now()),
	})
	require.Nil(t, posts)
	require.ErrorIs(t, err, apperr.ErrTagFormat)
	require.True(t, apperr.Is(err, apperr.CategoryTag))
	require.Contains(t, err.Error(), "0002_bad.md")
}

func TestLoad_InvalidFilename(t *testing.T) {
	l := newLoader(t, mapReader{"0001-nope.md": "===\n"}, Site{URL: "https://x"}, parser.Options{})
	_, err := l.LoadFile(source("0001-nope.md", time.Now()))
	require.ErrorIs(t, err, apperr.ErrInvalidFilename)
}

func TestLoad_ReadFailure(t *testing.T) {
	l := newLoader(t, mapReader{}, Site{URL: "https://x"}, parser.Options{})
	_, err := l.LoadFile(source("0001_gone.md", time.Now()))
	require.True(t, errors.Is(err, fs.ErrNotExist))
	require.True(t, apperr.Is(err, apperr.CategoryIO))
}

func TestLoad_StrictHeader(t *testing.T) {
	src := mapReader{"0001_open.md": "# never closed\n"}

	lenient := newLoader(t, src, Site{URL: "https://x"}, parser.Options{})
	p, err := lenient.LoadFile(source("0001_open.md", time.Now()))
	require.NoError(t, err)
	require.Empty(t, p.BodyMarkdown)

	strict := newLoader(t, src, Site{URL: "https://x"}, parser.Options{Strict: true})
	_, err = strict.LoadFile(source("0001_open.md", time.Now()))
	require.ErrorIs(t, err, apperr.ErrMissingDelimiter)
}

func TestLoad_Cancelled(t *testing.T) {
	l := newLoader(t, mapReader{"0001_a.md": "===\n"}, Site{URL: "https://x"}, parser.Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := l.Load(ctx, []models.SourceFile{source("0001_a.md", time.Now())})
	require.ErrorIs(t, err, context.Canceled)
}
