// Package render executes the page and feed templates with pongo2.
package render

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/starford/inkpress/internal/apperr"
)

// Template names the publisher renders.
const (
	PageTemplate = "index.php"
	RSSTemplate  = "template.rss"
	CDFTemplate  = "template.cdf"
)

//go:embed templates/*
var builtin embed.FS

// Renderer resolves templates by name from one template set.
type Renderer struct {
	set    *pongo2.TemplateSet
	source string
}

// New builds a renderer over dir. A glob such as "template/*" is reduced to
// its directory. When dir does not exist the built-in templates are used.
func New(dir string, logger *slog.Logger) (*Renderer, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if strings.ContainsAny(dir, "*?[") {
		dir = filepath.Dir(dir)
	}

	info, err := os.Stat(dir)
	switch {
	case err == nil && info.IsDir():
		loader, lerr := pongo2.NewLocalFileSystemLoader(dir)
		if lerr != nil {
			return nil, apperr.Settings(lerr, "render: templates dir")
		}
		return &Renderer{set: pongo2.NewSet("inkpress", loader), source: dir}, nil
	case err == nil:
		return nil, apperr.Settings(fmt.Errorf("%s is not a directory", dir), "render: templates dir")
	case !errors.Is(err, fs.ErrNotExist):
		return nil, apperr.Settings(err, "render: templates dir")
	}

	logger.Warn("templates dir not found, using built-in templates", slog.String("dir", dir))
	return Builtin(), nil
}

// Builtin returns a renderer over the templates compiled into the binary.
func Builtin() *Renderer {
	sub, err := fs.Sub(builtin, "templates")
	if err != nil {
		panic(err)
	}
	return &Renderer{set: pongo2.NewSet("builtin", pongo2.NewFSLoader(sub)), source: "builtin"}
}

// Source reports where templates are loaded from.
func (r *Renderer) Source() string { return r.source }

// Render executes the template name with data and writes the output to w.
// Nothing is written to w when loading or executing the template fails.
func (r *Renderer) Render(name string, data map[string]any, w io.Writer) error {
	tpl, err := r.set.FromFile(name)
	if err != nil {
		return apperr.Render(err, "render: load "+name)
	}
	if err := tpl.ExecuteWriter(pongo2.Context(data), w); err != nil {
		return apperr.Render(err, "render: execute "+name)
	}
	return nil
}
