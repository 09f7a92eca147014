// Package markdown converts post bodies to HTML with goldmark.
package markdown

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
)

// Options configure the converter.
type Options struct {
	// Extensions names goldmark extensions to enable. Empty selects the defaults.
	Extensions []string
	HardWraps  bool
}

// Converter renders markdown to HTML. A Converter is safe for concurrent use.
type Converter struct {
	engine goldmark.Markdown
}

var extensionRegistry = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"tables":        extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"autolink":      extension.Linkify,
	"tasklist":      extension.TaskList,
	"definition":    extension.DefinitionList,
	"footnote":      extension.Footnote,
	"typographer":   extension.Typographer,
}

// DefaultExtensions are enabled when Options.Extensions is empty.
var DefaultExtensions = []string{"gfm", "linkify", "footnote"}

// KnownExtension reports whether name is a supported extension.
func KnownExtension(name string) bool {
	_, ok := extensionRegistry[normalize(name)]
	return ok
}

// Extensions lists the supported extension names.
func Extensions() []string {
	out := make([]string, 0, len(extensionRegistry))
	for name := range extensionRegistry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// New builds a converter. Raw HTML in post bodies is passed through.
func New(opts Options) (*Converter, error) {
	names := opts.Extensions
	if len(names) == 0 {
		names = DefaultExtensions
	}

	var exts []goldmark.Extender
	seen := map[string]struct{}{}
	for _, name := range names {
		key := normalize(name)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		ext, ok := extensionRegistry[key]
		if !ok {
			return nil, fmt.Errorf("markdown: unknown extension %q", name)
		}
		exts = append(exts, ext)
		seen[key] = struct{}{}
	}

	rendererOptions := []renderer.Option{html.WithUnsafe()}
	if opts.HardWraps {
		rendererOptions = append(rendererOptions, html.WithHardWraps())
	}

	engine := goldmark.New(
		goldmark.WithExtensions(exts...),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(rendererOptions...),
	)
	return &Converter{engine: engine}, nil
}

// Convert renders src to HTML.
func (c *Converter) Convert(src string) (string, error) {
	var buf bytes.Buffer
	if err := c.engine.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("markdown: convert: %w", err)
	}
	return buf.String(), nil
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
