package publish

import (
	"errors"
	"io/fs"
	"log/slog"
	"path/filepath"

	"github.com/starford/inkpress/internal/apperr"
)

// IndexName returns the alias file name, e.g. index.php.
func (p *Publisher) IndexName() string {
	return "index." + p.opts.PageExt
}

// SetIndex points the index alias at target. A stale alias that cannot be
// removed is logged; failing to create the new link is an error.
func (p *Publisher) SetIndex(target string) error {
	alias := p.IndexName()
	if err := p.out.Remove(alias); err != nil && !errors.Is(err, fs.ErrNotExist) {
		p.logger.Warn("could not remove stale index alias",
			slog.String("alias", alias),
			slog.String("error", err.Error()))
	}
	if err := p.out.Symlink(filepath.Base(target), alias); err != nil {
		return apperr.IO(err, "link "+alias)
	}
	p.logger.Info("index updated", slog.String("alias", alias), slog.String("target", target))
	return nil
}
