package publish

import (
	"bytes"
	"fmt"
	"html"
	"log/slog"
	"strings"

	"github.com/starford/inkpress/internal/apperr"
	"github.com/starford/inkpress/internal/models"
)

// CategorySuffix is appended to a tag to name its category include file.
const CategorySuffix = ".inc"

// UpdateCategories appends posts[0] to the include file of each of its tags
// unless the file already links to it. In reconcile mode every post is
// processed, oldest first.
func (p *Publisher) UpdateCategories(posts []*models.Post) error {
	if len(posts) == 0 {
		return nil
	}
	targets := posts[:1]
	if p.opts.ReconcileCategories {
		targets = make([]*models.Post, 0, len(posts))
		for i := len(posts) - 1; i >= 0; i-- {
			targets = append(targets, posts[i])
		}
	}
	for _, post := range targets {
		for _, tag := range post.Tags {
			if err := p.addToCategory(tag, post); err != nil {
				return err
			}
		}
	}
	return nil
}

func (p *Publisher) addToCategory(tag string, post *models.Post) error {
	name, err := categoryFile(tag)
	if err != nil {
		return err
	}

	exists, err := p.out.Exists(name)
	if err != nil {
		return apperr.IO(err, "check "+name)
	}
	if exists {
		content, err := p.out.Read(name)
		if err != nil {
			return apperr.IO(err, "read "+name)
		}
		if bytes.Contains(content, []byte(hrefAttr(post.Permalink))) {
			p.logger.Debug("category already lists post",
				slog.String("file", name),
				slog.Uint64("id", post.ID))
			return nil
		}
	}

	if err := p.out.Append(name, []byte(listItem(post))); err != nil {
		return apperr.IO(err, "append "+name)
	}
	p.logger.Info("category updated", slog.String("file", name), slog.Uint64("id", post.ID))
	return nil
}

func categoryFile(tag string) (string, error) {
	if tag == "." || tag == ".." || strings.ContainsAny(tag, `/\`) || strings.ContainsRune(tag, 0) {
		return "", apperr.Tag(fmt.Errorf("%w: %q cannot name a category file", apperr.ErrTagFormat, tag), "update categories")
	}
	return tag + CategorySuffix, nil
}

func hrefAttr(link string) string {
	return `href="` + html.EscapeString(link) + `"`
}

// listItem is the line written for a post in category and archive includes.
func listItem(post *models.Post) string {
	return "<li><a " + hrefAttr(post.Permalink) + ">" + html.EscapeString(post.Title) + "</a></li>\n"
}
