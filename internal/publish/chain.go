package publish

import (
	"bytes"
	"context"
	"log/slog"

	"github.com/starford/inkpress/internal/models"
	"github.com/starford/inkpress/internal/render"
)

// Chain renders posts[0] with prev=posts[1] under the Mandatory policy and
// posts[1] with prev=posts[2], next=posts[0] under BestEffort. Older posts
// are left alone. It returns the page name of posts[0].
func (p *Publisher) Chain(ctx context.Context, posts []*models.Post) (string, error) {
	if len(posts) == 0 {
		p.logger.Warn("no posts to publish")
		return "", nil
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	current := at(posts, 0)
	prev := at(posts, 1)

	name := models.PageName(current.ID, p.opts.PageExt)
	if err := Mandatory.apply(p.logger, "page "+name, p.renderPage(name, current, prev, nil)); err != nil {
		return "", err
	}

	if prev != nil {
		prevName := models.PageName(prev.ID, p.opts.PageExt)
		if err := BestEffort.apply(p.logger, "page "+prevName, p.renderPage(prevName, prev, at(posts, 2), current)); err != nil {
			return "", err
		}
	}
	return name, nil
}

func (p *Publisher) renderPage(name string, post, prev, next *models.Post) error {
	data := map[string]any{
		"post":      post.Context(),
		"url":       p.site.URL,
		"short_url": p.shortURL(),
		"blog":      p.blog(),
	}
	if prev != nil {
		data["prev"] = prev.Context()
	}
	if next != nil {
		data["next"] = next.Context()
	}

	var buf bytes.Buffer
	if err := p.tpl.Render(render.PageTemplate, data, &buf); err != nil {
		return err
	}
	if err := p.write(name, buf.Bytes()); err != nil {
		return err
	}
	p.logger.Info("page written", slog.String("page", name), slog.String("title", post.Title))
	return nil
}

func at(posts []*models.Post, i int) *models.Post {
	if i >= 0 && i < len(posts) {
		return posts[i]
	}
	return nil
}
