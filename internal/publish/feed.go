package publish

import (
	"bytes"
	"log/slog"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/starford/inkpress/internal/apperr"
	"github.com/starford/inkpress/internal/models"
	"github.com/starford/inkpress/internal/render"
)

// Feed output names.
const (
	FeedFile = "feed"
	CDFFile  = "cdf"
)

// UpdateFeed renders the RSS and CDF feeds from one shared context and
// overwrites both outputs. The modification time is taken from the last post.
func (p *Publisher) UpdateFeed(posts []*models.Post) error {
	data := p.feedContext(posts, time.Now())

	var rss, cdf bytes.Buffer
	if err := p.tpl.Render(render.RSSTemplate, data, &rss); err != nil {
		return err
	}
	if err := p.tpl.Render(render.CDFTemplate, data, &cdf); err != nil {
		return err
	}

	if p.opts.VerifyFeed {
		feed, err := gofeed.NewParser().Parse(bytes.NewReader(rss.Bytes()))
		if err != nil {
			return apperr.Render(err, "verify "+FeedFile)
		}
		if len(feed.Items) != len(posts) {
			p.logger.Warn("feed item count differs from working set",
				slog.Int("items", len(feed.Items)),
				slog.Int("posts", len(posts)))
		}
	}

	if err := p.write(FeedFile, rss.Bytes()); err != nil {
		return err
	}
	return p.write(CDFFile, cdf.Bytes())
}

func (p *Publisher) feedContext(posts []*models.Post, now time.Time) map[string]any {
	modTime := now
	if last := at(posts, len(posts)-1); last != nil {
		modTime = last.Timestamp
	}
	views := make([]map[string]any, 0, len(posts))
	for _, post := range posts {
		views = append(views, post.Context())
	}
	return map[string]any{
		"posts":        views,
		"mod_time":     modTime.Format(time.RFC1123Z),
		"mod_time_iso": modTime.Format(time.RFC3339),
		"blog":         p.blog(),
	}
}
