package publish

import (
	"strings"

	"github.com/starford/inkpress/internal/models"
)

// ArchiveFile lists the whole working set.
const ArchiveFile = "archive.inc"

// UpdateArchive rewrites the archive include with one item per post, in
// input order.
func (p *Publisher) UpdateArchive(posts []*models.Post) error {
	var b strings.Builder
	b.WriteString("<ul class=\"posts\">\n")
	for _, post := range posts {
		b.WriteString(listItem(post))
	}
	b.WriteString("</ul>\n")
	return p.write(ArchiveFile, []byte(b.String()))
}
