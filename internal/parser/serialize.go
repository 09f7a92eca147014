package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/starford/inkpress/internal/apperr"
	"github.com/starford/inkpress/internal/models"
)

// Serialize writes p in the canonical on-disk form that Parse reads back:
// title, date comment, JSON tag list, optional summary, delimiter, body.
func Serialize(p *models.Post) ([]byte, error) {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	for _, tag := range tags {
		if !representable(tag) {
			return nil, apperr.Tag(fmt.Errorf("%w: %q cannot be serialized", apperr.ErrTagFormat, tag), "serialize tags")
		}
	}

	var tagLine bytes.Buffer
	enc := json.NewEncoder(&tagLine)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(tags); err != nil {
		return nil, apperr.Tag(err, "serialize tags")
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s\n", oneLine(p.Title))
	if !p.Timestamp.IsZero() {
		fmt.Fprintf(&buf, "<!-- Date: %s -->\n", p.Timestamp.Format(SerializeTimeFormat))
	}
	buf.Write(tagLine.Bytes()) // Encode terminates with a newline
	if summary := oneLine(p.Summary); summary != "" {
		fmt.Fprintf(&buf, "> %s\n", summary)
	}
	buf.WriteString(Delimiter + "\n")
	buf.WriteString(p.BodyMarkdown)
	return buf.Bytes(), nil
}

// representable reports whether tag survives the JSON tag line unchanged
// when read back by parseTags, which strips quotes and brackets but decodes
// no escape sequences.
func representable(tag string) bool {
	if tag == "" || strings.TrimSpace(tag) != tag || !utf8.ValidString(tag) {
		return false
	}
	if strings.ContainsAny(tag, `,"'[]\`) {
		return false
	}
	for _, r := range tag {
		if unicode.IsControl(r) || r == '\u2028' || r == '\u2029' {
			return false
		}
	}
	return true
}

var newlines = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

func oneLine(s string) string {
	return strings.TrimSpace(newlines.Replace(s))
}
