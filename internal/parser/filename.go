package parser

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/starford/inkpress/internal/apperr"
)

// Extension is the post source file extension.
const Extension = ".md"

var eligibleRe = regexp.MustCompile(`^[0-9]{4,}.*\.md$`)

// Eligible reports whether a base file name looks like a post source:
// four or more leading digits and a .md extension.
func Eligible(name string) bool {
	return eligibleRe.MatchString(name)
}

// ParseFilename splits a post file name of the form NNNN_slug.md into its
// numeric id and slug. The id is the source of truth for post numbering.
func ParseFilename(name string) (uint64, string, error) {
	stem := strings.TrimSuffix(filepath.Base(name), Extension)
	num, slug, ok := strings.Cut(stem, "_")
	if !ok {
		return 0, "", apperr.Post(fmt.Errorf("%w: %s: missing '_' after post number", apperr.ErrInvalidFilename, name), "parse file name")
	}
	id, err := strconv.ParseUint(num, 10, 64)
	if err != nil {
		return 0, "", apperr.Post(fmt.Errorf("%w: %s: %v", apperr.ErrInvalidFilename, name, err), "parse file name")
	}
	return id, slug, nil
}

// Filename builds the canonical source file name for id and slug.
func Filename(id uint64, slug string) string {
	return fmt.Sprintf("%04d_%s%s", id, slug, Extension)
}
