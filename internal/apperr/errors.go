// Package apperr defines the error taxonomy shared by the publishing pipeline.
package apperr

import (
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrAlreadyExists    = errors.New("already exists")
	ErrInvalidFilename  = errors.New("invalid post file name")
	ErrMissingDelimiter = errors.New("header delimiter not found")
	ErrTagFormat        = errors.New("invalid tag list")
)

// Error categories. A run aborts on any of them except where a caller
// explicitly downgrades a render failure to a warning.
const (
	CategorySettings goerrors.Category = "settings"
	CategoryPost     goerrors.Category = "post"
	CategoryTag      goerrors.Category = "tag"
	CategoryRender   goerrors.Category = "render"
	CategoryIO       goerrors.Category = "io"
)

// Settings wraps err as an invalid settings error.
func Settings(err error, msg string) error { return wrap(err, CategorySettings, msg) }

// Post wraps err as a post processing error.
func Post(err error, msg string) error { return wrap(err, CategoryPost, msg) }

// Tag wraps err as a tag format error.
func Tag(err error, msg string) error { return wrap(err, CategoryTag, msg) }

// Render wraps err as a template render error.
func Render(err error, msg string) error { return wrap(err, CategoryRender, msg) }

// IO wraps err as an artifact I/O error.
func IO(err error, msg string) error { return wrap(err, CategoryIO, msg) }

// Is reports whether err carries the given category.
func Is(err error, category goerrors.Category) bool {
	return goerrors.IsCategory(err, category)
}

func wrap(err error, category goerrors.Category, msg string) error {
	if err == nil {
		return nil
	}
	return goerrors.Wrap(err, category, msg)
}
