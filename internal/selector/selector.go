// Package selector chooses which post source files take part in a run.
package selector

import (
	"fmt"
	"sort"

	"github.com/starford/inkpress/internal/apperr"
	"github.com/starford/inkpress/internal/models"
	"github.com/starford/inkpress/internal/parser"
)

// Order controls how eligible files are ranked before the recent window is taken.
type Order string

const (
	// OrderByName sorts by path, which for zero-padded ids is id order.
	OrderByName Order = "name"
	// OrderByTime sorts by file creation time, ties broken by path.
	OrderByTime Order = "time"
)

// Lister enumerates candidate files. storage.FS implements it.
type Lister interface {
	Entries() ([]models.SourceFile, error)
}

// Select returns the last recent eligible files of src in ascending order.
// When fewer than recent files qualify, all of them are returned.
func Select(src Lister, recent int, order Order) ([]models.SourceFile, error) {
	if recent < 1 {
		return nil, apperr.Settings(fmt.Errorf("recent must be at least 1, got %d", recent), "select")
	}

	entries, err := src.Entries()
	if err != nil {
		return nil, apperr.IO(err, "select: list source")
	}

	files := make([]models.SourceFile, 0, len(entries))
	for _, e := range entries {
		if e.Regular && parser.Eligible(e.Name) {
			files = append(files, e)
		}
	}

	switch order {
	case OrderByTime:
		sort.SliceStable(files, func(i, j int) bool {
			if !files[i].Created.Equal(files[j].Created) {
				return files[i].Created.Before(files[j].Created)
			}
			return files[i].Path < files[j].Path
		})
	case OrderByName, "":
		sort.SliceStable(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	default:
		return nil, apperr.Settings(fmt.Errorf("unknown order %q", order), "select")
	}

	if len(files) > recent {
		files = files[len(files)-recent:]
	}
	return files, nil
}
