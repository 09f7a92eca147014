// Package storage defines the file-system abstraction for post sources and
// published artifacts.
package storage

import "github.com/starford/inkpress/internal/models"

// Provider is the interface for file operations rooted at one directory.
// All paths are relative to that root.
type Provider interface {
	// Entries returns the direct children of the root, directories included.
	Entries() ([]models.SourceFile, error)
	// Read returns the raw bytes of the file at path.
	Read(path string) ([]byte, error)
	// Exists reports whether path exists. Symlinks are not followed.
	Exists(path string) (bool, error)
	// Write atomically replaces the file at path with content.
	Write(path string, content []byte) error
	// Append adds content to the end of path, creating it when missing.
	Append(path string, content []byte) error
	// Remove deletes path. A missing path yields an error matching fs.ErrNotExist.
	Remove(path string) error
	// Symlink creates path as a symbolic link pointing at target.
	Symlink(target, path string) error
}

// Verify *FS satisfies Provider at compile time.
var _ Provider = (*FS)(nil)
