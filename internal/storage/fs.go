package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/natefinch/atomic"

	"github.com/starford/inkpress/internal/models"
)

const filePerm = 0o644

// FS implements Provider backed by the local file system.
type FS struct {
	root string // absolute path to the directory
}

// NewFS creates a new FS provider rooted at the given directory.
// The directory must already exist.
func NewFS(root string) (*FS, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("storage: resolve root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("storage: stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("storage: root is not a directory: %s", abs)
	}
	return &FS{root: abs}, nil
}

// Root returns the absolute root directory.
func (f *FS) Root() string { return f.root }

// safePath resolves a relative path against the root and rejects
// any result that escapes it (directory traversal).
func (f *FS) safePath(rel string) (string, error) {
	if rel == "" {
		return f.root, nil
	}
	cleaned := filepath.Clean(rel)
	if filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("storage: absolute paths not allowed: %s", rel)
	}
	joined := filepath.Join(f.root, cleaned)
	abs, err := filepath.Abs(joined)
	if err != nil {
		return "", fmt.Errorf("storage: resolve path: %w", err)
	}
	if !strings.HasPrefix(abs, f.root+string(os.PathSeparator)) && abs != f.root {
		return "", fmt.Errorf("storage: path escapes root: %s", rel)
	}
	return abs, nil
}

// Entries lists the root directory without recursing. Symlinks are followed
// to decide whether an entry is a regular file; dangling links are reported
// as non-regular.
func (f *FS) Entries() ([]models.SourceFile, error) {
	dirents, err := os.ReadDir(f.root)
	if err != nil {
		return nil, fmt.Errorf("storage: list: %w", err)
	}
	out := make([]models.SourceFile, 0, len(dirents))
	for _, d := range dirents {
		p := filepath.Join(f.root, d.Name())
		sf := models.SourceFile{Name: d.Name(), Path: p}
		if info, statErr := os.Stat(p); statErr == nil {
			sf.Regular = info.Mode().IsRegular()
			sf.Created = createdAt(info)
		}
		out = append(out, sf)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

// Read returns the raw bytes of a file.
func (f *FS) Read(path string) ([]byte, error) {
	abs, err := f.safePath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("storage: read %s: %w", path, err)
	}
	return data, nil
}

// Exists reports whether path exists without following a final symlink.
func (f *FS) Exists(path string) (bool, error) {
	abs, err := f.safePath(path)
	if err != nil {
		return false, err
	}
	if _, err := os.Lstat(abs); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("storage: stat %s: %w", path, err)
	}
	return true, nil
}

// Write atomically writes content: temp file in the same directory, then rename.
func (f *FS) Write(path string, content []byte) error {
	abs, err := f.safePath(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return fmt.Errorf("storage: mkdir: %w", err)
	}
	if err := atomic.WriteFile(abs, bytes.NewReader(content)); err != nil {
		return fmt.Errorf("storage: write %s: %w", path, err)
	}
	// atomic.WriteFile leaves the temp file's 0600 mode on new files.
	if err := os.Chmod(abs, filePerm); err != nil {
		return fmt.Errorf("storage: chmod %s: %w", path, err)
	}
	return nil
}

// Append writes content to the end of path, creating the file when needed.
func (f *FS) Append(path string, content []byte) (err error) {
	abs, err := f.safePath(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return fmt.Errorf("storage: mkdir: %w", err)
	}
	file, err := os.OpenFile(abs, os.O_APPEND|os.O_CREATE|os.O_WRONLY, filePerm)
	if err != nil {
		return fmt.Errorf("storage: open %s: %w", path, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("storage: close %s: %w", path, cerr)
		}
	}()
	if _, err := file.Write(content); err != nil {
		return fmt.Errorf("storage: append %s: %w", path, err)
	}
	return nil
}

// Remove deletes a file or symlink.
func (f *FS) Remove(path string) error {
	abs, err := f.safePath(path)
	if err != nil {
		return err
	}
	if err := os.Remove(abs); err != nil {
		return fmt.Errorf("storage: remove %s: %w", path, err)
	}
	return nil
}

// Symlink creates path pointing at target. target is stored verbatim, so a
// bare file name yields a link relative to the link's own directory.
func (f *FS) Symlink(target, path string) error {
	abs, err := f.safePath(path)
	if err != nil {
		return err
	}
	if err := os.Symlink(target, abs); err != nil {
		return fmt.Errorf("storage: symlink %s -> %s: %w", path, target, err)
	}
	return nil
}
