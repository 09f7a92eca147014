// Package testutil provides shared test helpers for setting up source and
// output trees.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/starford/inkpress/internal/storage"
)

// Tree is a temporary publishing layout.
type Tree struct {
	Root      string
	Source    string
	Output    string
	Templates string
}

// NewTree creates source, output and template directories under a temp root.
func NewTree(t *testing.T) *Tree {
	t.Helper()
	root := t.TempDir()
	tree := &Tree{
		Root:      root,
		Source:    filepath.Join(root, "source"),
		Output:    filepath.Join(root, "archive"),
		Templates: filepath.Join(root, "template"),
	}
	for _, dir := range []string{tree.Source, tree.Output, tree.Templates} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
	}
	return tree
}

// WritePost writes a post source file and returns its path.
func (tr *Tree) WritePost(t *testing.T, name, content string) string {
	t.Helper()
	return writeFile(t, tr.Source, name, content)
}

// WriteTemplate writes a template file and returns its path.
func (tr *Tree) WriteTemplate(t *testing.T, name, content string) string {
	t.Helper()
	return writeFile(t, tr.Templates, name, content)
}

// ReadOutput returns the content of an output artifact.
func (tr *Tree) ReadOutput(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(tr.Output, name))
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

// SourceStore opens the source directory as a storage.Provider.
func (tr *Tree) SourceStore(t *testing.T) storage.Provider {
	t.Helper()
	store, err := storage.NewFS(tr.Source)
	if err != nil {
		t.Fatal(err)
	}
	return store
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}
