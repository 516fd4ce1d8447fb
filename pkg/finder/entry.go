package finder

import (
	"iter"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dunc/pkg/errors"
)

// FileEntry is a file discovered under a root directory. It is immutable
// once created.
type FileEntry struct {
	root string
	rel  string
}

// NewEntry builds a FileEntry for rel under root. rel must be relative and
// must not climb out of root.
func NewEntry(root, rel string) (FileEntry, error) {
	if rel == "" {
		return FileEntry{}, errors.New(errors.ErrInvalidInput, "path must not be empty")
	}
	if filepath.IsAbs(rel) || strings.HasPrefix(filepath.ToSlash(rel), "/") {
		return FileEntry{}, errors.Newf(errors.ErrInvalidInput, "path must be relative, not absolute: '%s'", rel).
			WithDetail("path", rel)
	}
	clean := filepath.Clean(rel)
	if clean == "." || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return FileEntry{}, errors.Newf(errors.ErrInvalidInput, "path escapes its root: '%s'", rel).
			WithDetail("path", rel)
	}
	return FileEntry{root: filepath.Clean(root), rel: clean}, nil
}

// Root is the directory the entry was discovered under.
func (e FileEntry) Root() string { return e.root }

// Rel is the entry's path relative to Root.
func (e FileEntry) Rel() string { return e.rel }

// Path is the full source path, Root joined with Rel.
func (e FileEntry) Path() string { return filepath.Join(e.root, e.rel) }

func (e FileEntry) String() string { return e.rel }

// Seq adapts a slice of entries to the sequence type Find returns.
func Seq(entries []FileEntry) iter.Seq2[FileEntry, error] {
	return func(yield func(FileEntry, error) bool) {
		for _, e := range entries {
			if !yield(e, nil) {
				return
			}
		}
	}
}
