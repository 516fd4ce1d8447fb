package finder

import (
	"io/fs"
	"iter"
	"path"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dunc/pkg/errors"
	"github.com/arthur-debert/dunc/pkg/filesystem"
	"github.com/arthur-debert/dunc/pkg/logging"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// errStopWalk aborts the walk once the consumer stops ranging.
var errStopWalk = errors.New(errors.ErrInternal, "walk stopped")

// Pattern is a glob anchored at a root directory.
type Pattern struct {
	// Glob is a slash-separated doublestar pattern relative to Root.
	Glob string

	// Root is the directory the glob is expanded against.
	Root string

	// Recursive lets `**` span directories. When false `**` behaves
	// like `*`.
	Recursive bool

	// StripPrefix folds the glob's static leading directories into the
	// root, so "src/**/*.py" yields "pkg/b.py" rather than "src/pkg/b.py".
	StripPrefix bool
}

// NewPattern returns a recursive pattern for glob under root.
func NewPattern(glob, root string) Pattern {
	return Pattern{Glob: glob, Root: root, Recursive: true}
}

// Finder expands patterns on a filesystem.
type Finder struct {
	fs     filesystem.FS
	logger zerolog.Logger
}

// New creates a Finder over fsys.
func New(fsys filesystem.FS) *Finder {
	return &Finder{
		fs:     fsys,
		logger: logging.GetLogger("finder"),
	}
}

// Find returns the files matching p. The root is checked and the tree is
// walked each time the sequence is ranged over.
func (f *Finder) Find(p Pattern) iter.Seq2[FileEntry, error] {
	return func(yield func(FileEntry, error) bool) {
		root, glob, err := f.prepare(p)
		if err != nil {
			yield(FileEntry{}, err)
			return
		}

		f.logger.Debug().
			Str("root", root).
			Str("pattern", glob).
			Bool("recursive", p.Recursive).
			Msg("Finding files")

		hidden := hiddenFilter(glob)
		stopped := false
		walkErr := doublestar.GlobWalk(
			afero.NewIOFS(afero.NewBasePathFs(f.fs, root)),
			glob,
			func(match string, _ fs.DirEntry) error {
				if hidden(match) {
					f.logger.Trace().Str("file", match).Msg("Skipped hidden file")
					return nil
				}
				entry := FileEntry{root: root, rel: filepath.FromSlash(match)}
				f.logger.Trace().Str("file", entry.rel).Msg("Matched file")
				if !yield(entry, nil) {
					stopped = true
					return errStopWalk
				}
				return nil
			},
			doublestar.WithFilesOnly(),
		)
		if stopped || walkErr == nil {
			return
		}
		yield(FileEntry{}, errors.Wrapf(walkErr, errors.ErrGlob, "failed to expand '%s' under '%s'", glob, root).
			WithDetail("root", root).
			WithDetail("pattern", glob))
	}
}

// FindAll collects every match of p. It stops at the first error.
func (f *Finder) FindAll(p Pattern) ([]FileEntry, error) {
	entries := []FileEntry{}
	for entry, err := range f.Find(p) {
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// prepare validates p and returns the absolute root and the glob to walk
// beneath it.
func (f *Finder) prepare(p Pattern) (string, string, error) {
	glob := filepath.ToSlash(p.Glob)
	if glob == "" {
		return "", "", errors.New(errors.ErrInvalidPattern, "pattern must not be empty")
	}
	if filepath.IsAbs(p.Glob) || strings.HasPrefix(glob, "/") {
		return "", "", errors.Newf(errors.ErrInvalidPattern, "pattern must be relative to the root: '%s'", p.Glob).
			WithDetail("pattern", p.Glob)
	}
	for _, segment := range strings.Split(glob, "/") {
		if segment == ".." {
			return "", "", errors.Newf(errors.ErrInvalidPattern, "pattern must stay under the root: '%s'", p.Glob).
				WithDetail("pattern", p.Glob)
		}
	}

	if !p.Recursive {
		for strings.Contains(glob, "**") {
			glob = strings.ReplaceAll(glob, "**", "*")
		}
	}
	glob = path.Clean(glob)

	if !doublestar.ValidatePattern(glob) {
		return "", "", errors.Newf(errors.ErrInvalidPattern, "invalid glob pattern: '%s'", p.Glob).
			WithDetail("pattern", p.Glob)
	}

	root := p.Root
	if root == "" {
		root = "."
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return "", "", errors.Wrapf(err, errors.ErrFileAccess, "failed to resolve root '%s'", p.Root)
	}

	info, err := f.fs.Stat(root)
	if err != nil {
		return "", "", errors.Wrapf(err, errors.ErrRootNotFound, "root directory '%s' does not exist", root).
			WithDetail("root", root)
	}
	if !info.IsDir() {
		return "", "", errors.Newf(errors.ErrRootNotFound, "root '%s' is not a directory", root).
			WithDetail("root", root)
	}

	if p.StripPrefix {
		base, rest := doublestar.SplitPattern(glob)
		if base != "." && rest != "" {
			root = filepath.Join(root, filepath.FromSlash(base))
			glob = rest
		}
	}

	return root, glob, nil
}

// hiddenFilter returns a predicate dropping matches that pass through a
// name starting with "." which no dot-prefixed segment of glob names.
// Wildcards, `**` included, never match hidden names on their own.
func hiddenFilter(glob string) func(match string) bool {
	var dotted []string
	for _, segment := range strings.Split(glob, "/") {
		if strings.HasPrefix(segment, ".") {
			dotted = append(dotted, segment)
		}
	}

	return func(match string) bool {
		for _, name := range strings.Split(match, "/") {
			if !strings.HasPrefix(name, ".") {
				continue
			}
			named := false
			for _, segment := range dotted {
				if ok, _ := doublestar.Match(segment, name); ok {
					named = true
					break
				}
			}
			if !named {
				return true
			}
		}
		return false
	}
}
