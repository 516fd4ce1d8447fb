// Package installer places discovered files under an install root.
//
// Each entry's root-relative path is recreated beneath the destination,
// either as a copy of the source (bytes, permission bits and modification
// time) or as a symbolic link to the source's absolute path. Existing
// destinations are overwritten. The first failure stops the install and
// nothing already placed is rolled back.
package installer

import (
	"io"
	"io/fs"
	"iter"
	"os"
	"path/filepath"

	"github.com/arthur-debert/dunc/pkg/errors"
	"github.com/arthur-debert/dunc/pkg/filesystem"
	"github.com/arthur-debert/dunc/pkg/finder"
	"github.com/arthur-debert/dunc/pkg/logging"
	"github.com/rs/zerolog"
)

// Mode selects how a file is placed.
type Mode string

const (
	ModeCopy    Mode = "copy"
	ModeSymlink Mode = "link"
)

// DefaultDirPerm is used for created parent directories when Options.DirPerm is zero.
const DefaultDirPerm fs.FileMode = 0755

// Options control a single install.
type Options struct {
	// InstallRoot is the destination root. It is created if missing.
	InstallRoot string

	// Dest is an optional sub-directory of InstallRoot.
	Dest string

	Mode Mode

	// Executable adds the execute bits to every installed file.
	Executable bool

	// DryRun reports what would be placed without touching the filesystem.
	DryRun bool

	DirPerm fs.FileMode

	// Reporter receives one call per placed file. May be nil.
	Reporter Reporter
}

// Installed records one placed file.
type Installed struct {
	Entry finder.FileEntry
	Dest  string
	Mode  Mode
}

// Reporter is notified of every placed file. width is the length of the
// longest relative path in the install, for aligned output.
type Reporter interface {
	Placed(item Installed, width int, dryRun bool)
}

// Installer copies or links files on a filesystem.
type Installer struct {
	fs     filesystem.FS
	logger zerolog.Logger
}

// New creates an Installer over fsys.
func New(fsys filesystem.FS) *Installer {
	return &Installer{
		fs:     fsys,
		logger: logging.GetLogger("installer"),
	}
}

// Install places every entry of entries according to opts and returns the
// placed files in order. Entries are collected before anything is written,
// so an error from the sequence leaves the destination untouched.
func (i *Installer) Install(entries iter.Seq2[finder.FileEntry, error], opts Options) ([]Installed, error) {
	if opts.InstallRoot == "" {
		return nil, errors.New(errors.ErrInvalidInput, "install root must not be empty")
	}
	if opts.Mode == "" {
		opts.Mode = ModeCopy
	}
	if opts.Mode != ModeCopy && opts.Mode != ModeSymlink {
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown install mode '%s'", opts.Mode)
	}
	if opts.DirPerm == 0 {
		opts.DirPerm = DefaultDirPerm
	}

	var collected []finder.FileEntry
	width := 0
	for entry, err := range entries {
		if err != nil {
			return nil, err
		}
		collected = append(collected, entry)
		if n := len(entry.Rel()); n > width {
			width = n
		}
	}

	root, err := filepath.Abs(filepath.Join(opts.InstallRoot, opts.Dest))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to resolve install root '%s'", opts.InstallRoot)
	}
	done := logging.LogOperationStart(i.logger, "install")
	defer done()

	placed := make([]Installed, 0, len(collected))
	for _, entry := range collected {
		item, err := i.place(entry, root, opts)
		if err != nil {
			return placed, err
		}
		placed = append(placed, item)
		if opts.Reporter != nil {
			opts.Reporter.Placed(item, width, opts.DryRun)
		}
	}

	i.logger.Info().
		Int("files", len(placed)).
		Str("root", root).
		Str("mode", string(opts.Mode)).
		Msg("Install complete")
	return placed, nil
}

// InstallFiles is a convenience for callers holding a slice of entries.
func (i *Installer) InstallFiles(entries []finder.FileEntry, opts Options) ([]Installed, error) {
	return i.Install(finder.Seq(entries), opts)
}

func (i *Installer) place(entry finder.FileEntry, root string, opts Options) (Installed, error) {
	rel := entry.Rel()
	if rel == "" || filepath.IsAbs(rel) {
		return Installed{}, errors.Newf(errors.ErrInvalidInput, "file path must be relative to its root: '%s'", rel).
			WithDetail("file", rel)
	}

	src, err := filepath.Abs(entry.Path())
	if err != nil {
		return Installed{}, errors.Wrapf(err, errors.ErrFileAccess, "failed to resolve '%s'", entry.Path())
	}
	dest := filepath.Join(root, rel)
	item := Installed{Entry: entry, Dest: dest, Mode: opts.Mode}

	if src == dest {
		return Installed{}, sameFileError(src)
	}

	logger := i.logger.With().Str("source", src).Str("dest", dest).Str("mode", string(opts.Mode)).Logger()
	if opts.DryRun {
		logger.Debug().Msg("Dry run, skipping")
		return item, nil
	}

	info, err := i.fs.Stat(src)
	if err != nil {
		return Installed{}, errors.Wrapf(err, errors.ErrFileAccess, "cannot read source '%s'", src).
			WithDetail("source", src)
	}
	if info.IsDir() {
		return Installed{}, errors.Newf(errors.ErrInvalidInput, "source '%s' is a directory", src).
			WithDetail("source", src)
	}

	if i.isSource(src, info, dest) {
		return Installed{}, sameFileError(src)
	}

	if err := i.fs.MkdirAll(filepath.Dir(dest), opts.DirPerm); err != nil {
		return Installed{}, errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory '%s'", filepath.Dir(dest)).
			WithDetail("dir", filepath.Dir(dest))
	}

	switch opts.Mode {
	case ModeSymlink:
		err = i.link(src, dest)
	default:
		err = i.copy(src, dest, info)
	}
	if err != nil {
		return Installed{}, err
	}

	if opts.Executable {
		// chmod follows links, so a linked file's source becomes executable
		target := dest
		if opts.Mode == ModeSymlink {
			target = src
		}
		if err := i.makeExecutable(target); err != nil {
			return Installed{}, err
		}
	}

	logger.Debug().Msg("Placed file")
	return item, nil
}

// isSource reports whether dest already is the source file, reached
// through a different path (a linked parent directory or a hard link).
func (i *Installer) isSource(src string, srcInfo fs.FileInfo, dest string) bool {
	destInfo, err := i.fs.Lstat(dest)
	if err != nil {
		return false
	}
	if os.SameFile(destInfo, srcInfo) {
		return true
	}
	srcLinkInfo, err := i.fs.Lstat(src)
	return err == nil && os.SameFile(destInfo, srcLinkInfo)
}

func sameFileError(src string) error {
	return errors.Newf(errors.ErrInvalidInput, "destination is the source file itself: '%s'", src).
		WithDetail("source", src)
}

func (i *Installer) link(src, dest string) error {
	if err := i.removeExisting(dest); err != nil {
		return err
	}
	if err := i.fs.Symlink(src, dest); err != nil {
		return errors.Wrapf(err, errors.ErrSymlinkCreate, "failed to link '%s' -> '%s'", dest, src).
			WithDetail("source", src).
			WithDetail("dest", dest)
	}
	return nil
}

func (i *Installer) copy(src, dest string, info fs.FileInfo) error {
	// never write through an existing link into whatever it points at
	if err := i.removeExisting(dest); err != nil {
		return err
	}

	in, err := i.fs.Open(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileCopy, "failed to open '%s'", src).WithDetail("source", src)
	}
	defer func() { _ = in.Close() }()

	out, err := i.fs.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileCopy, "failed to create '%s'", dest).WithDetail("dest", dest)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return errors.Wrapf(err, errors.ErrFileCopy, "failed to copy '%s' to '%s'", src, dest).
			WithDetail("source", src).
			WithDetail("dest", dest)
	}
	if err := out.Close(); err != nil {
		return errors.Wrapf(err, errors.ErrFileCopy, "failed to write '%s'", dest).WithDetail("dest", dest)
	}

	if err := i.fs.Chmod(dest, info.Mode().Perm()); err != nil {
		return errors.Wrapf(err, errors.ErrFileChmod, "failed to set mode on '%s'", dest).WithDetail("dest", dest)
	}
	if err := i.fs.Chtimes(dest, info.ModTime(), info.ModTime()); err != nil {
		return errors.Wrapf(err, errors.ErrFileCopy, "failed to set times on '%s'", dest).WithDetail("dest", dest)
	}
	return nil
}

// removeExisting deletes a file or link at dest. Directories are refused.
func (i *Installer) removeExisting(dest string) error {
	info, err := i.fs.Lstat(dest)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot inspect '%s'", dest).WithDetail("dest", dest)
	}
	if info.IsDir() {
		return errors.Newf(errors.ErrFileRemove, "destination '%s' is a directory", dest).WithDetail("dest", dest)
	}
	if err := i.fs.Remove(dest); err != nil {
		return errors.Wrapf(err, errors.ErrFileRemove, "failed to remove '%s'", dest).WithDetail("dest", dest)
	}
	return nil
}

func (i *Installer) makeExecutable(target string) error {
	info, err := i.fs.Stat(target)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileChmod, "cannot stat '%s'", target).WithDetail("file", target)
	}
	if err := i.fs.Chmod(target, info.Mode().Perm()|0111); err != nil {
		return errors.Wrapf(err, errors.ErrFileChmod, "failed to make '%s' executable", target).WithDetail("file", target)
	}
	return nil
}
