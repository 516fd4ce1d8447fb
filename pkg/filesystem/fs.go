package filesystem

import (
	"io/fs"

	"github.com/spf13/afero"
)

// FS is the filesystem the finder and installer operate on.
type FS interface {
	afero.Fs

	// Symlink operations
	Symlink(oldname, newname string) error
	Readlink(name string) (string, error)

	// Lstat does not follow symlinks. Implementations without symlink
	// support may fall back to Stat.
	Lstat(name string) (fs.FileInfo, error)
}

// IsSymlink reports whether name is a symbolic link on fsys. A missing file
// is not a symlink.
func IsSymlink(fsys FS, name string) (bool, error) {
	info, err := fsys.Lstat(name)
	if err != nil {
		return false, err
	}
	return info.Mode()&fs.ModeSymlink != 0, nil
}
