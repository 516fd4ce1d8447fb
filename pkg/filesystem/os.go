package filesystem

import (
	"io/fs"
	"os"

	"github.com/spf13/afero"
)

// osFS implements FS using the OS filesystem
type osFS struct {
	afero.Fs
}

// NewOS creates a new OS filesystem implementation
func NewOS() FS {
	return &osFS{Fs: afero.NewOsFs()}
}

func (o *osFS) Symlink(oldname, newname string) error {
	return os.Symlink(oldname, newname)
}

func (o *osFS) Readlink(name string) (string, error) {
	return os.Readlink(name)
}

func (o *osFS) Lstat(name string) (fs.FileInfo, error) {
	return os.Lstat(name)
}
