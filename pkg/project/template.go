package project

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/dunc/pkg/errors"
)

// DefaultManifestName is the file `dunc init` writes.
const DefaultManifestName = "dunc.toml"

// Starter returns the manifest `dunc init` writes for a package.
func Starter(name string) *Manifest {
	return &Manifest{
		Name:    name,
		Version: "0.1.0",
		Build:   Build{Commands: []string{}},
		Install: []Rule{
			{Pattern: "src/**/*.py", Recursive: true, Symlink: true},
			{Pattern: "bin/*", Recursive: false, Executable: true},
		},
	}
}

// Render encodes m as TOML.
func Render(m *Manifest) ([]byte, error) {
	data, err := toml.Marshal(m)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode manifest")
	}
	return data, nil
}

// WriteStarter writes a starter manifest into dir and returns its path.
// An existing manifest is only replaced when force is set.
func WriteStarter(dir, name string, force bool) (string, error) {
	path := filepath.Join(dir, DefaultManifestName)
	if _, err := os.Stat(path); err == nil && !force {
		return "", errors.Newf(errors.ErrProjectExists, "manifest '%s' already exists", path).
			WithDetail("path", path)
	}

	data, err := Render(Starter(name))
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errors.Wrapf(err, errors.ErrDirCreate, "failed to create '%s'", dir)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to write '%s'", path)
	}
	return path, nil
}
