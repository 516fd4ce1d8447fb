package filesystem

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/afero"
)

// memFS implements FS on top of an arbitrary afero filesystem
type memFS struct {
	afero.Fs

	mu    sync.Mutex
	links map[string]bool
}

// NewMemory creates an in-memory filesystem for tests.
func NewMemory() FS {
	return NewAfero(afero.NewMemMapFs())
}

// NewAfero wraps an afero filesystem. Symlinks are simulated unless the
// underlying filesystem implements afero.Linker: a simulated link is a
// file holding the target path, reported by Lstat with fs.ModeSymlink.
func NewAfero(fsys afero.Fs) FS {
	return &memFS{Fs: fsys, links: make(map[string]bool)}
}

func (m *memFS) Symlink(oldname, newname string) error {
	if linker, ok := m.Fs.(afero.Linker); ok {
		if err := linker.SymlinkIfPossible(oldname, newname); !errors.Is(err, afero.ErrNoSymlink) {
			return err
		}
	}
	if _, err := m.Fs.Stat(newname); err == nil {
		return &fs.PathError{Op: "symlink", Path: newname, Err: fs.ErrExist}
	}
	if err := afero.WriteFile(m.Fs, newname, []byte(oldname), 0777); err != nil {
		return err
	}
	m.mu.Lock()
	m.links[filepath.Clean(newname)] = true
	m.mu.Unlock()
	return nil
}

func (m *memFS) Readlink(name string) (string, error) {
	if reader, ok := m.Fs.(afero.LinkReader); ok {
		target, err := reader.ReadlinkIfPossible(name)
		if !errors.Is(err, afero.ErrNoReadlink) {
			return target, err
		}
	}
	if !m.isLink(name) {
		return "", &fs.PathError{Op: "readlink", Path: name, Err: fs.ErrInvalid}
	}
	content, err := afero.ReadFile(m.Fs, name)
	if err != nil {
		return "", err
	}
	return string(content), nil
}

func (m *memFS) Lstat(name string) (fs.FileInfo, error) {
	if lstater, ok := m.Fs.(afero.Lstater); ok {
		info, lstatCalled, err := lstater.LstatIfPossible(name)
		if err != nil || lstatCalled {
			return info, err
		}
	}
	info, err := m.Fs.Stat(name)
	if err != nil {
		return nil, err
	}
	if m.isLink(name) {
		return linkInfo{info}, nil
	}
	return info, nil
}

// maxLinkDepth bounds link chains, like the kernel's ELOOP limit.
const maxLinkDepth = 40

// resolve follows simulated links until name is not one.
func (m *memFS) resolve(op, name string) (string, error) {
	for i := 0; i < maxLinkDepth; i++ {
		if !m.isLink(name) {
			return name, nil
		}
		target, err := afero.ReadFile(m.Fs, name)
		if err != nil {
			return "", err
		}
		next := string(target)
		if !filepath.IsAbs(next) {
			next = filepath.Join(filepath.Dir(name), next)
		}
		name = next
	}
	return "", &fs.PathError{Op: op, Path: name, Err: errors.New("too many levels of symbolic links")}
}

func (m *memFS) Open(name string) (afero.File, error) {
	resolved, err := m.resolve("open", name)
	if err != nil {
		return nil, err
	}
	return m.Fs.Open(resolved)
}

func (m *memFS) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	resolved, err := m.resolve("open", name)
	if err != nil {
		return nil, err
	}
	return m.Fs.OpenFile(resolved, flag, perm)
}

func (m *memFS) Stat(name string) (fs.FileInfo, error) {
	resolved, err := m.resolve("stat", name)
	if err != nil {
		return nil, err
	}
	return m.Fs.Stat(resolved)
}

func (m *memFS) Remove(name string) error {
	if err := m.Fs.Remove(name); err != nil {
		return err
	}
	m.mu.Lock()
	delete(m.links, filepath.Clean(name))
	m.mu.Unlock()
	return nil
}

func (m *memFS) RemoveAll(path string) error {
	if err := m.Fs.RemoveAll(path); err != nil {
		return err
	}
	prefix := filepath.Clean(path)
	m.mu.Lock()
	for name := range m.links {
		if name == prefix || strings.HasPrefix(name, prefix+string(filepath.Separator)) {
			delete(m.links, name)
		}
	}
	m.mu.Unlock()
	return nil
}

func (m *memFS) isLink(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.links[filepath.Clean(name)]
}

// linkInfo marks a simulated link in Lstat results.
type linkInfo struct {
	fs.FileInfo
}

func (l linkInfo) Mode() fs.FileMode { return l.FileInfo.Mode() | fs.ModeSymlink }
