package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/dunc/pkg/errors"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for dunc
	EnvConfigDir = "DUNC_CONFIG_DIR"

	// EnvStateDir overrides the XDG state directory for dunc
	EnvStateDir = "DUNC_STATE_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Default directories and files
const (
	// DuncDirName is the directory name for dunc-specific files
	DuncDirName = "dunc"

	// ConfigFileName is the name of the user configuration file
	ConfigFileName = "config.toml"

	// LogFileName is the name of the log file
	LogFileName = "dunc.log"
)

// Paths provides the locations dunc reads from and writes to outside of
// the build tree.
type Paths interface {
	ConfigDir() string
	StateDir() string
	ConfigFilePath() string
	LogFilePath() string
}

type paths struct {
	configDir string
	stateDir  string
}

// New creates a Paths instance from the current environment. XDG variables
// are re-read on every call so tests can point them at temporary dirs.
func New() (Paths, error) {
	xdg.Reload()

	p := &paths{}

	if dir := os.Getenv(EnvConfigDir); dir != "" {
		p.configDir = ExpandHome(dir)
	} else {
		p.configDir = filepath.Join(xdg.ConfigHome, DuncDirName)
	}

	if dir := os.Getenv(EnvStateDir); dir != "" {
		p.stateDir = ExpandHome(dir)
	} else {
		p.stateDir = filepath.Join(xdg.StateHome, DuncDirName)
	}

	for _, dir := range []*string{&p.configDir, &p.stateDir} {
		abs, err := filepath.Abs(*dir)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for %s", *dir)
		}
		*dir = abs
	}

	return p, nil
}

func (p *paths) ConfigDir() string { return p.configDir }

func (p *paths) StateDir() string { return p.stateDir }

func (p *paths) ConfigFilePath() string {
	return filepath.Join(p.configDir, ConfigFileName)
}

func (p *paths) LogFilePath() string {
	return filepath.Join(p.stateDir, LogFileName)
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}

	if strings.HasPrefix(path, "~/") || strings.HasPrefix(path, "~"+string(filepath.Separator)) {
		return filepath.Join(homeDir, path[2:])
	}

	// ~user forms are left alone
	return path
}

// Resolve returns path unchanged when it is absolute, otherwise joined onto
// base. An empty path resolves to base.
func Resolve(base, path string) string {
	path = ExpandHome(path)
	if path == "" {
		return filepath.Clean(base)
	}
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(base, path)
}

// IsWithin reports whether path is base itself or lies below it. Both
// arguments are cleaned lexically; symlinks are not resolved.
func IsWithin(base, path string) bool {
	rel, err := filepath.Rel(filepath.Clean(base), filepath.Clean(path))
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
