package project

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/arthur-debert/dunc/pkg/errors"
)

// Manifest is the declarative description of a package's build step.
type Manifest struct {
	Name    string `koanf:"name" toml:"name" yaml:"name"`
	Version string `koanf:"version" toml:"version,omitempty" yaml:"version,omitempty"`
	Build   Build  `koanf:"build" toml:"build" yaml:"build"`
	Install []Rule `koanf:"install" toml:"install" yaml:"install"`

	// Path is the file the manifest was loaded from.
	Path string `koanf:"-" toml:"-" yaml:"-"`
}

// Build lists commands run in the build directory before installing.
// Each command is split on whitespace and run without a shell.
type Build struct {
	Commands []string `koanf:"commands" toml:"commands" yaml:"commands"`
}

// Rule installs the files matching Pattern.
type Rule struct {
	// Pattern is a doublestar glob relative to Root.
	Pattern string `koanf:"pattern" toml:"pattern" yaml:"pattern"`

	// Root is the discovery root, relative to the source path. Empty
	// means the source path itself.
	Root string `koanf:"root" toml:"root,omitempty" yaml:"root,omitempty"`

	// Dest is a sub-directory of the install root to place files under.
	Dest string `koanf:"dest" toml:"dest,omitempty" yaml:"dest,omitempty"`

	// Recursive lets `**` span directories.
	Recursive bool `koanf:"recursive" toml:"recursive" yaml:"recursive"`

	// StripPrefix drops the pattern's leading literal directories from
	// installed paths.
	StripPrefix bool `koanf:"strip_prefix" toml:"strip_prefix,omitempty" yaml:"strip_prefix,omitempty"`

	// Symlink links instead of copying, when the build allows it.
	Symlink bool `koanf:"symlink" toml:"symlink,omitempty" yaml:"symlink,omitempty"`

	// Executable adds execute permission to installed files.
	Executable bool `koanf:"executable" toml:"executable,omitempty" yaml:"executable,omitempty"`
}

// Validate checks every rule and build command.
func (m *Manifest) Validate() error {
	for i, cmd := range m.Build.Commands {
		if len(strings.Fields(cmd)) == 0 {
			return errors.Newf(errors.ErrProjectInvalid, "build command %d is empty", i+1).
				WithDetail("manifest", m.Path)
		}
	}

	for i, rule := range m.Install {
		if err := rule.validate(); err != nil {
			return errors.Wrapf(err, errors.ErrProjectInvalid, "install rule %d is invalid", i+1).
				WithDetail("manifest", m.Path).
				WithDetail("rule", i+1)
		}
	}
	return nil
}

func (r Rule) validate() error {
	if r.Pattern == "" {
		return errors.New(errors.ErrInvalidPattern, "pattern must not be empty")
	}
	if filepath.IsAbs(r.Pattern) || strings.HasPrefix(r.Pattern, "/") {
		return errors.Newf(errors.ErrInvalidPattern, "pattern must be relative: '%s'", r.Pattern)
	}
	if !doublestar.ValidatePattern(filepath.ToSlash(r.Pattern)) {
		return errors.Newf(errors.ErrInvalidPattern, "invalid glob pattern: '%s'", r.Pattern)
	}
	if escapes(r.Root) {
		return errors.Newf(errors.ErrInvalidInput, "root must be relative to the source path: '%s'", r.Root)
	}
	if escapes(r.Dest) {
		return errors.Newf(errors.ErrInvalidInput, "dest must stay under the install root: '%s'", r.Dest)
	}
	return nil
}

// escapes reports whether p is absolute or climbs above its base.
func escapes(p string) bool {
	if p == "" {
		return false
	}
	if filepath.IsAbs(p) || strings.HasPrefix(filepath.ToSlash(p), "/") {
		return true
	}
	clean := filepath.ToSlash(filepath.Clean(p))
	return clean == ".." || strings.HasPrefix(clean, "../")
}
