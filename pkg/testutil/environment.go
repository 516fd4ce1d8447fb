// pkg/testutil/environment.go
// DEPENDENCIES: filesystem
// PURPOSE: Orchestrate test environments with proper dependencies

package testutil

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dunc/pkg/filesystem"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// EnvType defines the type of test environment
type EnvType int

const (
	EnvMemoryOnly EnvType = iota // Pure in-memory, no real filesystem
	EnvIsolated                  // Real filesystem in temp directory
)

// TestEnvironment provides the directories a build step works with.
type TestEnvironment struct {
	SourceRoot  string
	InstallRoot string
	BuildPath   string

	FS   filesystem.FS
	Type EnvType

	t *testing.T
}

// NewTestEnvironment creates a new test environment
func NewTestEnvironment(t *testing.T, envType EnvType) *TestEnvironment {
	t.Helper()

	env := &TestEnvironment{t: t, Type: envType}

	var base string
	switch envType {
	case EnvMemoryOnly:
		env.FS = filesystem.NewMemory()
		base = "/work"
	default:
		env.FS = filesystem.NewOS()
		base = t.TempDir()
	}

	env.SourceRoot = filepath.Join(base, "source")
	env.InstallRoot = filepath.Join(base, "install")
	env.BuildPath = filepath.Join(base, "build")

	require.NoError(t, env.FS.MkdirAll(env.SourceRoot, 0755))
	require.NoError(t, env.FS.MkdirAll(env.BuildPath, 0755))

	return env
}

// WriteSources writes files (relative path -> content) under SourceRoot.
func (e *TestEnvironment) WriteSources(files map[string]string) {
	e.t.Helper()
	WriteTree(e.t, e.FS, e.SourceRoot, files)
}

// Source returns the absolute path of rel under SourceRoot.
func (e *TestEnvironment) Source(rel string) string {
	return filepath.Join(e.SourceRoot, filepath.FromSlash(rel))
}

// Installed returns the absolute path of rel under InstallRoot.
func (e *TestEnvironment) Installed(rel string) string {
	return filepath.Join(e.InstallRoot, filepath.FromSlash(rel))
}

// ReadInstalled returns the content of rel under InstallRoot.
func (e *TestEnvironment) ReadInstalled(rel string) string {
	e.t.Helper()
	data, err := afero.ReadFile(e.FS, e.Installed(rel))
	require.NoError(e.t, err)
	return string(data)
}
