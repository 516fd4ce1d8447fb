package paths_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dunc/pkg/paths"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_XDGLocations(t *testing.T) {
	configHome := t.TempDir()
	stateHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	t.Setenv("XDG_STATE_HOME", stateHome)
	t.Setenv(paths.EnvConfigDir, "")
	t.Setenv(paths.EnvStateDir, "")

	p, err := paths.New()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(configHome, "dunc"), p.ConfigDir())
	assert.Equal(t, filepath.Join(stateHome, "dunc"), p.StateDir())
	assert.Equal(t, filepath.Join(configHome, "dunc", "config.toml"), p.ConfigFilePath())
	assert.Equal(t, filepath.Join(stateHome, "dunc", "dunc.log"), p.LogFilePath())
}

func TestNew_EnvOverrides(t *testing.T) {
	configDir := t.TempDir()
	stateDir := t.TempDir()
	t.Setenv(paths.EnvConfigDir, configDir)
	t.Setenv(paths.EnvStateDir, stateDir)

	p, err := paths.New()
	require.NoError(t, err)

	assert.Equal(t, configDir, p.ConfigDir())
	assert.Equal(t, filepath.Join(stateDir, "dunc.log"), p.LogFilePath())
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"tilde_only", "~", home},
		{"tilde_slash", "~/build", filepath.Join(home, "build")},
		{"other_user_untouched", "~bob/build", "~bob/build"},
		{"absolute_untouched", "/opt/rez", "/opt/rez"},
		{"relative_untouched", "src", "src"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, paths.ExpandHome(tt.in))
		})
	}
}

func TestResolve(t *testing.T) {
	assert.Equal(t, "/src", paths.Resolve("/src", ""))
	assert.Equal(t, "/src/python", paths.Resolve("/src", "python"))
	assert.Equal(t, "/other", paths.Resolve("/src", "/other"))
	assert.Equal(t, "/src", paths.Resolve("/src/", "."))
}

func TestIsWithin(t *testing.T) {
	tests := []struct {
		base, path string
		want       bool
	}{
		{"/install", "/install", true},
		{"/install", "/install/python/a.py", true},
		{"/install", "/install/../etc/passwd", false},
		{"/install", "/installer/a.py", false},
		{"/install", "/install/..hidden", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, paths.IsWithin(tt.base, tt.path))
		})
	}
}
