package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dunc/pkg/buildenv"
	"github.com/arthur-debert/dunc/pkg/config"
	"github.com/arthur-debert/dunc/pkg/errors"
	"github.com/arthur-debert/dunc/pkg/installer"
	"github.com/arthur-debert/dunc/pkg/runner"
	"github.com/arthur-debert/dunc/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const manifest = `
name = "dunc"
version = "1.0.3"

[build]
commands = ["make all", "touch built"]

[[install]]
pattern = "src/**/*.py"
strip_prefix = true
dest = "python"
symlink = true

[[install]]
pattern = "bin/*"
executable = true
`

type mockCommands struct {
	mock.Mock
}

func (m *mockCommands) Run(ctx context.Context, dir, name string, args ...string) error {
	ret := m.Called(dir, name, args)
	return ret.Error(0)
}

type fixture struct {
	env      *testutil.TestEnvironment
	vars     map[string]string
	commands *mockCommands
}

func newFixture(t *testing.T, manifestContent string) *fixture {
	t.Helper()
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	env.WriteSources(map[string]string{
		"package.py":   "name = 'dunc'\n",
		"src/a.py":     "a = 1\n",
		"src/pkg/b.py": "b = 2\n",
		"bin/dunc":     "#!/bin/sh\n",
	})
	if manifestContent != "" {
		env.WriteSources(map[string]string{"dunc.toml": manifestContent})
	}
	return &fixture{
		env:      env,
		vars:     testutil.LocalBuildEnv(env, env.Source("package.py")),
		commands: &mockCommands{},
	}
}

func (f *fixture) options(t *testing.T) runner.Options {
	t.Helper()
	buildEnv, err := buildenv.FromMap(f.vars)
	require.NoError(t, err)
	return runner.Options{
		Env:      buildEnv,
		Config:   config.Default(),
		FS:       f.env.FS,
		Commands: f.commands,
		GOOS:     "linux",
	}
}

func (f *fixture) expectBuild() {
	f.commands.On("Run", f.env.BuildPath, "make", []string{"all"}).Return(nil).Once()
	f.commands.On("Run", f.env.BuildPath, "touch", []string{"built"}).Return(nil).Once()
}

func TestExecute_LocalInstallBuild(t *testing.T) {
	f := newFixture(t, manifest)
	f.expectBuild()

	result, err := runner.Execute(context.Background(), f.options(t))
	require.NoError(t, err)
	f.commands.AssertExpectations(t)

	assert.Equal(t, "dunc", result.Manifest.Name)
	assert.Equal(t, []string{"make all", "touch built"}, result.Commands)
	assert.Len(t, result.Installed, 3)
	assert.False(t, result.Clobbered)

	for rel, src := range map[string]string{"python/a.py": "src/a.py", "python/pkg/b.py": "src/pkg/b.py"} {
		target, err := os.Readlink(f.env.Installed(rel))
		require.NoError(t, err, rel)
		assert.Equal(t, f.env.Source(src), target)
	}

	info, err := os.Lstat(f.env.Installed("bin/dunc"))
	require.NoError(t, err)
	assert.True(t, info.Mode().IsRegular())
	assert.NotZero(t, info.Mode().Perm()&0111)
}

func TestExecute_SymlinksDegradeToCopies(t *testing.T) {
	tests := []struct {
		name   string
		goos   string
		change map[string]string
	}{
		{name: "windows", goos: "windows"},
		{name: "central_build", goos: "linux", change: map[string]string{"REZ_BUILD_TYPE": "central"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, manifest)
			f.expectBuild()
			for k, v := range tt.change {
				f.vars[k] = v
			}

			opts := f.options(t)
			opts.GOOS = tt.goos
			result, err := runner.Execute(context.Background(), opts)
			require.NoError(t, err)

			for _, item := range result.Installed {
				assert.Equal(t, installer.ModeCopy, item.Mode)
			}
			info, err := os.Lstat(f.env.Installed("python/a.py"))
			require.NoError(t, err)
			assert.True(t, info.Mode().IsRegular())
		})
	}
}

func TestExecute_BuildOnly(t *testing.T) {
	f := newFixture(t, manifest)
	f.expectBuild()
	f.vars["REZ_BUILD_INSTALL"] = "0"

	result, err := runner.Execute(context.Background(), f.options(t))
	require.NoError(t, err)
	f.commands.AssertExpectations(t)
	assert.Empty(t, result.Installed)

	_, err = os.Stat(f.env.InstallRoot)
	assert.True(t, os.IsNotExist(err))
}

func TestExecute_DryRun(t *testing.T) {
	f := newFixture(t, manifest)

	opts := f.options(t)
	opts.DryRun = true
	result, err := runner.Execute(context.Background(), opts)
	require.NoError(t, err)

	f.commands.AssertNotCalled(t, "Run", mock.Anything, mock.Anything, mock.Anything)
	assert.Len(t, result.Installed, 3)

	_, err = os.Stat(f.env.InstallRoot)
	assert.True(t, os.IsNotExist(err))
}

func TestExecute_Clobber(t *testing.T) {
	f := newFixture(t, manifest)
	f.expectBuild()
	f.vars["DUNC_CLOBBER"] = "1"

	stale := filepath.Join(f.env.BuildPath, "stale.o")
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0644))

	result, err := runner.Execute(context.Background(), f.options(t))
	require.NoError(t, err)
	assert.True(t, result.Clobbered)

	_, err = os.Stat(stale)
	assert.True(t, os.IsNotExist(err))
	info, err := os.Stat(f.env.BuildPath)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestExecute_ClobberRefusesSourceTree(t *testing.T) {
	f := newFixture(t, manifest)
	f.vars["DUNC_CLOBBER"] = "1"
	f.vars["REZ_BUILD_PATH"] = filepath.Dir(f.env.SourceRoot)

	_, err := runner.Execute(context.Background(), f.options(t))
	assert.True(t, errors.IsErrorCode(err, errors.ErrClobber))

	_, err = os.Stat(f.env.Source("package.py"))
	assert.NoError(t, err)
}

func TestExecute_Errors(t *testing.T) {
	t.Run("outside_build", func(t *testing.T) {
		f := newFixture(t, manifest)
		delete(f.vars, "REZ_BUILD_ENV")

		_, err := runner.Execute(context.Background(), f.options(t))
		assert.True(t, errors.IsErrorCode(err, errors.ErrNotBuildEnv))
	})

	t.Run("no_manifest", func(t *testing.T) {
		f := newFixture(t, "")

		_, err := runner.Execute(context.Background(), f.options(t))
		assert.True(t, errors.IsErrorCode(err, errors.ErrProjectNotFound))
	})

	t.Run("no_source_or_project_file", func(t *testing.T) {
		f := newFixture(t, manifest)
		delete(f.vars, "REZ_BUILD_SOURCE_PATH")
		delete(f.vars, "REZ_BUILD_PROJECT_FILE")

		_, err := runner.Execute(context.Background(), f.options(t))
		assert.True(t, errors.IsErrorCode(err, errors.ErrEnvMissing))
	})

	t.Run("version_mismatch", func(t *testing.T) {
		f := newFixture(t, manifest)
		f.vars["REZ_BUILD_PROJECT_VERSION"] = "2.0.0"

		_, err := runner.Execute(context.Background(), f.options(t))
		assert.True(t, errors.IsErrorCode(err, errors.ErrProjectVersion))
	})

	t.Run("command_fails", func(t *testing.T) {
		f := newFixture(t, manifest)
		f.commands.On("Run", f.env.BuildPath, "make", []string{"all"}).Return(assert.AnError).Once()

		result, err := runner.Execute(context.Background(), f.options(t))
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrBuildCommand))
		assert.ErrorIs(t, err, assert.AnError)
		assert.Empty(t, result.Commands)
		f.commands.AssertNumberOfCalls(t, "Run", 1)

		_, statErr := os.Stat(f.env.InstallRoot)
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("rule_root_missing", func(t *testing.T) {
		f := newFixture(t, `
[[install]]
pattern = "*.py"
root = "python"
`)

		_, err := runner.Execute(context.Background(), f.options(t))
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrRootNotFound))
		assert.Equal(t, 1, errors.GetErrorDetails(err)["rule"])
	})

	t.Run("missing_install_path", func(t *testing.T) {
		f := newFixture(t, `
[[install]]
pattern = "*.py"
`)
		delete(f.vars, "REZ_BUILD_INSTALL_PATH")

		_, err := runner.Execute(context.Background(), f.options(t))
		assert.True(t, errors.IsErrorCode(err, errors.ErrEnvMissing))
	})
}

func TestExecRunner(t *testing.T) {
	dir := t.TempDir()
	r := &runner.ExecRunner{}

	require.NoError(t, r.Run(context.Background(), dir, "touch", "marker"))
	_, err := os.Stat(filepath.Join(dir, "marker"))
	assert.NoError(t, err)

	assert.Error(t, r.Run(context.Background(), dir, "false"))
	assert.Error(t, r.Run(context.Background(), dir, "dunc-no-such-command"))
}
