// Package runner implements the build step a package build tool invokes.
//
// Execute checks that it runs inside a build, loads the package's
// manifest, optionally clears the build directory, runs the manifest's
// build commands and, for install builds, installs every rule's files.
package runner

import (
	"context"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/arthur-debert/dunc/pkg/buildenv"
	"github.com/arthur-debert/dunc/pkg/config"
	"github.com/arthur-debert/dunc/pkg/errors"
	"github.com/arthur-debert/dunc/pkg/filesystem"
	"github.com/arthur-debert/dunc/pkg/finder"
	"github.com/arthur-debert/dunc/pkg/installer"
	"github.com/arthur-debert/dunc/pkg/logging"
	"github.com/arthur-debert/dunc/pkg/paths"
	"github.com/arthur-debert/dunc/pkg/project"
)

// Options holds everything Execute needs. Env is read once by the caller.
type Options struct {
	Env      buildenv.Env
	Config   *config.Config
	FS       filesystem.FS
	Commands CommandRunner
	Reporter installer.Reporter
	DryRun   bool

	// GOOS decides whether symlinks are allowed. Defaults to runtime.GOOS.
	GOOS string
}

// Result summarizes a build step.
type Result struct {
	Manifest  *project.Manifest
	Commands  []string
	Installed []installer.Installed
	Clobbered bool
}

// Execute runs the build step described by opts.
func Execute(ctx context.Context, opts Options) (*Result, error) {
	logger := logging.GetLogger("runner")
	done := logging.LogOperationStart(logger, "build")
	defer done()

	opts = withDefaults(opts)
	env := opts.Env

	if err := env.RequireActive(); err != nil {
		return nil, err
	}

	sourcePath := env.SourcePath
	if sourcePath == "" && env.ProjectFile == "" {
		if _, err := env.RequireSourcePath(); err != nil {
			return nil, err
		}
	}
	if sourcePath == "" {
		sourcePath = filepath.Dir(env.ProjectFile)
	}

	manifestPath, err := project.Locate(env.ProjectFile, sourcePath, opts.Config.Project.ManifestNames)
	if err != nil {
		return nil, err
	}
	manifest, err := project.Load(manifestPath)
	if err != nil {
		return nil, err
	}
	if err := manifest.Check(env.ProjectName, env.ProjectVersion); err != nil {
		return nil, err
	}
	logger.Info().
		Str("manifest", manifestPath).
		Str("name", manifest.Name).
		Str("version", manifest.Version).
		Msg("Loaded manifest")

	result := &Result{Manifest: manifest}

	if env.Clobber {
		if err := clobber(opts, sourcePath); err != nil {
			return result, err
		}
		result.Clobbered = !opts.DryRun
	}

	if len(manifest.Build.Commands) > 0 {
		buildPath, err := env.RequireBuildPath()
		if err != nil {
			return result, err
		}
		for _, command := range manifest.Build.Commands {
			if err := runCommand(ctx, opts, buildPath, command); err != nil {
				return result, err
			}
			result.Commands = append(result.Commands, command)
		}
	}

	if !env.Install {
		logger.Info().Msg("Not an install build, skipping install rules")
		return result, nil
	}

	installRoot, err := env.RequireInstallPath()
	if err != nil {
		return result, err
	}

	f := finder.New(opts.FS)
	inst := installer.New(opts.FS)
	symlinks := env.AllowsSymlinks(opts.GOOS, opts.Config.Install.SymlinkLocalOnly)

	for i, rule := range manifest.Install {
		mode := installer.ModeCopy
		if rule.Symlink {
			if symlinks {
				mode = installer.ModeSymlink
			} else {
				logger.Info().Str("pattern", rule.Pattern).Msg("Symlinks not allowed for this build, copying instead")
			}
		}

		pattern := finder.Pattern{
			Glob:        rule.Pattern,
			Root:        paths.Resolve(sourcePath, rule.Root),
			Recursive:   rule.Recursive,
			StripPrefix: rule.StripPrefix,
		}
		placed, err := inst.Install(f.Find(pattern), installer.Options{
			InstallRoot: installRoot,
			Dest:        rule.Dest,
			Mode:        mode,
			Executable:  rule.Executable,
			DryRun:      opts.DryRun,
			DirPerm:     opts.Config.Install.DirPerm,
			Reporter:    opts.Reporter,
		})
		result.Installed = append(result.Installed, placed...)
		if err != nil {
			if de, ok := err.(*errors.DuncError); ok {
				de.WithDetail("rule", i+1).WithDetail("pattern", rule.Pattern)
			}
			return result, err
		}
		if len(placed) == 0 {
			logger.Warn().Str("pattern", rule.Pattern).Str("root", pattern.Root).Msg("Install rule matched no files")
		}
	}

	return result, nil
}

func withDefaults(opts Options) Options {
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	if opts.FS == nil {
		opts.FS = filesystem.NewOS()
	}
	if opts.Commands == nil {
		opts.Commands = NewExecRunner()
	}
	if opts.GOOS == "" {
		opts.GOOS = runtime.GOOS
	}
	return opts
}

// clobber empties the build directory. It refuses to touch a build path
// that contains the sources.
func clobber(opts Options, sourcePath string) error {
	logger := logging.GetLogger("runner")

	buildPath, err := opts.Env.RequireBuildPath()
	if err != nil {
		return err
	}
	if paths.IsWithin(buildPath, sourcePath) {
		return errors.Newf(errors.ErrClobber, "refusing to clobber '%s': it contains the source path", buildPath).
			WithDetail("build_path", buildPath)
	}
	if opts.DryRun {
		logger.Info().Str("build_path", buildPath).Msg("Dry run, not clobbering")
		return nil
	}

	logger.Info().Str("build_path", buildPath).Msg("Clobbering build directory")
	if err := opts.FS.RemoveAll(buildPath); err != nil {
		return errors.Wrapf(err, errors.ErrClobber, "failed to remove '%s'", buildPath).
			WithDetail("build_path", buildPath)
	}
	if err := opts.FS.MkdirAll(buildPath, opts.Config.Install.DirPerm); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to recreate '%s'", buildPath).
			WithDetail("build_path", buildPath)
	}
	return nil
}

func runCommand(ctx context.Context, opts Options, dir, command string) error {
	logger := logging.GetLogger("runner")

	argv := strings.Fields(command)
	if len(argv) == 0 {
		return errors.New(errors.ErrBuildCommand, "empty build command")
	}
	if opts.DryRun {
		logger.Info().Str("command", command).Msg("Dry run, not running build command")
		return nil
	}

	logger.Info().Str("command", command).Str("dir", dir).Msg("Running build command")
	if err := opts.Commands.Run(ctx, dir, argv[0], argv[1:]...); err != nil {
		return errors.Wrapf(err, errors.ErrBuildCommand, "build command failed: %s", command).
			WithDetail("command", command).
			WithDetail("dir", dir)
	}
	return nil
}
