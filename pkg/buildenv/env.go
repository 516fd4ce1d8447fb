package buildenv

import "github.com/arthur-debert/dunc/pkg/errors"

// IsLocal reports whether the package is being built for local use.
func (e Env) IsLocal() bool { return e.BuildType == BuildLocal }

// IsRelease reports whether the package is being released centrally.
func (e Env) IsRelease() bool { return e.BuildType == BuildCentral }

// AllowsSymlinks reports whether a symlink install request can be honoured
// on goos. Windows always gets copies. With localOnly set, only local
// builds may symlink; released packages must not point back into a source
// checkout.
func (e Env) AllowsSymlinks(goos string, localOnly bool) bool {
	if goos == "windows" {
		return false
	}
	if localOnly {
		return e.IsLocal()
	}
	return true
}

// RequireActive fails unless the process runs inside a build.
func (e Env) RequireActive() error {
	if !e.Active {
		return errors.Newf(errors.ErrNotBuildEnv,
			"%s is not set, are you running this in a build environment?", VarBuildEnv)
	}
	return nil
}

// RequireSourcePath returns the source path or an ENV_MISSING error.
func (e Env) RequireSourcePath() (string, error) {
	return require(VarSourcePath, e.SourcePath)
}

// RequireInstallPath returns the install path or an ENV_MISSING error.
func (e Env) RequireInstallPath() (string, error) {
	return require(VarInstallPath, e.InstallPath)
}

// RequireBuildPath returns the build path or an ENV_MISSING error.
func (e Env) RequireBuildPath() (string, error) {
	return require(VarBuildPath, e.BuildPath)
}

// RequireProjectFile returns the project file or an ENV_MISSING error.
func (e Env) RequireProjectFile() (string, error) {
	return require(VarProjectFile, e.ProjectFile)
}

func require(name, value string) (string, error) {
	if value == "" {
		return "", errors.Newf(errors.ErrEnvMissing, "environment variable %s is not set", name).
			WithDetail("variable", name)
	}
	return value, nil
}

// Var is one named build variable and its value.
type Var struct {
	Name  string
	Value string
}

// Vars lists the snapshot in a stable order, for display.
func (e Env) Vars() []Var {
	flag := func(b bool) string {
		if b {
			return "1"
		}
		return ""
	}
	return []Var{
		{VarBuildEnv, flag(e.Active)},
		{VarInstall, flag(e.Install)},
		{VarBuildPath, e.BuildPath},
		{VarInstallPath, e.InstallPath},
		{VarSourcePath, e.SourcePath},
		{VarProjectFile, e.ProjectFile},
		{VarProjectName, e.ProjectName},
		{VarProjectVersion, e.ProjectVersion},
		{VarBuildType, string(e.BuildType)},
		{VarClobber, flag(e.Clobber)},
	}
}
