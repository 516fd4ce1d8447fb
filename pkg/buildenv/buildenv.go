// Package buildenv reads the build environment a package tool exports
// while it runs a package's build step.
//
// The environment is read once, at the call site, into an Env value that
// is then passed down explicitly; nothing else in dunc looks at REZ_BUILD_*
// variables.
package buildenv

import (
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/dunc/pkg/errors"
)

// Environment variable names
const (
	EnvPrefix = "REZ_BUILD_"

	VarBuildEnv       = "REZ_BUILD_ENV"
	VarInstall        = "REZ_BUILD_INSTALL"
	VarBuildPath      = "REZ_BUILD_PATH"
	VarInstallPath    = "REZ_BUILD_INSTALL_PATH"
	VarSourcePath     = "REZ_BUILD_SOURCE_PATH"
	VarProjectFile    = "REZ_BUILD_PROJECT_FILE"
	VarProjectName    = "REZ_BUILD_PROJECT_NAME"
	VarProjectVersion = "REZ_BUILD_PROJECT_VERSION"
	VarBuildType      = "REZ_BUILD_TYPE"

	// VarClobber asks for the build directory to be emptied before building.
	VarClobber = "DUNC_CLOBBER"
)

// BuildType is the kind of build the package tool is running.
type BuildType string

const (
	BuildLocal   BuildType = "local"
	BuildCentral BuildType = "central"
)

// Env is a snapshot of the build environment.
type Env struct {
	Active         bool
	Install        bool
	BuildPath      string
	InstallPath    string
	SourcePath     string
	ProjectFile    string
	ProjectName    string
	ProjectVersion string
	BuildType      BuildType
	Clobber        bool
}

// raw mirrors the variables one to one before interpretation.
type raw struct {
	Env            string `koanf:"env"`
	Install        string `koanf:"install"`
	Path           string `koanf:"path"`
	InstallPath    string `koanf:"install_path"`
	SourcePath     string `koanf:"source_path"`
	ProjectFile    string `koanf:"project_file"`
	ProjectName    string `koanf:"project_name"`
	ProjectVersion string `koanf:"project_version"`
	Type           string `koanf:"type"`
	Clobber        string `koanf:"dunc_clobber"`
}

// Load reads the build environment from the process environment.
func Load() (Env, error) {
	k := koanf.New(".")

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return Env{}, errors.Wrap(err, errors.ErrConfigLoad, "failed to read build environment")
	}

	if err := k.Load(env.Provider(VarClobber, ".", strings.ToLower), nil); err != nil {
		return Env{}, errors.Wrap(err, errors.ErrConfigLoad, "failed to read build environment")
	}

	return decode(k)
}

// FromMap builds an Env from explicit variables, keyed by their full
// environment names.
func FromMap(vars map[string]string) (Env, error) {
	flat := make(map[string]interface{}, len(vars))
	for name, value := range vars {
		switch {
		case name == VarClobber:
			flat[strings.ToLower(name)] = value
		case strings.HasPrefix(name, EnvPrefix):
			flat[strings.ToLower(strings.TrimPrefix(name, EnvPrefix))] = value
		}
	}

	k := koanf.New(".")
	if err := k.Load(confmap.Provider(flat, "."), nil); err != nil {
		return Env{}, errors.Wrap(err, errors.ErrConfigLoad, "failed to read build environment")
	}
	return decode(k)
}

func decode(k *koanf.Koanf) (Env, error) {
	var r raw
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &r,
			WeaklyTypedInput: true,
		},
	}
	if err := k.UnmarshalWithConf("", &r, unmarshalConf); err != nil {
		return Env{}, errors.Wrap(err, errors.ErrConfigParse, "failed to decode build environment")
	}

	e := Env{
		Active:         r.Env != "",
		Install:        r.Install == "1",
		BuildPath:      r.Path,
		InstallPath:    r.InstallPath,
		SourcePath:     r.SourcePath,
		ProjectFile:    r.ProjectFile,
		ProjectName:    r.ProjectName,
		ProjectVersion: r.ProjectVersion,
		BuildType:      BuildType(r.Type),
		Clobber:        r.Clobber == "1",
	}

	switch e.BuildType {
	case "", BuildLocal, BuildCentral:
	default:
		return Env{}, errors.Newf(errors.ErrInvalidInput, "unknown build type %q in %s", r.Type, VarBuildType).
			WithDetail("variable", VarBuildType)
	}

	return e, nil
}
