package testutil

import "testing"

// BuildEnvVars are the variables a package build tool exports, all of which
// SetBuildEnv clears before applying overrides.
var BuildEnvVars = []string{
	"REZ_BUILD_ENV",
	"REZ_BUILD_INSTALL",
	"REZ_BUILD_PATH",
	"REZ_BUILD_INSTALL_PATH",
	"REZ_BUILD_SOURCE_PATH",
	"REZ_BUILD_PROJECT_FILE",
	"REZ_BUILD_PROJECT_NAME",
	"REZ_BUILD_PROJECT_VERSION",
	"REZ_BUILD_TYPE",
	"DUNC_CLOBBER",
}

// ClearBuildEnv unsets every build variable for the duration of the test.
func ClearBuildEnv(t *testing.T) {
	t.Helper()
	for _, name := range BuildEnvVars {
		t.Setenv(name, "")
	}
}

// SetBuildEnv clears the build variables and then sets vars.
func SetBuildEnv(t *testing.T, vars map[string]string) {
	t.Helper()
	ClearBuildEnv(t)
	for name, value := range vars {
		t.Setenv(name, value)
	}
}

// LocalBuildEnv returns the variables of a local install build for env.
func LocalBuildEnv(env *TestEnvironment, projectFile string) map[string]string {
	return map[string]string{
		"REZ_BUILD_ENV":             "1",
		"REZ_BUILD_INSTALL":         "1",
		"REZ_BUILD_PATH":            env.BuildPath,
		"REZ_BUILD_INSTALL_PATH":    env.InstallRoot,
		"REZ_BUILD_SOURCE_PATH":     env.SourceRoot,
		"REZ_BUILD_PROJECT_FILE":    projectFile,
		"REZ_BUILD_PROJECT_NAME":    "dunc",
		"REZ_BUILD_PROJECT_VERSION": "1.0.3",
		"REZ_BUILD_TYPE":            "local",
	}
}
