// Package project loads the dunc manifest of a package.
//
// A manifest declares what the build step does: commands to run in the
// build directory and install rules that copy or link source files into
// the install root. It lives next to the package definition:
//
//	name = "dunc"
//	version = "1.0.3"
//
//	[build]
//	commands = ["make docs"]
//
//	[[install]]
//	pattern = "src/**/*.py"
//
//	[[install]]
//	pattern = "bin/*"
//	executable = true
//
// TOML (dunc.toml) and YAML (dunc.yaml, dunc.yml) are both accepted and
// decode into the same Manifest.
package project
