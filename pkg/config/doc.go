// Package config handles configuration management for dunc.
//
// Configuration is layered with koanf, later layers overriding earlier ones:
//
//  1. embedded defaults (embedded/defaults.toml)
//  2. the user file, $XDG_CONFIG_HOME/dunc/config.toml or --config
//  3. DUNC_* environment variables, where the first underscore after the
//     prefix separates section and key: DUNC_INSTALL_DIR_PERM sets
//     install.dir_perm
//
// The build environment a package tool exports (REZ_BUILD_*) is not
// configuration; see package buildenv.
package config
