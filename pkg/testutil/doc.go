// Package testutil provides shared test helpers for dunc packages.
//
// TestEnvironment lays out a source tree, an install root and a build
// directory either in memory (afero MemMapFs) or in a temporary directory
// on the real filesystem. In memory, symlinks are simulated by the
// filesystem package; anything that follows a link needs the isolated
// variant.
package testutil
