// Package filesystem provides filesystem implementations for dunc.
//
// FS extends afero.Fs with the symlink operations the installer needs.
// NewOS is backed by the real operating system; NewMemory is an in-memory
// filesystem for tests, where symlinks are simulated.
package filesystem
