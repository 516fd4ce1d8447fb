// Package paths provides centralized path handling for dunc.
//
// dunc itself keeps very little on disk: a user configuration file under the
// XDG config home and a log file under the XDG state home. Both locations
// follow the XDG Base Directory layout (through github.com/adrg/xdg)
// and can be overridden with DUNC_CONFIG_DIR and DUNC_STATE_DIR.
//
// The package also holds the small path helpers shared by the finder,
// installer and runner: home expansion and resolving a possibly relative
// path against a base directory.
package paths
