package commands

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Build step helper: run build commands and install files"
	MsgBuildShort      = "Run the build step (default command)"
	MsgFindShort       = "List the files a pattern matches"
	MsgFindLong        = "Find prints the files under --root matching PATTERN, one per line, relative to the root."
	MsgInstallShort    = "Copy or symlink matching files into a destination"
	MsgEnvShort        = "Show the build environment"
	MsgEnvLong         = "Env prints the build variables dunc reads. Unset variables are marked."
	MsgInitShort       = "Write a starter dunc.toml"
	MsgInitLong        = "Init writes a starter dunc.toml into DIR (default: the current directory)."
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Flag descriptions
	MsgFlagVerbose     = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun      = "Report what would be done without changing anything"
	MsgFlagConfig      = "Config file (default $XDG_CONFIG_HOME/dunc/config.toml)"
	MsgFlagRoot        = "Directory patterns are relative to (default $REZ_BUILD_SOURCE_PATH in a build, else .)"
	MsgFlagNoRecursive = "Make ** match a single directory level"
	MsgFlagStripPrefix = "Drop the pattern's leading literal directories"
	MsgFlagDest        = "Destination root (default $REZ_BUILD_INSTALL_PATH)"
	MsgFlagSymlink     = "Symlink instead of copying, when allowed"
	MsgFlagExecutable  = "Make installed files executable"
	MsgFlagForce       = "Overwrite an existing manifest"
	MsgFlagName        = "Package name (default: the directory name)"

	// Status messages
	MsgBuildStart      = "Executing build step for %s"
	MsgBuildCommands   = "Ran %d build command(s)"
	MsgInstallSummary  = "Installed %d file(s)"
	MsgDryRunNotice    = "DRY RUN MODE - No changes were made"
	MsgNoMatches       = "No files matched"
	MsgManifestCreated = "Created %s"
	MsgSymlinkDegraded = "Symlinks are not allowed here, copying instead"

	// Error messages
	MsgErrInitPaths  = "failed to initialize paths: %w"
	MsgErrLoadConfig = "failed to load configuration: %w"
	MsgErrNoDest     = "no destination: pass --dest or run inside a build"
)

// Embedded message files
var (
	//go:embed help/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed help/build-long.txt
	msgBuildLongRaw string
	MsgBuildLong    = strings.TrimSpace(msgBuildLongRaw)

	//go:embed help/install-long.txt
	msgInstallLongRaw string
	MsgInstallLong    = strings.TrimSpace(msgInstallLongRaw)

	//go:embed help/install-example.txt
	msgInstallExampleRaw string
	MsgInstallExample    = strings.TrimRight(msgInstallExampleRaw, "\n")
)
