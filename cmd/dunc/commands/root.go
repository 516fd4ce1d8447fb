// Package commands holds dunc's cobra command tree.
package commands

import (
	"fmt"
	"os"

	"github.com/arthur-debert/dunc/internal/version"
	"github.com/arthur-debert/dunc/pkg/config"
	"github.com/arthur-debert/dunc/pkg/filesystem"
	"github.com/arthur-debert/dunc/pkg/logging"
	"github.com/arthur-debert/dunc/pkg/output"
	"github.com/arthur-debert/dunc/pkg/paths"
	"github.com/arthur-debert/dunc/pkg/runner"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// app is the state shared by every command, set up before any of them run.
type app struct {
	verbosity  int
	dryRun     bool
	configFile string

	cfg      *config.Config
	printer  *output.Printer
	fs       filesystem.FS
	commands runner.CommandRunner
}

// Option customizes the root command.
type Option func(*app)

// WithCommandRunner replaces the runner used for build commands.
func WithCommandRunner(r runner.CommandRunner) Option {
	return func(a *app) { a.commands = r }
}

// WithFS replaces the filesystem commands operate on.
func WithFS(fsys filesystem.FS) Option {
	return func(a *app) { a.fs = fsys }
}

// NewRootCmd creates and returns the root command
func NewRootCmd(opts ...Option) *cobra.Command {
	a := &app{}
	for _, opt := range opts {
		opt(a)
	}

	rootCmd := &cobra.Command{
		Use:     "dunc",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		// no subcommand: act as the build hook
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runBuild(cmd)
		},
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&a.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().BoolVar(&a.dryRun, "dry-run", false, MsgFlagDryRun)
	rootCmd.PersistentFlags().StringVar(&a.configFile, "config", "", MsgFlagConfig)

	rootCmd.AddGroup(&cobra.Group{
		ID:    "build",
		Title: "BUILD:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "files",
		Title: "FILES:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	rootCmd.AddCommand(newBuildCmd(a))
	rootCmd.AddCommand(newEnvCmd(a))
	rootCmd.AddCommand(newInitCmd(a))
	rootCmd.AddCommand(newFindCmd(a))
	rootCmd.AddCommand(newInstallCmd(a))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

// setup loads configuration, starts logging and picks the output format.
func (a *app) setup(cmd *cobra.Command) error {
	p, err := paths.New()
	if err != nil {
		return fmt.Errorf(MsgErrInitPaths, err)
	}

	configFile, required := a.configFile, true
	if configFile == "" {
		configFile, required = p.ConfigFilePath(), false
	}
	cfg, err := config.Load(configFile, required)
	if err != nil {
		return fmt.Errorf(MsgErrLoadConfig, err)
	}
	a.cfg = cfg

	logFile := ""
	if cfg.Logging.File {
		logFile = p.LogFilePath()
	}
	logging.SetupLogger(a.verbosity, logFile)
	log.Debug().Str("command", cmd.Name()).Bool("dry_run", a.dryRun).Msg("Command started")

	format, err := output.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}
	if f, ok := cmd.OutOrStdout().(*os.File); ok {
		format = output.Resolve(format, f)
	}
	a.printer = output.NewPrinter(cmd.OutOrStdout(), format)

	if a.fs == nil {
		a.fs = filesystem.NewOS()
	}
	if a.commands == nil {
		a.commands = &runner.ExecRunner{Stdout: cmd.OutOrStdout(), Stderr: cmd.ErrOrStderr()}
	}
	return nil
}
