package commands

import (
	"runtime"

	"github.com/arthur-debert/dunc/pkg/buildenv"
	"github.com/arthur-debert/dunc/pkg/errors"
	"github.com/arthur-debert/dunc/pkg/finder"
	"github.com/arthur-debert/dunc/pkg/installer"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newInstallCmd(a *app) *cobra.Command {
	var (
		flags      patternFlags
		dest       string
		symlink    bool
		executable bool
	)

	cmd := &cobra.Command{
		Use:     "install PATTERN...",
		Short:   MsgInstallShort,
		Long:    MsgInstallLong,
		Example: MsgInstallExample,
		Args:    cobra.MinimumNArgs(1),
		GroupID: "files",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := buildenv.Load()
			if err != nil {
				return err
			}
			if dest == "" {
				dest = env.InstallPath
			}
			if dest == "" {
				return errors.New(errors.ErrEnvMissing, MsgErrNoDest).
					WithDetail("variable", buildenv.VarInstallPath)
			}

			mode := installer.ModeCopy
			if symlink {
				allowed := runtime.GOOS != "windows"
				if env.Active {
					allowed = env.AllowsSymlinks(runtime.GOOS, a.cfg.Install.SymlinkLocalOnly)
				}
				if allowed {
					mode = installer.ModeSymlink
				} else {
					log.Warn().Msg(MsgSymlinkDegraded)
				}
			}

			f := finder.New(a.fs)
			var entries []finder.FileEntry
			for _, glob := range args {
				found, err := f.FindAll(flags.pattern(glob, env))
				if err != nil {
					return err
				}
				entries = append(entries, found...)
			}
			if len(entries) == 0 {
				cmd.PrintErrln(MsgNoMatches)
				return nil
			}

			placed, err := installer.New(a.fs).InstallFiles(entries, installer.Options{
				InstallRoot: dest,
				Mode:        mode,
				Executable:  executable,
				DryRun:      a.dryRun,
				DirPerm:     a.cfg.Install.DirPerm,
				Reporter:    a.printer,
			})
			if err != nil {
				return err
			}

			a.printer.Info(MsgInstallSummary, len(placed))
			if a.dryRun {
				a.printer.Info(MsgDryRunNotice)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&dest, "dest", "", MsgFlagDest)
	cmd.Flags().BoolVar(&symlink, "symlink", false, MsgFlagSymlink)
	cmd.Flags().BoolVar(&executable, "executable", false, MsgFlagExecutable)
	return cmd
}
