package commands

import (
	"fmt"

	"github.com/arthur-debert/dunc/pkg/buildenv"
	"github.com/arthur-debert/dunc/pkg/runner"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newBuildCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "build",
		Short:   MsgBuildShort,
		Long:    MsgBuildLong,
		Args:    cobra.NoArgs,
		GroupID: "build",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runBuild(cmd)
		},
	}
}

func (a *app) runBuild(cmd *cobra.Command) error {
	env, err := buildenv.Load()
	if err != nil {
		return err
	}

	if env.ProjectName != "" {
		a.printer.Header(fmt.Sprintf(MsgBuildStart, env.ProjectName+" "+env.ProjectVersion))
	}

	result, err := runner.Execute(cmd.Context(), runner.Options{
		Env:      env,
		Config:   a.cfg,
		FS:       a.fs,
		Commands: a.commands,
		Reporter: a.printer,
		DryRun:   a.dryRun,
	})
	if err != nil {
		return err
	}

	log.Info().
		Int("commands", len(result.Commands)).
		Int("installed", len(result.Installed)).
		Msg("Build step complete")

	if len(result.Commands) > 0 {
		a.printer.Info(MsgBuildCommands, len(result.Commands))
	}
	if env.Install {
		a.printer.Info(MsgInstallSummary, len(result.Installed))
	}
	if a.dryRun {
		a.printer.Info(MsgDryRunNotice)
	}
	return nil
}
