package commands

import (
	"path/filepath"

	"github.com/arthur-debert/dunc/pkg/project"
	"github.com/spf13/cobra"
)

func newInitCmd(a *app) *cobra.Command {
	var (
		force bool
		name  string
	)

	cmd := &cobra.Command{
		Use:     "init [DIR]",
		Short:   MsgInitShort,
		Long:    MsgInitLong,
		Args:    cobra.MaximumNArgs(1),
		GroupID: "build",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			dir, err := filepath.Abs(dir)
			if err != nil {
				return err
			}
			if name == "" {
				name = filepath.Base(dir)
			}

			if a.dryRun {
				a.printer.Info(MsgManifestCreated, filepath.Join(dir, project.DefaultManifestName))
				a.printer.Info(MsgDryRunNotice)
				return nil
			}

			path, err := project.WriteStarter(dir, name, force)
			if err != nil {
				return err
			}
			a.printer.Info(MsgManifestCreated, path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, MsgFlagForce)
	cmd.Flags().StringVar(&name, "name", "", MsgFlagName)
	return cmd
}
