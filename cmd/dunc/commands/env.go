package commands

import (
	"github.com/arthur-debert/dunc/pkg/buildenv"
	"github.com/spf13/cobra"
)

func newEnvCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "env",
		Short:   MsgEnvShort,
		Long:    MsgEnvLong,
		Args:    cobra.NoArgs,
		GroupID: "build",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := buildenv.Load()
			if err != nil {
				return err
			}
			a.printer.Vars(env.Vars())
			return nil
		},
	}
}
