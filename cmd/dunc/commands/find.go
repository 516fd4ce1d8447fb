package commands

import (
	"path/filepath"

	"github.com/arthur-debert/dunc/pkg/buildenv"
	"github.com/arthur-debert/dunc/pkg/finder"
	"github.com/spf13/cobra"
)

type patternFlags struct {
	root        string
	noRecursive bool
	stripPrefix bool
}

func (f *patternFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.root, "root", "", MsgFlagRoot)
	cmd.Flags().BoolVar(&f.noRecursive, "no-recursive", false, MsgFlagNoRecursive)
	cmd.Flags().BoolVar(&f.stripPrefix, "strip-prefix", false, MsgFlagStripPrefix)
}

// rootFor returns --root, or the build's source path inside a build, or
// the working directory.
func (f *patternFlags) rootFor(env buildenv.Env) string {
	switch {
	case f.root != "":
		return f.root
	case env.Active && env.SourcePath != "":
		return env.SourcePath
	default:
		return "."
	}
}

func (f *patternFlags) pattern(glob string, env buildenv.Env) finder.Pattern {
	return finder.Pattern{
		Glob:        glob,
		Root:        f.rootFor(env),
		Recursive:   !f.noRecursive,
		StripPrefix: f.stripPrefix,
	}
}

func newFindCmd(a *app) *cobra.Command {
	var flags patternFlags

	cmd := &cobra.Command{
		Use:     "find PATTERN",
		Short:   MsgFindShort,
		Long:    MsgFindLong,
		Args:    cobra.ExactArgs(1),
		GroupID: "files",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := buildenv.Load()
			if err != nil {
				return err
			}

			found := 0
			for entry, err := range finder.New(a.fs).Find(flags.pattern(args[0], env)) {
				if err != nil {
					return err
				}
				a.printer.Path(filepath.ToSlash(entry.Rel()))
				found++
			}
			if found == 0 {
				cmd.PrintErrln(MsgNoMatches)
			}
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}
