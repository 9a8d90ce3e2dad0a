package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/opmodel/relkit/internal/cmdutil"
	"github.com/opmodel/relkit/internal/config"
	"github.com/opmodel/relkit/internal/lifecycle"
	"github.com/opmodel/relkit/internal/output"
)

// lifecycleLong holds the help text of each table command.
var lifecycleLong = map[string]string{
	lifecycle.CmdBuildResources: `Compile the Qt resource file into resources.py in the project root and
in libs/. A missing or failing compiler prints a diagnostic but does not
fail the command.`,
	lifecycle.CmdInstall: `Compile Qt resources, then install the package with pip.

The install command line is configurable (commands.install, default
"{python} -m pip install .").`,
	lifecycle.CmdDevelop: `Compile Qt resources, then install the package in editable mode.

The develop command line is configurable (commands.develop, default
"{python} -m pip install -e .").`,
	lifecycle.CmdUpload: `Build, upload and tag a release.

Steps:
  1. clean    remove dist/ (a missing directory is only a warning)
  2. build    build source and wheel distributions
  3. upload   upload dist/* with twine
  4. tag      recreate v<version> at HEAD, optionally push tags

Every step runs even if an earlier one failed, unless --strict is given.
The exit code is non-zero when any step failed.

Examples:
  # Preview the release
  relkit upload --dry-run

  # Release and push the tag
  relkit upload --push-tags`,
}

// NewLifecycleCmd creates the command for one command-table entry.
// Underscored names are exposed with dashes and keep the original spelling
// as an alias.
func NewLifecycleCmd(gc *config.GlobalConfig, entry lifecycle.Entry) *cobra.Command {
	var (
		tf cmdutil.ToolFlags
		rf *cmdutil.ReleaseFlags
	)

	use := strings.ReplaceAll(entry.Name, "_", "-")
	c := &cobra.Command{
		Use:   use,
		Short: entry.Short,
		Long:  lifecycleLong[entry.Name],
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			return runLifecycle(c, gc, entry, &tf, rf)
		},
	}
	if use != entry.Name {
		c.Aliases = []string{entry.Name}
	}

	tf.AddTo(c)
	if entry.Name == lifecycle.CmdUpload {
		rf = &cmdutil.ReleaseFlags{}
		rf.AddTo(c)
	}

	return c
}

func runLifecycle(c *cobra.Command, gc *config.GlobalConfig, entry lifecycle.Entry, tf *cmdutil.ToolFlags, rf *cmdutil.ReleaseFlags) error {
	s, err := cmdutil.NewSession(gc, tf, rf)
	if err != nil {
		cmdutil.PrintError("loading project", err)
		return cmdutil.ExitError(err)
	}

	rep, err := entry.Handler(c.Context(), s.Env)
	cmdutil.PrintReport(rep, gc.Flags.Verbose)
	if err != nil {
		s.DumpCaptured()
		if rep == nil {
			cmdutil.PrintError(entry.Name+" failed", err)
		}
		return cmdutil.ExitError(err)
	}

	msg := entry.Name + " complete"
	if rep != nil && rep.Warned() {
		msg += " with warnings"
	}
	output.Println(output.FormatCheckmark(msg))
	return nil
}
