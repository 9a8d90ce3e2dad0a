package cmd

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/opmodel/relkit/internal/cmdutil"
	"github.com/opmodel/relkit/internal/config"
	"github.com/opmodel/relkit/internal/output"
	"github.com/opmodel/relkit/internal/project"
)

// NewPackagesCmd creates the packages command.
func NewPackagesCmd(gc *config.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "packages",
		Short: "Show the discovered Python packages",
		Long: `Show the packages that will be shipped, as a tree.

Packages are directories containing __init__.py that match packages.include,
plus any names listed in packages.extra.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			md, err := project.Load(gc.ProjectDir)
			if err != nil {
				cmdutil.PrintError("loading project", err)
				return cmdutil.ExitError(err)
			}

			if len(md.DiscoveredPackages) == 0 {
				output.Warn("no packages matched", "include", md.Packages.Include)
				return nil
			}

			notes := make(map[string]string, len(md.Packages.Extra))
			for _, name := range md.Packages.Extra {
				notes[name] = "extra"
			}
			output.Print(output.RenderPackageTree(filepath.Base(md.Root), md.DiscoveredPackages, notes))
			return nil
		},
	}
}
