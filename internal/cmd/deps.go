package cmd

import (
	"fmt"
	"runtime"
	"slices"

	"github.com/spf13/cobra"

	"github.com/opmodel/relkit/internal/cmdutil"
	"github.com/opmodel/relkit/internal/config"
	oerrors "github.com/opmodel/relkit/internal/errors"
	"github.com/opmodel/relkit/internal/output"
	"github.com/opmodel/relkit/internal/platform"
	"github.com/opmodel/relkit/internal/project"
	"github.com/opmodel/relkit/internal/setupopts"
)

// dependency is one entry of the resolved dependency set.
type dependency struct {
	Name   string `json:"name"`
	Source string `json:"source"`
}

// NewDepsCmd creates the deps command.
func NewDepsCmd(gc *config.GlobalConfig) *cobra.Command {
	var (
		platformID string
		format     string
	)

	c := &cobra.Command{
		Use:   "deps",
		Short: "Print the resolved build-time dependency set",
		Long: `Print the build-time dependencies for a platform: the manifest's
setupRequires followed by the platform-specific extras (py2app on darwin by
default).

Examples:
  relkit deps
  relkit deps --platform darwin -o json`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			f, ok := output.ParseFormat(format)
			if !ok {
				err := oerrors.NewValidationError(
					fmt.Sprintf("unsupported output format %q", format),
					"", "--output", "Use table, yaml or json",
				)
				cmdutil.PrintError("deps", err)
				return cmdutil.ExitError(err)
			}

			md, err := project.Load(gc.ProjectDir)
			if err != nil {
				cmdutil.PrintError("loading project", err)
				return cmdutil.ExitError(err)
			}

			deps := resolveDependencies(md, platformID)
			if f == output.FormatTable {
				tbl := output.NewTable("PACKAGE", "SOURCE")
				for _, d := range deps {
					tbl.Row(d.Name, d.Source)
				}
				output.Println(fmt.Sprintf("Platform: %s", output.StyleNoun.Render(string(platform.Detect(platformID)))))
				output.Println(tbl.String())
				return nil
			}
			return output.WriteStructured(output.Stdout(), deps, f)
		},
	}

	c.Flags().StringVar(&platformID, "platform", runtime.GOOS, "Platform identifier (linux, darwin, win32, ...)")
	c.Flags().StringVarP(&format, "output", "o", "table", "Output format: table, yaml, json")

	return c
}

// resolveDependencies labels each entry of the resolved set with where it
// came from.
func resolveDependencies(md *project.Metadata, platformID string) []dependency {
	resolved := setupopts.Dependencies(md, platformID)

	out := make([]dependency, 0, len(resolved))
	for _, name := range resolved {
		src := "platform"
		if slices.Contains(md.SetupRequires, name) {
			src = "base"
		}
		out = append(out, dependency{Name: name, Source: src})
	}
	return out
}
