package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/opmodel/relkit/internal/cmdutil"
	"github.com/opmodel/relkit/internal/config"
	oerrors "github.com/opmodel/relkit/internal/errors"
	"github.com/opmodel/relkit/internal/lifecycle"
	"github.com/opmodel/relkit/internal/output"
	"github.com/opmodel/relkit/internal/platform"
	"github.com/opmodel/relkit/internal/project"
	"github.com/opmodel/relkit/internal/setupopts"
)

// NewMetadataCmd creates the metadata command.
func NewMetadataCmd(gc *config.GlobalConfig, table lifecycle.Table) *cobra.Command {
	var (
		of         cmdutil.OutputFlags
		app        bool
		platformID string
	)

	c := &cobra.Command{
		Use:   "metadata [py2app]",
		Short: "Print the setup declaration",
		Long: `Print the full setup declaration for the project: package metadata,
resolved build-time dependencies and the registered custom commands.

The application bundle section is added when --app is given or when the
trailing argument py2app is present.

Examples:
  # Print as YAML
  relkit metadata

  # Include the macOS app bundle section, as JSON
  relkit metadata --app -o json`,
		Args:      cobra.OnlyValidArgs,
		ValidArgs: []string{platform.BundleTool},
		RunE: func(c *cobra.Command, args []string) error {
			format, ok := output.ParseFormat(of.Format)
			if !ok || format == output.FormatTable {
				err := oerrors.NewValidationError(
					fmt.Sprintf("unsupported output format %q", of.Format),
					"", "--output", "Use yaml or json",
				)
				cmdutil.PrintError("metadata", err)
				return cmdutil.ExitError(err)
			}

			md, err := project.Load(gc.ProjectDir)
			if err != nil {
				cmdutil.PrintError("loading project", err)
				return cmdutil.ExitError(err)
			}

			decl := setupopts.Build(setupopts.Input{
				Metadata: md,
				Platform: platformID,
				Commands: table.Names(),
				App:      app || platform.AppBundleRequested(args),
			})
			return output.WriteStructured(output.Stdout(), decl, format)
		},
	}

	of.AddTo(c)
	c.Flags().BoolVar(&app, "app", false, "Include the application bundle section")
	c.Flags().StringVar(&platformID, "platform", runtime.GOOS, "Platform identifier used to resolve dependencies")

	return c
}
