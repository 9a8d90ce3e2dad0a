package cmd

import (
	"github.com/spf13/cobra"

	"github.com/opmodel/relkit/internal/config"
	"github.com/opmodel/relkit/internal/output"
	"github.com/opmodel/relkit/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd(gc *config.GlobalConfig) *cobra.Command {
	var noTools bool

	c := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Show relkit version information.

Displays:
  - relkit version, commit, and build date
  - CUE SDK version (embedded in relkit)
  - the configured python, rcc and twine executables and their versions`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			output.Println(version.Get().String())
			if noTools {
				return nil
			}

			tools := config.DefaultConfig().Tools
			if gc != nil && gc.Config != nil {
				tools = gc.Config.Tools
			}

			output.Println("")
			output.Println("Tools:")
			for _, name := range []string{tools.Python, tools.RCC, tools.Twine} {
				output.Println(version.DetectTool(c.Context(), name).String())
			}
			return nil
		},
	}

	c.Flags().BoolVar(&noTools, "no-tools", false, "Skip probing external tools")

	return c
}
