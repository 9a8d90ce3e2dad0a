package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/opmodel/relkit/internal/cmdutil"
	"github.com/opmodel/relkit/internal/config"
	oerrors "github.com/opmodel/relkit/internal/errors"
	"github.com/opmodel/relkit/internal/output"
)

const configHeader = `# relkit configuration
# Placeholders {python}, {rcc} and {twine} in commands are replaced with the
# resolved tools. Tool env overrides: RELKIT_TOOLS_PYTHON, RELKIT_TOOLS_RCC,
# RELKIT_TOOLS_TWINE.
`

// NewConfigInitCmd creates the config init command.
func NewConfigInitCmd() *cobra.Command {
	var force bool

	c := &cobra.Command{
		Use:   "init",
		Short: "Initialize default configuration",
		Long: `Initialize the relkit configuration.

Creates ~/.relkit/config.yaml populated with the built-in defaults:
  - the python, rcc and twine executables
  - the install, develop, build and upload command lines
  - release settings (tag prefix, remote, tag pushing)

Examples:
  # Initialize configuration
  relkit config init

  # Overwrite existing configuration
  relkit config init --force`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			if err := runConfigInit(force); err != nil {
				cmdutil.PrintError("config init", err)
				return cmdutil.ExitError(err)
			}
			return nil
		},
	}

	c.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing configuration")

	return c
}

func runConfigInit(force bool) error {
	paths, err := config.DefaultPaths()
	if err != nil {
		return oerrors.Wrap(oerrors.ErrNotFound, "could not determine home directory")
	}

	if _, err := os.Stat(paths.ConfigFile); err == nil && !force {
		return &oerrors.DetailError{
			Type:     "validation failed",
			Message:  "configuration already exists",
			Location: paths.ConfigFile,
			Hint:     "Use --force to overwrite existing configuration.",
			Cause:    oerrors.ErrValidation,
		}
	}

	data, err := yaml.Marshal(config.DefaultConfig())
	if err != nil {
		return err
	}

	// Directory 0700, file 0600.
	if err := os.MkdirAll(paths.HomeDir, 0o700); err != nil {
		return oerrors.Wrap(oerrors.ErrPermission, "could not create ~/.relkit directory")
	}
	if err := os.WriteFile(paths.ConfigFile, append([]byte(configHeader), data...), 0o600); err != nil {
		return oerrors.Wrap(oerrors.ErrPermission, "could not write config.yaml")
	}

	output.Println("Configuration initialized at " + output.StyleNoun.Render(paths.ConfigFile))
	output.Println("Validate with: relkit config vet")
	return nil
}
