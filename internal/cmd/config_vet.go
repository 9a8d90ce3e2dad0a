package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/opmodel/relkit/internal/cmdutil"
	"github.com/opmodel/relkit/internal/config"
	oerrors "github.com/opmodel/relkit/internal/errors"
	"github.com/opmodel/relkit/internal/output"
)

// NewConfigVetCmd creates the config vet command.
func NewConfigVetCmd(gc *config.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "vet",
		Short: "Validate configuration",
		Long: `Validate the relkit configuration file.

Checks performed:
  1. Config file exists at resolved path
  2. Config file is valid YAML
  3. Tool names are not blank, command lines split into arguments and only
     use known placeholders, the tag prefix is a valid ref component

The config path is resolved using precedence:
  --config flag > RELKIT_CONFIG env > ~/.relkit/config.yaml

Examples:
  # Validate default configuration
  relkit config vet

  # Validate custom config path
  relkit config vet --config /path/to/config.yaml`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			path, err := configVetPath(gc)
			if err == nil {
				err = vetConfigFile(path)
			}
			if err != nil {
				cmdutil.PrintError("config vet", err)
				return cmdutil.ExitError(err)
			}
			output.Println(output.FormatCheckmark("Configuration is valid: " + output.StyleNoun.Render(path)))
			return nil
		},
	}
}

func configVetPath(gc *config.GlobalConfig) (string, error) {
	if gc != nil && gc.ConfigPath != "" {
		return config.ExpandPath(gc.ConfigPath)
	}
	resolved, err := config.ResolveConfigPath("")
	if err != nil {
		return "", oerrors.Wrap(oerrors.ErrNotFound, "could not resolve config path")
	}
	return config.ExpandPath(resolved.Value)
}

func vetConfigFile(path string) error {
	output.Debug("validating config", "path", path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return oerrors.NewNotFoundError(
			"configuration file not found",
			path,
			"Run 'relkit config init' to create default configuration",
		)
	}

	err := config.ValidateFile(path)
	if err == nil {
		return nil
	}

	var verrs config.ValidationErrors
	if errors.As(err, &verrs) {
		detail := &oerrors.DetailError{
			Type:     "validation failed",
			Message:  "configuration has invalid fields",
			Location: path,
			Context:  make(map[string]string, len(verrs)),
			Cause:    oerrors.ErrValidation,
		}
		for _, v := range verrs {
			detail.Context[v.Field] = v.Message
		}
		return detail
	}
	return &oerrors.DetailError{
		Type:     "validation failed",
		Message:  err.Error(),
		Location: path,
		Cause:    oerrors.ErrValidation,
	}
}
