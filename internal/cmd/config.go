package cmd

import (
	"github.com/spf13/cobra"

	"github.com/opmodel/relkit/internal/config"
)

// NewConfigCmd creates the config command group.
func NewConfigCmd(gc *config.GlobalConfig) *cobra.Command {
	c := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  `Configuration management for the relkit CLI.`,
	}

	c.AddCommand(NewConfigInitCmd())
	c.AddCommand(NewConfigVetCmd(gc))

	return c
}
