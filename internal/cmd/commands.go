package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/opmodel/relkit/internal/lifecycle"
	"github.com/opmodel/relkit/internal/output"
)

// NewCommandsCmd creates the commands command, which lists the command
// table.
func NewCommandsCmd(table lifecycle.Table) *cobra.Command {
	return &cobra.Command{
		Use:   "commands",
		Short: "List the custom packaging commands",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			tbl := output.NewTable("NAME", "COMMAND", "DESCRIPTION")
			for _, e := range table {
				tbl.Row(e.Name, "relkit "+strings.ReplaceAll(e.Name, "_", "-"), e.Short)
			}
			output.Println(tbl.String())
			return nil
		},
	}
}
