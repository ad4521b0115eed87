package commands

import (
	"github.com/spf13/cobra"

	"github.com/syssam/sqlclause/dialect"
)

// NewDialectsCommand creates the dialects command.
func NewDialectsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dialects",
		Short: "List the supported dialects",
		Long:  `List the supported database dialects with their placeholder templates.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var rows [][]any
			for _, d := range dialect.All() {
				rows = append(rows, []any{d.Name, d.Template, d.Numbered(), d.Placeholder(1) + ", " + d.Placeholder(2)})
			}
			return render(cmd.OutOrStdout(), Config(cmd.Context()).Format,
				[]string{"dialect", "template", "numbered", "example"}, rows)
		},
	}
}
