package commands

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/syssam/sqlclause/clause"
	"github.com/syssam/sqlclause/record"
)

// Clause names accepted by --clause.
var renderClauses = []string{"fields", "select", "values", "where", "set", "setwhere"}

var defaultRenderClauses = []string{"fields", "select", "values", "where", "set"}

// NewRenderCommand creates the render command.
func NewRenderCommand() *cobra.Command {
	var (
		clauses []string
		absent  []string
		from    int
	)
	cmd := &cobra.Command{
		Use:   "render [schema.yaml...]",
		Short: "Render the clause fragments of schema documents",
		Long: `Render the clause fragments of one or more schema documents.

Without arguments the documents matched by the configured schema patterns
are rendered. Settings declared in a document override the command
configuration. WHERE and SET are rendered for a record in which every
field is present except those named by --absent.`,
		Example: `  sqlclause render articles.yaml
  sqlclause render -d postgres -c setwhere --absent body articles.yaml
  sqlclause render -o json --from 3 schemas/*.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, c := range clauses {
				if !slices.Contains(renderClauses, c) {
					return fmt.Errorf("unknown clause %q (valid: %v)", c, renderClauses)
				}
			}
			var opts []clause.Option
			if cmd.Flags().Changed("from") {
				opts = append(opts, clause.StartAt(from))
			}

			ctx := cmd.Context()
			cfg := Config(ctx)
			bs, err := bindAll(ctx, cfg, args)
			if err != nil {
				return err
			}

			missing := make(map[string]bool, len(absent))
			for _, name := range absent {
				missing[name] = true
			}
			rec := record.Func(func(name string) (bool, error) {
				return !missing[name], nil
			})

			var rows [][]any
			add := func(schema, label string, fragments []string) {
				for i, f := range fragments {
					rows = append(rows, []any{schema, label, i + 1, f})
				}
			}
			for _, b := range bs {
				for _, c := range clauses {
					switch c {
					case "fields":
						add(b.name, c, clause.Fields(b.schema))
					case "select":
						add(b.name, c, clause.Select(b.schema))
					case "values":
						res, err := clause.Values(b.schema, opts...)
						if err != nil {
							return err
						}
						add(b.name, c, res.Fragments)
					case "where":
						res, err := clause.Where(b.schema, rec, opts...)
						if err != nil {
							return err
						}
						add(b.name, c, res.Fragments)
					case "set":
						res, err := clause.Set(b.schema, rec, opts...)
						if err != nil {
							return err
						}
						add(b.name, c, res.Fragments)
					case "setwhere":
						res, err := clause.SetWhere(b.schema, rec, opts...)
						if err != nil {
							return err
						}
						add(b.name, "setwhere:set", res.Set)
						add(b.name, "setwhere:where", res.Where)
					}
				}
			}
			return render(cmd.OutOrStdout(), cfg.Format, []string{"schema", "clause", "position", "fragment"}, rows)
		},
	}
	cmd.Flags().StringSliceVarP(&clauses, "clause", "c", defaultRenderClauses, "Clauses to render ("+fmt.Sprint(renderClauses)+")")
	cmd.Flags().StringSliceVar(&absent, "absent", nil, "Fields whose value is absent in the rendered record")
	cmd.Flags().IntVar(&from, "from", 0, "First placeholder position, overriding the schema start index")

	_ = cmd.RegisterFlagCompletionFunc("clause", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return renderClauses, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}
