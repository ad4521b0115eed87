package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/syssam/sqlclause/internal/codegen"
)

// NewGenCommand creates the gen command.
func NewGenCommand() *cobra.Command {
	var workers int
	cmd := &cobra.Command{
		Use:   "gen [schema.yaml...]",
		Short: "Generate Go code for schema documents",
		Long: `Generate a Go package holding the bound schemas, their precomputed
column, select and placeholder lists, and typed WHERE and SET renderers.

The output directory and package name come from --out and --package or
the config file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := Config(ctx)
			logger := Logger(ctx)
			bs, err := bindAll(ctx, cfg, args)
			if err != nil {
				return err
			}
			targets := make([]*codegen.Target, len(bs))
			for i, b := range bs {
				targets[i] = &codegen.Target{Name: b.name, Schema: b.schema}
			}
			g := codegen.New(cfg.Out, cfg.Package, codegen.WithWorkers(workers), codegen.WithLogger(logger))
			if err := g.Generate(ctx, targets...); err != nil {
				return err
			}
			m := g.Metrics()
			logger.Info("generation complete", "dir", cfg.Out, "package", cfg.Package,
				"files", m.FilesGenerated, "bytes", m.TotalBytes)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Generated %d files in %s\n", m.FilesGenerated, cfg.Out)
			return nil
		},
	}
	cmd.Flags().IntVar(&workers, "workers", 0, "Files written in parallel (default: GOMAXPROCS)")
	return cmd
}
