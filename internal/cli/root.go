// Package cli provides the command-line interface of sqlclause.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/syssam/sqlclause/dialect"
	"github.com/syssam/sqlclause/internal/cli/commands"
	"github.com/syssam/sqlclause/internal/config"
)

// Version is set at build time.
var Version = "0.1.0"

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	var cfgFile string
	rootCmd := &cobra.Command{
		Use:   "sqlclause",
		Short: "sqlclause - SQL clause fragment generator",
		Long: `sqlclause renders the column, placeholder, WHERE and SET fragments of SQL
statements from declarative schema documents, and generates Go code that
embeds them.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}
			cfg, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}
			level := slog.LevelWarn
			if cfg.Verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			if cfg.File != "" {
				logger.Debug("using config file", "path", cfg.File)
			}
			cmd.SetContext(commands.NewContext(cmd.Context(), cfg, logger))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: ./sqlclause.yaml)")
	flags.StringP("database", "d", "", "Target dialect ("+fmt.Sprint(dialect.Names())+")")
	flags.Int("start", config.DefaultIndex, "First placeholder position")
	flags.Bool("ignore-none", true, "Skip absent optional values in WHERE and SET")
	flags.Bool("ignore-where-without-directive", true, "Skip fields without a where directive group")
	flags.Bool("ignore-set-without-directive", true, "Skip fields without a set directive group")
	flags.Bool("ignore-set-and-where-conflict", false, "Drop the SET fragment of fields with a where template")
	flags.StringP("format", "o", config.DefaultFormat, "Output format (table|json|csv|markdown)")
	flags.String("out", config.DefaultOut, "Output directory of generated code")
	flags.String("package", config.DefaultPackage, "Package name of generated code")
	flags.BoolP("verbose", "v", false, "Verbose output")

	_ = rootCmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return config.Formats, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("database", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return dialect.Names(), cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(commands.NewVersionCommand(Version))
	rootCmd.AddCommand(commands.NewRenderCommand())
	rootCmd.AddCommand(commands.NewGenCommand())
	rootCmd.AddCommand(commands.NewDialectsCommand())
	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
