package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/srcweave/srcweave/pkg/logging"
)

var (
	verbose bool
	quiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "srcweave",
	Short: "srcweave - cross-referenced HTML listings of Go source",
	Long: `srcweave renders a Go module as a static site in which every identifier
links to its definition.

Identifiers are resolved with the Go type checker, so links follow scoping,
methods, embedded fields and imports between packages of the module.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode (errors only)")

	// Add subcommands
	rootCmd.AddCommand(newGenerateCmd())
	rootCmd.AddCommand(newPagesCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func newLogger() *zap.Logger {
	return logging.New(verbose, quiet)
}
