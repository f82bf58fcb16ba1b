package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/srcweave/srcweave/pkg/config"
	"github.com/srcweave/srcweave/pkg/oracle"
	"github.com/srcweave/srcweave/pkg/pipeline"
	"github.com/srcweave/srcweave/pkg/store"
)

var (
	genOutput        string
	genConfigPath    string
	genTitle         string
	genTests         bool
	genIncludeHidden bool
	genMaxFileSize   int64
	genWorkers       int
	genStrict        bool
	genPatterns      []string
	genOracle        string
	genFormat        string
)

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate <dir>",
		Short: "Render a Go module as a cross-referenced site",
		Long: `Render every Go file below <dir> into an HTML page in which identifiers
link to their definitions, plus an index page.

Settings are read from <dir>/.srcweave.yaml (or --config), then <dir>/.env,
then SRCWEAVE_* environment variables; flags given on the command line win.
The output is a directory, a .db/.sqlite file (see "export"), or :memory:.`,
		Args: cobra.ExactArgs(1),
		RunE: runGenerate,
	}

	cmd.Flags().StringVarP(&genOutput, "output", "o", "", "Output directory or database (default \"site\")")
	cmd.Flags().StringVar(&genConfigPath, "config", "", "Path to config file (default <dir>/"+config.FileName+")")
	cmd.Flags().StringVar(&genTitle, "title", "", "Site title (default: directory name)")
	cmd.Flags().BoolVar(&genTests, "tests", false, "Include test files and test packages")
	cmd.Flags().BoolVar(&genIncludeHidden, "include-hidden", false, "Include hidden files and directories")
	cmd.Flags().Int64Var(&genMaxFileSize, "max-file-size", 10*1024*1024, "Maximum source file size (bytes)")
	cmd.Flags().IntVar(&genWorkers, "workers", 0, "Concurrent renderers (0 = one per CPU)")
	cmd.Flags().BoolVar(&genStrict, "strict-nesting", true, "Fail files whose references cross instead of nest")
	cmd.Flags().StringSliceVar(&genPatterns, "pattern", nil, "Package patterns to load (default ./...)")
	cmd.Flags().StringVar(&genOracle, "oracle", "packages", "Identifier resolution: packages (go command) or source (single package, no go command)")
	cmd.Flags().StringVar(&genFormat, "format", "human", "Summary format: human, json")
	return cmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
	root := args[0]

	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("source directory does not exist: %s", root)
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", root)
	}

	settings, err := config.Load(genConfigPath, root)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	applyGenerateFlags(cmd, settings)
	if err := settings.Validate(); err != nil {
		return err
	}

	log := newLogger()
	defer log.Sync()

	s, err := store.New(store.Config{Path: settings.Output})
	if err != nil {
		return fmt.Errorf("creating store: %w", err)
	}
	defer s.Close()

	pc := pipeline.FromSettings(root, settings, s, log)
	switch genOracle {
	case "packages":
	case "source":
		pc.Oracle = &oracle.Source{Logger: log}
	default:
		return fmt.Errorf("unknown oracle: %s", genOracle)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result, err := pipeline.Generate(ctx, pc)
	if err != nil {
		return fmt.Errorf("generating site: %w", err)
	}

	switch genFormat {
	case "json":
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	case "human":
		printGenerateSummary(cmd, settings.Output, result)
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", genFormat)
	}
}

// applyGenerateFlags lets flags given on the command line override loaded
// settings.
func applyGenerateFlags(cmd *cobra.Command, s *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("output") {
		s.Output = genOutput
	}
	if flags.Changed("title") {
		s.Title = genTitle
	}
	if flags.Changed("tests") {
		s.Tests = genTests
	}
	if flags.Changed("include-hidden") {
		s.IncludeHidden = genIncludeHidden
	}
	if flags.Changed("max-file-size") {
		s.MaxFileSize = genMaxFileSize
	}
	if flags.Changed("workers") {
		s.Workers = genWorkers
	}
	if flags.Changed("strict-nesting") {
		s.StrictNesting = genStrict
	}
	if flags.Changed("pattern") {
		s.Patterns = genPatterns
	}
}

func printGenerateSummary(cmd *cobra.Command, output string, r *pipeline.Result) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Generation complete:\n")
	fmt.Fprintf(out, "  Files: %d\n", r.Files)
	fmt.Fprintf(out, "  Pages written: %d\n", r.Pages)
	fmt.Fprintf(out, "  Definitions: %d\n", r.Index.Definitions)
	fmt.Fprintf(out, "  References: %d\n", r.Index.Regions)
	if !r.Revision.IsZero() {
		fmt.Fprintf(out, "  Revision: %s\n", r.Revision.Short())
	}
	if len(r.Failures) > 0 {
		fmt.Fprintf(out, "  Failed files: %d\n", len(r.Failures))
		for _, f := range r.Failures {
			fmt.Fprintf(out, "    %s (%s): %s\n", f.File, f.Stage, f.Error)
		}
	}
	fmt.Fprintf(out, "Output: %s\n", output)
}
