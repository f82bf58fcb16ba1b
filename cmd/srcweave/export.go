package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/srcweave/srcweave/pkg/store"
)

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <site.db> <dir>",
		Short: "Write the pages of a database site to a directory",
		Long: `Copy every page stored in a site database into a directory, producing a
site that can be opened in a browser or served as static files.

Pages already present in the directory are overwritten.`,
		Args: cobra.ExactArgs(2),
		RunE: runExport,
	}
}

func runExport(cmd *cobra.Command, args []string) error {
	srcPath, dstPath := args[0], args[1]

	if !store.IsDatabasePath(srcPath) {
		return fmt.Errorf("not a site database: %s", srcPath)
	}
	if _, err := os.Stat(srcPath); err != nil {
		return fmt.Errorf("site database not found: %s", srcPath)
	}

	src, err := store.NewSQLite(srcPath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", srcPath, err)
	}
	defer src.Close()

	dst, err := store.NewDir(dstPath)
	if err != nil {
		return err
	}

	stats, err := store.Export(src, dst)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Export complete:\n")
	fmt.Fprintf(cmd.OutOrStdout(), "  Pages exported: %d\n", stats.Pages)
	fmt.Fprintf(cmd.OutOrStdout(), "  Bytes written: %d\n", stats.Bytes)
	fmt.Fprintf(cmd.OutOrStdout(), "Output: %s\n", dstPath)
	return nil
}
