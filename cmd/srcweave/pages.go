package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/srcweave/srcweave/pkg/store"
	"github.com/srcweave/srcweave/pkg/types"
)

var (
	pagesFormat string
	pagesColor  string
)

// styles holds color formatters for page listings
type styles struct {
	heading *color.Color
	index   *color.Color
	path    *color.Color
	meta    *color.Color
}

// newStyles creates color formatters; enabled=false yields plain text.
func newStyles(enabled bool) *styles {
	s := &styles{
		heading: color.New(color.Bold),
		index:   color.New(color.Bold, color.FgHiGreen),
		path:    color.New(color.FgHiBlue),
		meta:    color.New(color.FgHiBlack),
	}

	if !enabled {
		s.heading.DisableColor()
		s.index.DisableColor()
		s.path.DisableColor()
		s.meta.DisableColor()
	}

	return s
}

func newPagesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pages <output>",
		Short: "List the pages of a generated site",
		Long:  "Read a generated site (directory or database) and list its pages",
		Args:  cobra.ExactArgs(1),
		RunE:  runPages,
	}
	cmd.Flags().StringVar(&pagesFormat, "format", "human", "Output format: human, json")
	cmd.Flags().StringVar(&pagesColor, "color", "auto", "Color output: auto, always, never")
	return cmd
}

func runPages(cmd *cobra.Command, args []string) error {
	path := args[0]
	if path == store.MemoryPath {
		return fmt.Errorf("cannot list pages of an in-memory store")
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("site not found: %s", path)
	}

	s, err := store.New(store.Config{Path: path})
	if err != nil {
		return fmt.Errorf("opening site: %w", err)
	}
	defer s.Close()

	pages, err := s.ListPages()
	if err != nil {
		return fmt.Errorf("listing pages: %w", err)
	}

	switch pagesFormat {
	case "json":
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(pages)
	case "human":
		return outputPagesHuman(cmd, path, pages)
	default:
		return fmt.Errorf("unknown output format: %s", pagesFormat)
	}
}

func outputPagesHuman(cmd *cobra.Command, path string, pages []*types.Page) error {
	out := cmd.OutOrStdout()

	switch pagesColor {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	case "auto":
		if !term.IsTerminal(int(os.Stdout.Fd())) || os.Getenv("NO_COLOR") != "" {
			color.NoColor = true
		} else {
			color.NoColor = false
		}
	default:
		return fmt.Errorf("unknown color mode: %s", pagesColor)
	}
	s := newStyles(!color.NoColor)

	s.heading.Fprintln(out, "=== srcweave pages ===")
	fmt.Fprintf(out, "Site: %s\n", path)
	fmt.Fprintf(out, "Total pages: %d\n\n", len(pages))

	for _, p := range pages {
		style := s.path
		if p.Kind == types.PageIndex {
			style = s.index
		}
		style.Fprint(out, p.Path)

		var details []string
		if !p.SourceID.IsZero() {
			details = append(details, p.SourceID.Hex()[:12])
		}
		if !p.Created.IsZero() {
			details = append(details, p.Created.Local().Format("2006-01-02 15:04:05"))
		}
		for _, d := range details {
			fmt.Fprint(out, "  ")
			s.meta.Fprint(out, d)
		}
		fmt.Fprintln(out)
	}
	return nil
}
