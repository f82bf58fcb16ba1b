// Package pipeline generates a cross-referenced site for a source tree.
package pipeline

import (
	"context"
	"fmt"
	"html"
	"path/filepath"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/srcweave/srcweave/pkg/enum"
	"github.com/srcweave/srcweave/pkg/index"
	"github.com/srcweave/srcweave/pkg/lexer"
	"github.com/srcweave/srcweave/pkg/logging"
	"github.com/srcweave/srcweave/pkg/oracle"
	"github.com/srcweave/srcweave/pkg/render"
	"github.com/srcweave/srcweave/pkg/site"
	"github.com/srcweave/srcweave/pkg/store"
	"github.com/srcweave/srcweave/pkg/types"
	"github.com/srcweave/srcweave/pkg/wrapper"
)

// Config configures Generate.
type Config struct {
	// Root is the source tree to render.
	Root string
	// Store receives the pages. Required.
	Store store.Store
	// Oracle resolves identifiers. Defaults to oracle.Packages over Root.
	Oracle oracle.Oracle

	Patterns      []string
	Tests         bool
	IncludeHidden bool
	MaxFileSize   int64
	Extensions    []string
	SkipDirs      []string

	// Workers bounds concurrent rendering; 0 means runtime.NumCPU.
	Workers int
	// StrictNesting turns crossing wrappers into a per-file failure.
	StrictNesting bool
	// Title heads every page. Defaults to the base name of Root.
	Title string

	Logger *zap.Logger
	// Now stamps pages. Defaults to time.Now.
	Now func() time.Time
}

// Generate renders every source file under cfg.Root into cfg.Store and
// writes the index page last.
//
// Problems confined to one file (tokenizing, a missing snippet, crossing
// wrappers in strict mode) are recorded in Result.Failures and that file
// gets no page; the rest of the tree is still rendered. Enumeration,
// resolution and storage errors abort the run.
func Generate(ctx context.Context, cfg Config) (*Result, error) {
	start := time.Now()
	if cfg.Root == "" {
		return nil, errors.New("root is required")
	}
	if cfg.Store == nil {
		return nil, errors.New("store is required")
	}
	log := logging.OrNop(cfg.Logger).With(logging.Component("pipeline"))
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	rev, err := enum.ReadRevision(cfg.Root)
	if err != nil {
		log.Warn("cannot read git revision", zap.Error(err))
	}

	files, err := enum.Collect(ctx, enum.NewFilesystemEnumerator(enum.Config{
		Root:          cfg.Root,
		IncludeHidden: cfg.IncludeHidden,
		MaxFileSize:   cfg.MaxFileSize,
		Extensions:    cfg.Extensions,
		SkipDirs:      cfg.SkipDirs,
	}))
	if err != nil {
		return nil, errors.Wrap(err, "enumerating sources")
	}
	log.Info("enumerated sources", zap.Int("files", len(files)))

	orc := cfg.Oracle
	if orc == nil {
		orc = &oracle.Packages{
			Dir:      cfg.Root,
			Patterns: cfg.Patterns,
			Tests:    cfg.Tests,
			Logger:   log,
		}
	}
	pairs, err := orc.Resolve(ctx, files)
	if err != nil {
		return nil, errors.Wrap(err, "resolving identifiers")
	}

	regions, defs, stats := index.BuildWithStats(pairs)
	log.Info("built reference index",
		zap.Int("pairs", stats.Pairs),
		zap.Int("definitions", stats.Definitions),
		zap.Int("regions", stats.Regions))

	byName := lo.SliceToMap(files, func(f *types.SourceFile) (string, *types.SourceFile) {
		return f.Name, f
	})
	wrappers, err := wrapper.Build(defs, regions, wrapper.WithTitles(func(iv types.Interval) string {
		return location(byName[iv.Filename], iv)
	}))
	if err != nil {
		return nil, errors.Wrap(err, "building wrappers")
	}

	meta := site.Meta{Title: cfg.Title, Revision: revisionLabel(rev)}
	if meta.Title == "" {
		if abs, err := filepath.Abs(cfg.Root); err == nil {
			meta.Title = filepath.Base(abs)
		}
	}

	g := &generator{
		store:    cfg.Store,
		wrappers: wrappers,
		meta:     meta,
		strict:   cfg.StrictNesting,
		now:      now,
		log:      log,
	}
	if err := g.renderAll(ctx, files, cfg.Workers); err != nil {
		return nil, err
	}

	rendered := g.rendered()
	if err := g.writeIndex(rendered, defs, regions); err != nil {
		return nil, err
	}

	result := &Result{
		Files:    len(files),
		Pages:    len(rendered) + 1,
		Failures: g.sortedFailures(),
		Index:    stats,
		Revision: rev,
		Duration: time.Since(start),
	}
	log.Info("generation complete",
		zap.Int("pages", result.Pages),
		zap.Int("failures", len(result.Failures)),
		zap.Duration("duration", result.Duration))
	return result, nil
}

type generator struct {
	store    store.Store
	wrappers wrapper.Set
	meta     site.Meta
	strict   bool
	now      func() time.Time
	log      *zap.Logger

	mu       sync.Mutex
	done     []string
	failures []Failure
}

func (g *generator) renderAll(ctx context.Context, files []*types.SourceFile, workers int) error {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	grp, ctx := errgroup.WithContext(ctx)
	grp.SetLimit(workers)
	for _, f := range files {
		if ctx.Err() != nil {
			break
		}
		grp.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return g.renderFile(f)
		})
	}
	if err := grp.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// renderFile returns an error only for storage failures.
func (g *generator) renderFile(f *types.SourceFile) error {
	tokens, err := lexer.Tokenize(f)
	if err != nil {
		g.fail(f.Name, StageTokenize, err)
		return nil
	}

	opts := []render.Option{render.WithEscaper(html.EscapeString)}
	if g.strict {
		opts = append(opts, render.WithStrictNesting())
	}
	annotated, err := render.Render(f, tokens, g.wrappers.For(f.Name), opts...)
	if err != nil {
		g.fail(f.Name, StageRender, err)
		return nil
	}

	content, err := site.FilePage(g.meta, f.Name, annotated)
	if err != nil {
		g.fail(f.Name, StagePage, err)
		return nil
	}

	page := &types.Page{
		Path:     types.PagePath(f.Name),
		Source:   f.Name,
		SourceID: f.ID(),
		Kind:     types.PageFile,
		Content:  content,
		Created:  g.now(),
	}
	if err := g.store.PutPage(page); err != nil {
		return errors.Wrapf(err, "storing page for %s", f.Name)
	}

	g.mu.Lock()
	g.done = append(g.done, f.Name)
	g.mu.Unlock()
	g.log.Debug("rendered", logging.File(f.Name), zap.Int("tokens", len(tokens)))
	return nil
}

func (g *generator) fail(name, stage string, err error) {
	g.log.Warn("skipping file", logging.File(name), zap.String("stage", stage), zap.Error(err))

	g.mu.Lock()
	defer g.mu.Unlock()
	g.failures = append(g.failures, Failure{File: name, Stage: stage, Error: err.Error()})
}

func (g *generator) rendered() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	names := append([]string(nil), g.done...)
	sort.Strings(names)
	return names
}

func (g *generator) sortedFailures() []Failure {
	g.mu.Lock()
	defer g.mu.Unlock()
	failures := append([]Failure{}, g.failures...)
	sort.Slice(failures, func(i, j int) bool { return failures[i].File < failures[j].File })
	return failures
}

func (g *generator) writeIndex(names []string, defs []types.Definition, regions []types.ActiveRegion) error {
	defCount := lo.CountValuesBy(defs, func(d types.Definition) string { return d.Interval.Filename })
	refCount := lo.CountValuesBy(regions, func(r types.ActiveRegion) string { return r.Interval.Filename })

	entries := lo.Map(names, func(name string, _ int) site.Entry {
		return site.Entry{Name: name, Definitions: defCount[name], References: refCount[name]}
	})
	content, err := site.IndexPage(g.meta, entries)
	if err != nil {
		return err
	}

	page := &types.Page{
		Path:    site.IndexPath,
		Kind:    types.PageIndex,
		Content: content,
		Created: g.now(),
	}
	if err := g.store.PutPage(page); err != nil {
		return errors.Wrap(err, "storing index page")
	}
	return nil
}

func revisionLabel(rev enum.Revision) string {
	if rev.IsZero() {
		return ""
	}
	if rev.Branch != "" {
		return rev.Branch + "@" + rev.Short()
	}
	return rev.Short()
}

// location formats a definition as "file:line" for link titles.
func location(f *types.SourceFile, iv types.Interval) string {
	if f == nil {
		return iv.Filename
	}
	line, _ := f.LineColumn(iv.Start)
	return fmt.Sprintf("%s:%d", iv.Filename, line)
}
