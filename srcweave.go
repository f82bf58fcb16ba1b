// Package srcweave generates cross-referenced HTML listings of Go source.
//
// Every identifier that refers to something defined inside the rendered
// tree becomes a link to its definition, and every such definition becomes
// a link target.
//
// # Basic Usage
//
// Render a whole module into a directory:
//
//	result, err := srcweave.Generate(ctx, "./myproject", srcweave.WithOutput("site"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%d pages, %d failures\n", result.Pages, len(result.Failures))
//
// # Single Files
//
// Annotate one in-memory file, resolving identifiers with the type checker:
//
//	html, err := srcweave.Annotate(ctx, "main.go", src)
//
// or with pairs computed elsewhere:
//
//	html, err := srcweave.RenderSource("main.go", src, pairs)
package srcweave

import (
	"context"
	"html"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/srcweave/srcweave/pkg/config"
	"github.com/srcweave/srcweave/pkg/index"
	"github.com/srcweave/srcweave/pkg/lexer"
	"github.com/srcweave/srcweave/pkg/oracle"
	"github.com/srcweave/srcweave/pkg/pipeline"
	"github.com/srcweave/srcweave/pkg/render"
	"github.com/srcweave/srcweave/pkg/store"
	"github.com/srcweave/srcweave/pkg/types"
	"github.com/srcweave/srcweave/pkg/wrapper"
)

// Re-export commonly used types for convenience.
type (
	// Interval is an inclusive byte range within one file.
	Interval = types.Interval

	// Pair links an identifier occurrence to its definition.
	Pair = types.Pair

	// Wrapper is a markup insertion around a span of tokens.
	Wrapper = types.Wrapper

	// Result summarizes a Generate run.
	Result = pipeline.Result

	// Failure records a file that could not be rendered.
	Failure = pipeline.Failure
)

// RenderSource annotates one file with links derived from pairs. Pairs that
// point into other files produce links to those files' pages. Token text is
// HTML-escaped.
func RenderSource(filename string, content []byte, pairs []Pair) (string, error) {
	file := &types.SourceFile{Name: filename, Content: content}

	tokens, err := lexer.Tokenize(file)
	if err != nil {
		return "", errors.Wrapf(err, "tokenizing %s", filename)
	}

	regions, defs := index.Build(pairs)
	set, err := wrapper.Build(defs, regions)
	if err != nil {
		return "", err
	}

	return render.Render(file, tokens, set.For(filename),
		render.WithEscaper(html.EscapeString),
		render.WithStrictNesting())
}

// Annotate type-checks a single file on its own and renders it with links
// between its identifiers.
func Annotate(ctx context.Context, filename string, content []byte) (string, error) {
	file := &types.SourceFile{Name: filename, Content: content}
	pairs, err := (&oracle.Source{}).Resolve(ctx, []*types.SourceFile{file})
	if err != nil {
		return "", err
	}
	return RenderSource(filename, content, pairs)
}

// Option configures Generate.
type Option func(*generateConfig)

type generateConfig struct {
	settings *config.Config
	store    store.Store
	oracle   oracle.Oracle
	logger   *zap.Logger
}

// WithOutput sets the destination: a directory, a .db/.sqlite file or
// ":memory:". Ignored when WithStore is given.
func WithOutput(path string) Option {
	return func(c *generateConfig) {
		c.settings.Output = path
	}
}

// WithStore writes pages to an existing store. The caller keeps ownership.
func WithStore(s store.Store) Option {
	return func(c *generateConfig) {
		c.store = s
	}
}

// WithSettings replaces the default settings, e.g. with config.Load output.
func WithSettings(s *config.Config) Option {
	return func(c *generateConfig) {
		c.settings = s
	}
}

// WithWorkers bounds concurrent rendering.
func WithWorkers(n int) Option {
	return func(c *generateConfig) {
		c.settings.Workers = n
	}
}

// WithTests includes test files and test packages.
func WithTests() Option {
	return func(c *generateConfig) {
		c.settings.Tests = true
	}
}

// WithPermissiveNesting renders files with crossing references instead of
// reporting them as failures.
func WithPermissiveNesting() Option {
	return func(c *generateConfig) {
		c.settings.StrictNesting = false
	}
}

// WithOracle overrides identifier resolution.
func WithOracle(o oracle.Oracle) Option {
	return func(c *generateConfig) {
		c.oracle = o
	}
}

// WithLogger sets the logger. Defaults to no logging.
func WithLogger(l *zap.Logger) Option {
	return func(c *generateConfig) {
		c.logger = l
	}
}

// Generate renders the Go module at root.
func Generate(ctx context.Context, root string, opts ...Option) (*Result, error) {
	cfg := &generateConfig{settings: config.Default()}
	for _, opt := range opts {
		opt(cfg)
	}
	if err := cfg.settings.Validate(); err != nil {
		return nil, err
	}

	st := cfg.store
	if st == nil {
		var err error
		st, err = store.New(store.Config{Path: cfg.settings.Output})
		if err != nil {
			return nil, errors.Wrap(err, "opening output")
		}
		defer st.Close()
	}

	pc := pipeline.FromSettings(root, cfg.settings, st, cfg.logger)
	pc.Oracle = cfg.oracle
	return pipeline.Generate(ctx, pc)
}
