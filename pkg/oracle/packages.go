package oracle

import (
	"context"
	"go/token"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"golang.org/x/tools/go/packages"

	"github.com/srcweave/srcweave/pkg/types"
)

const loadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedCompiledGoFiles |
	packages.NeedImports |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo

// Packages loads a module with the go command and reports pairs for the
// files handed to Resolve. File names are taken relative to Dir.
type Packages struct {
	Dir      string
	Patterns []string
	Tests    bool
	Env      []string
	Logger   *zap.Logger
}

// Resolve implements Oracle.
func (p *Packages) Resolve(ctx context.Context, files []*types.SourceFile) ([]types.Pair, error) {
	log := p.Logger
	if log == nil {
		log = zap.NewNop()
	}

	root, err := filepath.Abs(p.Dir)
	if err != nil {
		return nil, errors.Wrapf(err, "resolving %s", p.Dir)
	}
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}

	patterns := p.Patterns
	if len(patterns) == 0 {
		patterns = []string{"./..."}
	}

	cfg := &packages.Config{
		Context: ctx,
		Fset:    token.NewFileSet(),
		Mode:    loadMode,
		Dir:     root,
		Tests:   p.Tests,
		Env:     p.Env,
	}
	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, errors.Wrap(err, "loading packages")
	}

	c := NewCollector(cfg.Fset)
	for _, f := range files {
		c.Add(filepath.Join(root, filepath.FromSlash(f.Name)), f.Name)
	}

	packages.Visit(pkgs, nil, func(pkg *packages.Package) {
		for _, perr := range pkg.Errors {
			log.Warn("package error", zap.String("package", pkg.PkgPath), zap.String("error", perr.Error()))
		}
		if pkg.TypesInfo == nil {
			return
		}
		c.Collect(pkg.TypesInfo)
	})

	log.Debug("resolved identifiers", zap.Int("packages", len(pkgs)), zap.Int("pairs", len(c.Pairs())))
	return c.Pairs(), nil
}
