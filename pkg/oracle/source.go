package oracle

import (
	"context"
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	gotypes "go/types"

	"go.uber.org/zap"

	"github.com/srcweave/srcweave/pkg/types"
)

// Source type-checks in-memory files as a single package. Imports are
// resolved from source through go/build. Type errors are tolerated: whatever
// the checker resolved is still reported.
type Source struct {
	Logger *zap.Logger
}

// Resolve implements Oracle.
func (s *Source) Resolve(ctx context.Context, files []*types.SourceFile) ([]types.Pair, error) {
	log := s.Logger
	if log == nil {
		log = zap.NewNop()
	}

	fset := token.NewFileSet()
	c := NewCollector(fset)

	var syntax []*ast.File
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		parsed, err := parser.ParseFile(fset, f.Name, f.Content, parser.ParseComments|parser.AllErrors)
		if parsed == nil {
			log.Debug("skipping unparsable file", zap.String("file", f.Name), zap.Error(err))
			continue
		}
		if err != nil {
			log.Debug("parse errors", zap.String("file", f.Name), zap.Error(err))
		}
		c.Add(f.Name, f.Name)
		syntax = append(syntax, parsed)
	}
	if len(syntax) == 0 {
		return []types.Pair{}, nil
	}

	conf := gotypes.Config{
		Importer: importer.ForCompiler(fset, "source", nil),
		Error: func(err error) {
			log.Debug("type error", zap.Error(err))
		},
	}
	info := NewInfo()
	// Errors were already reported through conf.Error.
	_, _ = conf.Check(syntax[0].Name.Name, fset, syntax, info)

	c.Collect(info)
	return c.Pairs(), nil
}
