// Package oracle resolves identifier occurrences in Go source to the places
// their objects are defined.
package oracle

import (
	"context"
	"go/ast"
	"go/token"
	gotypes "go/types"
	"sort"

	"github.com/srcweave/srcweave/pkg/types"
)

// Oracle answers, for every identifier occurrence in a set of files, where the
// named entity is defined.
type Oracle interface {
	Resolve(ctx context.Context, files []*types.SourceFile) ([]types.Pair, error)
}

// Collector turns go/types results into pairs. Only files registered with Add
// are part of the analyzed set; positions anywhere else are reported as
// absent. Pairs are deduplicated across calls to Collect, which matters when
// one file is type-checked more than once (test variants of a package).
type Collector struct {
	fset  *token.FileSet
	names map[string]string
	seen  map[pairKey]bool
	pairs []types.Pair
}

type pairKey struct {
	occ, def types.Interval
	hasDef   bool
}

// NewCollector creates a collector for positions in fset.
func NewCollector(fset *token.FileSet) *Collector {
	return &Collector{
		fset:  fset,
		names: make(map[string]string),
		seen:  make(map[pairKey]bool),
	}
}

// Add registers a file of the analyzed set. path is the name the file carries
// in fset; name is the name used in produced intervals.
func (c *Collector) Add(path, name string) {
	c.names[path] = name
}

// Collect records a pair for every identifier in info.Defs and info.Uses.
func (c *Collector) Collect(info *gotypes.Info) {
	type entry struct {
		id  *ast.Ident
		obj gotypes.Object
	}
	entries := make([]entry, 0, len(info.Defs)+len(info.Uses))
	for id, obj := range info.Defs {
		entries = append(entries, entry{id, obj})
	}
	for id, obj := range info.Uses {
		entries = append(entries, entry{id, obj})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].id.Pos() < entries[j].id.Pos()
	})

	for _, e := range entries {
		occ := c.span(e.id.Pos(), len(e.id.Name))
		def := c.definition(e.obj)
		if occ == nil {
			continue
		}
		key := pairKey{occ: *occ}
		if def != nil {
			key.hasDef, key.def = true, *def
		}
		if c.seen[key] {
			continue
		}
		c.seen[key] = true
		c.pairs = append(c.pairs, types.Pair{Occurrence: occ, Definition: def})
	}
}

// Pairs returns everything collected so far.
func (c *Collector) Pairs() []types.Pair {
	return c.pairs
}

// definition locates obj's declaring identifier. Universe objects (builtins,
// predeclared types, nil), package names, and objects declared outside the
// analyzed set have no location.
func (c *Collector) definition(obj gotypes.Object) *types.Interval {
	if obj == nil || obj.Pkg() == nil {
		return nil
	}
	if _, ok := obj.(*gotypes.PkgName); ok {
		return nil
	}
	return c.span(obj.Pos(), len(obj.Name()))
}

func (c *Collector) span(pos token.Pos, length int) *types.Interval {
	if !pos.IsValid() {
		return nil
	}
	tf := c.fset.File(pos)
	if tf == nil {
		return nil
	}
	name, ok := c.names[tf.Name()]
	if !ok {
		return nil
	}
	iv, ok := types.NewInterval(name, tf.Offset(pos), length)
	if !ok {
		return nil
	}
	return &iv
}

// NewInfo allocates the go/types maps the collector reads.
func NewInfo() *gotypes.Info {
	return &gotypes.Info{
		Defs: make(map[*ast.Ident]gotypes.Object),
		Uses: make(map[*ast.Ident]gotypes.Object),
	}
}
