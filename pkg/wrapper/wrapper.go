// Package wrapper turns definitions and reference regions into the
// prefix/postfix insertions the renderer splices around tokens.
package wrapper

import (
	"path"
	"path/filepath"
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"

	"github.com/srcweave/srcweave/pkg/markup"
	"github.com/srcweave/srcweave/pkg/types"
)

// ErrUnknownDefinition is returned when a region targets an id that no
// definition carries.
var ErrUnknownDefinition = errors.New("region targets unknown definition")

// Set holds wrappers grouped by the file they apply to.
type Set map[string][]types.Wrapper

// For returns the wrappers for one file.
func (s Set) For(filename string) []types.Wrapper {
	return s[filename]
}

// Files returns the filenames that have at least one wrapper, sorted.
func (s Set) Files() []string {
	files := lo.Keys(s)
	sort.Strings(files)
	return files
}

// Option configures Build.
type Option func(*options)

type options struct {
	title func(types.Interval) string
}

// WithTitles sets a function producing the hover title of each link from the
// interval of the definition it points to.
func WithTitles(fn func(types.Interval) string) Option {
	return func(o *options) {
		o.title = fn
	}
}

// Wrap brackets an interval with a tag.
func Wrap(iv types.Interval, tag markup.Tag) types.Wrapper {
	return types.Wrapper{
		Prefix:  types.Chunk{Offset: iv.Start, Text: tag.Open()},
		Postfix: types.Chunk{Offset: iv.End, Text: tag.Close()},
	}
}

// Build maps every definition to an anchor wrapper and every region to a link
// wrapper. Within a file anchors come first, ordered by id, followed by links
// in position order; a definition and a reference sharing an interval
// therefore nest with the anchor outside.
func Build(defs []types.Definition, regions []types.ActiveRegion, opts ...Option) (Set, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	byID := lo.SliceToMap(defs, func(d types.Definition) (int, types.Definition) {
		return d.ID, d
	})

	set := make(Set)

	sortedDefs := append([]types.Definition(nil), defs...)
	sort.Slice(sortedDefs, func(i, j int) bool { return sortedDefs[i].ID < sortedDefs[j].ID })
	for _, d := range sortedDefs {
		file := d.Interval.Filename
		set[file] = append(set[file], Wrap(d.Interval, markup.Anchor(d.ID)))
	}

	sortedRegions := append([]types.ActiveRegion(nil), regions...)
	sort.SliceStable(sortedRegions, func(i, j int) bool {
		return sortedRegions[i].Interval.Less(sortedRegions[j].Interval)
	})
	for _, r := range sortedRegions {
		target, ok := byID[r.DefinitionID]
		if !ok {
			return nil, errors.Wrapf(ErrUnknownDefinition, "region %s targets id %d", r.Interval, r.DefinitionID)
		}
		href, err := Href(r.Interval.Filename, target.Interval.Filename, target.ID)
		if err != nil {
			return nil, err
		}
		var title string
		if o.title != nil {
			title = o.title(target.Interval)
		}
		file := r.Interval.Filename
		set[file] = append(set[file], Wrap(r.Interval, markup.Link(href, title)))
	}

	return set, nil
}

// Href returns the link from a page rendered for fromFile to definition id
// in toFile: "#def-<id>" within a file, otherwise the page of toFile relative
// to the directory of fromFile.
func Href(fromFile, toFile string, id int) (string, error) {
	anchor := "#" + markup.AnchorName(id)
	if fromFile == toFile {
		return anchor, nil
	}
	rel, err := RelPath(fromFile, toFile)
	if err != nil {
		return "", err
	}
	return types.PagePath(rel) + anchor, nil
}

// RelPath returns the slash-separated path of toFile relative to the
// directory containing fromFile.
func RelPath(fromFile, toFile string) (string, error) {
	rel, err := filepath.Rel(filepath.FromSlash(path.Dir(fromFile)), filepath.FromSlash(toFile))
	if err != nil {
		return "", errors.Wrapf(err, "relative path from %s to %s", fromFile, toFile)
	}
	return filepath.ToSlash(rel), nil
}
