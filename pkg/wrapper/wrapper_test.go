package wrapper

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srcweave/srcweave/pkg/types"
)

func TestHref(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
		id   int
		want string
	}{
		{name: "same file", from: "main.go", to: "main.go", id: 3, want: "#def-3"},
		{name: "same directory", from: "main.go", to: "util.go", id: 0, want: "util.go.html#def-0"},
		{name: "sibling directory", from: "pkg/a/x.go", to: "pkg/b/y.go", id: 12, want: "../b/y.go.html#def-12"},
		{name: "into subdirectory", from: "main.go", to: "internal/lib/lib.go", id: 1, want: "internal/lib/lib.go.html#def-1"},
		{name: "up to root", from: "internal/lib/lib.go", to: "main.go", id: 2, want: "../../main.go.html#def-2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Href(tt.from, tt.to, tt.id)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuild(t *testing.T) {
	defs := []types.Definition{
		{ID: 1, Interval: types.Interval{Filename: "b.go", Start: 10, End: 12}},
		{ID: 0, Interval: types.Interval{Filename: "a.go", Start: 0, End: 2}},
	}
	regions := []types.ActiveRegion{
		{Interval: types.Interval{Filename: "a.go", Start: 20, End: 22}, DefinitionID: 1},
		{Interval: types.Interval{Filename: "a.go", Start: 5, End: 7}, DefinitionID: 0},
	}

	set, err := Build(defs, regions)
	require.NoError(t, err)

	assert.Equal(t, []string{"a.go", "b.go"}, set.Files())
	assert.Equal(t, []types.Wrapper{
		{Prefix: types.Chunk{Offset: 0, Text: `<a id="def-0" class="def">`}, Postfix: types.Chunk{Offset: 2, Text: "</a>"}},
		{Prefix: types.Chunk{Offset: 5, Text: `<a href="#def-0" class="ref">`}, Postfix: types.Chunk{Offset: 7, Text: "</a>"}},
		{Prefix: types.Chunk{Offset: 20, Text: `<a href="b.go.html#def-1" class="ref">`}, Postfix: types.Chunk{Offset: 22, Text: "</a>"}},
	}, set.For("a.go"))
	assert.Equal(t, []types.Wrapper{
		{Prefix: types.Chunk{Offset: 10, Text: `<a id="def-1" class="def">`}, Postfix: types.Chunk{Offset: 12, Text: "</a>"}},
	}, set.For("b.go"))
	assert.Empty(t, set.For("c.go"))
}

func TestBuild_Titles(t *testing.T) {
	defs := []types.Definition{{ID: 0, Interval: types.Interval{Filename: "a.go", Start: 0, End: 2}}}
	regions := []types.ActiveRegion{{Interval: types.Interval{Filename: "a.go", Start: 5, End: 7}, DefinitionID: 0}}

	set, err := Build(defs, regions, WithTitles(func(iv types.Interval) string { return iv.String() }))
	require.NoError(t, err)

	links := set.For("a.go")
	require.Len(t, links, 2)
	assert.Equal(t, `<a href="#def-0" title="a.go:[0,2]" class="ref">`, links[1].Prefix.Text)
}

func TestBuild_UnknownDefinition(t *testing.T) {
	regions := []types.ActiveRegion{{Interval: types.Interval{Filename: "a.go", Start: 5, End: 7}, DefinitionID: 4}}

	_, err := Build(nil, regions)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownDefinition))
}

func TestBuild_Empty(t *testing.T) {
	set, err := Build(nil, nil)
	require.NoError(t, err)
	assert.Empty(t, set.Files())
}
