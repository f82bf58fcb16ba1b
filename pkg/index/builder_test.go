package index

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srcweave/srcweave/pkg/types"
)

func iv(file string, start, end int) *types.Interval {
	return &types.Interval{Filename: file, Start: start, End: end}
}

func TestBuild_Empty(t *testing.T) {
	regions, defs := Build(nil)

	assert.NotNil(t, regions)
	assert.NotNil(t, defs)
	assert.Empty(t, regions)
	assert.Empty(t, defs)
}

func TestBuild_DropsUnresolved(t *testing.T) {
	pairs := []types.Pair{
		{Occurrence: nil, Definition: iv("a.go", 0, 2)},
		{Occurrence: iv("a.go", 5, 8), Definition: nil},
		{},
	}

	regions, defs, stats := BuildWithStats(pairs)

	assert.Empty(t, regions)
	assert.Empty(t, defs)
	assert.Equal(t, 3, stats.Unresolved)
}

func TestBuild_SelfReference(t *testing.T) {
	pairs := []types.Pair{
		{Occurrence: iv("a.go", 0, 2), Definition: iv("a.go", 0, 2)},
	}

	regions, defs, stats := BuildWithStats(pairs)

	assert.Empty(t, regions)
	assert.Empty(t, defs)
	assert.Equal(t, 1, stats.SelfReferences)
}

func TestBuild_DeduplicatesDefinitions(t *testing.T) {
	// The same occurrence reached through two paths still yields one definition.
	pairs := []types.Pair{
		{Occurrence: iv("a.go", 5, 8), Definition: iv("a.go", 0, 2)},
		{Occurrence: iv("a.go", 5, 8), Definition: iv("a.go", 0, 2)},
	}

	regions, defs := Build(pairs)

	require.Len(t, defs, 1)
	assert.Equal(t, types.Definition{ID: 0, Interval: *iv("a.go", 0, 2)}, defs[0])

	require.Len(t, regions, 2)
	for _, r := range regions {
		assert.Equal(t, 0, r.DefinitionID)
		assert.Equal(t, *iv("a.go", 5, 8), r.Interval)
	}
}

func TestBuild_DistinctOccurrencesShareDefinition(t *testing.T) {
	pairs := []types.Pair{
		{Occurrence: iv("a.go", 20, 22), Definition: iv("a.go", 0, 2)},
		{Occurrence: iv("b.go", 3, 5), Definition: iv("a.go", 0, 2)},
	}

	regions, defs := Build(pairs)

	require.Len(t, defs, 1)
	require.Len(t, regions, 2)
	assert.Equal(t, regions[0].DefinitionID, regions[1].DefinitionID)
}

func TestBuild_DenseIDsInLocationOrder(t *testing.T) {
	pairs := []types.Pair{
		{Occurrence: iv("b.go", 40, 41), Definition: iv("b.go", 0, 1)},
		{Occurrence: iv("a.go", 30, 31), Definition: iv("a.go", 10, 11)},
		{Occurrence: iv("a.go", 50, 51), Definition: iv("a.go", 2, 3)},
	}

	regions, defs := Build(pairs)

	require.Len(t, defs, 3)
	assert.Equal(t, *iv("a.go", 2, 3), defs[0].Interval)
	assert.Equal(t, *iv("a.go", 10, 11), defs[1].Interval)
	assert.Equal(t, *iv("b.go", 0, 1), defs[2].Interval)
	for i, d := range defs {
		assert.Equal(t, i, d.ID)
	}

	byDef := make(map[int]types.Interval)
	for _, r := range regions {
		byDef[r.DefinitionID] = r.Interval
	}
	assert.Equal(t, *iv("a.go", 50, 51), byDef[0])
	assert.Equal(t, *iv("a.go", 30, 31), byDef[1])
	assert.Equal(t, *iv("b.go", 40, 41), byDef[2])
}

func TestBuild_OrderIndependent(t *testing.T) {
	var pairs []types.Pair
	for i := 0; i < 50; i++ {
		def := iv("f.go", (i%7)*10, (i%7)*10+3)
		occ := iv("g.go", 100+i*5, 102+i*5)
		pairs = append(pairs, types.Pair{Occurrence: occ, Definition: def})
	}
	wantRegions, wantDefs := Build(pairs)

	rng := rand.New(rand.NewSource(1))
	for round := 0; round < 5; round++ {
		shuffled := append([]types.Pair(nil), pairs...)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

		gotRegions, gotDefs := Build(shuffled)
		assert.Equal(t, wantDefs, gotDefs)
		assert.Equal(t, wantRegions, gotRegions)
	}
}

func TestBuild_RegionsTargetExistingDefinitions(t *testing.T) {
	pairs := []types.Pair{
		{Occurrence: iv("a.go", 5, 8), Definition: iv("a.go", 0, 2)},
		{Occurrence: iv("a.go", 9, 9), Definition: iv("b.go", 0, 0)},
		{Occurrence: iv("a.go", 0, 2), Definition: iv("a.go", 0, 2)},
		{Occurrence: nil, Definition: iv("c.go", 0, 0)},
	}

	regions, defs, stats := BuildWithStats(pairs)

	known := make(map[int]bool)
	for _, d := range defs {
		known[d.ID] = true
	}
	for _, r := range regions {
		assert.True(t, known[r.DefinitionID])
		assert.NotEqual(t, defs[r.DefinitionID].Interval, r.Interval)
	}
	assert.Equal(t, Stats{Pairs: 4, Unresolved: 1, SelfReferences: 1, Definitions: 2, Regions: 2}, stats)
}
