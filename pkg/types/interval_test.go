package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterval_Equality(t *testing.T) {
	a := Interval{Filename: "main.go", Start: 5, End: 8}
	b := Interval{Filename: "main.go", Start: 5, End: 8}
	c := Interval{Filename: "other.go", Start: 5, End: 8}

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)

	seen := map[Interval]int{a: 1}
	_, ok := seen[b]
	assert.True(t, ok, "structurally equal intervals must share a map key")
}

func TestNewInterval(t *testing.T) {
	iv, ok := NewInterval("a.go", 3, 4)
	require.True(t, ok)
	assert.Equal(t, Interval{Filename: "a.go", Start: 3, End: 6}, iv)
	assert.Equal(t, 4, iv.Len())

	_, ok = NewInterval("a.go", 3, 0)
	assert.False(t, ok)
}

func TestInterval_ContainsOverlaps(t *testing.T) {
	outer := Interval{Filename: "a.go", Start: 0, End: 11}
	inner := Interval{Filename: "a.go", Start: 0, End: 1}
	crossing := Interval{Filename: "a.go", Start: 10, End: 14}
	elsewhere := Interval{Filename: "b.go", Start: 0, End: 1}

	assert.True(t, outer.Contains(inner))
	assert.True(t, outer.Contains(outer))
	assert.False(t, inner.Contains(outer))
	assert.False(t, outer.Contains(crossing))
	assert.True(t, outer.Overlaps(crossing))
	assert.False(t, inner.Overlaps(crossing))
	assert.False(t, inner.Overlaps(elsewhere))
}

func TestInterval_Less(t *testing.T) {
	a := Interval{Filename: "a.go", Start: 4, End: 9}
	b := Interval{Filename: "a.go", Start: 4, End: 10}
	c := Interval{Filename: "a.go", Start: 5, End: 5}
	d := Interval{Filename: "b.go", Start: 0, End: 0}

	assert.True(t, a.Less(b))
	assert.True(t, b.Less(c))
	assert.True(t, c.Less(d))
	assert.False(t, d.Less(a))
	assert.False(t, a.Less(a))
}

func TestInterval_String(t *testing.T) {
	assert.Equal(t, "main.go:[0,2]", Interval{Filename: "main.go", Start: 0, End: 2}.String())
}
