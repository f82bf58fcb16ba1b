package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeBlobID(t *testing.T) {
	tests := []struct {
		name     string
		content  []byte
		expected string
	}{
		{
			name:     "empty content",
			content:  []byte(""),
			expected: "e69de29bb2d1d6434b8b29ae775ad8c2e48c5391",
		},
		{
			name:     "hello world",
			content:  []byte("hello world"),
			expected: "95d09f2b10159347eece71399a7e2e907ea3df4f",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ComputeBlobID(tt.content).Hex())
		})
	}
}

func TestParseBlobID(t *testing.T) {
	id, err := ParseBlobID("95d09f2b10159347eece71399a7e2e907ea3df4f")
	require.NoError(t, err)
	assert.Equal(t, ComputeBlobID([]byte("hello world")), id)

	_, err = ParseBlobID("95d09f")
	assert.Error(t, err)

	_, err = ParseBlobID("zzd09f2b10159347eece71399a7e2e907ea3df4f")
	assert.Error(t, err)
}

func TestBlobID_JSON(t *testing.T) {
	page := Page{Path: "a.go.html", SourceID: ComputeBlobID([]byte("package a\n"))}

	data, err := json.Marshal(page)
	require.NoError(t, err)

	var decoded Page
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, page.SourceID, decoded.SourceID)

	var empty BlobID
	require.NoError(t, json.Unmarshal([]byte(`""`), &empty))
	assert.True(t, empty.IsZero())
}

func TestBlobID_Scan(t *testing.T) {
	want := ComputeBlobID([]byte("x"))

	var fromString, fromBytes BlobID
	require.NoError(t, fromString.Scan(want.Hex()))
	require.NoError(t, fromBytes.Scan([]byte(want.Hex())))
	assert.Equal(t, want, fromString)
	assert.Equal(t, want, fromBytes)

	var bad BlobID
	assert.Error(t, bad.Scan(nil))
	assert.Error(t, bad.Scan(42))
}
