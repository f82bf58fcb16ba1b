package types

import (
	"github.com/cockroachdb/errors"
)

// ErrSnippetUnavailable is returned when a token's text cannot be retrieved
// from the buffer it claims to belong to.
var ErrSnippetUnavailable = errors.New("snippet unavailable")

// SnippetSource retrieves the text covered by an interval.
type SnippetSource interface {
	Snippet(iv Interval) (string, error)
}

// SourceFile is a source buffer addressed by a root-relative, slash-separated name.
type SourceFile struct {
	Name    string
	Content []byte
}

// Snippet returns the text covered by iv. The interval must name this file
// and lie within the buffer.
func (f *SourceFile) Snippet(iv Interval) (string, error) {
	if iv.Filename != f.Name {
		return "", errors.Wrapf(ErrSnippetUnavailable, "interval %s does not belong to %s", iv, f.Name)
	}
	if !iv.Valid() || iv.End >= len(f.Content) {
		return "", errors.Wrapf(ErrSnippetUnavailable, "interval %s outside %d-byte buffer", iv, len(f.Content))
	}
	return string(f.Content[iv.Start : iv.End+1]), nil
}

// ID returns the content hash of the file.
func (f *SourceFile) ID() BlobID {
	return ComputeBlobID(f.Content)
}

// LineColumn converts a byte offset into a 1-based line and column.
func (f *SourceFile) LineColumn(offset int) (line, column int) {
	return ComputeLineColumn(f.Content, offset)
}
