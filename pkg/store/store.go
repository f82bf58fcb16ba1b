// Package store persists generated pages.
package store

import (
	"path"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/srcweave/srcweave/pkg/types"
)

// ErrPageNotFound is returned by GetPage for an unknown path.
var ErrPageNotFound = errors.New("page not found")

// MemoryPath selects the in-memory backend.
const MemoryPath = ":memory:"

// Store provides persistence for generated pages.
// Implementations must be safe for concurrent use.
type Store interface {
	// PutPage stores a page, replacing any page with the same path.
	PutPage(p *types.Page) error

	// GetPage retrieves a page with its content.
	GetPage(path string) (*types.Page, error)

	// ListPages returns page metadata ordered by path. Content is not loaded.
	ListPages() ([]*types.Page, error)

	// PageExists reports whether a page is stored under path.
	PageExists(path string) (bool, error)

	// Close releases the backend.
	Close() error
}

// Config for store initialization.
type Config struct {
	// Path selects the backend: ":memory:" for an in-memory store, a file
	// ending in .db or .sqlite for SQLite, anything else is a directory
	// that receives the browsable site.
	Path string
}

// New creates a Store for cfg.Path.
func New(cfg Config) (Store, error) {
	switch {
	case cfg.Path == "":
		return nil, errors.New("path is required")
	case cfg.Path == MemoryPath:
		return NewMemory(), nil
	case IsDatabasePath(cfg.Path):
		return NewSQLite(cfg.Path)
	default:
		return NewDir(cfg.Path)
	}
}

// IsDatabasePath reports whether p names a SQLite database file.
func IsDatabasePath(p string) bool {
	switch strings.ToLower(path.Ext(p)) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	}
	return false
}

// validatePath rejects page paths that would escape the site root.
func validatePath(p string) error {
	if p == "" {
		return errors.New("page path is required")
	}
	if path.IsAbs(p) || strings.Contains(p, "\\") {
		return errors.Newf("invalid page path %q", p)
	}
	clean := path.Clean(p)
	if clean != p || clean == ".." || strings.HasPrefix(clean, "../") {
		return errors.Newf("invalid page path %q", p)
	}
	return nil
}

func clonePage(p *types.Page, withContent bool) *types.Page {
	c := *p
	c.Content = nil
	if withContent && p.Content != nil {
		c.Content = append([]byte(nil), p.Content...)
	}
	return &c
}
